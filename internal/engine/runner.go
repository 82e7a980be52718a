package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// RunRequest asks the engine to execute an archive
type RunRequest struct {
	RunID       string
	ArchivePath string
	WorkDir     string
	Visu        bool
}

// Mode names the run for logs and metrics
func (r RunRequest) Mode() string {
	if r.Visu {
		return "view"
	}
	return "run"
}

// ReconRequest asks the engine for a filtered back-projection of a projection image
type ReconRequest struct {
	ProjectionPath string
	OutputPath     string
	WorkDir        string
	SOD            float64
	SDD            float64
}

// Runner executes engine commands
type Runner interface {
	Run(ctx context.Context, req RunRequest) error
	Reconstruct(ctx context.Context, req ReconRequest) error
}

// ExitError is returned when the engine process fails
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("engine exited with code %d", e.Code)
	}
	return fmt.Sprintf("engine exited with code %d: %s", e.Code, e.Stderr)
}

// ExecRunner runs the engine as a child process: <Command> <Args...> <subcommand> <flags...>
type ExecRunner struct {
	Command string
	Args    []string
	Logger  *zap.SugaredLogger
}

// Run executes "run --archive <path> [--visu]"
func (r *ExecRunner) Run(ctx context.Context, req RunRequest) error {
	args := []string{"run", "--archive", req.ArchivePath}
	if req.Visu {
		args = append(args, "--visu")
	}
	return r.exec(ctx, req.WorkDir, args)
}

// Reconstruct executes "reconstruct --projection <p> --output <o> --sod X --sdd Y"
func (r *ExecRunner) Reconstruct(ctx context.Context, req ReconRequest) error {
	args := []string{
		"reconstruct",
		"--projection", req.ProjectionPath,
		"--output", req.OutputPath,
		"--sod", strconv.FormatFloat(req.SOD, 'g', -1, 64),
		"--sdd", strconv.FormatFloat(req.SDD, 'g', -1, 64),
	}
	return r.exec(ctx, req.WorkDir, args)
}

func (r *ExecRunner) exec(ctx context.Context, dir string, sub []string) error {
	args := append(append([]string{}, r.Args...), sub...)
	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Dir = dir

	stderr := &tailBuffer{limit: 4096}
	stdout := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr
	cmd.Stdout = stdout

	if r.Logger != nil {
		r.Logger.Debugw("Starting engine", "command", r.Command, "args", args, "dir", dir)
	}

	err := cmd.Run()
	if r.Logger != nil {
		r.Logger.Debugw("Engine finished", "args", args, "stdout", stdout.String(), "error", err)
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("failed to start engine: %w", err)
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// tailBuffer keeps the last limit bytes written to it
type tailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

// String returns the trimmed tail without terminal escapes
func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	clean := ansiEscape.ReplaceAll(bytes.ToValidUTF8(t.buf, nil), nil)
	return strings.TrimSpace(string(clean))
}
