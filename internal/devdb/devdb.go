// devdb.go
//
// A data service that defines, persists and launches Monte-Carlo radiation transport simulations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gatesim.
// gatesim is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gatesim is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gatesim.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package devdb starts a disposable database container for local development and integration tests.
// Settings are read from the environment, usually loaded from a .env file first.
package devdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/gatesim/data"
	"github.com/localnerve/gatesim/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Options describes the database container
type Options struct {
	Image        string `env:"DB_IMAGE"`
	Type         string `env:"DB_TYPE" envDefault:"mariadb"` // mariadb, mysql or postgres
	Port         string `env:"DB_PORT" envDefault:"3306"`
	Alias        string `env:"DB_ALIAS" envDefault:"gatesim-db"`
	Database     string `env:"DB_DATABASE" envDefault:"gatesim"`
	User         string `env:"DB_USER" envDefault:"gatesim"`
	Password     string `env:"DB_PASSWORD" envDefault:"gatesim"`
	RootPassword string `env:"DB_ROOT_PASSWORD" envDefault:"gatesim-root"`
}

// OptionsFromEnv parses Options from the environment
func OptionsFromEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return opts, fmt.Errorf("parse env: %w", err)
	}
	if opts.Image == "" {
		return opts, fmt.Errorf("DB_IMAGE is required")
	}
	return opts, nil
}

// Database is a running database container
type Database struct {
	Options   Options
	Network   *testcontainers.DockerNetwork
	Container testcontainers.Container
	Host      string
	Port      string
}

// Start creates the network and database container, then prepares the application database and user
func Start(ctx context.Context, opts Options) (*Database, error) {
	db := &Database{Options: opts}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}
	db.Network = nw

	tcpPort, err := nat.NewPort("tcp", opts.Port)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("db port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.Image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          initEnv(opts),
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
			Networks:     []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {opts.Alias},
			},
		},
		Started: true,
	})
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("start %s: %w", opts.Image, err)
	}
	db.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("mapped port: %w", err)
	}
	db.Host, db.Port = host, mapped.Port()

	if isMySQL(opts.Type) {
		if err := db.initMySQL(ctx); err != nil {
			db.Terminate(ctx)
			return nil, err
		}
	}

	return db, nil
}

// Config returns an application config pointing at the container
func (d *Database) Config() *config.Config {
	return &config.Config{
		LogLevel:          "warn",
		DBType:            d.Options.Type,
		DBHost:            d.Host,
		DBPort:            d.Port,
		DBDatabase:        d.Options.Database,
		DBUser:            d.Options.User,
		DBPassword:        d.Options.Password,
		DBConnectionLimit: 5,
	}
}

// Env lists the variables a gatesim server needs to reach the container
func (d *Database) Env() []string {
	return []string{
		"DB_TYPE=" + d.Options.Type,
		"DB_HOST=" + d.Host,
		"DB_PORT=" + d.Port,
		"DB_DATABASE=" + d.Options.Database,
		"DB_USER=" + d.Options.User,
		"DB_PASSWORD=" + d.Options.Password,
	}
}

// Terminate stops the container and removes the network. Safe on a partially started Database.
func (d *Database) Terminate(ctx context.Context) {
	if d.Container != nil {
		if err := d.Container.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate database container: %v", err)
		}
	}
	if d.Network != nil {
		if err := d.Network.Remove(ctx); err != nil {
			log.Printf("Failed to remove network: %v", err)
		}
	}
}

func initEnv(opts Options) map[string]string {
	switch opts.Type {
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_PASSWORD": opts.Password,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_DB":       opts.Database,
		}
	}
	return map[string]string{
		"MYSQL_ROOT_PASSWORD":   opts.RootPassword,
		"MARIADB_ROOT_PASSWORD": opts.RootPassword,
	}
}

func (d *Database) initMySQL(ctx context.Context) error {
	conn, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", d.Options.RootPassword, d.Host, d.Port))
	if err != nil {
		return fmt.Errorf("connect for setup: %w", err)
	}
	defer conn.Close()

	// the port opens before the server accepts logins
	for i := 0; i < 30; i++ {
		if err = conn.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("%s not ready after 30 seconds: %w", d.Options.Type, err)
	}

	for _, script := range []string{data.InitdbMariaDBDatabase, data.InitdbMariaDBPrivileges} {
		rendered, err := render(script, d.Options)
		if err != nil {
			return err
		}
		if err := executeSQL(ctx, conn, rendered); err != nil {
			return err
		}
	}
	return nil
}

func render(script string, opts Options) (string, error) {
	tmpl, err := template.New("initdb").Parse(script)
	if err != nil {
		return "", fmt.Errorf("parse init sql: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("render init sql: %w", err)
	}
	return buf.String(), nil
}

// executeSQL runs each statement of a script, with line comments removed
func executeSQL(ctx context.Context, conn *sql.DB, script string) error {
	for _, q := range statements(script) {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%w: when executing > %s", err, q)
		}
	}
	return nil
}

func statements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		b.WriteString(stripComment(line))
		b.WriteByte(' ')
	}

	var out []string
	for _, q := range strings.Split(b.String(), ";") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// stripComment cuts a trailing -- comment unless it sits inside a quoted string
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}
	return line
}

func isMySQL(dbType string) bool {
	return dbType == "mysql" || dbType == "mariadb"
}
