package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID(), VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})
	return app
}

func TestVersionMiddleware(t *testing.T) {
	app := newApp()

	tests := []struct {
		header string
		status int
		want   string
	}{
		{"", 200, "1.0.0"},
		{"1.0", 200, "1.0.0"},
		{"v1", 200, "1.0.0"},
		{"1.2.0", 200, "1.2.0"},
		{"2.0.0", 500, ""}, // the bare app has no API error handler
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("X-Api-Version", tt.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("%q: expected status %d, got %d", tt.header, tt.status, resp.StatusCode)
		}
		if tt.want != "" && resp.Header.Get("X-Api-Version") != tt.want {
			t.Errorf("%q: expected version %s, got %s", tt.header, tt.want, resp.Header.Get("X-Api-Version"))
		}
	}
}

func TestRequestID(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("Expected a generated uuid, got %q", resp.Header.Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.Header.Get(RequestIDHeader) != id {
		t.Errorf("Expected %s echoed, got %s", id, resp.Header.Get(RequestIDHeader))
	}
}
