package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/resources", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("metrics") })
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		key    string
		status int
	}{
		{"Disabled", Config{}, "/resources", "", fiber.StatusOK},
		{"Valid", Config{ApiKey: "secret"}, "/resources", "secret", fiber.StatusOK},
		{"Missing", Config{ApiKey: "secret"}, "/resources", "", fiber.StatusUnauthorized},
		{"Wrong", Config{ApiKey: "secret"}, "/resources", "nope", fiber.StatusUnauthorized},
		{"Skipped", Config{ApiKey: "secret", Skip: []string{"/metrics"}}, "/metrics", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := setupApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
