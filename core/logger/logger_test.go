package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		debug bool
	}{
		{"ProductionJSON", Config{Level: "info", Format: "json"}, false},
		{"DevelopmentConsole", Config{Level: "debug", Format: "console"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-123")
		WithRayID(base, c).Info("tagged")
		return nil
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		WithRayID(base, c).Info("untagged")
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ray-123", entries[0].ContextMap()["ray_id"])
	assert.NotContains(t, entries[1].ContextMap(), "ray_id")
}
