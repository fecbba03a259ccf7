package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticketapp/internal/config"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/tickets", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/tickets", "GET", 200, 4*time.Millisecond)
	m.RecordError("/tickets", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/tickets|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/tickets|POST|VALIDATION_FAILED"])
	assert.InDelta(t, 3.0, snap.AverageLatencyMS, 0.001)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestNewLoggerLevels(t *testing.T) {
	app := config.AppConfig{Name: "Ticketing App", Version: "test", Env: "test"}

	logger, err := NewLogger(config.LoggerConfig{Level: "debug", Format: "console"}, app)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "loud"}, app)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestRequestLoggerRecordsStatusAndExtraFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics, func(*fiber.Ctx) zap.Field {
		return zap.String("scope", "scope-1")
	}))
	app.Get("/tickets", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusAccepted)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusAccepted), fields["status"])
	assert.Equal(t, "scope-1", fields["scope"])
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/tickets|GET|202"])
}
