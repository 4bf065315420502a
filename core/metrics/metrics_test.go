package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"library-doctor/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value reads the current value of a counter or gauge.
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestObserveReconcile(t *testing.T) {
	before := value(t, ReconcileRunsTotal)

	ObserveReconcile(reconcile.Summary{TotalTracks: 5, OK: 3, Missing: 2, NotImported: 7, RelocatableUnique: 1}, 250*time.Millisecond)

	assert.Equal(t, before+1, value(t, ReconcileRunsTotal))
	assert.Equal(t, float64(5), value(t, ReconcileFindings.WithLabelValues("total")))
	assert.Equal(t, float64(2), value(t, ReconcileFindings.WithLabelValues("missing")))
	assert.Equal(t, float64(7), value(t, ReconcileFindings.WithLabelValues("not_imported")))
	assert.Equal(t, float64(1), value(t, ReconcileFindings.WithLabelValues("relocatable_unique")))
	assert.Greater(t, value(t, ReconcileLastRunTimestamp), float64(0))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", Status(nil))
	assert.Equal(t, "error", Status(errors.New("x")))
}

func TestMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(DefaultMiddlewareConfig()))
	app.Get("/collection/reconcile", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", Handler())

	counter := HTTPRequestsTotal.WithLabelValues("GET", "/collection/reconcile", "200")
	before := value(t, counter)

	resp, err := app.Test(httptest.NewRequest("GET", "/collection/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, before+1, value(t, counter))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "library_doctor_http_requests_total")
}
