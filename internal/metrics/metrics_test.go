package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/events/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/broken", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "no") })

	for _, path := range []string{"/events/1", "/events/2", "/broken"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/events/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/broken", "418")))
}

func TestObserveRenderAndEmail(t *testing.T) {
	m := New()

	m.ObserveRender(0, 10*time.Millisecond)
	m.ObserveRender(renderer.KindNotFound, time.Millisecond)
	m.ObserveEmail("qr", nil)
	m.ObserveEmail("qr", errors.New("smtp"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("qr", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("qr", "error")))
}

func TestAsynqMiddleware(t *testing.T) {
	m := New()
	failing := m.AsynqMiddleware()(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
		return errors.New("boom")
	}))

	err := failing.ProcessTask(context.Background(), asynq.NewTask("email:certificate", nil))
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksProcessed.WithLabelValues("email:certificate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksFailed.WithLabelValues("email:certificate")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.tasksInProgress.WithLabelValues("email:certificate")))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New()
	m.ObserveEmail("registration", nil)

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `eventcert_emails_sent_total{result="success",type="registration"} 1`)
}
