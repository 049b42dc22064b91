package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func probe(t *testing.T, fn http.HandlerFunc, path string) (int, status) {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var s status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	return rec.Code, s
}

func TestLiveEndpoint(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		h := New()
		code, s := probe(t, h.LiveEndpoint, "/livez")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", s.Status)
	})

	t.Run("failing check", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck("disk", time.Second, func(ctx context.Context) error {
			return errors.New("disk full")
		})

		code, s := probe(t, h.LiveEndpoint, "/livez")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", s.Status)
		assert.Equal(t, "disk full", s.Checks["disk"])
	})
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("not ready until flagged", func(t *testing.T) {
		h := New()

		code, s := probe(t, h.ReadyEndpoint, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "service is not ready", s.Checks["_readiness"])

		h.SetReady(true)
		code, s = probe(t, h.ReadyEndpoint, "/readyz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", s.Status)
	})

	t.Run("draining flips back to unavailable", func(t *testing.T) {
		h := New()
		h.SetReady(true)
		code, _ := probe(t, h.ReadyEndpoint, "/readyz")
		require.Equal(t, http.StatusOK, code)

		h.SetReady(false)
		code, _ = probe(t, h.ReadyEndpoint, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})

	t.Run("failing readiness check", func(t *testing.T) {
		h := New()
		h.SetReady(true)
		h.AddReadinessCheck("store", time.Second, func(ctx context.Context) error {
			return errors.New("store unavailable")
		})

		code, s := probe(t, h.ReadyEndpoint, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "store unavailable", s.Checks["store"])
	})
}

func TestIsReady(t *testing.T) {
	h := New()
	ctx := context.Background()

	assert.False(t, h.IsReady(ctx))
	h.SetReady(true)
	assert.True(t, h.IsReady(ctx))

	h.AddReadinessCheck("flaky", time.Second, func(ctx context.Context) error {
		return errors.New("down")
	})
	assert.False(t, h.IsReady(ctx))
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddLivenessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	code, s := probe(t, h.LiveEndpoint, "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, s.Checks["slow"], "context deadline exceeded")
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
