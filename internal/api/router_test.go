package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"news_portal/internal/db"
	"news_portal/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRouterRecoversFromDatabaseOutage(t *testing.T) {
	env := newTestEnv(t)
	var attempts atomic.Int32
	connector := db.NewConnectorWithOpener(time.Second, func(ctx context.Context) (*gorm.DB, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return env.conn, nil
	})
	router, err := NewRouter(RouterConfig{DB: connector, Tokens: utils.NewTokenCodec(testSecret, time.Hour)})
	require.NoError(t, err)

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news-statistics", nil))
		return w
	}
	w := get()
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"message":"Service temporarily unavailable"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/latest/news", "", nil).Code)

	w := env.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `news_portal_requests_total{method="GET",route="/api/latest/news",status="200"}`)
	assert.Contains(t, w.Body.String(), "news_portal_request_duration_seconds")
}

func TestCORSAllowList(t *testing.T) {
	env := newTestEnv(t, func(rc *RouterConfig) {
		rc.CORSOrigins = []string{"http://localhost:5173"}
	})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := preflight("http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
