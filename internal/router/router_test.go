package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"focus-backend/internal/handlers"
	"focus-backend/internal/middleware"
)

func newTestRouter(t *testing.T) http.Handler {
	h, stop := New(
		middleware.NewJWTAuth("test-secret", time.Minute),
		handlers.NewAuthHandler(nil),
		handlers.NewStudySessionHandler(nil),
		handlers.NewGamificationHandler(nil),
		handlers.NewUserHandler(nil),
		handlers.NewGoalHandler(nil),
		nil,
		"http://localhost:3000",
	)
	t.Cleanup(stop)
	return h
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/sessions/complete"},
		{http.MethodGet, "/sessions/weekly-stats"},
		{http.MethodPost, "/gamification/spin"},
		{http.MethodPost, "/gamification/buy"},
		{http.MethodGet, "/gamification/inventory"},
		{http.MethodGet, "/users/my-profile"},
		{http.MethodPost, "/users/update-plan"},
		{http.MethodGet, "/goals"},
		{http.MethodGet, "/auth/me"},
	}

	for _, rt := range routes {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", rt.method, rt.path)
	}
}

func TestPreflightAnsweredBeforeAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/sessions/complete", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketRouteOnlyWhenConfigured(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStopIsIdempotent(t *testing.T) {
	_, stop := New(
		middleware.NewJWTAuth("test-secret", time.Minute),
		handlers.NewAuthHandler(nil),
		handlers.NewStudySessionHandler(nil),
		handlers.NewGamificationHandler(nil),
		handlers.NewUserHandler(nil),
		handlers.NewGoalHandler(nil),
		nil,
		"*",
	)
	stop()
	assert.NotPanics(t, stop)
}
