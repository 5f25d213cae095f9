package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth() *service.AuthService {
	return service.NewAuthService(nil, "middleware-secret", time.Hour)
}

func token(t *testing.T, auth *service.AuthService, username string, isAdmin bool) string {
	t.Helper()
	signed, apiErr := auth.IssueToken(model.User{Username: username, IsAdmin: isAdmin})
	require.Nil(t, apiErr)
	return signed
}

func serve(engine *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestPredicates(t *testing.T) {
	auth := newAuth()
	engine := gin.New()
	engine.Use(Authenticate(auth))
	engine.GET("/any", EnsureLoggedIn(), ok)
	engine.GET("/admin", EnsureAdmin(), ok)
	engine.GET("/users/:username", EnsureCorrectUserOrAdmin(), ok)
	engine.GET("/edge/:username/:receiver", EnsureParticipantOrAdmin("username", "receiver"), ok)

	u1 := token(t, auth, "u1", false)
	admin := token(t, auth, "root", true)

	cases := []struct {
		name   string
		path   string
		bearer string
		want   int
	}{
		{"anonymous logged in route", "/any", "", http.StatusUnauthorized},
		{"user logged in route", "/any", u1, http.StatusOK},
		{"user admin route", "/admin", u1, http.StatusForbidden},
		{"admin admin route", "/admin", admin, http.StatusOK},
		{"own user", "/users/u1", u1, http.StatusOK},
		{"other user", "/users/u2", u1, http.StatusForbidden},
		{"admin on other user", "/users/u2", admin, http.StatusOK},
		{"anonymous user route", "/users/u1", "", http.StatusUnauthorized},
		{"edge sender", "/edge/u1/u2", u1, http.StatusOK},
		{"edge receiver", "/edge/u2/u1", u1, http.StatusOK},
		{"edge outsider", "/edge/u2/u3", u1, http.StatusForbidden},
		{"garbage token", "/any", "not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, serve(engine, http.MethodGet, tc.path, tc.bearer).Code)
		})
	}
}

func TestAuthenticateRejectsNonBearerScheme(t *testing.T) {
	engine := gin.New()
	engine.Use(Authenticate(newAuth()))
	engine.GET("/", ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dTE6cGFzcw==")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization format")
}

func TestCORSPreflight(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"http://allowed.test"}))
	engine.PATCH("/x", ok)

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://allowed.test")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	req = httptest.NewRequest(http.MethodPatch, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("1.1.1.1"))
	assert.True(t, limiter.allow("1.1.1.1"))
	assert.False(t, limiter.allow("1.1.1.1"))
	assert.True(t, limiter.allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, limiter.allow("1.1.1.1"))

	now = now.Add(visitorIdleTTL + time.Second)
	limiter.Cleanup()
	assert.Empty(t, limiter.visitors)
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	engine := gin.New()
	engine.Use(NewRateLimiter(0.001, 1).Middleware())
	engine.GET("/", ok)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/", "").Code)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	metrics := NewMetrics()
	engine := gin.New()
	engine.Use(metrics.Middleware())
	engine.GET("/lists/:listId", ok)
	engine.GET("/metrics", metrics.Handler())

	serve(engine, http.MethodGet, "/lists/1", "")
	serve(engine, http.MethodGet, "/lists/2", "")

	body := serve(engine, http.MethodGet, "/metrics", "").Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/lists/:listId",status="200"} 2`), body)
}
