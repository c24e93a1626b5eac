package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"vividexpense-be/internal/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(svc *jwt.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	issuer := jwt.NewJWTService("secret", time.Hour, jwt.WithClock(func() time.Time { return issued }))
	token, err := issuer.GenerateToken("u1")
	require.NoError(t, err)

	forged, err := jwt.NewJWTService("other", time.Hour, jwt.WithClock(func() time.Time { return issued })).GenerateToken("u1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		now        time.Time
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid", issued.Add(time.Minute), "Bearer " + token, http.StatusOK, "u1"},
		{"lowercase scheme", issued.Add(time.Minute), "bearer " + token, http.StatusOK, "u1"},
		{"missing header", issued, "", http.StatusUnauthorized, "Authorization token required"},
		{"wrong scheme", issued, "Basic " + token, http.StatusUnauthorized, "Authorization token required"},
		{"empty token", issued, "Bearer ", http.StatusUnauthorized, "Authorization token required"},
		{"expired", issued.Add(time.Hour), "Bearer " + token, http.StatusUnauthorized, "Token expired"},
		{"bad signature", issued.Add(time.Minute), "Bearer " + forged, http.StatusUnauthorized, "Invalid token"},
		{"garbage", issued, "Bearer not.a.jwt", http.StatusUnauthorized, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			verifier := jwt.NewJWTService("secret", time.Hour, jwt.WithClock(func() time.Time { return now }))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protectedRouter(verifier).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Limit(0.001), 2)
	r := gin.New()
	r.GET("/", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, rate.Limit(1), 1)
	rl.now = func() time.Time { return now }

	rl.getVisitor("a")
	now = now.Add(visitorIdleTimeout + time.Second)
	rl.getVisitor("b")
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
