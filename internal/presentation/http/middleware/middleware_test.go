package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for AuthMiddleware
func asUser(user *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(ContextUser, user)
			c.Set(ContextUsername, user.Username)
			c.Set(ContextRole, user.Role)
		}
		c.Next()
	}
}

func serve(router *gin.Engine, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	admin := entity.FindUser("admin")
	staff := entity.FindUser("staff")

	newRouter := func(user *entity.User) *gin.Engine {
		r := gin.New()
		r.Use(asUser(user), rl.Middleware())
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	adminRouter := newRouter(admin)
	staffRouter := newRouter(staff)

	assert.Equal(t, http.StatusOK, serve(adminRouter, http.MethodGet, "/ping").Code)
	assert.Equal(t, http.StatusOK, serve(adminRouter, http.MethodGet, "/ping").Code)

	limited := serve(adminRouter, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// A different user has a separate bucket.
	assert.Equal(t, http.StatusOK, serve(staffRouter, http.MethodGet, "/ping").Code)

	assert.Len(t, rl.limiters, 2)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		CleanupInterval:   time.Hour,
		EntryTTL:          -time.Second,
	})
	defer rl.Stop()

	rl.getLimiter("ip:10.0.0.1")
	require.Len(t, rl.limiters, 1)

	rl.cleanup()
	assert.Empty(t, rl.limiters)
}

func TestRateLimiterStopEndsCleanupLoop(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())

	rl.Stop()
	rl.Stop()

	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop still running after Stop")
	}
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(0, 60))
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name string
		user *entity.User
		want int
	}{
		{"admin", entity.FindUser("admin"), http.StatusOK},
		{"staff", entity.FindUser("staff"), http.StatusForbidden},
		{"anonymous", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(asUser(tt.user))
			r.GET("/settings", RequireCapability(enum.CapabilitySettings), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.want, serve(r, http.MethodGet, "/settings").Code)
		})
	}
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	repo := repository.NewIdempotencyRepository(repository.NewMemoryStore())
	calls := 0

	r := gin.New()
	r.Use(asUser(entity.FindUser("staff")))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	first := serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// No key, no replay.
	serve(r, http.MethodPost, "/checkout")
	assert.Equal(t, 2, calls)
}

func TestIdempotencySkipsFailures(t *testing.T) {
	repo := repository.NewIdempotencyRepository(repository.NewMemoryStore())
	calls := 0

	r := gin.New()
	r.Use(asUser(entity.FindUser("staff")))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Cart is empty"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1").Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyRejectsRepeatWhileInFlight(t *testing.T) {
	repo := repository.NewIdempotencyRepository(repository.NewMemoryStore())
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	r := gin.New()
	r.Use(asUser(entity.FindUser("staff")))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
		}
		c.JSON(http.StatusCreated, gin.H{"invoice": "INV-1"})
	})

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		firstDone <- serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1")
	}()
	<-entered

	second := serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusConflict, second.Code)

	close(release)
	first := <-firstDone
	assert.Equal(t, http.StatusCreated, first.Code)

	third := serve(r, http.MethodPost, "/checkout", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, "true", third.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
