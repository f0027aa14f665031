package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyClaimTTL bounds how long an unfinished request holds its key
	IdempotencyClaimTTL = time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *logrus.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key the same user already sent. Requests without the header
// pass through. The key is claimed before the handler runs, so a repeat that
// arrives while the first request is in flight gets 409. Only successful
// responses are stored, so a rejected checkout can be retried with the same
// key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		username := c.GetString(ContextUsername)
		if username == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()
		claimedAt := time.Now()

		existing, err := config.Repo.Reserve(ctx, &entity.IdempotencyKey{
			Key:       idempotencyKey,
			Username:  username,
			Endpoint:  endpoint,
			CreatedAt: claimedAt,
			ExpiresAt: claimedAt.Add(IdempotencyClaimTTL),
		})
		if err != nil {
			c.JSON(500, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			c.Abort()
			return
		}

		if existing != nil {
			if existing.IsPending() {
				response.Error(c, apperror.NewConflictError("A request with this Idempotency-Key is still in progress"))
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			if err := config.Repo.Release(ctx, idempotencyKey, username); err != nil && config.Log != nil {
				config.Log.WithError(err).WithField("key", idempotencyKey).Warn("failed to release idempotency key")
			}
			return
		}

		now := time.Now()
		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Username:     username,
			Endpoint:     endpoint,
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(IdempotencyKeyTTL),
		}

		if err := config.Repo.Create(ctx, ikey); err != nil && config.Log != nil {
			config.Log.WithError(err).WithField("key", idempotencyKey).Warn("failed to store idempotency key")
		}
	}
}
