package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderXCache = "X-Cache"

	// upper bound for a single redis round trip
	storeTimeout = 500 * time.Millisecond
)

// ---- Data types ----
type cachedResponse struct {
	Code        int       `json:"code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// ResponseCache replays the stored response of an identical earlier POST
// (same route, byte-identical body) for ttl. Only 2xx responses are stored.
// Redis failures degrade to an uncached request. Clients can skip the
// cache with "Cache-Control: no-cache".
func ResponseCache(rdb redis.Cmdable, ttl time.Duration, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}
			if strings.Contains(strings.ToLower(req.Header.Get("Cache-Control")), "no-cache") {
				return next(c)
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)
			key := buildKey(req.Method, c.Path(), bhash)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			cur, found, err := loadEntry(ctx, rdb, key)
			cancel()
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("response cache read failed")
			}
			if found && cur.BodySHA256 == bhash {
				c.Response().Header().Set(HeaderXCache, "HIT")
				return c.Blob(cur.Code, cur.ContentType, cur.Body)
			}

			c.Response().Header().Set(HeaderXCache, "MISS")
			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}
			if rec.code < 200 || rec.code >= 300 {
				return nil
			}

			entry := cachedResponse{
				Code:        rec.code,
				ContentType: rec.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				CreatedAt:   nowUTC(),
			}
			sctx, scancel := context.WithTimeout(context.Background(), storeTimeout)
			defer scancel()
			if err := saveEntry(sctx, rdb, key, entry, ttl); err != nil {
				log.WithError(err).WithField("key", key).Warn("response cache write failed")
			}
			return nil
		}
	}
}
