package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/lifepulse/lifepulse-api/internal/config"
)

// captureWriter captures the response body and status while forwarding
// everything to the client, so a successful response can be stored
// after the handler has run.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.size < cw.limit {
        if remain := cw.limit - cw.size; int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// cacheKey builds the Redis key for one request. Every response under
// /v1/health is scoped to the authenticated user, so the key lives
// under a per-user segment; two users hitting the same route must never
// share an entry, and a write can drop all of one user's entries by
// prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    uid, _ := c.Get(ContextUserID).(uint64)
    r := c.Request()
    sum := sha1.Sum([]byte(c.Path() + "?" + r.URL.RawQuery))
    return fmt.Sprintf("%s:%x", userKeyPrefix(cfg, uid), sum[:])
}

// userKeyPrefix namespaces one user's cache entries.
func userKeyPrefix(cfg config.CacheConfig, uid uint64) string {
    return fmt.Sprintf("%s:u%d", cfg.Prefix, uid)
}

// dropUserEntries removes every cached response for one user, so a read
// right after an ingest never serves the pre-ingest body. Scan errors
// are ignored; anything left over ages out with the TTL.
func dropUserEntries(ctx context.Context, rdb *redis.Client, prefix string) {
    iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
    for iter.Next(ctx) {
        _ = rdb.Del(ctx, iter.Val()).Err()
    }
    _ = iter.Err()
}

// NewRedisCache returns a middleware that serves recent GET responses
// for the vitals routes from Redis. Only 200 JSON responses are stored;
// everything else passes through untouched. A successful write (ingest,
// vitals record) drops that user's cached entries. Must run after JWTAuth so
// the user ID is available for the key. When disabled or without a
// Redis client the middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Writes invalidate the writer's cached reads.
            if c.Request().Method != http.MethodGet {
                err := next(c)
                if err == nil && c.Response().Status < http.StatusBadRequest {
                    uid, _ := c.Get(ContextUserID).(uint64)
                    dropUserEntries(c.Request().Context(), rdb, userKeyPrefix(cfg, uid))
                }
                return err
            }
            key := cacheKey(cfg, c)

            // Serve a hit directly. Redis errors fall through to the
            // handler; a broken cache must not break the request.
            if body, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                return c.JSONBlob(http.StatusOK, body)
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw

            if err := next(c); err != nil {
                return err
            }

            // Store only complete successful bodies; oversized responses
            // were truncated by the writer and are skipped.
            if cw.status == http.StatusOK && cw.size <= maxBody {
                _ = rdb.Set(c.Request().Context(), key, cw.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}
