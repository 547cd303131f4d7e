package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/lifepulse/lifepulse-api/internal/utils" // access-token verification
)

// ContextUserID is the Echo context key under which JWTAuth stores the
// authenticated user's ID as a uint64.
const ContextUserID = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the resolved user ID into the request context.
// Every vitals route sits behind this middleware; there is no anonymous
// access path to readings, summaries or predictions. The provided
// secret must match the one used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer <jwt>". Anything else counts as
            // a missing credential, which is distinct from an invalid one.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Signature, algorithm, expiry and subject checks all live in
            // the token helper so they can be unit-tested without HTTP.
            uid, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            c.Set(ContextUserID, uid)
            return next(c)
        }
    }
}
