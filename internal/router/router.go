package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/lifepulse/lifepulse-api/internal/handler"    // import the handlers that implement business logic
	"github.com/lifepulse/lifepulse-api/internal/middleware" // import middleware for JWT authentication, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only the liveness
// check used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Status)
}

// RegisterAuth registers all authentication-related routes. Register,
// login, refresh and logout live under /v1/auth and do not require an
// existing session; /v1/me requires a valid access token and exists so
// clients can check a stored token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a new pair is returned.
	g.POST("/refresh", a.Refresh)
	// Logout revokes the single session identified by the refresh token
	// in the body.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterVitals registers every vitals endpoint under /v1/health. All
// of them require a bearer token; there is no anonymous path to
// readings. The rate limiter and the per-user response cache are
// applied after JWTAuth so both can key on the authenticated user. The
// cache middleware only ever acts on GET requests, so ingestion and
// vitals submissions pass through it untouched.
func RegisterVitals(e *echo.Echo, r *handler.ReadingHandler, t *handler.TimelineHandler, v *handler.VitalsHandler, jwtSecret string, cache, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/health")
	g.Use(middleware.JWTAuth(jwtSecret))
	if rate != nil {
		g.Use(rate)
	}
	if cache != nil {
		g.Use(cache)
	}

	// Ingestion and plain history.
	g.POST("", r.Create)
	g.GET("/latest", r.Latest)
	g.GET("/all", r.All)

	// Windowed queries and everything derived from them.
	g.GET("/timeline", t.Timeline)
	g.GET("/timeline/summary", t.Summary)
	g.GET("/timeline/ai-summary", t.AISummary)
	g.GET("/predict", t.Predict)

	// Body metrics / BMI.
	g.POST("/vitals", v.Record)
	g.GET("/vitals", v.History)
}
