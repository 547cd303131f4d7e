package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifepulse/lifepulse-api/internal/middleware"
	"github.com/lifepulse/lifepulse-api/internal/model"
)

// Store interfaces consumed by the handlers. The repository types
// satisfy them directly; handlers depend on the interfaces so tests can
// substitute in-memory fakes without a database.

// UserStore persists application users.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore persists and validates hashed refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// ReadingStore persists and queries vital-sign readings for one user.
type ReadingStore interface {
	Insert(ctx context.Context, r *model.Reading) error
	Latest(ctx context.Context, userID uint64) (model.Reading, error)
	AllDesc(ctx context.Context, userID uint64) ([]model.Reading, error)
	Range(ctx context.Context, userID uint64, from, to time.Time) ([]model.Reading, error)
}

// VitalsStore persists the append-only height/weight/BMI history.
type VitalsStore interface {
	Insert(ctx context.Context, v *model.VitalsProfile) error
	History(ctx context.Context, userID uint64) ([]model.VitalsProfile, error)
}

// userID pulls the authenticated user's ID out of the request context,
// where the JWT middleware stored it.
func userID(c echo.Context) uint64 {
	uid, _ := c.Get(middleware.ContextUserID).(uint64)
	return uid
}

// reqCtx bounds a store call to five seconds so a slow database cannot
// hold the request forever.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
