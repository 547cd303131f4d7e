package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lifepulse/lifepulse-api/internal/config"
	"github.com/lifepulse/lifepulse-api/internal/model"
	"github.com/lifepulse/lifepulse-api/internal/repository"
	"github.com/lifepulse/lifepulse-api/internal/utils"
)

type fakeUserStore struct {
	users  map[string]model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, email, password string, cost int) (uint64, error) {
	if _, ok := f.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.users[email] = model.User{ID: f.nextID, Email: email, PasswordHash: hash, IsActive: true}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type refreshRow struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type fakeTokenStore struct {
	rows map[string]*refreshRow
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{rows: map[string]*refreshRow{}}
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.rows[tokenHash] = &refreshRow{userID: userID, exp: exp}
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	r, ok := f.rows[tokenHash]
	if !ok || r.revoked || !time.Now().UTC().Before(r.exp) {
		return 0, sql.ErrNoRows
	}
	return r.userID, nil
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	if r, ok := f.rows[tokenHash]; ok {
		r.revoked = true
	}
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	for _, r := range f.rows {
		if r.userID == userID {
			r.revoked = true
		}
	}
	return nil
}

// bcrypt.MinCost keeps the credential tests fast.
func testAuthHandler() *AuthHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, newFakeUserStore(), newFakeTokenStore())
}

func register(t *testing.T, h *AuthHandler, email, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := invoke(t, h.Register, http.MethodPost, "/v1/auth/register", body, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, h *AuthHandler, email, password string) map[string]any {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := invoke(t, h.Login, http.MethodPost, "/v1/auth/login", body, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	return decodeMap(t, rec)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := testAuthHandler()
	register(t, h, "ada@example.com", "pw123456")

	rec := invoke(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"ada@example.com","password":"other"}`, 0)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for duplicate email", rec.Code)
	}
	if out := decodeMap(t, rec); out["error"] == "" {
		t.Error("conflict response missing error message")
	}
}

func TestRegisterValidation(t *testing.T) {
	h := testAuthHandler()
	for _, body := range []string{
		`{}`,
		`{"email":"ada@example.com"}`,
		`{"password":"pw123456"}`,
	} {
		rec := invoke(t, h.Register, http.MethodPost, "/v1/auth/register", body, 0)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h := testAuthHandler()
	register(t, h, "ada@example.com", "pw123456")

	// Unknown account and wrong password must be indistinguishable.
	for _, body := range []string{
		`{"email":"nobody@example.com","password":"pw123456"}`,
		`{"email":"ada@example.com","password":"wrong"}`,
	} {
		rec := invoke(t, h.Login, http.MethodPost, "/v1/auth/login", body, 0)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("body %s: status = %d, want 401", body, rec.Code)
		}
		if out := decodeMap(t, rec); out["error"] != "invalid credentials" {
			t.Errorf("body %s: error = %v, want the uniform message", body, out["error"])
		}
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	h := testAuthHandler()
	register(t, h, "ada@example.com", "pw123456")

	out := login(t, h, "ada@example.com", "pw123456")
	token, _ := out["token"].(string)
	uid, err := utils.ParseAccessToken(h.Cfg.JWTSecret, token)
	if err != nil {
		t.Fatalf("issued access token does not verify: %v", err)
	}
	if uid != 1 {
		t.Errorf("token subject = %d, want 1", uid)
	}
	if refresh, _ := out["refresh_token"].(string); refresh == "" {
		t.Error("login response missing refresh_token")
	}
}

func TestRefreshRotation(t *testing.T) {
	h := testAuthHandler()
	register(t, h, "ada@example.com", "pw123456")
	out := login(t, h, "ada@example.com", "pw123456")
	first, _ := out["refresh_token"].(string)

	// First use: accepted, and a different token comes back.
	body := fmt.Sprintf(`{"refresh_token":%q}`, first)
	rec := invoke(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", body, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	rotated := decodeMap(t, rec)
	if rotated["refresh_token"] == first {
		t.Fatal("rotation returned the same refresh token")
	}

	// Second use of the consumed token: rejected.
	rec = invoke(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", body, 0)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh token: status = %d, want 401", rec.Code)
	}

	// The replacement still works.
	body = fmt.Sprintf(`{"refresh_token":%q}`, rotated["refresh_token"])
	rec = invoke(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", body, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("rotated token rejected: status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	h := testAuthHandler()
	register(t, h, "ada@example.com", "pw123456")
	out := login(t, h, "ada@example.com", "pw123456")
	refresh, _ := out["refresh_token"].(string)

	body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
	rec := invoke(t, h.Logout, http.MethodPost, "/v1/auth/logout", body, 0)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, want 204", rec.Code)
	}

	rec = invoke(t, h.Refresh, http.MethodPost, "/v1/auth/refresh", body, 0)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: status = %d, want 401", rec.Code)
	}
}
