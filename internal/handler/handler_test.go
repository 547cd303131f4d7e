package handler

// Shared test fixtures: in-memory stores standing in for the MySQL
// repositories, and a small harness for invoking handlers through Echo.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifepulse/lifepulse-api/internal/middleware"
	"github.com/lifepulse/lifepulse-api/internal/model"
)

type fakeReadingStore struct {
	readings []model.Reading
	nextID   uint64
	insertAt time.Time // timestamp assigned to the next insert; zero means "now"
	err      error     // forced error for storage-fault paths
}

func (f *fakeReadingStore) stamp() time.Time {
	if !f.insertAt.IsZero() {
		return f.insertAt
	}
	return time.Now().UTC().Truncate(time.Second)
}

func (f *fakeReadingStore) Insert(_ context.Context, r *model.Reading) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	r.ID = f.nextID
	r.RecordedAt = f.stamp()
	f.readings = append(f.readings, *r)
	return nil
}

func (f *fakeReadingStore) Latest(_ context.Context, userID uint64) (model.Reading, error) {
	if f.err != nil {
		return model.Reading{}, f.err
	}
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].UserID == userID {
			return f.readings[i], nil
		}
	}
	return model.Reading{}, sql.ErrNoRows
}

func (f *fakeReadingStore) AllDesc(_ context.Context, userID uint64) ([]model.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Reading
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].UserID == userID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

func (f *fakeReadingStore) Range(_ context.Context, userID uint64, from, to time.Time) ([]model.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Reading, 0)
	for _, r := range f.readings {
		if r.UserID == userID && !r.RecordedAt.Before(from) && !r.RecordedAt.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeVitalsStore struct {
	records []model.VitalsProfile
	nextID  uint64
	err     error
}

func (f *fakeVitalsStore) Insert(_ context.Context, v *model.VitalsProfile) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	v.ID = f.nextID
	v.RecordedAt = time.Now().UTC().Truncate(time.Second)
	f.records = append(f.records, *v)
	return nil
}

func (f *fakeVitalsStore) History(_ context.Context, userID uint64) ([]model.VitalsProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.VitalsProfile
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// invoke runs a handler with an authenticated user already bound into
// the context, the way JWTAuth would have left it.
func invoke(t *testing.T, h echo.HandlerFunc, method, target, body string, uid uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, uid)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func fptr(v float64) *float64 { return &v }

// errForced exercises the storage-fault paths.
var errForced = errors.New("forced storage failure")

func jsonUnmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }
