package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifepulse/lifepulse-api/internal/config"
	"github.com/lifepulse/lifepulse-api/internal/model"
	"github.com/lifepulse/lifepulse-api/internal/queue"
)

// PublishFunc sends a domain event to the broker. The handler treats it
// as fire-and-forget: a broker outage must never fail an ingest.
type PublishFunc func(ctx context.Context, event queue.ReadingRecordedEvent) error

// ReadingHandler serves ingestion and the plain history queries.
type ReadingHandler struct {
	Cfg      config.Config
	Readings ReadingStore
	Publish  PublishFunc // optional; nil disables event publishing
}

func NewReadingHandler(cfg config.Config, r ReadingStore, publish PublishFunc) *ReadingHandler {
	return &ReadingHandler{Cfg: cfg, Readings: r, Publish: publish}
}

type readingReq struct {
	Temperature   *float64 `json:"temperature"`
	HeartRate     *float64 `json:"heart_rate"`
	BloodPressure *string  `json:"blood_pressure"`
	SpO2          *float64 `json:"spo2"`
	Humidity      *float64 `json:"humidity"`
	AirQuality    *float64 `json:"air_quality"`
	// Any client-sent timestamp is deliberately not bound: recorded_at
	// is always server-assigned so history cannot be backdated.
}

// missingFields validates the payload against the deployment profile:
// temperature and heart rate are always required, plus spo2 or
// blood_pressure depending on which device fleet this deployment ships.
func (h *ReadingHandler) missingFields(req readingReq) []string {
	var missing []string
	if req.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if req.HeartRate == nil {
		missing = append(missing, "heart_rate")
	}
	switch h.Cfg.VitalsProfile {
	case config.ProfileBloodPressure:
		if req.BloodPressure == nil || strings.TrimSpace(*req.BloodPressure) == "" {
			missing = append(missing, "blood_pressure")
		}
	default: // config.ProfileSpO2
		if req.SpO2 == nil {
			missing = append(missing, "spo2")
		}
	}
	return missing
}

// Create validates and persists one reading for the authenticated user,
// then publishes a reading.recorded event in the background.
func (h *ReadingHandler) Create(c echo.Context) error {
	var req readingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := h.missingFields(req); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "missing fields",
			"fields": missing,
		})
	}

	rd := model.Reading{
		UserID:        userID(c),
		Temperature:   req.Temperature,
		HeartRate:     req.HeartRate,
		BloodPressure: req.BloodPressure,
		SpO2:          req.SpO2,
		Humidity:      req.Humidity,
		AirQuality:    req.AirQuality,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Readings.Insert(ctx, &rd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	if h.Publish != nil {
		ev := queue.ReadingRecordedEvent{
			ReadingID:     rd.ID,
			UserID:        rd.UserID,
			Temperature:   rd.Temperature,
			HeartRate:     rd.HeartRate,
			BloodPressure: rd.BloodPressure,
			SpO2:          rd.SpO2,
			RecordedAt:    rd.RecordedAt.Format(time.RFC3339),
		}
		// Detached from the request: the response must not wait on the
		// broker and a publish failure is already logged downstream.
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, rd)
}

// Latest returns the user's most recent reading, or an empty object
// when no data exists yet. Absence of data is not an error.
func (h *ReadingHandler) Latest(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rd, err := h.Readings.Latest(ctx, userID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, rd)
}

// All returns the user's full reading history, newest first.
func (h *ReadingHandler) All(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	records, err := h.Readings.AllDesc(ctx, userID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if records == nil {
		records = []model.Reading{}
	}
	return c.JSON(http.StatusOK, records)
}
