package handler

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifepulse/lifepulse-api/internal/ai"
	"github.com/lifepulse/lifepulse-api/internal/analytics"
	"github.com/lifepulse/lifepulse-api/internal/model"
)

// TimelineHandler serves the windowed queries and everything derived
// from them: weekly aggregates, the narrative summary and the
// rule-based prediction.
type TimelineHandler struct {
	Readings ReadingStore
	AI       *ai.Client // optional; nil means local narrative only
}

func NewTimelineHandler(r ReadingStore, aiClient *ai.Client) *TimelineHandler {
	return &TimelineHandler{Readings: r, AI: aiClient}
}

// window resolves the query parameters into a [from, to] pair.
// Supported selectors: ?month=YYYY-MM (that month's first-to-last
// instant), ?days=N and ?months=N anchored to now. With no selector the
// default window is the last three months.
func window(c echo.Context) (from, to time.Time, err error) {
	now := time.Now().UTC()

	if m := c.QueryParam("month"); m != "" {
		start, perr := time.Parse("2006-01", m)
		if perr != nil {
			return from, to, fmt.Errorf("invalid month %q, want YYYY-MM", m)
		}
		return start, start.AddDate(0, 1, 0).Add(-time.Second), nil
	}
	if d := c.QueryParam("days"); d != "" {
		n, perr := strconv.Atoi(d)
		if perr != nil || n <= 0 {
			return from, to, fmt.Errorf("invalid days %q", d)
		}
		return now.AddDate(0, 0, -n), now, nil
	}
	if m := c.QueryParam("months"); m != "" {
		n, perr := strconv.Atoi(m)
		if perr != nil || n <= 0 {
			return from, to, fmt.Errorf("invalid months %q", m)
		}
		return now.AddDate(0, -n, 0), now, nil
	}
	return now.AddDate(0, -3, 0), now, nil
}

// Timeline returns the readings inside the requested window, ascending
// by timestamp.
func (h *TimelineHandler) Timeline(c echo.Context) error {
	from, to, err := window(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	records, err := h.Readings.Range(ctx, userID(c), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if records == nil {
		records = []model.Reading{}
	}
	return c.JSON(http.StatusOK, records)
}

// Summary returns weekly per-field averages over the default three-month
// window.
func (h *TimelineHandler) Summary(c echo.Context) error {
	now := time.Now().UTC()

	ctx, cancel := reqCtx(c)
	defer cancel()

	records, err := h.Readings.Range(ctx, userID(c), now.AddDate(0, -3, 0), now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, analytics.WeeklySummary(records))
}

// AISummary returns a narrative sentence over the last month of
// readings. When an external text-generation service is configured it
// produces the sentence from a constructed prompt; any failure there
// degrades to the locally rendered narrative rather than an error.
func (h *TimelineHandler) AISummary(c echo.Context) error {
	now := time.Now().UTC()

	ctx, cancel := reqCtx(c)
	defer cancel()

	records, err := h.Readings.Range(ctx, userID(c), now.AddDate(0, -1, 0), now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	text := analytics.Narrative(records)
	if temperature, heartRate, ok := analytics.WindowMeans(records); ok && h.AI != nil {
		prompt := fmt.Sprintf(
			"Write a short, encouraging health summary for a user whose average body temperature over the past month was %.1f°C and whose average heart rate was %.0f bpm.",
			temperature, heartRate)
		if generated, aiErr := h.AI.Summarize(c.Request().Context(), prompt); aiErr == nil {
			text = generated
		} else {
			log.Printf("ai-summary: external generation failed, serving local narrative: %v", aiErr)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"ai_summary": text})
}

// Predict classifies the user's latest reading into qualitative status
// labels. The latest reading is used rather than a windowed average so
// an acute spike is never hidden behind a week of normal values. With
// no readings the response is the "no data" sentinel, not an error.
func (h *TimelineHandler) Predict(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rd, err := h.Readings.Latest(ctx, userID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{"status": "no data"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if rd.Temperature == nil || rd.HeartRate == nil {
		// Ingest validation requires both, but readings written under a
		// different profile configuration may predate it.
		return c.JSON(http.StatusOK, echo.Map{"status": "no data"})
	}

	p := analytics.Classify(*rd.Temperature, *rd.HeartRate)
	return c.JSON(http.StatusOK, echo.Map{
		"temperature_status": p.TemperatureStatus,
		"heart_rate_status":  p.HeartRateStatus,
		"overall":            p.Overall,
		"based_on":           rd.ID,
		"recorded_at":        rd.RecordedAt,
	})
}
