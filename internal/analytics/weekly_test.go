package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifepulse/lifepulse-api/internal/model"
)

func f(v float64) *float64 { return &v }

func reading(ts time.Time, temp, hr *float64) model.Reading {
	return model.Reading{Temperature: temp, HeartRate: hr, RecordedAt: ts}
}

func TestWeekStart(t *testing.T) {
	// 2026-08-19 is a Wednesday; its ISO week starts Monday 2026-08-17.
	wed := time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-17", WeekStart(wed).Format("2006-01-02"))

	// Monday maps to itself.
	mon := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-17", WeekStart(mon).Format("2006-01-02"))

	// Sunday belongs to the preceding Monday's week, not the next one.
	sun := time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-08-17", WeekStart(sun).Format("2006-01-02"))
}

func TestWeeklySummaryEmpty(t *testing.T) {
	out := WeeklySummary(nil)
	require.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestWeeklySummaryBucketsAndMeans(t *testing.T) {
	week1 := time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC)  // Monday
	week2 := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)  // next Tuesday
	readings := []model.Reading{
		// Deliberately out of order: the second week first.
		reading(week2, f(38.0), f(90)),
		reading(week1, f(36.5), f(70)),
		reading(week1.Add(24*time.Hour), f(37.0), f(80)),
	}

	out := WeeklySummary(readings)
	require.Len(t, out, 2)

	// Ascending week order regardless of input order.
	assert.Equal(t, "2026-08-17", out[0].WeekStart)
	assert.Equal(t, "2026-08-24", out[1].WeekStart)

	require.NotNil(t, out[0].Temperature)
	assert.Equal(t, 36.75, *out[0].Temperature)
	require.NotNil(t, out[0].HeartRate)
	assert.Equal(t, 75.0, *out[0].HeartRate)

	require.NotNil(t, out[1].Temperature)
	assert.Equal(t, 38.0, *out[1].Temperature)
}

func TestWeeklySummaryRounding(t *testing.T) {
	ts := time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC)
	readings := []model.Reading{
		reading(ts, f(36.1), f(70)),
		reading(ts, f(36.2), f(71)),
		reading(ts, f(36.2), f(71)),
	}

	out := WeeklySummary(readings)
	require.Len(t, out, 1)
	// 108.5/3 = 36.1666... rounds to 36.17.
	assert.Equal(t, 36.17, *out[0].Temperature)
	// 212/3 = 70.666... rounds to 70.67.
	assert.Equal(t, 70.67, *out[0].HeartRate)
}

func TestWeeklySummaryOmitsUnreportedFields(t *testing.T) {
	ts := time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC)
	readings := []model.Reading{
		{Temperature: f(36.5), RecordedAt: ts}, // no heart rate, no spo2
		{Temperature: f(37.5), SpO2: f(98), RecordedAt: ts},
	}

	out := WeeklySummary(readings)
	require.Len(t, out, 1)

	require.NotNil(t, out[0].Temperature)
	assert.Equal(t, 37.0, *out[0].Temperature)

	// spo2 averages only over the single sample that carried it.
	require.NotNil(t, out[0].SpO2)
	assert.Equal(t, 98.0, *out[0].SpO2)

	// Fields with zero samples stay nil instead of averaging to zero.
	assert.Nil(t, out[0].HeartRate)
	assert.Nil(t, out[0].Humidity)
	assert.Nil(t, out[0].AirQuality)
}

func TestNarrative(t *testing.T) {
	assert.Equal(t, InsufficientDataMessage, Narrative(nil))

	ts := time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC)
	readings := []model.Reading{
		reading(ts, f(36.5), f(70)),
		reading(ts, f(36.7), f(74)),
	}
	got := Narrative(readings)
	assert.Contains(t, got, "36.6°C")
	assert.Contains(t, got, "72 bpm")
}

func TestWindowMeansRequiresBothVitals(t *testing.T) {
	ts := time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC)
	// Temperature present but heart rate never reported.
	readings := []model.Reading{{Temperature: f(36.5), RecordedAt: ts}}

	_, _, ok := WindowMeans(readings)
	assert.False(t, ok)
}
