package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/lifepulse/lifepulse-api/internal/model"
)

// WeekSummary holds the per-field means for one ISO week. A field that
// was never reported inside the week stays nil and is omitted from the
// JSON output instead of being averaged over a zero-length set.
type WeekSummary struct {
	WeekStart   string   `json:"week_start"` // Monday of the ISO week, YYYY-MM-DD
	Temperature *float64 `json:"temperature,omitempty"`
	HeartRate   *float64 `json:"heart_rate,omitempty"`
	SpO2        *float64 `json:"spo2,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	AirQuality  *float64 `json:"air_quality,omitempty"`
}

// WeekStart returns midnight UTC on the Monday of the ISO week
// containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// meanAcc accumulates optional samples for one field of one bucket.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v *float64) {
	if v != nil {
		a.sum += *v
		a.n++
	}
}

// mean returns the rounded arithmetic mean, or nil when nothing was
// accumulated. The n==0 guard is what keeps empty buckets from dividing
// by zero.
func (a *meanAcc) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := round2(a.sum / float64(a.n))
	return &m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeeklySummary groups readings into ISO-week buckets and computes the
// arithmetic mean of each numeric field per bucket, rounded to two
// decimal places. Buckets are returned in ascending week order so the
// output is deterministic regardless of input order. Empty input yields
// an empty slice.
func WeeklySummary(readings []model.Reading) []WeekSummary {
	type weekAcc struct {
		temperature meanAcc
		heartRate   meanAcc
		spo2        meanAcc
		humidity    meanAcc
		airQuality  meanAcc
	}

	byWeek := make(map[string]*weekAcc)
	for _, r := range readings {
		key := WeekStart(r.RecordedAt).Format("2006-01-02")
		w := byWeek[key]
		if w == nil {
			w = &weekAcc{}
			byWeek[key] = w
		}
		w.temperature.add(r.Temperature)
		w.heartRate.add(r.HeartRate)
		w.spo2.add(r.SpO2)
		w.humidity.add(r.Humidity)
		w.airQuality.add(r.AirQuality)
	}

	keys := make([]string, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]WeekSummary, 0, len(keys))
	for _, k := range keys {
		w := byWeek[k]
		out = append(out, WeekSummary{
			WeekStart:   k,
			Temperature: w.temperature.mean(),
			HeartRate:   w.heartRate.mean(),
			SpO2:        w.spo2.mean(),
			Humidity:    w.humidity.mean(),
			AirQuality:  w.airQuality.mean(),
		})
	}
	return out
}
