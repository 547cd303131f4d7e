// Package analytics holds the pure computation layer of the vitals
// pipeline: threshold classification of single readings, weekly
// aggregation of reading windows, narrative summaries and BMI. Nothing
// in this package touches the network or the database, which keeps every
// rule unit-testable.
package analytics

// Status labels shared by the classifier and its callers.
const (
	StatusNormal = "Normal"
	StatusStable = "Stable"
)

// Prediction is the classifier output for one reading: a qualitative
// label per vital plus the combined overall label.
type Prediction struct {
	TemperatureStatus string `json:"temperature_status"`
	HeartRateStatus   string `json:"heart_rate_status"`
	Overall           string `json:"overall"`
}

// ClassifyTemperature maps a body temperature in °C to a status label.
// Bands are checked high-to-low with strict comparisons; boundary values
// fall through to the next band (38.5 itself is "Slightly High", 36.5
// itself is "Normal").
func ClassifyTemperature(celsius float64) string {
	switch {
	case celsius > 38.5:
		return "High Fever"
	case celsius > 37.5:
		return "Slightly High"
	case celsius < 35.5:
		return "Very Low"
	case celsius < 36.5:
		return "Slightly Low"
	default:
		return StatusNormal
	}
}

// ClassifyHeartRate maps a heart rate in bpm to a status label using the
// same strict-comparison, first-match-wins band order as temperature.
func ClassifyHeartRate(bpm float64) string {
	switch {
	case bpm > 110:
		return "High Heart Rate"
	case bpm > 90:
		return "Slightly High"
	case bpm < 50:
		return "Very Low Heart Rate"
	case bpm < 60:
		return "Slightly Low"
	default:
		return StatusNormal
	}
}

// Classify combines the per-vital bands into a Prediction. The overall
// label is "Stable" only when both vitals are normal; otherwise it is
// the comma-joined pair of statuses, e.g. "High Fever, High Heart Rate".
func Classify(temperature, heartRate float64) Prediction {
	t := ClassifyTemperature(temperature)
	h := ClassifyHeartRate(heartRate)
	overall := StatusStable
	if t != StatusNormal || h != StatusNormal {
		overall = t + ", " + h
	}
	return Prediction{
		TemperatureStatus: t,
		HeartRateStatus:   h,
		Overall:           overall,
	}
}
