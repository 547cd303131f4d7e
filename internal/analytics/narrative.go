package analytics

import (
	"fmt"

	"github.com/lifepulse/lifepulse-api/internal/model"
)

// InsufficientDataMessage is returned when a summary window holds no
// usable readings.
const InsufficientDataMessage = "Not enough data for AI summary."

// WindowMeans returns the mean temperature and heart rate over a window
// of readings. ok is false when either vital has no samples at all, in
// which case no sentence should be computed from the means.
func WindowMeans(readings []model.Reading) (temperature, heartRate float64, ok bool) {
	var temp, heart meanAcc
	for _, r := range readings {
		temp.add(r.Temperature)
		heart.add(r.HeartRate)
	}
	if temp.n == 0 || heart.n == 0 {
		return 0, 0, false
	}
	return temp.sum / float64(temp.n), heart.sum / float64(heart.n), true
}

// Narrative renders the one-sentence health summary served by the
// ai-summary endpoint when no external text generator is configured, or
// when the external call fails.
func Narrative(readings []model.Reading) string {
	temperature, heartRate, ok := WindowMeans(readings)
	if !ok {
		return InsufficientDataMessage
	}
	return fmt.Sprintf(
		"In the past month, your average temperature was %.1f°C and your heart rate averaged at %.0f bpm. You're doing well! Keep monitoring regularly.",
		temperature, heartRate)
}
