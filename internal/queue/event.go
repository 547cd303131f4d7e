// Package queue defines message payloads exchanged over the message broker.
package queue

// ReadingRecordedEvent is published after a vitals reading is persisted.
// It carries enough information for downstream consumers to log, feed
// dashboards or run analytics without querying the primary database.
type ReadingRecordedEvent struct {
    ReadingID     uint64   `json:"reading_id"`
    UserID        uint64   `json:"user_id"`
    Temperature   *float64 `json:"temperature,omitempty"`
    HeartRate     *float64 `json:"heart_rate,omitempty"`
    BloodPressure *string  `json:"blood_pressure,omitempty"`
    SpO2          *float64 `json:"spo2,omitempty"`
    RecordedAt    string   `json:"recorded_at"`
}
