package model

import "time"

// Reading is one vital-sign observation submitted by a device or client
// on behalf of a user, as stored in the `readings` table. Optional
// fields are pointers so the repository and the JSON layer can tell
// "not reported" apart from a genuine zero. RecordedAt is assigned by
// the server at insert time and is the sole ordering key for every
// time-windowed query; a Reading is never mutated after creation.
//
// Fields:
//  ID            – primary key identifier of the reading.
//  UserID        – owner of the reading; every reading belongs to exactly one user.
//  Temperature   – body temperature in degrees Celsius.
//  HeartRate     – heart rate in beats per minute.
//  BloodPressure – free-form pressure string, e.g. "120/80"; never averaged.
//  SpO2          – blood oxygen saturation as a percentage.
//  Humidity      – ambient relative humidity reported by the device.
//  AirQuality    – ambient air-quality index reported by the device.
//  RecordedAt    – server-assigned creation timestamp (UTC).
type Reading struct {
	ID            uint64    `json:"id"`             // readings.id
	UserID        uint64    `json:"user_id"`        // readings.user_id
	Temperature   *float64  `json:"temperature,omitempty"`    // readings.temperature
	HeartRate     *float64  `json:"heart_rate,omitempty"`     // readings.heart_rate
	BloodPressure *string   `json:"blood_pressure,omitempty"` // readings.blood_pressure
	SpO2          *float64  `json:"spo2,omitempty"`           // readings.spo2
	Humidity      *float64  `json:"humidity,omitempty"`       // readings.humidity
	AirQuality    *float64  `json:"air_quality,omitempty"`    // readings.air_quality
	RecordedAt    time.Time `json:"recorded_at"`    // readings.recorded_at
}
