package model

import "time"

// VitalsProfile is one immutable height/weight record with the BMI that
// was computed at write time. Repeated submissions append new rows;
// earlier rows are never recomputed or updated, so the table forms a
// body-metrics history for the user.
type VitalsProfile struct {
	ID         uint64    `json:"id"`          // user_vitals.id
	UserID     uint64    `json:"user_id"`     // user_vitals.user_id
	HeightCm   float64   `json:"height"`      // user_vitals.height_cm
	WeightKg   float64   `json:"weight"`      // user_vitals.weight_kg
	BMI        float64   `json:"bmi"`         // user_vitals.bmi (computed at write time)
	RecordedAt time.Time `json:"recorded_at"` // user_vitals.recorded_at
}
