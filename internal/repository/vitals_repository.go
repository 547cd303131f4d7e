package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lifepulse/lifepulse-api/internal/model"
)

// VitalsRepo stores height/weight/BMI records in the 'user_vitals'
// table. The table is append-only: each submission is a new row and
// earlier rows keep the BMI computed at their own write time.
type VitalsRepo struct{ DB *sql.DB }

func NewVitalsRepo(db *sql.DB) *VitalsRepo { return &VitalsRepo{DB: db} }

// Insert appends one vitals record, filling in the generated ID and the
// server-assigned timestamp.
func (r *VitalsRepo) Insert(ctx context.Context, v *model.VitalsProfile) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_vitals (user_id, height_cm, weight_kg, bmi, recorded_at) VALUES (?,?,?,?,?)",
		v.UserID, v.HeightCm, v.WeightKg, v.BMI, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	v.RecordedAt = now
	return nil
}

// History returns the user's vitals records, newest first.
func (r *VitalsRepo) History(ctx context.Context, userID uint64) ([]model.VitalsProfile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, height_cm, weight_kg, bmi, recorded_at FROM user_vitals WHERE user_id=? ORDER BY recorded_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.VitalsProfile, 0)
	for rows.Next() {
		var v model.VitalsProfile
		if err := rows.Scan(&v.ID, &v.UserID, &v.HeightCm, &v.WeightKg, &v.BMI, &v.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
