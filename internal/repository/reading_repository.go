package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lifepulse/lifepulse-api/internal/model"
)

// ReadingRepo persists vital-sign readings in the 'readings' table.
// RecordedAt is always assigned here at insert time, never taken from
// the caller; it is the only ordering key the query methods use.
type ReadingRepo struct{ DB *sql.DB }

func NewReadingRepo(db *sql.DB) *ReadingRepo { return &ReadingRepo{DB: db} }

const readingCols = "id, user_id, temperature, heart_rate, blood_pressure, spo2, humidity, air_quality, recorded_at"

// Insert stores one reading and fills in the generated ID and the
// server-assigned timestamp on the passed struct.
func (r *ReadingRepo) Insert(ctx context.Context, rd *model.Reading) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO readings
		   (user_id, temperature, heart_rate, blood_pressure, spo2, humidity, air_quality, recorded_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		rd.UserID, rd.Temperature, rd.HeartRate, rd.BloodPressure, rd.SpO2, rd.Humidity, rd.AirQuality, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rd.ID = uint64(id)
	rd.RecordedAt = now
	return nil
}

// Latest returns the user's most recent reading. sql.ErrNoRows means
// the user has no data yet, which callers treat as an empty result.
func (r *ReadingRepo) Latest(ctx context.Context, userID uint64) (model.Reading, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+readingCols+" FROM readings WHERE user_id=? ORDER BY recorded_at DESC, id DESC LIMIT 1",
		userID)
	var rd model.Reading
	err := row.Scan(&rd.ID, &rd.UserID, &rd.Temperature, &rd.HeartRate,
		&rd.BloodPressure, &rd.SpO2, &rd.Humidity, &rd.AirQuality, &rd.RecordedAt)
	return rd, err
}

// AllDesc returns the user's full reading history, newest first.
func (r *ReadingRepo) AllDesc(ctx context.Context, userID uint64) ([]model.Reading, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+readingCols+" FROM readings WHERE user_id=? ORDER BY recorded_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReadings(rows)
}

// Range returns the user's readings with from <= recorded_at <= to in
// ascending timestamp order, mirroring the timeline contract.
func (r *ReadingRepo) Range(ctx context.Context, userID uint64, from, to time.Time) ([]model.Reading, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+readingCols+" FROM readings WHERE user_id=? AND recorded_at BETWEEN ? AND ? ORDER BY recorded_at ASC, id ASC",
		userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReadings(rows)
}

func collectReadings(rows *sql.Rows) ([]model.Reading, error) {
	out := make([]model.Reading, 0)
	for rows.Next() {
		var rd model.Reading
		if err := rows.Scan(&rd.ID, &rd.UserID, &rd.Temperature, &rd.HeartRate,
			&rd.BloodPressure, &rd.SpO2, &rd.Humidity, &rd.AirQuality, &rd.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}
