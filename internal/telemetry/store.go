// internal/telemetry/store.go
package telemetry

import (
	"context"
	"database/sql"
	"time"
)

// Schema for the telemetry history table. Call Store.Init() or apply
// manually.
const Schema = `
CREATE TABLE IF NOT EXISTS telemetry_samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at INTEGER NOT NULL,
	accel_x REAL,
	accel_y REAL,
	accel_z REAL,
	distance_cm REAL,
	motion INTEGER,
	latitude REAL,
	longitude REAL,
	geolat REAL,
	geolong REAL,
	pwm REAL,
	spray_left INTEGER,
	spray_right INTEGER
);
CREATE INDEX IF NOT EXISTS idx_telemetry_samples_at ON telemetry_samples(at);
`

// Store persists telemetry samples to a SQLite table.
// Missing fields are stored as NULL, never as zero.
type Store struct {
	db *sql.DB
}

// NewStore creates a store backed by the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the history table if it doesn't exist.
func (s *Store) Init() error {
	_, err := s.db.Exec(Schema)
	return err
}

// Append records one sample.
func (s *Store) Append(ctx context.Context, sample Sample) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO telemetry_samples (
			at, accel_x, accel_y, accel_z, distance_cm, motion,
			latitude, longitude, geolat, geolong, pwm,
			spray_left, spray_right
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sample.At.UnixMilli(),
		nullNum(sample.AccelX),
		nullNum(sample.AccelY),
		nullNum(sample.AccelZ),
		nullNum(sample.DistanceCM),
		nullBool(sample.Motion),
		nullNum(sample.Latitude),
		nullNum(sample.Longitude),
		nullNum(sample.GeoLat),
		nullNum(sample.GeoLong),
		nullNum(sample.PWM),
		nullBool(sample.SprayLeft),
		nullBool(sample.SprayRight),
	)
	return err
}

// Recent returns up to limit samples, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Sample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT at, accel_x, accel_y, accel_z, distance_cm, motion,
		       latitude, longitude, geolat, geolong, pwm,
		       spray_left, spray_right
		FROM telemetry_samples
		ORDER BY at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var at int64
		var ax, ay, az, dist, lat, lng, glat, glng, pwm sql.NullFloat64
		var motion, sprayL, sprayR sql.NullInt64

		if err := rows.Scan(
			&at, &ax, &ay, &az, &dist, &motion,
			&lat, &lng, &glat, &glng, &pwm,
			&sprayL, &sprayR,
		); err != nil {
			return nil, err
		}

		out = append(out, Sample{
			AccelX:     numPtr(ax),
			AccelY:     numPtr(ay),
			AccelZ:     numPtr(az),
			DistanceCM: numPtr(dist),
			Motion:     boolPtr(motion),
			Latitude:   numPtr(lat),
			Longitude:  numPtr(lng),
			GeoLat:     numPtr(glat),
			GeoLong:    numPtr(glng),
			PWM:        numPtr(pwm),
			SprayLeft:  boolPtr(sprayL),
			SprayRight: boolPtr(sprayR),
			At:         time.UnixMilli(at),
		})
	}
	return out, rows.Err()
}

func nullNum(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func numPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolPtr(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}
