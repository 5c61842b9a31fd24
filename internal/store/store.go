// Package store persists simulation history to Postgres: one append-only
// table per disaster scenario, one row per successful scoring request.
//
// Every operation is a single statement, so there is no transaction layer —
// each Record/Recent call is atomic and independently faulting. Writes are
// best-effort from the caller's point of view: the API layer logs a failed
// Record and still returns the computed result.
//
// Dependency rule: store imports risk only. It never imports api or config.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/p76267557-droid/kelompok-irpan/internal/risk"
)

// DefaultHistoryLimit is the row cap the history endpoint requests.
const DefaultHistoryLimit = 10

// Store holds the live connection pool. The pool must already be open and
// verified (ping) before calling New — cmd/api owns that.
type Store struct {
	pool *sql.DB
}

// New creates a Store from a live connection pool.
func New(pool *sql.DB) *Store {
	return &Store{pool: pool}
}

// Ping reports whether the database is reachable. Used by the gRPC health
// service to flip serving status.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.PingContext(ctx)
}

// nullRaw wraps a raw JSON body for the params snapshot column. A nil or
// empty body becomes SQL NULL rather than an empty jsonb document.
func nullRaw(raw json.RawMessage) pqtype.NullRawMessage {
	return pqtype.NullRawMessage{RawMessage: raw, Valid: len(raw) > 0}
}

// ─── EARTHQUAKE (simulasi_gempa) ──────────────────────────────────────────────

// EarthquakeRecord is one persisted gempa simulation. Field tags match the
// wire names the history endpoint has always served.
type EarthquakeRecord struct {
	ID          uuid.UUID       `json:"id"`
	Magnitude   float64         `json:"magnitude"`
	Depth       float64         `json:"depth"`
	Distance    float64         `json:"distance"`
	Score       float64         `json:"skor_risiko"`
	Category    string          `json:"kategori_risiko"`
	Explanation string          `json:"penjelasan"`
	Params      json.RawMessage `json:"params,omitempty"`
	CreatedAt   time.Time       `json:"timestamp"`
}

// RecordEarthquake appends one gempa row. params is the raw request body,
// stored as a jsonb snapshot alongside the typed columns.
func (s *Store) RecordEarthquake(ctx context.Context, in risk.EarthquakeInput, params json.RawMessage, res risk.Result) error {
	const q = `
		INSERT INTO simulasi_gempa
			(id, magnitude, depth, distance, skor_risiko, kategori_risiko, penjelasan, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.ExecContext(ctx, q,
		uuid.New(), in.Magnitude, in.Depth, in.Distance,
		res.Score, string(res.Category), res.Explanation, nullRaw(params),
	)
	if err != nil {
		return fmt.Errorf("store: record gempa: %w", err)
	}
	return nil
}

// RecentEarthquake returns up to limit gempa rows, newest first.
func (s *Store) RecentEarthquake(ctx context.Context, limit int) ([]EarthquakeRecord, error) {
	const q = `
		SELECT id, magnitude, depth, distance, skor_risiko, kategori_risiko, penjelasan, params, created_at
		FROM simulasi_gempa
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent gempa: %w", err)
	}
	defer rows.Close()

	var out []EarthquakeRecord
	for rows.Next() {
		var rec EarthquakeRecord
		var params pqtype.NullRawMessage
		if err := rows.Scan(
			&rec.ID, &rec.Magnitude, &rec.Depth, &rec.Distance,
			&rec.Score, &rec.Category, &rec.Explanation, &params, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan gempa row: %w", err)
		}
		if params.Valid {
			rec.Params = params.RawMessage
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate gempa rows: %w", err)
	}
	return out, nil
}

// ─── FLOOD (simulasi_banjir) ──────────────────────────────────────────────────

// FloodRecord is one persisted banjir simulation.
type FloodRecord struct {
	ID                uuid.UUID       `json:"id"`
	Rainfall          float64         `json:"rainfall"`
	Altitude          float64         `json:"altitude"`
	DrainageCondition string          `json:"drainage_condition"`
	Score             float64         `json:"skor_risiko"`
	Category          string          `json:"kategori_risiko"`
	Explanation       string          `json:"penjelasan"`
	Params            json.RawMessage `json:"params,omitempty"`
	CreatedAt         time.Time       `json:"timestamp"`
}

// RecordFlood appends one banjir row.
func (s *Store) RecordFlood(ctx context.Context, in risk.FloodInput, params json.RawMessage, res risk.Result) error {
	const q = `
		INSERT INTO simulasi_banjir
			(id, rainfall, altitude, drainage_condition, skor_risiko, kategori_risiko, penjelasan, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.ExecContext(ctx, q,
		uuid.New(), in.Rainfall, in.Altitude, in.DrainageCondition,
		res.Score, string(res.Category), res.Explanation, nullRaw(params),
	)
	if err != nil {
		return fmt.Errorf("store: record banjir: %w", err)
	}
	return nil
}

// RecentFlood returns up to limit banjir rows, newest first.
func (s *Store) RecentFlood(ctx context.Context, limit int) ([]FloodRecord, error) {
	const q = `
		SELECT id, rainfall, altitude, drainage_condition, skor_risiko, kategori_risiko, penjelasan, params, created_at
		FROM simulasi_banjir
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent banjir: %w", err)
	}
	defer rows.Close()

	var out []FloodRecord
	for rows.Next() {
		var rec FloodRecord
		var params pqtype.NullRawMessage
		if err := rows.Scan(
			&rec.ID, &rec.Rainfall, &rec.Altitude, &rec.DrainageCondition,
			&rec.Score, &rec.Category, &rec.Explanation, &params, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan banjir row: %w", err)
		}
		if params.Valid {
			rec.Params = params.RawMessage
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate banjir rows: %w", err)
	}
	return out, nil
}

// ─── FIRE (simulasi_kebakaran) ────────────────────────────────────────────────

// FireRecord is one persisted kebakaran simulation.
type FireRecord struct {
	ID          uuid.UUID       `json:"id"`
	Area        float64         `json:"area"`
	MaterialType string         `json:"material_type"`
	WindSpeed   float64         `json:"wind_speed"`
	Score       float64         `json:"skor_risiko"`
	Category    string          `json:"kategori_risiko"`
	Explanation string          `json:"penjelasan"`
	Params      json.RawMessage `json:"params,omitempty"`
	CreatedAt   time.Time       `json:"timestamp"`
}

// RecordFire appends one kebakaran row.
func (s *Store) RecordFire(ctx context.Context, in risk.FireInput, params json.RawMessage, res risk.Result) error {
	const q = `
		INSERT INTO simulasi_kebakaran
			(id, area, material_type, wind_speed, skor_risiko, kategori_risiko, penjelasan, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.ExecContext(ctx, q,
		uuid.New(), in.Area, in.MaterialType, in.WindSpeed,
		res.Score, string(res.Category), res.Explanation, nullRaw(params),
	)
	if err != nil {
		return fmt.Errorf("store: record kebakaran: %w", err)
	}
	return nil
}

// RecentFire returns up to limit kebakaran rows, newest first.
func (s *Store) RecentFire(ctx context.Context, limit int) ([]FireRecord, error) {
	const q = `
		SELECT id, area, material_type, wind_speed, skor_risiko, kategori_risiko, penjelasan, params, created_at
		FROM simulasi_kebakaran
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent kebakaran: %w", err)
	}
	defer rows.Close()

	var out []FireRecord
	for rows.Next() {
		var rec FireRecord
		var params pqtype.NullRawMessage
		if err := rows.Scan(
			&rec.ID, &rec.Area, &rec.MaterialType, &rec.WindSpeed,
			&rec.Score, &rec.Category, &rec.Explanation, &params, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan kebakaran row: %w", err)
		}
		if params.Valid {
			rec.Params = params.RawMessage
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate kebakaran rows: %w", err)
	}
	return out, nil
}
