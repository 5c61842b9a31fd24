package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/p76267557-droid/kelompok-irpan/internal/risk"
)

// ─── POST /api/calculate/:disasterType ───────────────────────────────────────

// Documented parameter defaults, applied field by field when the body omits
// a parameter.
const (
	defaultMagnitude = 5.0
	defaultDepth     = 10.0
	defaultDistance  = 50.0

	defaultRainfall = 50.0
	defaultAltitude = 50.0
	defaultDrainage = "sedang"

	defaultArea      = 100.0
	defaultMaterial  = "sedang"
	defaultWindSpeed = 10.0
)

// msgInvalidDisasterType is the client-error message for an unknown
// {disasterType} segment, on both endpoints.
const msgInvalidDisasterType = "Jenis bencana tidak valid"

// handleCalculate scores one simulation request. The disaster type is
// validated before the body is parsed, so an unknown type never reaches the
// scoring or persistence path. Body parsing and parameter coercion failures
// are internal errors (500 envelope carrying the message), matching the
// documented taxonomy — they are not client errors.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	disasterType := chi.URLParam(r, "disasterType")
	switch disasterType {
	case disasterEarthquake, disasterFlood, disasterFire:
	default:
		respondMessage(w, http.StatusBadRequest, msgInvalidDisasterType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20)) // 1 MB max
	if err != nil {
		s.respondServerErr(w, r, fmt.Errorf("read body: %w", err))
		return
	}

	// An empty body is allowed — every parameter has a default.
	p := params{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &p); err != nil {
			s.respondServerErr(w, r, fmt.Errorf("parse body: %w", err))
			return
		}
	}

	switch disasterType {
	case disasterEarthquake:
		s.calculateEarthquake(w, r, p, body)
	case disasterFlood:
		s.calculateFlood(w, r, p, body)
	case disasterFire:
		s.calculateFire(w, r, p, body)
	}
}

func (s *Server) calculateEarthquake(w http.ResponseWriter, r *http.Request, p params, body []byte) {
	magnitude, err := p.float("magnitude", defaultMagnitude)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	depth, err := p.float("depth", defaultDepth)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	distance, err := p.float("distance", defaultDistance)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}

	in := risk.EarthquakeInput{Magnitude: magnitude, Depth: depth, Distance: distance}
	result := risk.ScoreEarthquake(in)

	if err := s.store.RecordEarthquake(r.Context(), in, body, result); err != nil {
		s.logRecordErr(r, disasterEarthquake, err)
	}

	respondData(w, http.StatusOK, result)
}

func (s *Server) calculateFlood(w http.ResponseWriter, r *http.Request, p params, body []byte) {
	rainfall, err := p.float("rainfall", defaultRainfall)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	altitude, err := p.float("altitude", defaultAltitude)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	drainage, err := p.str("drainageCondition", defaultDrainage)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}

	in := risk.FloodInput{Rainfall: rainfall, Altitude: altitude, DrainageCondition: drainage}
	result := risk.ScoreFlood(in)

	if err := s.store.RecordFlood(r.Context(), in, body, result); err != nil {
		s.logRecordErr(r, disasterFlood, err)
	}

	respondData(w, http.StatusOK, result)
}

func (s *Server) calculateFire(w http.ResponseWriter, r *http.Request, p params, body []byte) {
	area, err := p.float("area", defaultArea)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	material, err := p.str("materialType", defaultMaterial)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}
	windSpeed, err := p.float("windSpeed", defaultWindSpeed)
	if err != nil {
		s.respondServerErr(w, r, err)
		return
	}

	in := risk.FireInput{Area: area, MaterialType: material, WindSpeed: windSpeed}
	result := risk.ScoreFire(in)

	if err := s.store.RecordFire(r.Context(), in, body, result); err != nil {
		s.logRecordErr(r, disasterFire, err)
	}

	respondData(w, http.StatusOK, result)
}

// logRecordErr logs a history-write failure without surfacing it to the
// caller. The computed result is still returned — persistence is best-effort.
func (s *Server) logRecordErr(r *http.Request, disasterType string, err error) {
	s.logger.Error("history write failed",
		"disaster_type", disasterType,
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
}

// ─── PARAMETER COERCION ──────────────────────────────────────────────────────

// params is the decoded request body. Numeric parameters accept JSON numbers
// and numeric strings; everything else is a coercion error.
type params map[string]any

// float returns the named parameter coerced to float64, or def when absent.
func (p params) float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q: cannot convert %q to a number", key, t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter %q: cannot convert %T to a number", key, v)
	}
}

// str returns the named parameter as a string, or def when absent.
func (p params) str(key, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	t, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q: expected a string, got %T", key, v)
	}
	return t, nil
}
