package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/p76267557-droid/kelompok-irpan/internal/store"
)

// ─── GET /api/history/:disasterType ──────────────────────────────────────────

// handleHistory returns the most recent simulations for one disaster type,
// newest first, capped at store.DefaultHistoryLimit. An unknown type is a
// client error and never touches the store; a store failure is a server error.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch chi.URLParam(r, "disasterType") {
	case disasterEarthquake:
		recs, err := s.store.RecentEarthquake(ctx, store.DefaultHistoryLimit)
		if err != nil {
			s.respondServerErr(w, r, fmt.Errorf("history gempa: %w", err))
			return
		}
		if recs == nil {
			recs = []store.EarthquakeRecord{}
		}
		respondData(w, http.StatusOK, recs)

	case disasterFlood:
		recs, err := s.store.RecentFlood(ctx, store.DefaultHistoryLimit)
		if err != nil {
			s.respondServerErr(w, r, fmt.Errorf("history banjir: %w", err))
			return
		}
		if recs == nil {
			recs = []store.FloodRecord{}
		}
		respondData(w, http.StatusOK, recs)

	case disasterFire:
		recs, err := s.store.RecentFire(ctx, store.DefaultHistoryLimit)
		if err != nil {
			s.respondServerErr(w, r, fmt.Errorf("history kebakaran: %w", err))
			return
		}
		if recs == nil {
			recs = []store.FireRecord{}
		}
		respondData(w, http.StatusOK, recs)

	default:
		respondMessage(w, http.StatusBadRequest, msgInvalidDisasterType)
	}
}
