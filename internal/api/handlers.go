// Package api serves build recommendations over HTTP.
package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/buildadvisor/internal/advisor"
)

// Retrainer rebuilds the tables from the corpus and persists them.
type Retrainer func(ctx context.Context) (*advisor.Tables, *advisor.TrainReport, error)

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	advisor *advisor.Advisor
	retrain Retrainer
	cache   Pinger

	retrainMu sync.Mutex
}

// NewHandler creates a new handler. retrain and cache may be nil.
func NewHandler(adv *advisor.Advisor, retrain Retrainer, cache Pinger) *Handler {
	return &Handler{
		advisor: adv,
		retrain: retrain,
		cache:   cache,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "cache unhealthy", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"champions": len(h.advisor.Champions()),
	})
}

// GetChampions lists every champion with a general build.
func (h *Handler) GetChampions(w http.ResponseWriter, r *http.Request) {
	champions := h.advisor.Champions()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"champions": champions,
		"count":     len(champions),
	})
}

// GetOpponents lists the opponents a champion has matchup data against.
func (h *Handler) GetOpponents(w http.ResponseWriter, r *http.Request) {
	champion := h.advisor.ResolveChampion(chi.URLParam(r, "champion"))
	opponents := h.advisor.Opponents(champion)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"champion":  champion,
		"opponents": opponents,
		"count":     len(opponents),
	})
}

// GetRecommendation returns the greedy build for a champion.
// Query params: opponent
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	champion := h.advisor.ResolveChampion(chi.URLParam(r, "champion"))
	opponent := h.advisor.ResolveChampion(r.URL.Query().Get("opponent"))

	rec := h.advisor.Recommend(champion, opponent)
	if !rec.Found() {
		respondError(w, http.StatusNotFound, "no data for "+champion, nil)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// CompareBuilds returns the general build next to the matchup build.
func (h *Handler) CompareBuilds(w http.ResponseWriter, r *http.Request) {
	champion := h.advisor.ResolveChampion(chi.URLParam(r, "champion"))
	opponent := h.advisor.ResolveChampion(chi.URLParam(r, "opponent"))

	general, specific := h.advisor.Compare(champion, opponent)
	if !general.Found() {
		respondError(w, http.StatusNotFound, "no data for "+champion, nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"champion": champion,
		"opponent": opponent,
		"general":  general,
		"specific": specific,
	})
}

// Retrain rebuilds the tables from the corpus and swaps them in. Only one
// retrain runs at a time.
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	if h.retrain == nil {
		respondError(w, http.StatusServiceUnavailable, "retraining is not available", nil)
		return
	}
	if !h.retrainMu.TryLock() {
		respondError(w, http.StatusConflict, "retrain already in progress", nil)
		return
	}
	defer h.retrainMu.Unlock()

	// Training outlives a client that disconnects or times out.
	tables, report, err := h.retrain(context.WithoutCancel(r.Context()))
	if tables == nil {
		respondError(w, http.StatusInternalServerError, "retrain failed", err)
		return
	}
	h.advisor.SetTables(tables)

	resp := map[string]interface{}{
		"status":       "ok",
		"matches":      report.Matches,
		"unreadable":   report.Unreadable,
		"observations": report.Observations,
		"skipped":      report.Skipped,
		"champions":    len(tables.Champions()),
		"duration_ms":  report.Duration.Milliseconds(),
	}
	if err != nil {
		log.Printf("Retrained tables not persisted: %v", err)
		resp["status"] = "not_persisted"
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("error: %s - %v", message, err)
	}

	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
