package server

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"guild-tracker/internal/domain"
	"guild-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string    `json:"name"`
		Date time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", "name is required")
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	session, err := s.lootSvc.CreateSession(r.Context(), req.Name, req.Date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.lootSvc.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleAddLoots(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req []struct {
		CharacterID *string `json:"character_id"`
		ItemID      int     `json:"item_id"`
		Slot        string  `json:"slot"`
		Difficulty  string  `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	loots := make([]domain.Loot, 0, len(req))
	for _, l := range req {
		loots = append(loots, domain.Loot{
			SessionID:   sessionID,
			CharacterID: l.CharacterID,
			ItemID:      l.ItemID,
			Slot:        domain.Slot(l.Slot),
			Difficulty:  domain.Difficulty(l.Difficulty),
		})
	}

	if err := s.lootSvc.AddLoots(r.Context(), loots); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record loots", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"recorded": len(loots)})
}

func (s *Server) handleLootRecap(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeParam(r, "from", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from parameter", err.Error())
		return
	}
	to, err := parseTimeParam(r, "to", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to parameter", err.Error())
		return
	}

	recap, err := s.lootSvc.Recap(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build loot recap", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recap)
}

func parseTimeParam(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *Server) handleUploadDroptimizer(w http.ResponseWriter, r *http.Request) {
	var upload service.DroptimizerUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	report, summary, err := s.droptimizerSvc.Store(r.Context(), upload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Character not found", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Rejected droptimizer upload", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"droptimizer": report,
		"summary":     summary,
	})
}

func (s *Server) handleListDroptimizers(w http.ResponseWriter, r *http.Request) {
	reports, err := s.droptimizerSvc.ListByCharacter(r.Context(), chi.URLParam(r, "characterID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list droptimizers", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
