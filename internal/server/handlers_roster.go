package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"guild-tracker/internal/domain"
	"guild-tracker/internal/fetch"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.rosterSvc.ListPlayers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list players", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", "name is required")
		return
	}

	player, err := s.rosterSvc.CreatePlayer(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create player", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.rosterSvc.DeletePlayer(r.Context(), chi.URLParam(r, "playerID")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Player not found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete player", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := s.rosterSvc.ListCharacters(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list characters", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, characters)
}

func (s *Server) handleAddCharacter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"player_id"`
		Name     string `json:"name"`
		Realm    string `json:"realm"`
		Class    string `json:"class"`
		Role     string `json:"role"`
		Main     bool   `json:"main"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.PlayerID == "" || req.Name == "" || req.Realm == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body", "player_id, name and realm are required")
		return
	}

	character, err := s.rosterSvc.AddCharacter(r.Context(), domain.Character{
		PlayerID: req.PlayerID,
		Name:     req.Name,
		Realm:    req.Realm,
		Class:    domain.Class(req.Class),
		Role:     domain.Role(req.Role),
		Main:     req.Main,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Player not found", err.Error())
			return
		}
		if fetch.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Character not found on publisher API", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to add character", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, character)
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	character, err := s.rosterSvc.GetCharacter(r.Context(), chi.URLParam(r, "characterID"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Character not found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get character", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, character)
}

func (s *Server) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	if err := s.rosterSvc.DeleteCharacter(r.Context(), chi.URLParam(r, "characterID")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Character not found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete character", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resolved, err := s.rosterSvc.ImportRoster(r.Context(), req.Input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import roster", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

func (s *Server) handleMountPriority(w http.ResponseWriter, r *http.Request) {
	var mountIDs []int
	if raw := r.URL.Query().Get("mount_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid mount_ids", err.Error())
				return
			}
			mountIDs = append(mountIDs, id)
		}
	}

	priorities, err := s.mountSvc.Priority(r.Context(), mountIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute mount priority", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, priorities)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID", err.Error())
		return
	}

	item, err := s.blizzard.GetItem(r.Context(), itemID)
	if err != nil {
		if fetch.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Item not found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch item", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListSyncRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.jobRunner.History(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sync runs", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
