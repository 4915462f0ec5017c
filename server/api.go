// File: server/api.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/pbianche/pongcourt/store"
)

type upsertPlayerRequest struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type recordScoreRequest struct {
	PlayerID string `json:"playerId"`
	Score    *int   `json:"score"`
}

type recordMatchRequest struct {
	PlayerID   string `json:"playerId"`
	Difficulty string `json:"difficulty"`
	DurationMs *int64 `json:"durationMs"`
}

// HandleUpsertPlayer registers a player identity. A reused id with a new
// name forks a fresh identity record, it is never merged.
func (s *Server) HandleUpsertPlayer(w http.ResponseWriter, r *http.Request) {
	var req upsertPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerID == "" || req.PlayerName == "" {
		writeError(w, http.StatusBadRequest, "playerId and playerName are required")
		return
	}

	player, err := s.store.UpsertPlayer(req.PlayerID, req.PlayerName)
	if err != nil {
		fmt.Println("UpsertPlayer failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to persist player")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "playerId")
	player, err := s.store.GetPlayer(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		fmt.Println("GetPlayer failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to read player")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// HandleRecordScore stores one score sample and returns the updated player
// row. Unknown players are created implicitly with a default name.
func (s *Server) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" || req.Score == nil || *req.Score < 0 {
		writeError(w, http.StatusBadRequest, "playerId and a non-negative score are required")
		return
	}

	player, err := s.store.RecordScore(req.PlayerID, *req.Score)
	if err != nil {
		fmt.Println("RecordScore failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to persist score")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"))
	players, err := s.store.Leaderboard(limit)
	if err != nil {
		fmt.Println("Leaderboard failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to read leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) HandleRecordMatch(w http.ResponseWriter, r *http.Request) {
	var req recordMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Difficulty = strings.TrimSpace(req.Difficulty)
	if req.PlayerID == "" || req.Difficulty == "" || req.DurationMs == nil || *req.DurationMs <= 0 {
		writeError(w, http.StatusBadRequest, "playerId, difficulty and a positive durationMs are required")
		return
	}

	match, err := s.store.RecordMatch(req.PlayerID, req.Difficulty, *req.DurationMs)
	if err != nil {
		fmt.Println("RecordMatch failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to persist match")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// HandleBestTimes reports each player's minimum match duration, optionally
// filtered by difficulty.
func (s *Server) HandleBestTimes(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	limit := parseLimit(r.URL.Query().Get("limit"))
	entries, err := s.store.BestTimes(difficulty, limit)
	if err != nil {
		fmt.Println("BestTimes failed:", err)
		writeError(w, http.StatusInternalServerError, "failed to read timer leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
