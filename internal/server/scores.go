package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/logging"
)

// handleTopScores serves GET /api/highscores?difficulty=.
func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	list, err := s.scores.Top(r.Context(), difficulty)
	switch {
	case errors.Is(err, leaderboard.ErrInvalidDifficulty):
		s.writeError(w, http.StatusBadRequest, "Invalid difficulty")
	case err != nil:
		logging.WithContext(r.Context()).WithError(err).Error("read high scores")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch high scores")
	default:
		s.writeJSON(w, http.StatusOK, list)
	}
}

type submitRequest struct {
	Name       string   `json:"name"`
	Score      *float64 `json:"score"`
	Difficulty string   `json:"difficulty"`
}

// handleSubmitScore serves POST /api/highscores.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Score == nil || *req.Score < 0 || *req.Score != math.Trunc(*req.Score) || *req.Score > math.MaxInt32 {
		s.writeError(w, http.StatusBadRequest, "Invalid score")
		return
	}
	if !leaderboard.ValidKey(req.Difficulty) {
		s.writeError(w, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	list, err := s.scores.Submit(r.Context(), leaderboard.Entry{
		Name:       req.Name,
		Score:      int(*req.Score),
		Difficulty: req.Difficulty,
	})
	if err != nil {
		logging.WithContext(r.Context()).WithError(err).Error("submit high score")
		s.writeError(w, http.StatusInternalServerError, "Failed to save high score")
		return
	}
	s.writeJSON(w, http.StatusOK, leaderboard.SubmitResponse{Success: true, Scores: list})
}
