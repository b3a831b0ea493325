package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/hedgie/internal/logging"
	"github.com/abhisek/hedgie/internal/problemgen"
)

const (
	defaultCount = 10
	maxCount     = 50

	// generateTimeout bounds a shared generator call, which runs detached
	// from the request that started it.
	generateTimeout = 60 * time.Second
)

type generateRequest struct {
	Count      *int   `json:"count"`
	Difficulty string `json:"difficulty"`
}

type generateResponse struct {
	Questions []problemgen.Item `json:"questions"`
}

// handleGenerate serves POST /api/generate-questions. Identical concurrent
// requests share one generator call; a client that disconnects only
// abandons its own wait.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count := defaultCount
	if req.Count != nil {
		count = min(max(*req.Count, 1), maxCount)
	}
	difficulty := problemgen.DifficultyOrDefault(req.Difficulty)
	log := logging.WithContext(r.Context()).WithField("difficulty", difficulty).WithField("count", count)

	key := fmt.Sprintf("%s/%d", difficulty, count)
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), generateTimeout)
		defer cancel()
		return s.gen.Generate(ctx, count, difficulty)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-r.Context().Done():
		log.WithError(r.Context().Err()).Info("client left before questions were ready")
		return
	}
	if res.Err != nil {
		log.WithError(res.Err).Error("question generation failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to generate questions")
		return
	}

	batch := res.Val.(problemgen.Batch)
	log.WithField("shared", res.Shared).WithField("generated", len(batch)).Info("questions generated")
	s.writeJSON(w, http.StatusOK, generateResponse{Questions: batch.ToItems()})
}
