package server

import (
	"net/http"
	"time"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/logging"
)

// WSPath streams leaderboard updates.
const WSPath = "/ws/highscores"

const writeWait = 10 * time.Second

// ScoresMessage is the frame pushed to websocket subscribers.
type ScoresMessage struct {
	Type    string              `json:"type"`
	Payload []leaderboard.Entry `json:"payload"`
}

// handleScoresWS sends the current list on connect and again after every
// accepted submission for the same difficulty.
func (s *Server) handleScoresWS(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if !leaderboard.ValidKey(difficulty) {
		s.writeError(w, http.StatusBadRequest, "Invalid difficulty")
		return
	}
	log := logging.WithContext(r.Context()).WithField("difficulty", difficulty)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	// Subscribe before reading so no update between the two is lost.
	updates, cancel := s.scores.Subscribe(difficulty)
	defer cancel()

	initial, err := s.scores.Top(r.Context(), difficulty)
	if err != nil {
		log.WithError(err).Warn("ws initial read failed")
		initial = []leaderboard.Entry{}
	}
	if err := s.send(conn, initial); err != nil {
		return
	}

	// The read loop only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case list, ok := <-updates:
			if !ok {
				return
			}
			if err := s.send(conn, list); err != nil {
				log.WithError(err).Debug("ws write failed")
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

type jsonWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
}

func (s *Server) send(conn jsonWriter, list []leaderboard.Entry) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ScoresMessage{Type: "scores", Payload: list})
}
