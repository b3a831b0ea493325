package game

import "github.com/abhisek/hedgie/internal/problemgen"

// Every message carries the game ID so a message scheduled by an earlier
// game is ignored.

// batchLoadedMsg delivers a fetched batch. initial is true for the batch
// that starts the game.
type batchLoadedMsg struct {
	gameID  string
	initial bool
	batch   problemgen.Batch
}

// tickMsg drives the question clock.
type tickMsg struct {
	gameID string
}

// advanceMsg ends the feedback pause for generation gen.
type advanceMsg struct {
	gameID string
	gen    int
}
