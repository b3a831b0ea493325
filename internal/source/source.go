// Package source supplies question batches to a game session.
//
// Every Source resolves with a usable batch. Variants that can fail
// implement Fetcher and are lifted into a Source by WithFallback, which is
// the single place a failed fetch is turned into fallback content.
package source

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/problemgen"
)

// Source always returns a batch.
type Source interface {
	FetchBatch(ctx context.Context, count int, difficulty problemgen.Difficulty) problemgen.Batch
}

// Fetcher may fail.
type Fetcher interface {
	Fetch(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error)

func (f FetcherFunc) Fetch(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error) {
	return f(ctx, count, difficulty)
}

// ErrEmptyBatch is returned by fetchers whose upstream answered with no
// questions.
var ErrEmptyBatch = errors.New("empty question batch")

// Static serves the hand-written fallback set.
type Static struct{}

func (Static) FetchBatch(context.Context, int, problemgen.Difficulty) problemgen.Batch {
	return problemgen.Fallback()
}

type fallbackSource struct {
	fetcher  Fetcher
	fallback Source
	log      logrus.FieldLogger
}

// WithFallback makes one attempt with f and serves fb's batch on any error
// or an empty result. There is no retry. A nil fb means Static.
func WithFallback(f Fetcher, fb Source, log logrus.FieldLogger) Source {
	if fb == nil {
		fb = Static{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &fallbackSource{fetcher: f, fallback: fb, log: log}
}

func (s *fallbackSource) FetchBatch(ctx context.Context, count int, difficulty problemgen.Difficulty) problemgen.Batch {
	b, err := s.fetcher.Fetch(ctx, count, difficulty)
	if err == nil && len(b) == 0 {
		err = ErrEmptyBatch
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"count":      count,
			"difficulty": difficulty,
		}).WithError(err).Warn("question fetch failed, using fallback set")
		return s.fallback.FetchBatch(ctx, count, difficulty)
	}
	return b
}
