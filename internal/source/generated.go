package source

import (
	"context"
	"sync"

	"github.com/abhisek/hedgie/internal/problemgen"
)

// Generated calls a BatchGenerator in process, skipping the HTTP hop.
type Generated struct {
	gen problemgen.BatchGenerator
}

// NewGenerated wraps gen.
func NewGenerated(gen problemgen.BatchGenerator) *Generated {
	return &Generated{gen: gen}
}

func (g *Generated) Fetch(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error) {
	return g.gen.Generate(ctx, count, difficulty)
}

// Local produces grade-template questions. It ignores difficulty and
// never fails.
type Local struct {
	mu    sync.Mutex
	gen   *problemgen.LocalGenerator
	grade problemgen.GradeTier
}

// NewLocal serves questions for grade from gen.
func NewLocal(gen *problemgen.LocalGenerator, grade problemgen.GradeTier) *Local {
	if gen == nil {
		gen = problemgen.NewLocalGenerator(nil)
	}
	return &Local{gen: gen, grade: grade}
}

func (l *Local) FetchBatch(_ context.Context, count int, _ problemgen.Difficulty) problemgen.Batch {
	if count < 1 {
		count = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.GenerateBatch(l.grade, count)
}

// Fetch lets Local stand in wherever a Fetcher is expected.
func (l *Local) Fetch(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error) {
	return l.FetchBatch(ctx, count, difficulty), nil
}
