package problemgen

import "context"

// BatchGenerator produces a batch of questions for a difficulty tier.
type BatchGenerator interface {
	// Generate returns up to count validated questions. It fails when the
	// upstream call fails or no question survives validation.
	Generate(ctx context.Context, count int, difficulty Difficulty) (Batch, error)
}
