package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out one global, monotonically increasing sequence
// number shared by every event table, so LLM calls and game events can be
// ordered against each other. The mutex serializes within the process and
// the RETURNING clause makes the increment atomic in the database.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	q, args := sqlite.Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, q, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	q, args := sqlite.Update(sequenceTable).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()
	var rows entsql.Rows
	if err := sc.drv.Query(ctx, q, args, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var next int64
	if err := rows.Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}

// now stamps event rows. Times are stored in UTC so that range filters
// compare correctly against the stored text.
func now() time.Time { return time.Now().UTC() }

// eventRepo implements EventRepo over the shared counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insert appends one row to an event table, stamping it with the next
// sequence number and the current UTC time.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	q, args := sqlite.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, now()}, values...)...).
		Query()
	return r.drv.Exec(ctx, q, args, nil)
}
