package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type highScoreRepo struct {
	drv *entsql.Driver
}

// ranked selects a difficulty's rows best first, ties in insertion order.
func ranked(difficulty string, columns ...string) *entsql.Selector {
	return sqlite.Select(columns...).
		From(entsql.Table(highScoresTable)).
		Where(entsql.EQ("difficulty", difficulty)).
		OrderBy(entsql.Desc("score"), entsql.Asc("id"))
}

func (r *highScoreRepo) Top(ctx context.Context, difficulty string, limit int) ([]HighScore, error) {
	q, args := ranked(difficulty, "name", "score", "difficulty", "created_at").
		Limit(limit).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	out := []HighScore{}
	for rows.Next() {
		var hs HighScore
		if err := rows.Scan(&hs.Name, &hs.Score, &hs.Difficulty, &hs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan high score: %w", err)
		}
		hs.CreatedAt = hs.CreatedAt.Local()
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (r *highScoreRepo) Insert(ctx context.Context, hs HighScore, keep int) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	created := hs.CreatedAt
	if created.IsZero() {
		created = now()
	}
	q, args := sqlite.Insert(highScoresTable).
		Columns("difficulty", "name", "score", "created_at").
		Values(hs.Difficulty, hs.Name, hs.Score, created.UTC()).
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert high score: %w", err)
	}

	q, args = sqlite.Delete(highScoresTable).
		Where(entsql.And(
			entsql.EQ("difficulty", hs.Difficulty),
			entsql.NotIn("id", ranked(hs.Difficulty, "id").Limit(keep)),
		)).
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("prune high scores: %w", err)
	}

	return tx.Commit()
}
