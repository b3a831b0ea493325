package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendGameEvent(ctx context.Context, data GameEventData) error {
	err := r.insert(ctx, gameEventsTable,
		[]string{"session_id", "action", "mode", "difficulty", "score", "answered", "correct", "duration_secs"},
		data.SessionID, data.Action, data.Mode, data.Difficulty,
		data.Score, data.Answered, data.Correct, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save game event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentGames(ctx context.Context, limit int) ([]GameEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	q, args := sqlite.Select("id", "sequence", "timestamp", "session_id", "action", "mode",
		"difficulty", "score", "answered", "correct", "duration_secs").
		From(entsql.Table(gameEventsTable)).
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence")).
		Limit(limit).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query game events: %w", err)
	}
	defer rows.Close()

	var out []GameEvent
	for rows.Next() {
		var e GameEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Action, &e.Mode,
			&e.Difficulty, &e.Score, &e.Answered, &e.Correct, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan game event: %w", err)
		}
		e.Timestamp = e.Timestamp.Local()
		out = append(out, e)
	}
	return out, rows.Err()
}
