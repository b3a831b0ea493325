package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// HighScore is one row of a per-difficulty leaderboard. Rows are pruned
// to the configured list size on every insert, so unlike the event
// tables this one is not append-only and carries no sequence number.
type HighScore struct {
	ent.Schema
}

func (HighScore) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "high_scores"}}
}

func (HighScore) Fields() []ent.Field {
	return []ent.Field{
		field.String("difficulty").NotEmpty(),
		field.String("name").NotEmpty(),
		field.Int("score").NonNegative(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (HighScore) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("difficulty", "score"),
	}
}
