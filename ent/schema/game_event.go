package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GameEvent records a round starting or ending.
type GameEvent struct {
	ent.Schema
}

func (GameEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "game_events"}}
}

func (GameEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GameEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("action").NotEmpty(), // start or end
		field.String("mode").NotEmpty(),   // difficulty or grade
		field.String("difficulty").NotEmpty(),
		field.Int("score").Default(0),
		field.Int("answered").Default(0),
		field.Int("correct").Default(0),
		field.Int("duration_secs").Default(0),
	}
}

func (GameEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
