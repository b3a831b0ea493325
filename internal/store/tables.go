package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/hedgie/ent/schema"
)

const (
	llmEventsTable  = "llm_request_events"
	gameEventsTable = "game_events"
	highScoresTable = "high_scores"
	sequenceTable   = "global_sequence"
)

// tables returns the migration tables for every ent schema the store
// persists, plus the sequence counter row.
func tables() ([]*sqlschema.Table, error) {
	var out []*sqlschema.Table
	for _, s := range []ent.Interface{
		entschema.LLMRequestEvent{},
		entschema.GameEvent{},
		entschema.HighScore{},
	} {
		t, err := tableOf(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	seq := sqlschema.NewTable(sequenceTable).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(&sqlschema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})
	return append(out, seq), nil
}

// tableOf lays out an ent schema the way generated migrations do: an
// auto-increment id, then mixin fields, then the schema's own fields.
// Indexes are named <table>_<columns>.
func tableOf(s ent.Interface) (*sqlschema.Table, error) {
	name := tableName(s)
	t := sqlschema.NewTable(name).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		// Function defaults such as time.Now are applied on insert.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		for _, c := range d.Fields {
			if !t.HasColumn(c) {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, c)
			}
		}
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}

func tableName(s ent.Interface) string {
	for _, a := range s.Annotations() {
		switch a := a.(type) {
		case entsql.Annotation:
			if a.Table != "" {
				return a.Table
			}
		case *entsql.Annotation:
			if a != nil && a.Table != "" {
				return a.Table
			}
		}
	}
	return strings.ToLower(reflect.TypeOf(s).Name()) + "s"
}
