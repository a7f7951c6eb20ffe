package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// JournalMixin provides the fields shared by every journal entry: when it
// happened and which play session produced it.
type JournalMixin struct {
	mixin.Schema
}

func (JournalMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC wall-clock time of the entry"),
		field.String("session_id").
			NotEmpty().
			Immutable().
			Comment("UUID of the play session"),
	}
}

func (JournalMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("session_id"),
	}
}
