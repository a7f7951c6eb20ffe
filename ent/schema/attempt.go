package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt records one resolved question.
type Attempt struct {
	ent.Schema
}

func (Attempt) Mixin() []ent.Mixin {
	return []ent.Mixin{JournalMixin{}}
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("mode_id").
			NotEmpty().
			Comment("Practice mode the question came from"),
		field.String("setting").
			NotEmpty().
			Comment("Digit count, difficulty, or 0"),
		field.Text("prompt").
			Comment("The question shown"),
		field.String("answer_key").
			NotEmpty().
			Comment("Reference answer, 42 or [[1,2],[3,4]]"),
		field.String("submission").
			Comment("What the user entered; matrix cells as a JSON array"),
		field.Bool("correct"),
		field.Int64("elapsed_ms").
			NonNegative().
			Comment("Milliseconds from delivery to submission"),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("mode_id"),
		index.Fields("correct"),
	}
}
