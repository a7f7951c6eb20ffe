package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mathdrill/ent/schema"
)

// journalTables returns the migration tables for every journal schema.
func journalTables() ([]*schema.Table, error) {
	attempts, err := tableFor(attemptsTable, entschema.Attempt{})
	if err != nil {
		return nil, err
	}
	return []*schema.Table{attempts}, nil
}

// tableFor builds a migration table from an ent schema definition. Every
// table gets an auto-increment "id" primary key; mixin fields come first.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	t := schema.NewTable(name).AddPrimary(&schema.Column{
		Name:      "id",
		Type:      field.TypeInt,
		Increment: true,
	})

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
			return nil, fmt.Errorf("field %s.%s: %w", name, d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		// Function defaults such as time.Now are applied by the repo.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		t.AddColumn(c)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}
