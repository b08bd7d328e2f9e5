package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-openapi/inflect"
)

// RelationKind distinguishes to-one from to-many relations.
type RelationKind uint8

// Relation kinds.
const (
	ToOne RelationKind = iota + 1
	ToMany
)

// String returns the name of the relation kind.
func (k RelationKind) String() string {
	switch k {
	case ToOne:
		return "to-one"
	case ToMany:
		return "to-many"
	default:
		return fmt.Sprintf("invalid(%d)", k)
	}
}

// MarshalJSON encodes the kind by its name.
func (k RelationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the kind from its name.
func (k *RelationKind) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "to-one":
		*k = ToOne
	case "to-many":
		*k = ToMany
	default:
		return fmt.Errorf("schema: unknown relation kind %q", name)
	}
	return nil
}

// Field describes one attribute of a model. Fields are treated as
// immutable once attached to a Model.
type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
	// Nillable fields are nullable in storage and may be left unset.
	Nillable bool `json:"nillable,omitempty"`
	// Optional fields are not required on create (blank allowed), but
	// are NOT NULL in storage unless also Nillable.
	Optional bool `json:"optional,omitempty"`
	// Default holds a literal default value, or a func() any / func() T
	// invoked at build time. Nil means no default.
	Default any `json:"default,omitempty"`
	// Enums holds the allowed values for TypeEnum fields.
	Enums []string `json:"enums,omitempty"`
	// Size caps generated value length for textual and bytes fields.
	// Zero means no cap.
	Size      int    `json:"size,omitempty"`
	Comment   string `json:"comment,omitempty"`
	Sensitive bool   `json:"sensitive,omitempty"`
}

// Required reports whether the field must carry a value before the
// instance can be persisted.
func (f *Field) Required() bool {
	return !f.Nillable && !f.Optional && f.Default == nil
}

// DefaultValue returns the field default, invoking function defaults.
func (f *Field) DefaultValue() any {
	if fn, ok := f.Default.(func() any); ok {
		return fn()
	}
	return f.Default
}

// Relation describes an association from one model to another.
type Relation struct {
	Name string       `json:"name"`
	Kind RelationKind `json:"kind"`
	// Target is the related model description.
	Target *Model `json:"-"`
	// TargetName carries the target model name in the JSON form and is
	// linked to Target when a Set is parsed.
	TargetName string `json:"target"`
	// Through is the association model for to-many relations that carry
	// extra attributes. Nil means a plain join table.
	Through     *Model `json:"-"`
	ThroughName string `json:"through,omitempty"`
	// Required to-one relations must reference a target instance.
	Required bool `json:"required,omitempty"`
	// Column is the storage column holding the foreign key of a to-one
	// relation. Defaults to "<name>_id".
	Column string `json:"column,omitempty"`
}

// FKColumn returns the storage column holding the relation foreign key.
func (r *Relation) FKColumn() string {
	if r.Column != "" {
		return r.Column
	}
	return r.Name + "_id"
}

// JoinTable returns the join table name for a plain to-many relation on
// the given owner model.
func (r *Relation) JoinTable(owner *Model) string {
	return owner.Table() + "_" + r.Name
}

// OwnerColumn returns the join-table column referencing the owner model.
func (r *Relation) OwnerColumn(owner *Model) string {
	return inflect.Underscore(owner.Name) + "_id"
}

// TargetColumn returns the join-table column referencing the target model.
func (r *Relation) TargetColumn() string {
	name := r.TargetName
	if r.Target != nil {
		name = r.Target.Name
	}
	return inflect.Underscore(name) + "_id"
}

// Model is an ordered description of an entity: its fields in declared
// order plus its relations.
type Model struct {
	Name      string      `json:"name"`
	Fields    []*Field    `json:"fields"`
	Relations []*Relation `json:"relations,omitempty"`
	// TableName overrides the default storage table name.
	TableName string `json:"table,omitempty"`
}

// Table returns the storage table name: the explicit override if set,
// otherwise the pluralized snake-case model name.
func (m *Model) Table() string {
	if m.TableName != "" {
		return m.TableName
	}
	return inflect.Pluralize(inflect.Underscore(m.Name))
}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Relation returns the relation with the given name, or nil.
func (m *Model) Relation(name string) *Relation {
	for _, r := range m.Relations {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Has reports whether name denotes a field or a relation on the model.
func (m *Model) Has(name string) bool {
	return m.Field(name) != nil || m.Relation(name) != nil
}

// A Set is a group of models loaded together so relations can reference
// each other by name.
type Set struct {
	Models []*Model `json:"models"`
}

// Model returns the model with the given name, or nil.
func (s *Set) Model(name string) *Model {
	for _, m := range s.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Parse decodes a model set from its JSON form, links relation targets
// and through models, and normalizes numeric defaults.
func Parse(data []byte) (*Set, error) {
	s := &Set{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("schema: decode model set: %w", err)
	}
	for _, m := range s.Models {
		for _, f := range m.Fields {
			if err := f.normalizeDefault(); err != nil {
				return nil, fmt.Errorf("schema: model %q: %w", m.Name, err)
			}
		}
		for _, r := range m.Relations {
			if r.Target = s.Model(r.TargetName); r.Target == nil {
				return nil, fmt.Errorf("schema: model %q: relation %q references unknown model %q", m.Name, r.Name, r.TargetName)
			}
			if r.ThroughName != "" {
				if r.Through = s.Model(r.ThroughName); r.Through == nil {
					return nil, fmt.Errorf("schema: model %q: relation %q references unknown through model %q", m.Name, r.Name, r.ThroughName)
				}
			}
		}
	}
	return s, nil
}

// Load reads and parses a model set from a JSON file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data)
}

// normalizeDefault coerces JSON-decoded numeric defaults (float64) into
// the field's integer family. Function defaults cannot round-trip JSON
// and are left untouched.
func (f *Field) normalizeDefault() error {
	if f.Default == nil || !f.Type.Integer() {
		return nil
	}
	if _, ok := f.Default.(func() any); ok {
		return nil
	}
	n, ok := f.Default.(float64)
	if !ok {
		// Already an integer value set programmatically.
		switch f.Default.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return nil
		}
		return fmt.Errorf("unexpected default value type %T for field %q", f.Default, f.Name)
	}
	switch t := f.Type; {
	case t >= TypeInt && t <= TypeInt64:
		f.Default = int64(n)
	case t >= TypeUint && t <= TypeUint64:
		f.Default = uint64(n)
	}
	return nil
}
