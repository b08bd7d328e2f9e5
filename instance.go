package bakery

import (
	"encoding/json"
	"sort"

	"github.com/syssam/bakery/schema"
	"github.com/syssam/bakery/store"
)

// Instance is a built record: field values keyed by name, plus the
// related instances produced while building. Instances start unsaved;
// Make hands them to a store and marks them saved.
type Instance struct {
	model   *schema.Model
	values  map[string]any
	related map[string]*Instance
	pending []Attachment
	id      any
	saved   bool
}

// Attachment is a staged to-many association. Attachments are applied
// after the owning instance has identity; until then they are visible
// through Pending.
type Attachment struct {
	Relation *schema.Relation
	Related  *Instance
	// Through holds the explicitly built association instance for
	// relations with a through model, nil otherwise.
	Through *Instance
}

func newInstance(m *schema.Model) *Instance {
	return &Instance{
		model:   m,
		values:  make(map[string]any),
		related: make(map[string]*Instance),
	}
}

// Model returns the model description the instance was built from.
func (i *Instance) Model() *schema.Model {
	return i.model
}

// Get returns the value of the named field and whether it was set.
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.values[name]
	return v, ok
}

// Set assigns a field value. The name must denote a field on the model.
func (i *Instance) Set(name string, v any) error {
	if i.model.Field(name) == nil {
		return NewUnknownFieldError(i.model.Name, name)
	}
	i.values[name] = v
	return nil
}

// ID returns the identity assigned by the store, or nil before save.
func (i *Instance) ID() any {
	return i.id
}

// Saved reports whether the instance has been persisted.
func (i *Instance) Saved() bool {
	return i.saved
}

// Related returns the built instance of a to-one relation, or nil.
func (i *Instance) Related(name string) *Instance {
	return i.related[name]
}

// Pending returns the staged to-many attachments. After Make the slice
// is empty; Prepare leaves attachments staged since the owner has no
// identity yet.
func (i *Instance) Pending() []Attachment {
	out := make([]Attachment, len(i.pending))
	copy(out, i.pending)
	return out
}

// Values returns a copy of the set field values.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		out[k] = v
	}
	return out
}

// Export returns the instance as a plain map: set fields, the identity
// under "id" when saved, and exported to-one instances under their
// relation names.
func (i *Instance) Export() map[string]any {
	out := i.Values()
	if i.saved {
		out["id"] = i.id
	}
	for name, rel := range i.related {
		out[name] = rel.Export()
	}
	return out
}

// MarshalJSON encodes the exported form of the instance.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Export())
}

// record returns the storage view of the instance: set fields in
// declaration order, followed by the foreign-key columns of built
// to-one relations.
func (i *Instance) record() *store.Record {
	rec := &store.Record{
		Table:  i.model.Table(),
		Values: make(map[string]any, len(i.values)),
	}
	for _, f := range i.model.Fields {
		if v, ok := i.values[f.Name]; ok {
			rec.Columns = append(rec.Columns, f.Name)
			rec.Values[f.Name] = v
		}
	}
	for _, r := range i.model.Relations {
		if r.Kind != schema.ToOne {
			continue
		}
		col := r.FKColumn()
		if v, ok := i.values[col]; ok {
			rec.Columns = append(rec.Columns, col)
			rec.Values[col] = v
		}
	}
	// Remaining values, such as the endpoint columns assigned to a
	// through instance, follow in sorted order.
	var rest []string
	for k := range i.values {
		if _, ok := rec.Values[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		rec.Columns = append(rec.Columns, k)
		rec.Values[k] = i.values[k]
	}
	return rec
}
