package bakery

import (
	"context"
	"fmt"

	"github.com/syssam/bakery/generate"
	"github.com/syssam/bakery/schema"
)

// Request carries the build inputs resolved from the caller's options:
// explicit overrides and the fill directive.
type Request struct {
	// Overrides maps field or relation names to explicit values. They
	// are used verbatim and take precedence over every other rule.
	Overrides map[string]any
	// FillAll generates values for every optional field.
	FillAll bool
	// Fill names the optional fields to generate values for. A field
	// named here is generated even if it has a default.
	Fill []string
}

func (r *Request) selected(name string) bool {
	if r.FillAll {
		return true
	}
	return r.named(name)
}

func (r *Request) named(name string) bool {
	for _, n := range r.Fill {
		if n == name {
			return true
		}
	}
	return false
}

// Builder turns a model description and a request into an instance.
// The default builder can be replaced through configuration; a custom
// builder must implement the same traversal contract: overrides win,
// defaults apply next, unselected optional fields stay unset, and
// required fields must end up with a value.
type Builder interface {
	Build(ctx context.Context, model *schema.Model, req *Request) (*Instance, error)
}

// BuildFunc is a function adapter for the Builder interface.
type BuildFunc func(ctx context.Context, model *schema.Model, req *Request) (*Instance, error)

// Build implements the Builder interface.
func (f BuildFunc) Build(ctx context.Context, model *schema.Model, req *Request) (*Instance, error) {
	return f(ctx, model, req)
}

// builder is the default traversal and generation policy.
type builder struct {
	reg *generate.Registry
}

// NewBuilder returns the default builder backed by the given registry.
func NewBuilder(reg *generate.Registry) Builder {
	return &builder{reg: reg}
}

// Build walks the model's fields in declared order and resolves one
// value per field: override, then default, then skip-if-optional, then
// generate. To-one relations recurse; to-many relations are staged for
// attachment after the owner gains identity.
func (b *builder) Build(ctx context.Context, model *schema.Model, req *Request) (*Instance, error) {
	if req == nil {
		req = &Request{}
	}
	if err := b.checkNames(model, req); err != nil {
		return nil, err
	}
	inst := newInstance(model)
	for _, f := range model.Fields {
		switch v, ok := req.Overrides[f.Name]; {
		case ok:
			inst.values[f.Name] = v
		case f.Default != nil && !req.named(f.Name):
			inst.values[f.Name] = f.DefaultValue()
		case (f.Nillable || f.Optional) && !req.selected(f.Name):
			// Left unset; the persistence layer applies its own
			// null handling.
		default:
			v, err := b.generateValue(f)
			if err != nil {
				return nil, fmt.Errorf("bakery: build %s.%s: %w", model.Name, f.Name, err)
			}
			inst.values[f.Name] = v
		}
	}
	for _, r := range model.Relations {
		if err := b.buildRelation(ctx, inst, r, req); err != nil {
			return nil, err
		}
	}
	if missing := b.missing(model, inst); len(missing) > 0 {
		return nil, NewIncompleteInstanceError(model.Name, missing...)
	}
	return inst, nil
}

func (b *builder) generateValue(f *schema.Field) (any, error) {
	fn, ok := b.reg.Resolve(f.Type)
	if !ok {
		return nil, NewUnknownFieldTypeError(f.Type)
	}
	return fn(f)
}

func (b *builder) buildRelation(ctx context.Context, inst *Instance, r *schema.Relation, req *Request) error {
	model := inst.model
	switch r.Kind {
	case schema.ToOne:
		if v, ok := req.Overrides[r.Name]; ok {
			if related, isInst := v.(*Instance); isInst {
				inst.related[r.Name] = related
				return nil
			}
			// An identifying reference: stored directly on the
			// foreign-key column.
			inst.values[r.FKColumn()] = v
			return nil
		}
		if v, ok := req.Overrides[r.FKColumn()]; ok {
			inst.values[r.FKColumn()] = v
			return nil
		}
		if !r.Required && !req.selected(r.Name) {
			return nil
		}
		related, err := b.Build(ctx, r.Target, &Request{})
		if err != nil {
			return fmt.Errorf("bakery: build %s.%s: %w", model.Name, r.Name, err)
		}
		inst.related[r.Name] = related
		return nil
	case schema.ToMany:
		var targets []*Instance
		if v, ok := req.Overrides[r.Name]; ok {
			list, isList := v.([]*Instance)
			if !isList {
				return fmt.Errorf("bakery: build %s.%s: to-many override must be []*Instance, got %T", model.Name, r.Name, v)
			}
			targets = list
		} else if req.selected(r.Name) {
			related, err := b.Build(ctx, r.Target, &Request{})
			if err != nil {
				return fmt.Errorf("bakery: build %s.%s: %w", model.Name, r.Name, err)
			}
			targets = []*Instance{related}
		}
		for _, target := range targets {
			at := Attachment{Relation: r, Related: target}
			if r.Through != nil {
				through, err := b.buildThrough(r.Through)
				if err != nil {
					return fmt.Errorf("bakery: build %s.%s through: %w", model.Name, r.Name, err)
				}
				at.Through = through
			}
			inst.pending = append(inst.pending, at)
		}
		return nil
	default:
		return fmt.Errorf("bakery: build %s.%s: invalid relation kind %v", model.Name, r.Name, r.Kind)
	}
}

// buildThrough builds the association instance for a through model:
// its own fields only, since the two endpoint columns are assigned at
// attachment time.
func (b *builder) buildThrough(m *schema.Model) (*Instance, error) {
	inst := newInstance(m)
	for _, f := range m.Fields {
		if f.Default != nil {
			inst.values[f.Name] = f.DefaultValue()
			continue
		}
		if f.Nillable || f.Optional {
			continue
		}
		v, err := b.generateValue(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.Name, f.Name, err)
		}
		inst.values[f.Name] = v
	}
	return inst, nil
}

// checkNames rejects override and fill names absent from the model.
func (b *builder) checkNames(model *schema.Model, req *Request) error {
	for name := range req.Overrides {
		if !b.knownName(model, name) {
			return NewUnknownFieldError(model.Name, name)
		}
	}
	for _, name := range req.Fill {
		if !b.knownName(model, name) {
			return NewUnknownFieldError(model.Name, name)
		}
	}
	return nil
}

func (b *builder) knownName(model *schema.Model, name string) bool {
	if model.Has(name) {
		return true
	}
	for _, r := range model.Relations {
		if r.Kind == schema.ToOne && r.FKColumn() == name {
			return true
		}
	}
	return false
}

// missing returns the required fields left unset. A required to-one
// relation counts as set when a related instance or a foreign-key
// value is present.
func (b *builder) missing(model *schema.Model, inst *Instance) []string {
	var missing []string
	for _, f := range model.Fields {
		if !f.Required() {
			continue
		}
		if v, ok := inst.values[f.Name]; !ok || v == nil {
			missing = append(missing, f.Name)
		}
	}
	for _, r := range model.Relations {
		if r.Kind != schema.ToOne || !r.Required {
			continue
		}
		if inst.related[r.Name] == nil {
			if _, ok := inst.values[r.FKColumn()]; !ok {
				missing = append(missing, r.Name)
			}
		}
	}
	return missing
}
