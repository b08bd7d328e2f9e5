package bakery

import (
	"context"
	"fmt"
	"sync"

	"github.com/syssam/bakery/generate"
	"github.com/syssam/bakery/resolve"
	"github.com/syssam/bakery/schema"
	"github.com/syssam/bakery/store"
	"github.com/syssam/bakery/store/memstore"
)

// DefaultStore is the name of the store used when no UsingStore
// directive is given.
const DefaultStore = "default"

// Factory builds model instances. Prepare builds only; Make builds and
// persists through one of the factory's stores. The two entry points
// run the identical pipeline up to the persistence step.
type Factory struct {
	registry *generate.Registry
	resolver resolve.Resolver
	lazy     *resolve.Lazy
	stores   map[string]store.Store

	builder     Builder
	builderPath string
	builderOnce sync.Once
	builderErr  error
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithRegistry sets the generator registry. Defaults to a registry
// seeded with the built-in generators.
func WithRegistry(reg *generate.Registry) FactoryOption {
	return func(f *Factory) { f.registry = reg }
}

// WithResolver sets the resolver used for dotted-path lookups of
// custom generators and builders.
func WithResolver(r resolve.Resolver) FactoryOption {
	return func(f *Factory) {
		f.resolver = r
		f.lazy = resolve.NewLazy(r)
	}
}

// WithStore adds a named store.
func WithStore(name string, s store.Store) FactoryOption {
	return func(f *Factory) { f.stores[name] = s }
}

// WithDefaultStore sets the store used when no directive selects one.
func WithDefaultStore(s store.Store) FactoryOption {
	return WithStore(DefaultStore, s)
}

// WithBuilder replaces the default builder.
func WithBuilder(b Builder) FactoryOption {
	return func(f *Factory) { f.builder = b }
}

// WithBuilderPath selects an alternate builder by dotted path. The
// path is resolved through the factory resolver at first use;
// resolution failure is fatal and remembered.
func WithBuilderPath(path string) FactoryOption {
	return func(f *Factory) { f.builderPath = path }
}

// New returns a factory with the built-in registry and an in-memory
// default store.
func New(opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: generate.NewRegistry(),
		stores:   map[string]store.Store{DefaultStore: memstore.New()},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry returns the factory's generator registry.
func (f *Factory) Registry() *generate.Registry {
	return f.registry
}

// RegisterGeneratorPath registers a generator for the given type tag by
// dotted path. The path resolves lazily at first generation; failure
// surfaces as a ResolutionError.
func (f *Factory) RegisterGeneratorPath(t schema.Type, path string) {
	f.registry.Register(t, func(fd *schema.Field) (any, error) {
		v, err := f.resolvePath(path)
		if err != nil {
			return nil, err
		}
		fn, err := asGenerator(path, v)
		if err != nil {
			return nil, err
		}
		return fn(fd)
	})
}

// Option is a per-build directive.
type Option func(*buildSpec)

type buildSpec struct {
	req        Request
	saveParams map[string]any
	storeName  string
}

// WithValue overrides a single field or relation with an explicit
// value. Overrides are used verbatim and win over defaults,
// nullability, and fill directives.
func WithValue(name string, v any) Option {
	return func(s *buildSpec) {
		if s.req.Overrides == nil {
			s.req.Overrides = make(map[string]any)
		}
		s.req.Overrides[name] = v
	}
}

// WithValues overrides multiple fields at once.
func WithValues(values map[string]any) Option {
	return func(s *buildSpec) {
		if s.req.Overrides == nil {
			s.req.Overrides = make(map[string]any, len(values))
		}
		for k, v := range values {
			s.req.Overrides[k] = v
		}
	}
}

// Fill generates values for the named optional fields. Naming a field
// with a default forces generation over the default.
func Fill(names ...string) Option {
	return func(s *buildSpec) { s.req.Fill = append(s.req.Fill, names...) }
}

// FillAll generates values for every optional field.
func FillAll() Option {
	return func(s *buildSpec) { s.req.FillAll = true }
}

// WithSaveParams forwards extra parameters verbatim to the store on
// save. The factory neither validates nor interprets them.
func WithSaveParams(params map[string]any) Option {
	return func(s *buildSpec) { s.saveParams = params }
}

// UsingStore selects a named store for persistence.
func UsingStore(name string) Option {
	return func(s *buildSpec) { s.storeName = name }
}

// Prepare builds an instance without persisting it. Nested to-one
// instances are built unsaved and to-many attachments stay staged on
// the instance.
func (f *Factory) Prepare(ctx context.Context, model *schema.Model, opts ...Option) (*Instance, error) {
	spec := newBuildSpec(opts)
	b, err := f.resolveBuilder()
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, model, &spec.req)
}

// Make builds an instance and persists it: to-one relations first,
// then the instance itself exactly once, then staged to-many
// attachments.
func (f *Factory) Make(ctx context.Context, model *schema.Model, opts ...Option) (*Instance, error) {
	spec := newBuildSpec(opts)
	b, err := f.resolveBuilder()
	if err != nil {
		return nil, err
	}
	inst, err := b.Build(ctx, model, &spec.req)
	if err != nil {
		return nil, err
	}
	st, err := f.storeFor(spec.storeName)
	if err != nil {
		return nil, err
	}
	if err := f.save(ctx, st, inst, spec.saveParams); err != nil {
		return nil, err
	}
	return inst, nil
}

// PrepareMany builds n instances without persisting them.
func (f *Factory) PrepareMany(ctx context.Context, model *schema.Model, n int, opts ...Option) ([]*Instance, error) {
	out := make([]*Instance, 0, n)
	for range n {
		inst, err := f.Prepare(ctx, model, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// MakeMany builds and persists n instances.
func (f *Factory) MakeMany(ctx context.Context, model *schema.Model, n int, opts ...Option) ([]*Instance, error) {
	out := make([]*Instance, 0, n)
	for range n {
		inst, err := f.Make(ctx, model, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func newBuildSpec(opts []Option) *buildSpec {
	spec := &buildSpec{}
	for _, opt := range opts {
		opt(spec)
	}
	return spec
}

// save persists the instance depth-first. Already-saved instances are
// left alone, so sharing a related instance across builds saves it
// once.
func (f *Factory) save(ctx context.Context, st store.Store, inst *Instance, extra map[string]any) error {
	if inst.saved {
		return nil
	}
	for _, r := range inst.model.Relations {
		if r.Kind != schema.ToOne {
			continue
		}
		related := inst.related[r.Name]
		if related == nil {
			continue
		}
		if err := f.save(ctx, st, related, nil); err != nil {
			return err
		}
		inst.values[r.FKColumn()] = related.id
	}
	rec := inst.record()
	if err := st.Save(ctx, rec, extra); err != nil {
		return err
	}
	inst.id = rec.ID
	inst.saved = true
	pending := inst.pending
	inst.pending = nil
	for _, at := range pending {
		if err := f.attach(ctx, st, inst, at); err != nil {
			return err
		}
	}
	return nil
}

// attach applies one staged to-many association once both sides have
// identity.
func (f *Factory) attach(ctx context.Context, st store.Store, owner *Instance, at Attachment) error {
	if err := f.save(ctx, st, at.Related, nil); err != nil {
		return err
	}
	r := at.Relation
	if at.Through != nil {
		at.Through.values[r.OwnerColumn(owner.model)] = owner.id
		at.Through.values[r.TargetColumn()] = at.Related.id
		return f.save(ctx, st, at.Through, nil)
	}
	return st.Attach(ctx, r.JoinTable(owner.model), map[string]any{
		r.OwnerColumn(owner.model): owner.id,
		r.TargetColumn():           at.Related.id,
	})
}

func (f *Factory) storeFor(name string) (store.Store, error) {
	if name == "" {
		name = DefaultStore
	}
	st, ok := f.stores[name]
	if !ok {
		return nil, fmt.Errorf("bakery: unknown store %q", name)
	}
	return st, nil
}

// resolveBuilder returns the active builder, resolving a configured
// builder path exactly once. A failed resolution is fatal: it is
// remembered and returned on every later call.
func (f *Factory) resolveBuilder() (Builder, error) {
	f.builderOnce.Do(func() {
		if f.builder != nil {
			return
		}
		if f.builderPath == "" {
			f.builder = NewBuilder(f.registry)
			return
		}
		v, err := f.resolvePath(f.builderPath)
		if err != nil {
			f.builderErr = err
			return
		}
		switch b := v.(type) {
		case Builder:
			f.builder = b
		case func(context.Context, *schema.Model, *Request) (*Instance, error):
			f.builder = BuildFunc(b)
		default:
			f.builderErr = NewResolutionError(f.builderPath, fmt.Errorf("value of type %T is not a Builder", v))
		}
	})
	if f.builderErr != nil {
		return nil, f.builderErr
	}
	return f.builder, nil
}

func (f *Factory) resolvePath(path string) (any, error) {
	if f.lazy == nil {
		return nil, NewResolutionError(path, fmt.Errorf("no resolver configured"))
	}
	v, err := f.lazy.Resolve(path)
	if err != nil {
		return nil, NewResolutionError(path, err)
	}
	return v, nil
}

// asGenerator adapts a resolved value to a generator function. Plain
// arity-zero functions are accepted alongside descriptor-aware ones.
func asGenerator(path string, v any) (generate.Func, error) {
	switch fn := v.(type) {
	case generate.Func:
		return fn, nil
	case func(*schema.Field) (any, error):
		return fn, nil
	case func() (any, error):
		return func(*schema.Field) (any, error) { return fn() }, nil
	case func() any:
		return func(*schema.Field) (any, error) { return fn(), nil }, nil
	default:
		return nil, NewResolutionError(path, fmt.Errorf("value of type %T is not a generator", v))
	}
}
