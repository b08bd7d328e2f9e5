// Package generate holds the field generator registry.
//
// A Registry maps each field type tag to a generator function. The
// default registry is seeded with a built-in generator for every type
// the schema package knows about:
//
//	reg := generate.NewRegistry()
//	fn, ok := reg.Resolve(schema.TypeEmail)
//
// Registering a generator replaces any existing one for the same tag;
// the last registration wins:
//
//	reg.Register(schema.TypeEmail, func(f *schema.Field) (any, error) {
//	    return "qa+" + f.Name + "@corp.test", nil
//	})
//
// Registries are safe for concurrent resolution, but registration is a
// startup activity: configure generators before builds run from
// multiple goroutines. Use Clone to register test-local generators
// without touching a shared registry.
package generate
