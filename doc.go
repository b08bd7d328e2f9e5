// Package bakery builds test fixtures from entity model descriptions.
//
// Given a model description (ordered field descriptors plus relations)
// the factory produces a fully-populated instance: explicit overrides
// win, schema defaults apply next, optional fields stay unset unless a
// fill directive selects them, and everything else is generated from
// the field registry.
//
//	f := bakery.New()
//	user, err := f.Make(ctx, userModel,
//	    bakery.WithValue("email", "qa@corp.test"),
//	    bakery.FillAll(),
//	)
//
// Prepare runs the identical pipeline but never touches a store:
//
//	draft, err := f.Prepare(ctx, userModel)
//
// To-one relations are built recursively and persisted before their
// owner; to-many relations are attached after the owner has identity,
// building explicit through instances when the association carries
// extra fields.
//
// Custom generators and alternate builders can be selected by dotted
// path through an injected resolver; path resolution happens at first
// use and a failure is a fatal configuration error.
package bakery
