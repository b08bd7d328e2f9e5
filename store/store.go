// Package store defines the persistence hook the factory saves
// instances through.
//
// The factory itself never interprets storage semantics: it hands a
// fully-built record to a Store and expects identity back. Stores in
// this repository are the in-memory store (store/memstore) used by
// tests and the CLI, and the database/sql-backed store
// (store/sqlstore).
package store

import "context"

// Record is the storage view of a built instance: its table, the
// columns carrying values in field-declaration order, and the values
// themselves. Save assigns ID.
type Record struct {
	Table   string
	Columns []string
	Values  map[string]any
	// ID is the assigned identity, set by Save.
	ID any
}

// Store persists built records.
type Store interface {
	// Save persists the record and assigns its identity. The extra
	// parameters come from the caller's save directive and are passed
	// through verbatim; the factory neither validates nor interprets
	// them.
	Save(ctx context.Context, rec *Record, extra map[string]any) error

	// Attach inserts an association row into the given join table.
	// It is called after both sides of a to-many relation have
	// identity.
	Attach(ctx context.Context, table string, values map[string]any) error
}
