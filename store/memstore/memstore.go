// Package memstore provides an in-memory store implementation. It is
// the default persistence hook for tests and the command line tools.
package memstore

import (
	"context"
	"sync"

	"github.com/syssam/bakery/store"
)

// Row is one persisted record: its assigned identity plus a copy of
// the saved values.
type Row struct {
	ID     int64
	Values map[string]any
	// Extra holds the save parameters forwarded with the record, if any.
	Extra map[string]any
}

// Store is an in-memory store.Store with per-table auto-increment
// identity. The zero value is not usable; call New.
type Store struct {
	mu     sync.Mutex
	seq    map[string]int64
	tables map[string][]Row
	saves  int
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		seq:    make(map[string]int64),
		tables: make(map[string][]Row),
	}
}

// Save implements store.Store. It assigns the next identity for the
// record's table.
func (s *Store) Save(_ context.Context, rec *store.Record, extra map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[rec.Table]++
	id := s.seq[rec.Table]
	rec.ID = id
	s.tables[rec.Table] = append(s.tables[rec.Table], Row{
		ID:     id,
		Values: cloneValues(rec.Values),
		Extra:  cloneValues(extra),
	})
	s.saves++
	return nil
}

// Attach implements store.Store.
func (s *Store) Attach(_ context.Context, table string, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], Row{Values: cloneValues(values)})
	return nil
}

// Rows returns the rows saved or attached to the given table, in
// insertion order.
func (s *Store) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]Row, len(s.tables[table]))
	copy(rows, s.tables[table])
	return rows
}

// Saves returns the number of Save calls made against the store.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Reset drops all state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = make(map[string]int64)
	s.tables = make(map[string][]Row)
	s.saves = 0
}

func cloneValues(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

var _ store.Store = (*Store)(nil)
