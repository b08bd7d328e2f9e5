// Package sqlstore provides a database/sql-backed store implementation
// for PostgreSQL, MySQL and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/syssam/bakery/store"
)

// Dialect constants for the supported databases.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists records through a SQL connection.
type Store struct {
	conn     ExecQuerier
	dialect  string
	idColumn string
}

// Open opens a database connection for the given dialect and source,
// and wraps it with a Store.
func Open(dialect, source string) (*Store, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", dialect, err)
	}
	return OpenDB(dialect, db), nil
}

// OpenDB wraps the given database/sql.DB with a Store.
func OpenDB(dialect string, db *sql.DB) *Store {
	return New(dialect, db)
}

// New returns a Store over the given connection. The identity column
// defaults to "id".
func New(dialect string, conn ExecQuerier) *Store {
	return &Store{conn: conn, dialect: dialect, idColumn: "id"}
}

// WithIDColumn sets the identity column read back after inserts.
func (s *Store) WithIDColumn(name string) *Store {
	s.idColumn = name
	return s
}

// Dialect returns the store dialect.
func (s *Store) Dialect() string {
	// The driver name may carry a suffix when wrapped (e.g. "sqlite3").
	for _, name := range []string{MySQL, SQLite, Postgres} {
		if strings.HasPrefix(s.dialect, name) {
			return name
		}
	}
	return s.dialect
}

// Close closes the underlying connection if it owns one.
func (s *Store) Close() error {
	if db, ok := s.conn.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}

// Save implements store.Store. Extra save parameters are folded into
// the inserted row as additional columns.
func (s *Store) Save(ctx context.Context, rec *store.Record, extra map[string]any) error {
	if !isValidIdentifier(rec.Table) {
		return fmt.Errorf("sqlstore: invalid table name %q", rec.Table)
	}
	columns := make([]string, 0, len(rec.Columns)+len(extra))
	columns = append(columns, rec.Columns...)
	for _, k := range sortedKeys(extra) {
		columns = append(columns, k)
	}
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		if !isValidIdentifier(c) {
			return fmt.Errorf("sqlstore: invalid column name %q", c)
		}
		if v, ok := rec.Values[c]; ok {
			args = append(args, v)
		} else {
			args = append(args, extra[c])
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		rec.Table, strings.Join(columns, ", "), s.placeholders(len(columns)))
	if s.Dialect() == Postgres {
		query += fmt.Sprintf(" RETURNING %s", s.idColumn)
		var id int64
		if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("sqlstore: insert %s: %w", rec.Table, err)
		}
		rec.ID = id
		return nil
	}
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlstore: insert %s: %w", rec.Table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlstore: insert %s: read identity: %w", rec.Table, err)
	}
	rec.ID = id
	return nil
}

// Attach implements store.Store.
func (s *Store) Attach(ctx context.Context, table string, values map[string]any) error {
	if !isValidIdentifier(table) {
		return fmt.Errorf("sqlstore: invalid table name %q", table)
	}
	columns := sortedKeys(values)
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		if !isValidIdentifier(c) {
			return fmt.Errorf("sqlstore: invalid column name %q", c)
		}
		args = append(args, values[c])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), s.placeholders(len(columns)))
	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlstore: attach %s: %w", table, err)
	}
	return nil
}

// placeholders returns the dialect placeholder list for n arguments.
func (s *Store) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		if s.Dialect() == Postgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ store.Store = (*Store)(nil)
