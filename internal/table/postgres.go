package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresScheme prefixes sources that name a database table instead of a file.
const PostgresScheme = "pg:"

// PostgresLoader reads a whole database table into a Table.
// Values are taken in their text representation; NULL reads as "".
type PostgresLoader struct {
	pool *pgxpool.Pool
}

// NewPostgresLoader returns a loader backed by pool. A nil pool yields a
// loader that rejects every source with ErrNoDatabase.
func NewPostgresLoader(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

// Load reads "pg:<table>" or "pg:<schema>.<table>".
func (l *PostgresLoader) Load(ctx context.Context, source string) (*Table, error) {
	if l == nil || l.pool == nil {
		return nil, ErrNoDatabase
	}

	ident, err := parseIdentifier(strings.TrimPrefix(source, PostgresScheme))
	if err != nil {
		return nil, err
	}

	// Simple protocol returns every column in text format, which is exactly
	// what the comparison needs.
	rows, err := l.pool.Query(ctx, "SELECT * FROM "+ident.Sanitize(), pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ident.Sanitize(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var data [][]string
	for rows.Next() {
		raw := rows.RawValues()
		record := make([]string, len(raw))
		for i, v := range raw {
			record[i] = string(v)
		}
		data = append(data, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", ident.Sanitize(), err)
	}

	return New(source, columns, data), nil
}

// parseIdentifier splits "schema.table" or "table" into a pgx identifier.
func parseIdentifier(name string) (pgx.Identifier, error) {
	name = strings.TrimSpace(name)
	parts := strings.Split(name, ".")
	if name == "" || len(parts) > 2 {
		return nil, fmt.Errorf("invalid table name %q: want <table> or <schema>.<table>", name)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid table name %q: empty identifier", name)
		}
	}
	return pgx.Identifier(parts), nil
}
