package table

import (
	"context"
	"strings"
)

// Loader loads a Table from a named source.
type Loader interface {
	Load(ctx context.Context, source string) (*Table, error)
}

// Resolver dispatches a source to the loader that understands it:
// "pg:" sources go to the database, "s3://" sources to the object store,
// everything else is a file path.
type Resolver struct {
	CSV      *CSVLoader
	Postgres *PostgresLoader
	S3       *S3Loader
}

// NewResolver builds a Resolver. postgres may be nil when no database is
// configured; S3 is set separately when an object store is.
func NewResolver(csv *CSVLoader, postgres *PostgresLoader) *Resolver {
	return &Resolver{CSV: csv, Postgres: postgres}
}

// Load implements Loader.
func (r *Resolver) Load(ctx context.Context, source string) (*Table, error) {
	switch {
	case strings.HasPrefix(source, PostgresScheme):
		return r.Postgres.Load(ctx, source)
	case strings.HasPrefix(source, S3Scheme):
		return r.S3.Load(ctx, source)
	}
	return r.CSV.Load(ctx, source)
}
