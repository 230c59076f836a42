package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SchemaChecker verifies that the search tables exist.
type SchemaChecker interface {
	CheckSchema(ctx context.Context) error
}
