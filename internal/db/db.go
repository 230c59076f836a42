package db

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	SchemaManager
	Conn
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaManager creates and verifies the search tables.
type SchemaManager interface {
	Migrate(ctx context.Context) error
	CheckSchema(ctx context.Context) error
}

// Conn hands out request-scoped gorm sessions.
type Conn interface {
	DB(ctx context.Context) *gorm.DB
}
