package sample

import (
	"context"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryConn hands out sessions that build SQL without a server.
type dryConn struct {
	db *gorm.DB
}

func (c *dryConn) DB(ctx context.Context) *gorm.DB { return c.db.WithContext(ctx) }

func newDryConn(t *testing.T) *dryConn {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost port=5432 user=labdex dbname=labdex sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return &dryConn{db: gdb}
}
