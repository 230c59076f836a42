package organisation

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpg "github.com/kailas-cloud/labdex/internal/db/postgres"
)

type dryConn struct {
	db *gorm.DB
}

func (c *dryConn) DB(ctx context.Context) *gorm.DB { return c.db.WithContext(ctx) }

func newDryConn(t *testing.T) *dryConn {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost port=5432 user=labdex dbname=labdex sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return &dryConn{db: gdb}
}

func TestGet_SQL(t *testing.T) {
	conn := newDryConn(t)
	sql := conn.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var m dbpg.Organisation
		return tx.Where("organisation_id = ?", "org-1").Take(&m)
	})
	if !strings.Contains(sql, `FROM "organisation"`) || !strings.Contains(sql, "organisation_id = 'org-1'") {
		t.Errorf("unexpected SQL: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT 1") {
		t.Errorf("expected LIMIT 1: %s", sql)
	}
}

func TestList_DryRun(t *testing.T) {
	repo := New(newDryConn(t))
	orgs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orgs == nil || len(orgs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", orgs)
	}
}

func TestToDomain_ExtendedFields(t *testing.T) {
	if !toDomain(dbpg.Organisation{OrganisationID: "1", Name: "Circle"}).ExtendedFields() {
		t.Error("Circle should expose extended fields")
	}
	if toDomain(dbpg.Organisation{OrganisationID: "2", Name: "Prenetics"}).ExtendedFields() {
		t.Error("Prenetics should not expose extended fields")
	}
}
