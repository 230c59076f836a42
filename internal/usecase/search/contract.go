package search

import (
	"context"

	"github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
)

// Executor runs an organisation-scoped filter expression against storage.
type Executor interface {
	Count(ctx context.Context, expr filter.Expression) (int, error)
	FetchPage(ctx context.Context, expr filter.Expression, offset, limit int) ([]sample.Result, error)
	FetchAll(ctx context.Context, expr filter.Expression) ([]sample.Result, error)
}

// OrganisationReader resolves the requesting organisation.
type OrganisationReader interface {
	Get(ctx context.Context, id string) (organisation.Organisation, error)
}
