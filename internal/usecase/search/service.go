package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/page"
	"github.com/kailas-cloud/labdex/internal/domain/search/params"
	"github.com/kailas-cloud/labdex/internal/domain/search/view"
	"github.com/kailas-cloud/labdex/internal/logger"
	"github.com/kailas-cloud/labdex/internal/metrics"
)

// Service searches an organisation's sample results.
type Service struct {
	exec Executor
	orgs OrganisationReader
}

// New creates a search service.
func New(exec Executor, orgs OrganisationReader) *Service {
	return &Service{exec: exec, orgs: orgs}
}

// Search builds the organisation-scoped filter, runs it (paginated when a page was
// requested) and projects the rows into the response envelope.
func (s *Service) Search(
	ctx context.Context, organisationID string, p params.Params,
) (env view.Envelope, err error) {
	start := time.Now()
	_, paginated := p.Page()
	var expr filter.Expression
	defer func() {
		metrics.ObserveSearch(paginated, !expr.IsEmpty(), err, len(env.Data), time.Since(start).Seconds())
	}()

	org, err := s.orgs.Get(ctx, organisationID)
	if err != nil {
		return view.Envelope{}, fmt.Errorf("get organisation: %w", err)
	}

	expr = filter.Build(org.ID(), p)

	results, meta, err := s.fetch(ctx, expr, p)
	if err != nil {
		return view.Envelope{}, err
	}

	env = view.NewEnvelope(meta, results, org)

	logger.FromContext(ctx).Debug("search completed",
		zap.String("organisation_id", org.ID()),
		zap.Bool("extended_fields", org.ExtendedFields()),
		zap.Int("predicates", len(expr.Predicates())),
		zap.Int("total", meta.Total),
		zap.Int("returned", len(env.Data)),
		zap.Duration("duration", time.Since(start)),
	)
	return env, nil
}

func (s *Service) fetch(
	ctx context.Context, expr filter.Expression, p params.Params,
) ([]sample.Result, page.Meta, error) {
	current, ok := p.Page()
	if !ok {
		results, err := s.exec.FetchAll(ctx, expr)
		if err != nil {
			return nil, page.Meta{}, fmt.Errorf("fetch all: %w", err)
		}
		return results, page.Unpaginated(len(results)), nil
	}

	total, err := s.exec.Count(ctx, expr)
	if err != nil {
		return nil, page.Meta{}, fmt.Errorf("count: %w", err)
	}

	meta := page.Compute(total, current)
	if !meta.InRange() {
		return nil, meta, nil
	}

	results, err := s.exec.FetchPage(ctx, expr, meta.Offset, meta.Limit)
	if err != nil {
		return nil, page.Meta{}, fmt.Errorf("fetch page: %w", err)
	}
	if len(results) > meta.Limit {
		results = results[:meta.Limit]
	}
	return results, meta, nil
}
