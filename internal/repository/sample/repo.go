package sample

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kailas-cloud/labdex/internal/db"
	"github.com/kailas-cloud/labdex/internal/domain"
	domsample "github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
)

// Repo implements usecase/search.Executor on the result, profile and organisation tables.
type Repo struct {
	conn db.Conn
}

// New creates a sample repository.
func New(conn db.Conn) *Repo {
	return &Repo{conn: conn}
}

// Count returns the number of results matching expr.
func (r *Repo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	q, err := scoped(r.conn.DB(ctx), expr)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrQueryFailed, db.Translate(db.OpCount, err))
	}
	return int(n), nil
}

// FetchPage returns at most limit results starting at offset.
func (r *Repo) FetchPage(
	ctx context.Context, expr filter.Expression, offset, limit int,
) ([]domsample.Result, error) {
	q, err := scoped(r.conn.DB(ctx), expr)
	if err != nil {
		return nil, err
	}
	return find(q.Offset(offset).Limit(limit))
}

// FetchAll returns every result matching expr.
func (r *Repo) FetchAll(ctx context.Context, expr filter.Expression) ([]domsample.Result, error) {
	q, err := scoped(r.conn.DB(ctx), expr)
	if err != nil {
		return nil, err
	}
	return find(q)
}

func find(q *gorm.DB) ([]domsample.Result, error) {
	var rows []row
	if err := q.Select(selectColumns).Order(orderBy).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryFailed, db.Translate(db.OpSelect, err))
	}
	return toDomain(rows), nil
}

// scoped joins result to its profile and organisation, pins the organisation and
// applies the predicates in order.
func scoped(tx *gorm.DB, expr filter.Expression) (*gorm.DB, error) {
	q := tx.Table("result").
		Joins("JOIN profile ON profile.profile_id = result.profile_id").
		Joins("JOIN organisation ON organisation.organisation_id = profile.organisation_id").
		Where("organisation.organisation_id = ?", expr.OrganisationID())

	for _, p := range expr.Predicates() {
		cond, err := condition(p)
		if err != nil {
			return nil, err
		}
		q = q.Where(cond, p.Pattern())
	}
	return q, nil
}

func condition(p filter.Predicate) (string, error) {
	switch p.Field() {
	case filter.ProfileName:
		return `profile.name ILIKE ? ESCAPE '\'`, nil
	case filter.SampleID:
		return `result.sample_id ILIKE ? ESCAPE '\'`, nil
	case filter.ActivateDate:
		return "LEFT(result.activate_time, 10) = ?", nil
	case filter.ResultDate:
		return "LEFT(result.result_time, 10) = ?", nil
	case filter.ProfileID:
		return "profile.profile_id = ?", nil
	default:
		return "", fmt.Errorf("%w: unsupported field %q", domain.ErrQueryFailed, p.Field())
	}
}
