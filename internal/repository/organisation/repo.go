package organisation

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/db"
	"github.com/kailas-cloud/labdex/internal/db/postgres"
	"github.com/kailas-cloud/labdex/internal/domain"
	domorg "github.com/kailas-cloud/labdex/internal/domain/organisation"
)

// Repo implements usecase/organisation.Repository.
type Repo struct {
	conn db.Conn
}

// New creates an organisation repository.
func New(conn db.Conn) *Repo {
	return &Repo{conn: conn}
}

// Get returns the organisation with the given id.
func (r *Repo) Get(ctx context.Context, id string) (domorg.Organisation, error) {
	var m postgres.Organisation
	err := r.conn.DB(ctx).Where("organisation_id = ?", id).Take(&m).Error
	if err != nil {
		err = db.Translate(db.OpSelect, err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return domorg.Organisation{}, domain.ErrOrganisationNotFound
		}
		return domorg.Organisation{}, fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
	}
	return toDomain(m), nil
}

// List returns all organisations ordered by name.
func (r *Repo) List(ctx context.Context) ([]domorg.Organisation, error) {
	var ms []postgres.Organisation
	if err := r.conn.DB(ctx).Order("name, organisation_id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryFailed, db.Translate(db.OpSelect, err))
	}
	out := make([]domorg.Organisation, len(ms))
	for i, m := range ms {
		out[i] = toDomain(m)
	}
	return out, nil
}

func toDomain(m postgres.Organisation) domorg.Organisation {
	return domorg.New(m.OrganisationID, m.Name)
}
