package organisation

import (
	"context"

	domorg "github.com/kailas-cloud/labdex/internal/domain/organisation"
)

// Repository defines the storage contract for organisations.
type Repository interface {
	Get(ctx context.Context, id string) (domorg.Organisation, error)
	List(ctx context.Context) ([]domorg.Organisation, error)
}
