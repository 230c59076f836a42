package organisation

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain"
	domorg "github.com/kailas-cloud/labdex/internal/domain/organisation"
)

// Service resolves organisations for the search and the organisation selector.
type Service struct {
	repo Repository
}

// New creates an organisation service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns an organisation by id.
func (s *Service) Get(ctx context.Context, id string) (domorg.Organisation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domorg.Organisation{}, domain.ErrOrganisationNotFound
	}
	org, err := s.repo.Get(ctx, id)
	if err != nil {
		return domorg.Organisation{}, fmt.Errorf("get organisation %s: %w", id, err)
	}
	return org, nil
}

// List returns all organisations in storage order.
func (s *Service) List(ctx context.Context) ([]domorg.Organisation, error) {
	orgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	if orgs == nil {
		orgs = []domorg.Organisation{}
	}
	return orgs, nil
}
