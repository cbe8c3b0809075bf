package client

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx"
	"negocio/internal/domain"
)

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.CatalogService[*Client]
	repo Repository
}

func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "client",
	})

	svc := &Service{CatalogService: base, repo: repo}

	base.Hooks().OnBeforeCreate(svc.checkTaxIDUnique)
	base.Hooks().OnBeforeUpdate(svc.checkTaxIDUnique)

	return svc
}

// FindByFullName resolves "Juan Pérez" style names; see SplitFullName.
func (s *Service) FindByFullName(ctx context.Context, fullName string) (*Client, error) {
	first, last := SplitFullName(fullName)
	c, err := s.repo.FindByName(ctx, first, last)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", strings.TrimSpace(fullName))
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) checkTaxIDUnique(ctx context.Context, c *Client) error {
	if c.TaxID == nil || *c.TaxID == "" {
		return nil
	}
	exists, err := s.taxIDTaken(ctx, *c.TaxID, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("client", "taxId", *c.TaxID)
	}
	return nil
}

func (s *Service) taxIDTaken(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
