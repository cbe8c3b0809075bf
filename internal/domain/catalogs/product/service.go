package product

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/core/tx"
	"negocio/internal/domain"
)

type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "product",
	})
	svc := &Service{CatalogService: base, repo: repo, categories: categories}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)
	return svc
}

// New products start empty; stock arrives with their Items.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	p.Stock = 0
	return s.checkReferences(ctx, p)
}

func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	ok, err := s.categories.Exists(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("category does not exist").
			WithDetail("field", "categoryId").
			WithDetail("value", p.CategoryID.String())
	}

	existing, err := s.repo.FindByName(ctx, p.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != p.ID {
		return apperror.NewDuplicate("product", "name", p.Name)
	}
	return nil
}

func (s *Service) FindByName(ctx context.Context, name string) (*Product, error) {
	p, err := s.repo.FindByName(ctx, name)
	if err != nil && apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("product", name)
	}
	return p, err
}
