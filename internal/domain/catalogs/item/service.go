package item

import (
	"context"
	"fmt"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx"
	"negocio/internal/domain"
	"negocio/pkg/logger"
)

// Service manages items and the stock counter of their product.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	products  ProductLookup
	stock     StockAdjuster
	txManager tx.Manager
}

func NewService(repo Repository, products ProductLookup, stock StockAdjuster, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "item",
	})
	svc := &Service{CatalogService: base, repo: repo, products: products, stock: stock, txManager: txm}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnDuringCreate(func(ctx context.Context, it *Item) error {
		return svc.stock.AdjustStock(ctx, it.ProductID, 1)
	})
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)
	base.Hooks().OnDuringDelete(func(ctx context.Context, it *Item) error {
		return svc.stock.AdjustStock(ctx, it.ProductID, -1)
	})
	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, it *Item) error {
	if err := s.checkProduct(ctx, it.ProductID); err != nil {
		return err
	}
	return s.checkSerialUnique(ctx, it)
}

// An item never changes product; only its serial may be corrected.
func (s *Service) prepareForUpdate(ctx context.Context, it *Item) error {
	current, err := s.repo.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	if current.ProductID != it.ProductID {
		return apperror.NewValidation("item cannot be moved to another product").
			WithDetail("field", "productId")
	}
	return s.checkSerialUnique(ctx, it)
}

// Receive registers a delivery of serialized units and raises stock by their count.
func (s *Service) Receive(ctx context.Context, productID id.ID, serials []string) ([]*Item, error) {
	if len(serials) == 0 {
		return nil, apperror.NewValidation("at least one serial is required").
			WithDetail("field", "serials")
	}
	seen := make(map[string]struct{}, len(serials))
	items := make([]*Item, 0, len(serials))
	for _, serial := range serials {
		it := NewItem(productID, serial)
		if err := it.Validate(ctx); err != nil {
			return nil, err
		}
		if _, dup := seen[it.Serial]; dup {
			return nil, apperror.NewValidation("duplicate serial in request").
				WithDetail("serial", it.Serial)
		}
		seen[it.Serial] = struct{}{}
		items = append(items, it)
	}

	if err := s.checkProduct(ctx, productID); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateMany(ctx, items); err != nil {
			return fmt.Errorf("receive items: %w", err)
		}
		return s.stock.AdjustStock(ctx, productID, len(items))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "items received", "product_id", productID, "count", len(items))
	return items, nil
}

func (s *Service) FindBySerial(ctx context.Context, serial string) (*Item, error) {
	it, err := s.repo.FindBySerial(ctx, serial)
	if err != nil && apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("item", serial)
	}
	return it, err
}

func (s *Service) checkProduct(ctx context.Context, productID id.ID) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("product does not exist").
			WithDetail("field", "productId").
			WithDetail("value", productID.String())
	}
	return nil
}

func (s *Service) checkSerialUnique(ctx context.Context, it *Item) error {
	existing, err := s.repo.FindBySerial(ctx, it.Serial)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != it.ID {
		return apperror.NewDuplicate("item", "serial", it.Serial)
	}
	return nil
}
