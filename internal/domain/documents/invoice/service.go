package invoice

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx"
	"negocio/internal/domain"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/pricing"
	"negocio/pkg/logger"
)

var tracer = otel.Tracer("negocio/invoice")

// DefaultMaxAttempts bounds restarts after serialization failures.
const DefaultMaxAttempts = 3

// Deps are the collaborators of the invoice workflow.
type Deps struct {
	Invoices  Repository
	Clients   ClientFinder
	Products  ProductStore
	Items     ItemStore
	Numbers   NumberAllocator
	TxManager tx.Manager

	// MaxAttempts defaults to DefaultMaxAttempts
	MaxAttempts int

	// Retryable reports driver errors that warrant restarting the workflow
	Retryable func(error) bool
}

// Service creates and reads invoices.
type Service struct {
	invoices    Repository
	clients     ClientFinder
	products    ProductStore
	items       ItemStore
	numbers     NumberAllocator
	txManager   tx.Manager
	maxAttempts int
	retryable   func(error) bool
}

func NewService(d Deps) *Service {
	attempts := d.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	return &Service{
		invoices:    d.Invoices,
		clients:     d.Clients,
		products:    d.Products,
		items:       d.Items,
		numbers:     d.Numbers,
		txManager:   d.TxManager,
		maxAttempts: attempts,
		retryable:   d.Retryable,
	}
}

// Create validates the request, reserves the requested serials and persists the
// invoice, its lines, the new stock levels and the item deletions atomically.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Invoice, error) {
	method, err := req.Validate()
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "invoice.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("invoice.payment_method", string(method)),
		attribute.Int("invoice.lines", len(req.Lines)),
	)

	for attempt := 1; ; attempt++ {
		inv, err := s.createOnce(ctx, req, method)
		if err == nil {
			span.SetAttributes(attribute.String("invoice.number", inv.Number))
			logger.Info(ctx, "invoice created",
				"id", inv.ID,
				"number", inv.Number,
				"client", inv.ClientName,
				"total", inv.Total.StringFixed(2),
				"attempt", attempt,
			)
			return inv, nil
		}

		if !s.isRetryable(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invoice rejected")
			return nil, err
		}
		if attempt >= s.maxAttempts {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invoice conflict")
			return nil, apperror.NewConcurrentModification("invoice", req.ClientName).WithCause(err)
		}
		logger.Warn(ctx, "invoice creation conflicted, retrying", "attempt", attempt, "error", err)
	}
}

func (s *Service) isRetryable(err error) bool {
	if apperror.IsConcurrentModification(err) {
		return true
	}
	return s.retryable != nil && s.retryable(err)
}

// createOnce runs one attempt. Every lookup happens before the first write.
func (s *Service) createOnce(ctx context.Context, req CreateRequest, method PaymentMethod) (*Invoice, error) {
	var inv *Invoice

	err := s.txManager.RunInTransactionWithOptions(ctx, tx.Options{Isolation: tx.Serializable}, func(ctx context.Context) error {
		c, err := s.clients.FindByFullName(ctx, req.ClientName)
		if err != nil {
			return err
		}
		inv = newInvoice(c, method)

		var quote pricing.Quote
		touched := make(map[string]*product.Product)
		var touchedOrder []*product.Product
		var consumed []id.ID

		for _, lr := range req.Lines {
			key := strings.ToLower(lr.ProductName)
			p, ok := touched[key]
			if !ok {
				p, err = s.products.FindByNameForUpdate(ctx, lr.ProductName)
				if err != nil {
					if apperror.IsNotFound(err) {
						return apperror.NewNotFound("product", lr.ProductName)
					}
					return err
				}
				touched[key] = p
				touchedOrder = append(touchedOrder, p)
			}

			items, err := s.items.LockBySerials(ctx, p.ID, lr.Serials)
			if err != nil {
				return fmt.Errorf("lock items of %s: %w", p.Name, err)
			}
			if len(items) < len(lr.Serials) {
				return apperror.NewInvalidSerials(p.Name, missingSerials(lr.Serials, items))
			}

			qty := len(lr.Serials)
			if err := p.Reserve(qty); err != nil {
				return err
			}

			amounts := quote.AddLine(pricing.UnitPrice(p, method.Settlement()), qty)
			inv.addLine(p, amounts, lr.Serials)
			for _, it := range items {
				consumed = append(consumed, it.ID)
			}
		}

		inv.setTotals(quote.Totals())
		if err := inv.Validate(ctx); err != nil {
			return err
		}

		return s.commit(ctx, inv, touchedOrder, consumed)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// commit writes everything the attempt computed. The caller's transaction makes it atomic.
func (s *Service) commit(ctx context.Context, inv *Invoice, touched []*product.Product, consumed []id.ID) error {
	number, err := s.numbers.Next(ctx)
	if err != nil {
		return fmt.Errorf("allocate invoice number: %w", err)
	}
	inv.Number = number

	if err := s.invoices.Create(ctx, inv); err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}

	stock := make(map[id.ID]int, len(touched))
	for _, p := range touched {
		stock[p.ID] = p.Stock
	}
	if err := s.products.SetStock(ctx, stock); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	deleted, err := s.items.DeleteByIDs(ctx, consumed)
	if err != nil {
		return fmt.Errorf("consume items: %w", err)
	}
	if deleted != int64(len(consumed)) {
		return apperror.NewConcurrentModification("item", inv.Number).
			WithDetail("expected", len(consumed)).
			WithDetail("deleted", deleted)
	}
	return nil
}

func missingSerials(requested []string, found []*item.Item) []string {
	have := make(map[string]struct{}, len(found))
	for _, it := range found {
		have[it.Serial] = struct{}{}
	}
	var missing []string
	for _, serial := range requested {
		if _, ok := have[serial]; !ok {
			missing = append(missing, serial)
		}
	}
	return missing
}

// GetByID returns the invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}

	lines, err := s.invoices.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines
	return inv, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.invoices.List(ctx, filter)
}
