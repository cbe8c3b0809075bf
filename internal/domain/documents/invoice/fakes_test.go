package invoice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx"
	"negocio/internal/core/types"
	"negocio/internal/domain"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
)

// store is an in-memory database. Transactions run one at a time and
// restore a snapshot when fn fails, like a serializable database would.
type store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	clients  []*client.Client
	products map[id.ID]*product.Product
	items    map[id.ID]*item.Item
	invoices map[id.ID]*Invoice
	seq      int

	txCalls   int
	txOptions []tx.Options

	// failure injection
	createErrs  []error
	deleteErr   error
	setStockErr error
	deleteShort bool
}

var errSerialization = errors.New("could not serialize access")

func newStore() *store {
	return &store{
		products: map[id.ID]*product.Product{},
		items:    map[id.ID]*item.Item{},
		invoices: map[id.ID]*Invoice{},
	}
}

func (s *store) addClient(first, last string) *client.Client {
	c := client.NewClient(first, last)
	s.clients = append(s.clients, c)
	return c
}

func (s *store) addProduct(name, usd, local string, serials ...string) *product.Product {
	p := product.NewProduct(name, "", id.New(), types.MustMoney(usd), types.MustMoney(local))
	p.Stock = len(serials)
	s.products[p.ID] = p
	for _, serial := range serials {
		it := item.NewItem(p.ID, serial)
		s.items[it.ID] = it
	}
	return p
}

func (s *store) product(key id.ID) product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.products[key]
}

func (s *store) serials() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, it := range s.items {
		out = append(out, it.Serial)
	}
	sort.Strings(out)
	return out
}

type snapshot struct {
	products map[id.ID]product.Product
	items    map[id.ID]*item.Item
	invoices map[id.ID]*Invoice
	seq      int
}

func (s *store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		products: map[id.ID]product.Product{},
		items:    map[id.ID]*item.Item{},
		invoices: map[id.ID]*Invoice{},
		seq:      s.seq,
	}
	for k, v := range s.products {
		snap.products[k] = *v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.invoices {
		snap.invoices[k] = v
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = map[id.ID]*product.Product{}
	for k, v := range snap.products {
		p := v
		s.products[k] = &p
	}
	s.items = snap.items
	s.invoices = snap.invoices
	s.seq = snap.seq
}

func (s *store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.RunInTransactionWithOptions(ctx, tx.Options{}, fn)
}

func (s *store) RunInTransactionWithOptions(ctx context.Context, opts tx.Options, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	s.txCalls++
	s.txOptions = append(s.txOptions, opts)
	s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ClientFinder

func (s *store) FindByFullName(_ context.Context, fullName string) (*client.Client, error) {
	first, last := client.SplitFullName(fullName)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if strings.EqualFold(c.FirstName, first) && strings.EqualFold(c.LastName, last) {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", strings.TrimSpace(fullName))
}

// ProductStore

func (s *store) FindByNameForUpdate(_ context.Context, name string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", name)
}

func (s *store) SetStock(_ context.Context, stock map[id.ID]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setStockErr != nil {
		return s.setStockErr
	}
	for k, v := range stock {
		s.products[k].Stock = v
	}
	return nil
}

// ItemStore

func (s *store) LockBySerials(_ context.Context, productID id.ID, serials []string) ([]*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[string]bool{}
	for _, serial := range serials {
		want[serial] = true
	}
	var out []*item.Item
	for _, it := range s.items {
		if it.ProductID == productID && want[it.Serial] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *store) DeleteByIDs(_ context.Context, ids []id.ID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	var n int64
	for _, key := range ids {
		if _, ok := s.items[key]; ok {
			delete(s.items, key)
			n++
		}
	}
	if s.deleteShort && n > 0 {
		n--
	}
	return n, nil
}

// NumberAllocator

func (s *store) Next(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("FAC-2026-%05d", s.seq), nil
}

// Repository

func (s *store) Create(_ context.Context, inv *Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *store) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID)
	}
	cp := *inv
	cp.Lines = nil
	return &cp, nil
}

func (s *store) GetLines(_ context.Context, invoiceID id.ID) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.invoices[invoiceID].Lines...), nil
}

func (s *store) List(_ context.Context, f ListFilter) (domain.ListResult[*Invoice], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := domain.ListResult[*Invoice]{Limit: f.Limit, Offset: f.Offset}
	for _, inv := range s.invoices {
		if f.ClientID != nil && inv.ClientID != *f.ClientID {
			continue
		}
		res.Items = append(res.Items, inv)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (s *store) invoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

func newTestService(s *store) *Service {
	return NewService(Deps{
		Invoices:  s,
		Clients:   s,
		Products:  s,
		Items:     s,
		Numbers:   s,
		TxManager: s,
		Retryable: func(err error) bool { return errors.Is(err, errSerialization) },
	})
}
