package item

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx/txtest"
	"negocio/internal/domain"
)

type memRepo struct {
	rows          map[id.ID]*Item
	createManyErr error
}

func newMemRepo() *memRepo { return &memRepo{rows: map[id.ID]*Item{}} }

func (r *memRepo) Create(_ context.Context, it *Item) error  { r.rows[it.ID] = it; return nil }
func (r *memRepo) Update(_ context.Context, it *Item) error  { r.rows[it.ID] = it; return nil }
func (r *memRepo) Delete(_ context.Context, key id.ID) error { delete(r.rows, key); return nil }

func (r *memRepo) GetByID(_ context.Context, key id.ID) (*Item, error) {
	if it, ok := r.rows[key]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, apperror.NewNotFound("item", key)
}

func (r *memRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*Item], error) {
	return domain.ListResult[*Item]{}, nil
}

func (r *memRepo) Exists(_ context.Context, key id.ID) (bool, error) {
	_, ok := r.rows[key]
	return ok, nil
}

func (r *memRepo) FindBySerial(_ context.Context, serial string) (*Item, error) {
	for _, it := range r.rows {
		if it.Serial == serial {
			return it, nil
		}
	}
	return nil, apperror.NewNotFound("item", serial)
}

func (r *memRepo) CreateMany(_ context.Context, items []*Item) error {
	if r.createManyErr != nil {
		return r.createManyErr
	}
	for _, it := range items {
		r.rows[it.ID] = it
	}
	return nil
}

func (r *memRepo) LockBySerials(context.Context, id.ID, []string) ([]*Item, error) { return nil, nil }

func (r *memRepo) DeleteByIDs(context.Context, []id.ID) (int64, error) { return 0, nil }

type stockLedger map[id.ID]int

func (s stockLedger) AdjustStock(_ context.Context, productID id.ID, delta int) error {
	s[productID] += delta
	return nil
}

func (s stockLedger) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := s[productID]
	return ok, nil
}

func newTestService() (*Service, *memRepo, stockLedger, id.ID) {
	product := id.New()
	repo := newMemRepo()
	stock := stockLedger{product: 0}
	return NewService(repo, stock, stock, &txtest.Manager{}), repo, stock, product
}

func TestService_CreateAndDeleteAdjustStock(t *testing.T) {
	svc, repo, stock, product := newTestService()
	ctx := context.Background()

	it := NewItem(product, "SN-LAPTOP-001")
	require.NoError(t, svc.Create(ctx, it))
	assert.Equal(t, 1, stock[product])

	require.NoError(t, svc.Delete(ctx, it.ID))
	assert.Equal(t, 0, stock[product])
	assert.Empty(t, repo.rows)
}

func TestService_CreateRejectsDuplicateSerial(t *testing.T) {
	svc, _, stock, product := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, NewItem(product, "SN-1")))
	err := svc.Create(ctx, NewItem(product, "SN-1"))
	assert.Equal(t, apperror.CodeDuplicate, apperror.From(err).Code)
	assert.Equal(t, 1, stock[product])
}

func TestService_CreateRequiresProduct(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.Create(context.Background(), NewItem(id.New(), "SN-1"))
	assert.Equal(t, "product does not exist", apperror.From(err).Message)
}

func TestService_UpdateCannotMoveItem(t *testing.T) {
	svc, _, _, product := newTestService()
	ctx := context.Background()

	it := NewItem(product, "SN-1")
	require.NoError(t, svc.Create(ctx, it))

	moved := *it
	moved.ProductID = id.New()
	err := svc.Update(ctx, &moved)
	assert.Equal(t, "productId", apperror.From(err).Details["field"])
}

func TestService_Receive(t *testing.T) {
	svc, repo, stock, product := newTestService()
	ctx := context.Background()

	items, err := svc.Receive(ctx, product, []string{"SN-1", " SN-2 ", "SN-3"})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "SN-2", items[1].Serial)
	assert.Len(t, repo.rows, 3)
	assert.Equal(t, 3, stock[product])
}

func TestService_ReceiveRejectsBadInput(t *testing.T) {
	svc, repo, stock, product := newTestService()
	ctx := context.Background()

	_, err := svc.Receive(ctx, product, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Receive(ctx, product, []string{"SN-1", "SN-1"})
	assert.Equal(t, "duplicate serial in request", apperror.From(err).Message)

	_, err = svc.Receive(ctx, product, []string{"bad serial!"})
	assert.Equal(t, "invalid serial format", apperror.From(err).Message)

	repo.createManyErr = errors.New("copy failed")
	_, err = svc.Receive(ctx, product, []string{"SN-9"})
	require.Error(t, err)
	assert.Equal(t, 0, stock[product])
}

func TestValidateSerial(t *testing.T) {
	for _, ok := range []string{"SN-LAPTOP-001", "A", "abc.123/x_9"} {
		assert.NoError(t, ValidateSerial(ok), ok)
	}
	for _, bad := range []string{"", "  ", "-leading", "has space"} {
		assert.Error(t, ValidateSerial(bad), bad)
	}
}
