package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/id"
	"negocio/internal/core/tx/txtest"
)

type widget struct {
	entity.Catalog
}

type memRepo struct {
	rows      map[id.ID]*widget
	createErr error
}

func newMemRepo() *memRepo { return &memRepo{rows: map[id.ID]*widget{}} }

func (r *memRepo) Create(_ context.Context, w *widget) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[w.ID] = w
	return nil
}

func (r *memRepo) GetByID(_ context.Context, key id.ID) (*widget, error) {
	w, ok := r.rows[key]
	if !ok {
		return nil, apperror.NewNotFound("row", key)
	}
	return w, nil
}

func (r *memRepo) Update(_ context.Context, w *widget) error {
	r.rows[w.ID] = w
	return nil
}

func (r *memRepo) Delete(_ context.Context, key id.ID) error {
	delete(r.rows, key)
	return nil
}

func (r *memRepo) List(_ context.Context, f ListFilter) (ListResult[*widget], error) {
	res := ListResult[*widget]{Limit: f.Limit, Offset: f.Offset}
	for _, w := range r.rows {
		res.Items = append(res.Items, w)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *memRepo) Exists(_ context.Context, key id.ID) (bool, error) {
	_, ok := r.rows[key]
	return ok, nil
}

func newWidgetService(repo *memRepo) (*CatalogService[*widget], *txtest.Manager) {
	txm := &txtest.Manager{}
	return NewCatalogService(CatalogServiceConfig[*widget]{Repo: repo, TxManager: txm, EntityName: "widget"}), txm
}

func TestCatalogService_CreateRunsHooksInOrder(t *testing.T) {
	repo := newMemRepo()
	svc, txm := newWidgetService(repo)

	var order []HookEvent
	for _, ev := range []HookEvent{BeforeCreate, DuringCreate, AfterCreate} {
		ev := ev
		svc.Hooks().On(ev, func(ctx context.Context, w *widget) error {
			order = append(order, ev)
			return nil
		})
	}

	w := &widget{Catalog: entity.NewCatalog("Gadget", "")}
	require.NoError(t, svc.Create(context.Background(), w))

	assert.Equal(t, []HookEvent{BeforeCreate, DuringCreate, AfterCreate}, order)
	assert.Equal(t, 1, txm.Calls)
	assert.Contains(t, repo.rows, w.ID)
}

func TestCatalogService_CreateValidationStopsEarly(t *testing.T) {
	repo := newMemRepo()
	svc, txm := newWidgetService(repo)

	err := svc.Create(context.Background(), &widget{Catalog: entity.NewCatalog("", "")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, txm.Calls)
}

func TestCatalogService_DuringCreateFailureRollsBack(t *testing.T) {
	repo := newMemRepo()
	svc, txm := newWidgetService(repo)
	rolledBack := false
	txm.OnRollback = func() { rolledBack = true }

	svc.Hooks().OnDuringCreate(func(ctx context.Context, w *widget) error {
		return apperror.NewConflict("nope")
	})

	err := svc.Create(context.Background(), &widget{Catalog: entity.NewCatalog("Gadget", "")})
	require.Error(t, err)
	assert.True(t, rolledBack)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCatalogService_CreateRepoErrorIsWrapped(t *testing.T) {
	repo := newMemRepo()
	repo.createErr = errors.New("disk full")
	svc, _ := newWidgetService(repo)

	err := svc.Create(context.Background(), &widget{Catalog: entity.NewCatalog("Gadget", "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create widget")
}

func TestCatalogService_GetByIDNotFound(t *testing.T) {
	svc, _ := newWidgetService(newMemRepo())

	_, err := svc.GetByID(context.Background(), id.New())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "widget not found", appErr.Message)
}

func TestCatalogService_DeleteRunsDuringDeleteInTx(t *testing.T) {
	repo := newMemRepo()
	svc, txm := newWidgetService(repo)
	w := &widget{Catalog: entity.NewCatalog("Gadget", "")}
	repo.rows[w.ID] = w

	called := false
	svc.Hooks().OnDuringDelete(func(ctx context.Context, got *widget) error {
		called = true
		assert.Equal(t, w.ID, got.ID)
		return nil
	})

	require.NoError(t, svc.Delete(context.Background(), w.ID))
	assert.True(t, called)
	assert.Equal(t, 1, txm.Calls)
	assert.Empty(t, repo.rows)
}
