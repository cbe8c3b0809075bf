package client

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/tx/txtest"
	"negocio/internal/domain"
)

type memRepo struct {
	rows []*Client
}

func (r *memRepo) Create(_ context.Context, c *Client) error { r.rows = append(r.rows, c); return nil }
func (r *memRepo) Update(context.Context, *Client) error     { return nil }
func (r *memRepo) Delete(context.Context, id.ID) error       { return nil }

func (r *memRepo) GetByID(_ context.Context, key id.ID) (*Client, error) {
	for _, c := range r.rows {
		if c.ID == key {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", key)
}

func (r *memRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*Client], error) {
	return domain.ListResult[*Client]{}, nil
}

func (r *memRepo) Exists(ctx context.Context, key id.ID) (bool, error) {
	_, err := r.GetByID(ctx, key)
	return err == nil, nil
}

// FindByName returns the first inserted match, like the ordered SQL lookup.
func (r *memRepo) FindByName(_ context.Context, first, last string) (*Client, error) {
	for _, c := range r.rows {
		if strings.EqualFold(c.FirstName, first) && strings.EqualFold(c.LastName, last) {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", first+" "+last)
}

func (r *memRepo) FindByTaxID(_ context.Context, taxID string) (*Client, error) {
	for _, c := range r.rows {
		if c.TaxID != nil && *c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", taxID)
}

func TestService_FindByFullName(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &txtest.Manager{})
	ctx := context.Background()

	juan := NewClient("Juan", "Pérez")
	second := NewClient("Juan", "Pérez")
	cher := NewClient("Cher", "")
	maria := NewClient("María", "de la Cruz")
	for _, c := range []*Client{juan, second, cher, maria} {
		require.NoError(t, svc.Create(ctx, c))
	}

	got, err := svc.FindByFullName(ctx, "  juan   pérez ")
	require.NoError(t, err)
	assert.Equal(t, juan.ID, got.ID)

	got, err = svc.FindByFullName(ctx, "Cher")
	require.NoError(t, err)
	assert.Equal(t, cher.ID, got.ID)

	got, err = svc.FindByFullName(ctx, "María de la Cruz")
	require.NoError(t, err)
	assert.Equal(t, maria.ID, got.ID)

	_, err = svc.FindByFullName(ctx, " Pedro Gómez ")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Pedro Gómez", apperror.From(err).Details["key"])
}

func TestService_TaxIDUnique(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &txtest.Manager{})
	ctx := context.Background()

	taxID := "V-12345678"
	first := NewClient("Juan", "Pérez")
	first.TaxID = &taxID
	require.NoError(t, svc.Create(ctx, first))

	dup := NewClient("Ana", "Gómez")
	dup.TaxID = &taxID
	err := svc.Create(ctx, dup)
	assert.Equal(t, apperror.CodeDuplicate, apperror.From(err).Code)
}
