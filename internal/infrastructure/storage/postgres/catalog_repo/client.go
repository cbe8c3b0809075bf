package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"negocio/internal/domain/catalogs/client"
	"negocio/internal/infrastructure/storage/postgres"
)

const clientTable = "clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

var _ client.Repository = (*ClientRepo)(nil)

func NewClientRepo(txm *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm,
			TableConfig{
				Table:        clientTable,
				Entity:       "client",
				SearchCols:   []string{"first_name", "last_name", "email", "tax_id"},
				DefaultOrder: "last_name",
			},
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return new(client.Client) },
		),
	}
}

// FindByName matches both name parts case-insensitively. The oldest client wins on ties.
func (r *ClientRepo) FindByName(ctx context.Context, firstName, lastName string) (*client.Client, error) {
	q := r.baseSelect().
		Where("LOWER(first_name) = LOWER(?)", firstName).
		Where("LOWER(last_name) = LOWER(?)", lastName).
		OrderBy("created_at ASC", "id ASC")

	return r.FindOne(ctx, q, firstName+" "+lastName)
}

func (r *ClientRepo) FindByTaxID(ctx context.Context, taxID string) (*client.Client, error) {
	return r.FindOne(ctx, r.baseSelect().Where(squirrel.Eq{"tax_id": taxID}), taxID)
}
