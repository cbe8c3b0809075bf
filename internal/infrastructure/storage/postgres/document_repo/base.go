// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"negocio/internal/core/apperror"
	"negocio/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo holds what every document header table shares.
// Documents are append-only: there is no Update and no Delete.
type BaseDocumentRepo struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	insertCols []string
}

func NewBaseDocumentRepo(txm *postgres.TxManager, tableName, entityName string, insertCols []string) *BaseDocumentRepo {
	return &BaseDocumentRepo{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		insertCols: insertCols,
	}
}

// Builder returns a new squirrel builder.
func (r *BaseDocumentRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseDocumentRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// insertHeader inserts the db-tagged columns of header listed in insertCols.
func (r *BaseDocumentRepo) insertHeader(ctx context.Context, header any) error {
	data := postgres.StructToMap(header)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.entityName)
	}

	filtered := make(map[string]any, len(r.insertCols))
	for _, col := range r.insertCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, r.entityName, data["id"])
	}
	return nil
}

// count runs COUNT(*) over q before pagination is applied.
func (r *BaseDocumentRepo) count(ctx context.Context, q squirrel.SelectBuilder) (int64, error) {
	sql, args, err := r.Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.tableName, err)
	}
	return n, nil
}

// parseOrderBy maps "field" / "-field" onto an allowed, alias-qualified column.
func parseOrderBy(orderBy string, allowed map[string]string, fallback string) (string, error) {
	if strings.TrimSpace(orderBy) == "" {
		return fallback, nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	col, ok := allowed[strings.TrimSpace(field)]
	if !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	return col + " " + direction, nil
}
