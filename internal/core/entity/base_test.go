package entity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
)

func TestNewBaseEntity(t *testing.T) {
	b := NewBaseEntity()

	assert.False(t, id.IsNil(b.ID))
	assert.Equal(t, 1, b.Version)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	b.Touch()
	assert.Equal(t, 2, b.Version)
	assert.False(t, b.UpdatedAt.Before(b.CreatedAt))
}

func TestCatalogValidate(t *testing.T) {
	ctx := context.Background()

	c := NewCatalog("  Laptops ", "")
	assert.Equal(t, "Laptops", c.Name)
	require.NoError(t, c.Validate(ctx))

	c.Name = " "
	err := c.Validate(ctx)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	c.Name = strings.Repeat("x", 201)
	assert.Error(t, c.Validate(ctx))
}
