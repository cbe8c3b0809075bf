package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"negocio/internal/core/entity"
)

type testProduct struct {
	entity.Catalog
	Stock    int    `db:"stock"`
	internal string `db:"internal"`
	Ignored  string `db:"-"`
	NoTag    string
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[testProduct]()

	assert.Equal(t, []string{
		"id", "version", "created_at", "updated_at", "name", "description", "stock",
	}, cols)
}

func TestStructToMap(t *testing.T) {
	p := testProduct{Catalog: entity.NewCatalog("Laptop HP", "15 inch"), Stock: 3, internal: "x"}

	m := StructToMap(&p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "Laptop HP", m["name"])
	assert.Equal(t, 3, m["stock"])
	assert.Equal(t, 1, m["version"])
	assert.NotContains(t, m, "internal")
	assert.Len(t, m, 7)

	var nilPtr *testProduct
	assert.Nil(t, StructToMap(nilPtr))
}

func TestWithoutColumns(t *testing.T) {
	assert.Equal(t, []string{"name", "stock"}, WithoutColumns([]string{"id", "name", "version", "stock"}, "id", "version"))
}
