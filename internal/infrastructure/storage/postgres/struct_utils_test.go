package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
)

type mockProduct struct {
	entity.Catalog
	SKU       *string     `db:"sku" json:"sku"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Ignored   string      `db:"-" json:"ignored"`
	NoTag     string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockProduct]()

	for _, expected := range []string{
		"id", "deletion_mark", "version", "created_at", "updated_at",
		"code", "name", "sku", "unit_price",
	} {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "ignored")
}

func TestStructToMap(t *testing.T) {
	sku := "WDG-1"
	p := mockProduct{
		Catalog:   entity.NewCatalog("PRD-001", "Widget"),
		SKU:       &sku,
		UnitPrice: types.MustMoney("9.99"),
		Ignored:   "skip me",
		NoTag:     "skip me too",
	}

	m := StructToMap(p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "PRD-001", m["code"])
	assert.Equal(t, "Widget", m["name"])
	assert.Equal(t, &sku, m["sku"])
	assert.Equal(t, 1, m["version"])
	assert.NotContains(t, m, "-")

	// works through a pointer as well
	m2 := StructToMap(&p)
	assert.Equal(t, m["id"], m2["id"])
}
