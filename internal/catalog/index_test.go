package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/model"
)

func TestBuildIndexCodeLookupIsCaseInsensitive(t *testing.T) {
	products := []*model.Product{
		{ID: "1", Code: "SKU-1"},
		{ID: "2", Code: "fil-200"},
	}

	idx := BuildIndex(products)

	for _, p := range products {
		got := idx.ByCode(strings.ToLower(p.Code))
		require.NotNil(t, got)
		assert.Equal(t, strings.ToLower(p.Code), strings.ToLower(got.Code))

		assert.Same(t, got, idx.ByCode(strings.ToUpper(p.Code)))
	}
}

func TestBuildIndexSkipsEmptyKeys(t *testing.T) {
	idx := BuildIndex([]*model.Product{
		{ID: "  ", Code: "", VendorCode: "   "},
		nil,
		{ID: "7", DocumentID: "doc-7"},
	})

	assert.Equal(t, 2, idx.Size())
	assert.Nil(t, idx.ByIdentifier(""))
	assert.Nil(t, idx.ByCode(""))
	assert.NotNil(t, idx.ByIdentifier("7"))
	assert.NotNil(t, idx.ByIdentifier("doc-7"))
}

func TestByIdentifierPrefersIDMap(t *testing.T) {
	byID := &model.Product{ID: "42"}
	byDoc := &model.Product{ID: "9", DocumentID: "42"}

	idx := BuildIndex([]*model.Product{byDoc, byID})

	assert.Same(t, byID, idx.ByIdentifier("42"))
}

func TestByVendorCodeRejectsAmbiguous(t *testing.T) {
	unique := &model.Product{ID: "1", VendorCode: "ACME-9"}
	shared1 := &model.Product{ID: "2", VendorCode: "BOSCH-1"}
	shared2 := &model.Product{ID: "3", VendorCode: "bosch-1"}

	idx := BuildIndex([]*model.Product{unique, shared1, shared2})

	assert.Same(t, unique, idx.ByVendorCode("acme-9"))
	assert.Nil(t, idx.ByVendorCode("BOSCH-1"), "shared vendor code must not resolve")
}

func TestEmptyIndex(t *testing.T) {
	idx := BuildIndex(nil)

	assert.Equal(t, 0, idx.Size())
	assert.Nil(t, idx.ByIdentifier("1"))
	assert.Nil(t, idx.ByCode("sku-1"))
	assert.Nil(t, idx.ByVendorCode("v"))
}
