package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/model"
)

func entryFromJSON(t *testing.T, raw string) Entry {
	t.Helper()
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	return e
}

func floatP(f float64) *float64 { return &f }

func TestNormalizeRecordMatchByProductID(t *testing.T) {
	product := &model.Product{ID: "1", Name: "Filtro de aceite", Code: "SKU-1", SalePrice: floatP(99.90)}
	idx := BuildIndex([]*model.Product{product})

	rec := entryFromJSON(t, `{"id":"inv-1","productId":1,"quantity":"5"}`)

	item := NormalizeRecord(rec, idx, "")
	require.NotNil(t, item)

	assert.Equal(t, "inv-1", item.ID)
	assert.Equal(t, "Filtro de aceite", item.Name)
	require.NotNil(t, item.SKU)
	assert.Equal(t, "SKU-1", *item.SKU)
	require.NotNil(t, item.Stock)
	assert.Equal(t, float64(5), *item.Stock)
	require.NotNil(t, item.Price)
	assert.InDelta(t, 99.90, *item.Price, 1e-9)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "1", *item.ProductID)
}

func TestNormalizeRecordIdentifierBeatsCode(t *testing.T) {
	byID := &model.Product{ID: "10", Name: "Bujía", Code: "OTHER"}
	byCode := &model.Product{ID: "20", Name: "Pastilla", Code: "SKU-X"}
	idx := BuildIndex([]*model.Product{byID, byCode})

	// Record references byCode's SKU but embeds byID's identifier.
	rec := entryFromJSON(t, `{"id":"inv-2","sku":"SKU-X","product":{"id":10}}`)

	item := NormalizeRecord(rec, idx, "")
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "10", *item.ProductID)
	assert.Equal(t, "Bujía", item.Name)
}

func TestNormalizeRecordMatchByEmbeddedDocumentID(t *testing.T) {
	product := &model.Product{ID: "3", DocumentID: "doc-abc", Name: "Amortiguador"}
	idx := BuildIndex([]*model.Product{product})

	rec := entryFromJSON(t, `{"id":"inv-3","product":{"documentId":"doc-abc"}}`)

	item := NormalizeRecord(rec, idx, "")
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "3", *item.ProductID)
}

func TestNormalizeRecordMatchByBareScalarReference(t *testing.T) {
	product := &model.Product{ID: "77", Name: "Radiador"}
	idx := BuildIndex([]*model.Product{product})

	rec := entryFromJSON(t, `{"id":"inv-4","product":77}`)

	item := NormalizeRecord(rec, idx, "")
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "77", *item.ProductID)
}

func TestNormalizeRecordMatchByCode(t *testing.T) {
	product := &model.Product{ID: "5", Name: "Correa", Code: "COR-5"}
	idx := BuildIndex([]*model.Product{product})

	rec := entryFromJSON(t, `{"id":"inv-5","sku":"cor-5"}`)

	item := NormalizeRecord(rec, idx, "")
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "5", *item.ProductID)
}

func TestNormalizeRecordVendorMatchOnlyWhenUnambiguous(t *testing.T) {
	unique := &model.Product{ID: "1", Name: "Faro", VendorCode: "HELLA-1"}
	shared1 := &model.Product{ID: "2", VendorCode: "NGK-7"}
	shared2 := &model.Product{ID: "3", VendorCode: "NGK-7"}
	idx := BuildIndex([]*model.Product{unique, shared1, shared2})

	matched := NormalizeRecord(entryFromJSON(t, `{"id":"a","vendor":"hella-1"}`), idx, "")
	require.NotNil(t, matched.ProductID)
	assert.Equal(t, "1", *matched.ProductID)

	ambiguous := NormalizeRecord(entryFromJSON(t, `{"id":"b","vendor":"NGK-7"}`), idx, "")
	assert.Nil(t, ambiguous.ProductID, "ambiguous vendor code must leave the product unresolved")
}

func TestNormalizeRecordNoReference(t *testing.T) {
	idx := BuildIndex([]*model.Product{{ID: "1", Code: "SKU-1"}})

	assert.NotPanics(t, func() {
		item := NormalizeRecord(entryFromJSON(t, `{"id":"inv-9","name":"Pieza suelta"}`), idx, "")
		require.NotNil(t, item)
		assert.Nil(t, item.ProductID)
		assert.Equal(t, "Pieza suelta", item.Name)
		assert.Nil(t, item.Price)
		assert.Nil(t, item.Stock)
	})
}

func TestNormalizeRecordFallbackName(t *testing.T) {
	item := NormalizeRecord(entryFromJSON(t, `{"id":"inv-10"}`), BuildIndex(nil), "")
	assert.Equal(t, FallbackProductName, item.Name)
}

func TestNormalizeRecordEmptyIndexUsesInlineFields(t *testing.T) {
	rec := entryFromJSON(t, `{
		"id": "inv-11",
		"quantity": 3,
		"product": {"id": 8, "name": "Bomba de agua", "code": "BOM-8", "retailPrice": "150,00"}
	}`)

	item := NormalizeRecord(rec, BuildIndex(nil), "")

	assert.Equal(t, "Bomba de agua", item.Name)
	require.NotNil(t, item.SKU)
	assert.Equal(t, "BOM-8", *item.SKU)
	require.NotNil(t, item.Price)
	assert.InDelta(t, 150.0, *item.Price, 1e-9)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "8", *item.ProductID)
}

func TestNormalizeRecordPricePriority(t *testing.T) {
	product := &model.Product{
		ID:             "1",
		SalePrice:      floatP(80),
		RetailPrice:    floatP(100),
		WholesalePrice: floatP(60),
	}
	idx := BuildIndex([]*model.Product{product})

	item := NormalizeRecord(entryFromJSON(t, `{"id":"i","productId":1}`), idx, "")
	require.NotNil(t, item.Price)
	assert.Equal(t, float64(80), *item.Price)

	product.SalePrice = nil
	item = NormalizeRecord(entryFromJSON(t, `{"id":"i","productId":1}`), idx, "")
	require.NotNil(t, item.Price)
	assert.Equal(t, float64(100), *item.Price)
}

func TestNormalizeRecordStockFieldPriority(t *testing.T) {
	item := NormalizeRecord(entryFromJSON(t, `{"id":"i","stock":"7","total":9}`), BuildIndex(nil), "")
	require.NotNil(t, item.Stock)
	assert.Equal(t, float64(7), *item.Stock)

	item = NormalizeRecord(entryFromJSON(t, `{"id":"i","quantity":"no"}`), BuildIndex(nil), "")
	assert.Nil(t, item.Stock)
}

func TestNormalizeRecordStatusLabels(t *testing.T) {
	tests := []struct {
		status string
		label  string
	}{
		{"in_stock", "Disponible"},
		{"out_of_stock", "Agotado"},
		{"low_stock", "Stock bajo"},
		{"backorder", "backorder"},
	}

	for _, tt := range tests {
		rec := Entry{"id": "i", "status": tt.status}
		item := NormalizeRecord(rec, BuildIndex(nil), "")
		require.NotNil(t, item.Status)
		assert.Equal(t, tt.status, *item.Status)
		require.NotNil(t, item.StatusLabel)
		assert.Equal(t, tt.label, *item.StatusLabel)
	}
}

func TestNormalizeRecordImageResolution(t *testing.T) {
	rec := entryFromJSON(t, `{
		"id": "inv-img",
		"image": {"data": {"attributes": {"url": "/uploads/record.jpg"}}}
	}`)

	item := NormalizeRecord(rec, BuildIndex(nil), "http://localhost:1337")
	require.NotNil(t, item.Image)
	assert.Equal(t, "http://localhost:1337/uploads/record.jpg", *item.Image)

	// Record image wins over the product image.
	product := &model.Product{ID: "1", Image: "/uploads/product.jpg"}
	idx := BuildIndex([]*model.Product{product})
	rec["productId"] = "1"
	item = NormalizeRecord(rec, idx, "http://localhost:1337")
	require.NotNil(t, item.Image)
	assert.Equal(t, "http://localhost:1337/uploads/record.jpg", *item.Image)
}

func TestNormalizeRecordVendorAndStatusComeFromRecord(t *testing.T) {
	product := &model.Product{ID: "1", Name: "Disco", VendorCode: "BREMBO"}
	idx := BuildIndex([]*model.Product{product})

	rec := entryFromJSON(t, `{"id":"i","productId":1,"vendor":"Taller Norte","stock_status":"low_stock"}`)
	item := NormalizeRecord(rec, idx, "")

	require.NotNil(t, item.Vendor)
	assert.Equal(t, "Taller Norte", *item.Vendor)
	require.NotNil(t, item.Status)
	assert.Equal(t, "low_stock", *item.Status)
	require.NotNil(t, item.Brand)
	assert.Equal(t, "BREMBO", *item.Brand)
}

func TestNormalizeRecordGeneratedIDWhenAbsent(t *testing.T) {
	item := NormalizeRecord(Entry{"name": "Sin id"}, BuildIndex(nil), "")
	assert.NotEmpty(t, item.ID)
}

func TestNormalizeProductAttributesEnvelope(t *testing.T) {
	e := entryFromJSON(t, `{
		"id": 12,
		"attributes": {
			"name": "Alternador",
			"code": "ALT-12",
			"vendor_code": "VAL-3",
			"sale_price": "1.250,00"
		}
	}`)

	p := NormalizeProduct(e)
	require.NotNil(t, p)
	assert.Equal(t, "12", p.ID)
	assert.Equal(t, "Alternador", p.Name)
	assert.Equal(t, "ALT-12", p.Code)
	assert.Equal(t, "VAL-3", p.VendorCode)
	require.NotNil(t, p.SalePrice)
	assert.InDelta(t, 1250.0, *p.SalePrice, 1e-9)
}

func TestNormalizeProductEmpty(t *testing.T) {
	assert.Nil(t, NormalizeProduct(nil))
	assert.Nil(t, NormalizeProduct(Entry{}))
}
