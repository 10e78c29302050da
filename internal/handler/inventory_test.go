package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
)

// fakeInventoryService stubs the service layer for handler tests.
type fakeInventoryService struct {
	view    *model.InventoryView
	created *model.NormalizedItem
	err     error
}

func (f *fakeInventoryService) List(_ context.Context) (*model.InventoryView, error) {
	return f.view, f.err
}

func (f *fakeInventoryService) Reconcile(_ context.Context) (*model.InventoryView, error) {
	return f.view, f.err
}

func (f *fakeInventoryService) Create(_ context.Context, _ model.CreateInventoryInput) (*model.NormalizedItem, error) {
	return f.created, f.err
}

var _ service.InventoryService = (*fakeInventoryService)(nil)

func TestInventoryListResponseEnvelope(t *testing.T) {
	h := NewInventoryHandler(&fakeInventoryService{
		view: &model.InventoryView{
			Items:  []model.NormalizedItem{{ID: "inv-1", Name: "Filtro"}},
			Source: "live",
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                   `json:"success"`
		Data    []model.NormalizedItem `json:"data"`
		Meta    struct {
			Count  int    `json:"count"`
			Source string `json:"source"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Filtro", body.Data[0].Name)
	assert.Equal(t, 1, body.Meta.Count)
	assert.Equal(t, "live", body.Meta.Source)
}

func TestInventoryListUpstreamError(t *testing.T) {
	h := NewInventoryHandler(&fakeInventoryService{
		err: apierror.Upstream("No se pudo cargar el inventario real.", nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Success)
	assert.Equal(t, "UPSTREAM_ERROR", body.Error.Code)
	assert.Equal(t, "No se pudo cargar el inventario real.", body.Error.Message)
}

func TestInventoryCreate(t *testing.T) {
	h := NewInventoryHandler(&fakeInventoryService{
		created: &model.NormalizedItem{ID: "inv-9", Name: "Amortiguador"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory",
		strings.NewReader(`{"product":1,"quantity":2}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestInventoryCreateRejectsInvalidJSON(t *testing.T) {
	h := NewInventoryHandler(&fakeInventoryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
