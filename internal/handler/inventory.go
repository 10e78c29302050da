package handler

import (
	"encoding/json"
	"net/http"

	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/response"
)

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.inventoryService.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.List(w, view.Items, response.Meta{
		Count:  len(view.Items),
		Source: view.Source,
		Stale:  view.Stale,
	})
}

// Create handles POST /api/v1/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CreateInventoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	item, err := h.inventoryService.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, item)
}
