package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/response"
)

// sessionIDHeader carries the anonymous cart session id chosen by the
// storefront client.
const sessionIDHeader = "X-Session-ID"

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartService.Get(r.Context(), r.Header.Get(sessionIDHeader))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var input model.AddCartItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	view, err := h.cartService.AddItem(r.Context(), r.Header.Get(sessionIDHeader), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// UpdateQuantityRequest is the payload for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/v1/cart/items/{item_id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	view, err := h.cartService.UpdateQuantity(r.Context(), r.Header.Get(sessionIDHeader), itemID, req.Quantity)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// RemoveItem handles DELETE /api/v1/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	view, err := h.cartService.RemoveItem(r.Context(), r.Header.Get(sessionIDHeader), itemID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), r.Header.Get(sessionIDHeader)); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
