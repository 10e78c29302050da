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

// ProductsHandler handles catalog HTTP requests.
type ProductsHandler struct {
	productsService service.ProductsService
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(productsService service.ProductsService) *ProductsHandler {
	return &ProductsHandler{
		productsService: productsService,
	}
}

// List handles GET /api/v1/products
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productsService.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.List(w, products, response.Meta{Count: len(products)})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productsService.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, product)
}

// Create handles POST /api/v1/products
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	product, err := h.productsService.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	product, err := h.productsService.Update(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, product)
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.productsService.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
