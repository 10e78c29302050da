package handler

import (
	"net/http"

	"github.com/spf13/cast"

	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/response"
)

// ProvidersHandler handles provider HTTP requests.
type ProvidersHandler struct {
	providersService service.ProvidersService
}

// NewProvidersHandler creates a new providers handler.
func NewProvidersHandler(providersService service.ProvidersService) *ProvidersHandler {
	return &ProvidersHandler{
		providersService: providersService,
	}
}

// List handles GET /api/v1/providers
func (h *ProvidersHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providersService.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.List(w, providers, response.Meta{Count: len(providers)})
}

// Nearby handles GET /api/v1/providers/nearby?lat=..&lng=..&radius=..&limit=..
func (h *ProvidersHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("lat") == "" || q.Get("lng") == "" {
		response.Error(w, apierror.BadRequest("lat and lng query parameters are required"))
		return
	}

	lat, err := cast.ToFloat64E(q.Get("lat"))
	if err != nil {
		response.Error(w, apierror.BadRequest("lat must be a number"))
		return
	}
	lng, err := cast.ToFloat64E(q.Get("lng"))
	if err != nil {
		response.Error(w, apierror.BadRequest("lng must be a number"))
		return
	}

	radius := cast.ToFloat64(q.Get("radius"))
	limit := cast.ToInt(q.Get("limit"))

	providers, err := h.providersService.Nearby(r.Context(), lat, lng, radius, limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.List(w, providers, response.Meta{Count: len(providers)})
}
