package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"autoparts-storefront-api/internal/catalog"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/pkg/apierror"
)

const pathProducts = "/products"

// ProductsService exposes catalog CRUD backed by the CMS.
type ProductsService interface {
	List(ctx context.Context) ([]*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, input model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productsService struct {
	cms *cms.Client
}

// NewProductsService creates the catalog service.
func NewProductsService(client *cms.Client) ProductsService {
	return &productsService{cms: client}
}

func (s *productsService) List(ctx context.Context) ([]*model.Product, error) {
	entries, err := s.cms.GetList(ctx, pathProducts, nil)
	if err != nil {
		log.Printf("[ProductsService] List failed: %v", err)
		return nil, apierror.Upstream("No se pudieron cargar los productos.", err)
	}

	products := make([]*model.Product, 0, len(entries))
	for _, e := range entries {
		if p := catalog.NormalizeProduct(e); p != nil {
			applyNameFallback(p)
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *productsService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, apierror.BadRequest("Identificador de producto requerido.")
	}

	entry, err := s.cms.GetEntity(ctx, pathProducts+"/"+id, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Producto no encontrado.")
		}
		log.Printf("[ProductsService] Get %s failed: %v", id, err)
		return nil, apierror.Upstream("No se pudo cargar el producto.", err)
	}

	p := catalog.NormalizeProduct(entry)
	if p == nil {
		return nil, apierror.NotFound("Producto no encontrado.")
	}
	applyNameFallback(p)
	return p, nil
}

func (s *productsService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, apierror.ValidationError("Datos de producto incompletos.", apierror.FieldError{
			Field:   "name",
			Message: "name is required",
		})
	}

	created, err := s.cms.PostEntity(ctx, pathProducts, productPayload(input))
	if err != nil {
		log.Printf("[ProductsService] Create failed: %v", err)
		return nil, apierror.Upstream("No se pudo crear el producto.", err)
	}

	p := catalog.NormalizeProduct(created)
	if p == nil {
		return nil, apierror.Upstream("No se pudo crear el producto.", nil)
	}
	applyNameFallback(p)
	return p, nil
}

func (s *productsService) Update(ctx context.Context, id string, input model.ProductInput) (*model.Product, error) {
	if id == "" {
		return nil, apierror.BadRequest("Identificador de producto requerido.")
	}

	updated, err := s.cms.PutEntity(ctx, pathProducts+"/"+id, productPayload(input))
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Producto no encontrado.")
		}
		log.Printf("[ProductsService] Update %s failed: %v", id, err)
		return nil, apierror.Upstream("No se pudo actualizar el producto.", err)
	}

	p := catalog.NormalizeProduct(updated)
	if p == nil {
		return nil, apierror.Upstream("No se pudo actualizar el producto.", nil)
	}
	applyNameFallback(p)
	return p, nil
}

func (s *productsService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apierror.BadRequest("Identificador de producto requerido.")
	}

	if err := s.cms.Delete(ctx, pathProducts+"/"+id); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Producto no encontrado.")
		}
		log.Printf("[ProductsService] Delete %s failed: %v", id, err)
		return apierror.Upstream("No se pudo eliminar el producto.", err)
	}
	return nil
}

// productPayload sanitizes the input before it is forwarded: price scalars
// arrive in whatever format the storefront had and are parsed to numbers,
// dropping whatever does not parse.
func productPayload(input model.ProductInput) map[string]interface{} {
	data := map[string]interface{}{
		"name": input.Name,
	}
	if input.Code != "" {
		data["code"] = input.Code
	}
	if input.Description != "" {
		data["description"] = input.Description
	}
	if input.VendorCode != "" {
		data["vendorCode"] = input.VendorCode
	}
	if input.Type != "" {
		data["type"] = input.Type
	}
	for key, raw := range map[string]interface{}{
		"salePrice":      input.SalePrice,
		"wholesalePrice": input.WholesalePrice,
		"retailPrice":    input.RetailPrice,
	} {
		if raw == nil {
			continue
		}
		if f, ok := catalog.ParseNumber(raw); ok {
			data[key] = f
		}
	}

	return map[string]interface{}{"data": data}
}

func applyNameFallback(p *model.Product) {
	if p.Name == "" {
		p.Name = catalog.FallbackProductName
	}
}

func isNotFound(err error) bool {
	var statusErr *cms.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Ensure productsService implements ProductsService
var _ ProductsService = (*productsService)(nil)
