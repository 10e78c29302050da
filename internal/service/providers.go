package service

import (
	"context"
	"log"
	"sort"

	"autoparts-storefront-api/internal/catalog"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/internal/geo"
	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/pkg/apierror"
)

const pathProviders = "/providers"

const (
	defaultNearbyRadiusKM = 50.0
	defaultNearbyLimit    = 20
)

// ProvidersService lists parts providers and ranks them by distance.
type ProvidersService interface {
	List(ctx context.Context) ([]model.Provider, error)
	Nearby(ctx context.Context, lat, lng, radiusKM float64, limit int) ([]model.Provider, error)
}

type providersService struct {
	cms *cms.Client
}

// NewProvidersService creates the providers service.
func NewProvidersService(client *cms.Client) ProvidersService {
	return &providersService{cms: client}
}

func (s *providersService) List(ctx context.Context) ([]model.Provider, error) {
	entries, err := s.cms.GetList(ctx, pathProviders, nil)
	if err != nil {
		log.Printf("[ProvidersService] List failed: %v", err)
		return nil, apierror.Upstream("No se pudieron cargar los proveedores.", err)
	}

	providers := make([]model.Provider, 0, len(entries))
	for _, e := range entries {
		if p := normalizeProvider(e); p != nil {
			providers = append(providers, *p)
		}
	}
	return providers, nil
}

func (s *providersService) Nearby(ctx context.Context, lat, lng, radiusKM float64, limit int) ([]model.Provider, error) {
	if !geo.ValidCoordinate(lat, lng) {
		return nil, apierror.BadRequest("Coordenadas inválidas.")
	}

	providers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return rankNearby(providers, lat, lng, radiusKM, limit), nil
}

// rankNearby filters providers to those with coordinates inside the radius
// and sorts them closest-first. Providers without a location never rank.
func rankNearby(providers []model.Provider, lat, lng, radiusKM float64, limit int) []model.Provider {
	if radiusKM <= 0 {
		radiusKM = defaultNearbyRadiusKM
	}
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	ranked := make([]model.Provider, 0, len(providers))
	for _, p := range providers {
		if p.Loc == nil {
			continue
		}
		d := geo.Distance(lat, lng, p.Loc.Lat, p.Loc.Lng)
		if d > radiusKM {
			continue
		}
		dist := d
		p.Distance = &dist
		p.DistanceLabel = geo.FormatDistance(d)
		ranked = append(ranked, p)
	}

	sort.Slice(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// normalizeProvider maps a raw CMS provider entry into a Provider, probing
// the coordinate shapes the backend has used: a nested location object or
// flat latitude/longitude fields.
func normalizeProvider(e catalog.Entry) *model.Provider {
	if len(e) == 0 {
		return nil
	}

	p := &model.Provider{
		ID:      e.FirstStr("id", "documentId"),
		Name:    e.FirstStr("name", "storeName", "title"),
		Address: e.FirstStr("address", "direction"),
		Phone:   e.FirstStr("phone", "telephone"),
	}

	if loc := providerLocation(e); loc != nil {
		p.Loc = loc
	}

	if p.ID == "" && p.Name == "" {
		return nil
	}
	return p
}

func providerLocation(e catalog.Entry) *model.Location {
	candidates := []catalog.Entry{e.Child("location"), e}

	for _, c := range candidates {
		if c == nil {
			continue
		}
		lat, latOK := firstNumber(c, "lat", "latitude")
		lng, lngOK := firstNumber(c, "lng", "lon", "longitude")
		if latOK && lngOK && geo.ValidCoordinate(lat, lng) {
			return &model.Location{Lat: lat, Lng: lng}
		}
	}
	return nil
}

func firstNumber(e catalog.Entry, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := e[key]; ok && v != nil {
			if f, parsed := catalog.ParseNumber(v); parsed {
				return f, true
			}
		}
	}
	return 0, false
}

// Ensure providersService implements ProvidersService
var _ ProvidersService = (*providersService)(nil)
