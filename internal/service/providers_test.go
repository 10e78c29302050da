package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/catalog"
	"autoparts-storefront-api/internal/model"
)

func loc(lat, lng float64) *model.Location {
	return &model.Location{Lat: lat, Lng: lng}
}

func TestRankNearbySortsClosestFirst(t *testing.T) {
	// Points around Guatemala City.
	providers := []model.Provider{
		{ID: "far", Loc: loc(14.85, -91.52)},   // Quetzaltenango, ~180 km
		{ID: "near", Loc: loc(14.63, -90.52)},  // a few blocks away
		{ID: "mid", Loc: loc(14.53, -90.59)},   // Amatitlán, ~15 km
		{ID: "no-loc"},                         // never ranks
	}

	ranked := rankNearby(providers, 14.6349, -90.5069, 500, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "far", ranked[2].ID)

	for _, p := range ranked {
		require.NotNil(t, p.Distance)
		assert.NotEmpty(t, p.DistanceLabel)
	}
}

func TestRankNearbyFiltersByRadius(t *testing.T) {
	providers := []model.Provider{
		{ID: "near", Loc: loc(14.63, -90.52)},
		{ID: "far", Loc: loc(14.85, -91.52)},
	}

	ranked := rankNearby(providers, 14.6349, -90.5069, 20, 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, "near", ranked[0].ID)
}

func TestRankNearbyAppliesLimit(t *testing.T) {
	providers := []model.Provider{
		{ID: "a", Loc: loc(14.63, -90.52)},
		{ID: "b", Loc: loc(14.64, -90.52)},
		{ID: "c", Loc: loc(14.65, -90.52)},
	}

	ranked := rankNearby(providers, 14.6349, -90.5069, 500, 2)
	assert.Len(t, ranked, 2)
}

func TestNormalizeProviderNestedLocation(t *testing.T) {
	p := normalizeProvider(catalog.Entry{
		"id":      1,
		"name":    "Repuestos El Centro",
		"address": "4a Calle 5-20 Zona 1",
		"phone":   "2232-1111",
		"location": map[string]interface{}{
			"lat": 14.6349,
			"lng": -90.5069,
		},
	})

	require.NotNil(t, p)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Repuestos El Centro", p.Name)
	require.NotNil(t, p.Loc)
	assert.Equal(t, 14.6349, p.Loc.Lat)
}

func TestNormalizeProviderFlatCoordinates(t *testing.T) {
	p := normalizeProvider(catalog.Entry{
		"id":        "doc-1",
		"name":      "Sucursal Norte",
		"latitude":  "14.65",
		"longitude": "-90.49",
	})

	require.NotNil(t, p)
	require.NotNil(t, p.Loc)
	assert.Equal(t, 14.65, p.Loc.Lat)
	assert.Equal(t, -90.49, p.Loc.Lng)
}

func TestNormalizeProviderWithoutCoordinates(t *testing.T) {
	p := normalizeProvider(catalog.Entry{"id": 2, "name": "Sin ubicación"})

	require.NotNil(t, p)
	assert.Nil(t, p.Loc)
}

func TestNormalizeProviderEmpty(t *testing.T) {
	assert.Nil(t, normalizeProvider(catalog.Entry{}))
	assert.Nil(t, normalizeProvider(nil))
}
