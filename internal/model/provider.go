package model

// Location is a geographic point.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider is a parts provider/store location.
type Provider struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Loc     *Location `json:"location,omitempty"`

	// Distance in kilometers from the query point, filled by the nearby
	// lookup. Nil when no query point was given or the provider has no
	// coordinates.
	Distance      *float64 `json:"distance,omitempty"`
	DistanceLabel string   `json:"distanceLabel,omitempty"`
}
