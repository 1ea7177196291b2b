package places

import (
	"github.com/marosa/locator-service/internal/hours"
)

// DefaultRating is assumed when the place directory carries no rating.
const DefaultRating = 5.0

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DisplayName wraps a place's localized display text, mirroring the place
// directory wire shape.
type DisplayName struct {
	Text string `json:"text"`
}

// Place is a store or point of interest from the directory. PlaceID may be
// empty for ad-hoc entries; a place without a display name is excluded from
// name-based search.
type Place struct {
	PlaceID      string          `json:"placeId,omitempty"`
	DisplayName  *DisplayName    `json:"displayName,omitempty"`
	Position     LatLng          `json:"position"`
	Rating       *float64        `json:"rating,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	City         string          `json:"city,omitempty"`
	OpeningHours *hours.Schedule `json:"openingHours,omitempty"`
}

// Name returns the display name text, or "" when the place has none.
func (p Place) Name() string {
	if p.DisplayName == nil {
		return ""
	}
	return p.DisplayName.Text
}

// EffectiveRating returns the rating, defaulting when absent.
func (p Place) EffectiveRating() float64 {
	if p.Rating == nil {
		return DefaultRating
	}
	return *p.Rating
}
