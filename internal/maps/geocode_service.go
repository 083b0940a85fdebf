package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrNotFound is returned when the geocoder has no result for a place.
var ErrNotFound = errors.New("place not found")

// Geocoder resolves a free-text place name to a formatted address.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (string, error)
}

// geocodeClient is the subset of *maps.Client used here.
type geocodeClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GeocodeService handles interactions with the Google Geocoding API.
type GeocodeService struct {
	client   geocodeClient
	language string
}

// NewGeocodeService creates a new GeocodeService with the given API Key.
// Results are requested in English so country names match the currency table.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, language: "en"}, nil
}

// Geocode returns the formatted address of the best match for place.
func (s *GeocodeService) Geocode(ctx context.Context, place string) (string, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return "", ErrNotFound
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  place,
		Language: s.language,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].FormattedAddress) == "" {
		return "", ErrNotFound
	}
	return results[0].FormattedAddress, nil
}

// CountryFromAddress returns the last comma-separated token of a formatted
// address, which is the country for both Google and OSM style addresses.
func CountryFromAddress(address string) string {
	parts := strings.Split(address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
