// README: Google Maps driving estimates for delivery orders.
package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"buensabor/internal/board"
)

// RouteService handles interactions with the Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DeliveryEstimate returns the driving duration and a human-readable
// distance from the order's branch to its delivery address.
func (s *RouteService) DeliveryEstimate(ctx context.Context, detail board.OrderDetail) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      detail.Branch.Name + ", " + detail.Address.Locality.Name,
		Destination: FormatAddress(detail.Address),
		Mode:        maps.TravelModeDriving,
		Language:    "es",
		Region:      "AR",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

// FormatAddress renders the backend's nested address as a geocodable
// one-line string.
func FormatAddress(a board.Address) string {
	parts := []string{fmt.Sprintf("%s %d", a.Street, a.Number)}
	if a.Locality.Name != "" {
		parts = append(parts, a.Locality.Name)
	}
	if a.Locality.Province.Name != "" {
		parts = append(parts, a.Locality.Province.Name)
	}
	if a.Locality.Province.Country.Name != "" {
		parts = append(parts, a.Locality.Province.Country.Name)
	}
	return strings.Join(parts, ", ")
}
