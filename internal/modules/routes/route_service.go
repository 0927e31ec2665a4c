package routes

import (
	"context"
	"fmt"

	"github.com/pavankontham/smart-maps/internal/models"

	"github.com/google/uuid"
	"googlemaps.github.io/maps"
)

// ServiceInterface defines the route planning contract.
type ServiceInterface interface {
	PlanRoute(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error)
}

// Service plans routes through the Google Maps Directions API and enriches
// each alternative with eco metrics.
type Service struct {
	client *maps.Client // nil when no API key is configured
}

// NewService creates a new routes service. client may be nil; planning then
// returns a mock route so the rest of the application stays usable during
// development.
func NewService(client *maps.Client) *Service {
	return &Service{client: client}
}

// Available reports whether a real directions client is configured.
func (s *Service) Available() bool {
	return s.client != nil
}

// PlanRoute fetches route alternatives, computes eco metrics for the
// requested optimization type, drops near-duplicate alternatives, and
// orders them by the requested criterion.
func (s *Service) PlanRoute(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	if req.RouteType == "" {
		req.RouteType = models.RouteTypeFastest
	}
	if s.client == nil {
		return mockRouteResponse(req), nil
	}

	var avoid []maps.Avoid
	if req.AvoidTolls {
		avoid = append(avoid, maps.AvoidTolls)
	}
	if req.AvoidHighways {
		avoid = append(avoid, maps.AvoidHighways)
	}

	dirReq := &maps.DirectionsRequest{
		Origin:        req.Source,
		Destination:   req.Destination,
		Mode:          maps.TravelModeDriving,
		Alternatives:  true,
		DepartureTime: "now",
		TrafficModel:  maps.TrafficModelBestGuess,
		Avoid:         avoid,
	}

	mapsRoutes, _, err := s.client.Directions(ctx, dirReq)
	if err != nil {
		return nil, fmt.Errorf("service.PlanRoute: %w", err)
	}
	if len(mapsRoutes) == 0 {
		return nil, models.ErrNoRoutesFound
	}

	routes := make([]models.RouteInfo, 0, len(mapsRoutes))
	for _, mr := range mapsRoutes {
		route, ok := parseRoute(mr)
		if !ok {
			continue
		}
		applyMetrics(&route, req.RouteType)
		routes = append(routes, route)
	}
	if len(routes) == 0 {
		return nil, models.ErrNoRoutesFound
	}

	routes = dedupRoutes(routes)
	sortRoutes(routes, req.RouteType)

	return &models.RouteResponse{Routes: routes, Status: "OK"}, nil
}

// parseRoute flattens the provider's route into the API shape. Directions
// responses for a single origin/destination pair carry one leg.
func parseRoute(mr maps.Route) (models.RouteInfo, bool) {
	if len(mr.Legs) == 0 {
		return models.RouteInfo{}, false
	}
	leg := mr.Legs[0]

	steps := make([]models.RouteStep, 0, len(leg.Steps))
	for _, st := range leg.Steps {
		steps = append(steps, models.RouteStep{
			Instruction: st.HTMLInstructions,
			Distance:    st.Distance.HumanReadable,
			Duration:    formatDuration(int(st.Duration.Seconds())),
			StartLocation: models.Coordinates{
				Latitude:  st.StartLocation.Lat,
				Longitude: st.StartLocation.Lng,
			},
			EndLocation: models.Coordinates{
				Latitude:  st.EndLocation.Lat,
				Longitude: st.EndLocation.Lng,
			},
		})
	}

	route := models.RouteInfo{
		ID:              uuid.NewString(),
		Summary:         mr.Summary,
		Distance:        leg.Distance.HumanReadable,
		Duration:        formatDuration(int(leg.Duration.Seconds())),
		Steps:           steps,
		Polyline:        mr.OverviewPolyline.Points,
		DistanceMeters:  leg.Distance.Meters,
		DurationSeconds: int(leg.Duration.Seconds()),
		Bounds: models.RouteBounds{
			NorthEast: models.Coordinates{Latitude: mr.Bounds.NorthEast.Lat, Longitude: mr.Bounds.NorthEast.Lng},
			SouthWest: models.Coordinates{Latitude: mr.Bounds.SouthWest.Lat, Longitude: mr.Bounds.SouthWest.Lng},
		},
	}
	if leg.DurationInTraffic > 0 {
		route.TrafficSeconds = int(leg.DurationInTraffic.Seconds())
		route.DurationInTraffic = formatDuration(route.TrafficSeconds)
	}
	return route, true
}

// mockRouteResponse stands in when no directions client is configured.
func mockRouteResponse(req models.RouteRequest) *models.RouteResponse {
	route := models.RouteInfo{
		ID:       uuid.NewString(),
		Summary:  "Main St / Highway 1",
		Distance: "9.7 km",
		Duration: "15 mins",
		Steps: []models.RouteStep{
			{
				Instruction:   "Head north on Main St",
				Distance:      "1.2 km",
				Duration:      "3 mins",
				StartLocation: models.Coordinates{Latitude: 17.3850, Longitude: 78.4867},
				EndLocation:   models.Coordinates{Latitude: 17.3950, Longitude: 78.4867},
			},
			{
				Instruction:   "Turn right onto Highway 1",
				Distance:      "8.5 km",
				Duration:      "12 mins",
				StartLocation: models.Coordinates{Latitude: 17.3950, Longitude: 78.4867},
				EndLocation:   models.Coordinates{Latitude: 17.4065, Longitude: 78.4772},
			},
		},
		Polyline:        "mock_polyline_data",
		DistanceMeters:  9700,
		DurationSeconds: 900,
		TrafficSeconds:  1080,
		Bounds: models.RouteBounds{
			NorthEast: models.Coordinates{Latitude: 17.4065, Longitude: 78.4867},
			SouthWest: models.Coordinates{Latitude: 17.3850, Longitude: 78.4772},
		},
		DurationInTraffic: "18 mins",
	}
	applyMetrics(&route, req.RouteType)

	return &models.RouteResponse{
		Routes: []models.RouteInfo{route},
		Status: "OK_MOCK",
	}
}
