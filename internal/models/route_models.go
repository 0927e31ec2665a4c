package models

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteRequest is the input from the user to plan a route.
type RouteRequest struct {
	Source        string `json:"source" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
	RouteType     string `json:"route_type" validate:"omitempty,oneof=fastest shortest eco_friendly"`
	AvoidTolls    bool   `json:"avoid_tolls"`
	AvoidHighways bool   `json:"avoid_highways"`
}

// RouteStep is a single navigation step within a route.
type RouteStep struct {
	Instruction   string      `json:"instruction"`
	Distance      string      `json:"distance"`
	Duration      string      `json:"duration"`
	StartLocation Coordinates `json:"start_location"`
	EndLocation   Coordinates `json:"end_location"`
}

// RouteBounds is the bounding box enclosing a route.
type RouteBounds struct {
	NorthEast Coordinates `json:"northeast"`
	SouthWest Coordinates `json:"southwest"`
}

// RouteInfo is one routing option with distance/duration text as returned
// by the directions provider and the eco metrics computed for it.
type RouteInfo struct {
	ID                string      `json:"id"`
	Summary           string      `json:"summary,omitempty"`
	Distance          string      `json:"distance"`
	Duration          string      `json:"duration"`
	DurationInTraffic string      `json:"duration_in_traffic,omitempty"`
	Steps             []RouteStep `json:"steps"`
	Polyline          string      `json:"polyline"`
	Bounds            RouteBounds `json:"bounds"`
	CarbonEstimateKg  float64     `json:"carbon_estimate_kg"`
	EcoScore          int         `json:"eco_score"`

	// Raw values from the provider, used for metric computation and
	// sorting without re-parsing the human-readable text.
	DistanceMeters  int `json:"-"`
	DurationSeconds int `json:"-"`
	TrafficSeconds  int `json:"-"`
}

// RouteResponse is the response for a route planning request.
type RouteResponse struct {
	Routes []RouteInfo `json:"routes"`
	Status string      `json:"status"`
}
