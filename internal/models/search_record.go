package models

import "time"

// Route optimization types accepted by the planner and stored on records.
const (
	RouteTypeFastest     = "fastest"
	RouteTypeShortest    = "shortest"
	RouteTypeEcoFriendly = "eco_friendly"
)

// Vehicle types stored on records and used for emission estimates.
const (
	VehicleTypeCar         = "car"
	VehicleTypeMotorcycle  = "motorcycle"
	VehicleTypeBicycle     = "bicycle"
	VehicleTypeElectricCar = "electric_car"
	VehicleTypeHybrid      = "hybrid"
)

// SearchRecord is one saved route search belonging to a single user.
// Records are write-once: they are created on a successful route
// calculation and never updated, only deleted by their owner.
//
// CreatedAt carries the serverTimestamp tag, so it is written as the
// store's authoritative timestamp and may read back as the zero time on a
// record whose server timestamp has not materialized yet. ClientDate and
// ClientTime are recorded at save time to stand in for ordering until then.
type SearchRecord struct {
	ID               string    `json:"id" firestore:"-"`
	OwnerID          string    `json:"ownerId" firestore:"userId"`
	OwnerEmail       string    `json:"ownerEmail,omitempty" firestore:"userEmail,omitempty"`
	StartingAddress  string    `json:"startingAddress" firestore:"startingAddress"`
	Destination      string    `json:"destination" firestore:"destination"`
	DistanceText     string    `json:"distance,omitempty" firestore:"distance,omitempty"`
	DurationText     string    `json:"duration,omitempty" firestore:"duration,omitempty"`
	RouteType        string    `json:"routeType" firestore:"routeType"`
	VehicleType      string    `json:"vehicleType" firestore:"vehicleType"`
	AvoidTolls       bool      `json:"avoidTolls" firestore:"avoidTolls"`
	AvoidHighways    bool      `json:"avoidHighways" firestore:"avoidHighways"`
	CarbonEstimateKg *float64  `json:"carbonEstimateKg,omitempty" firestore:"carbonEstimateKg,omitempty"`
	EcoScore         *int      `json:"ecoScore,omitempty" firestore:"ecoScore,omitempty"`
	CreatedAt        time.Time `json:"createdAt" firestore:"timestamp,serverTimestamp"`
	ClientDate       string    `json:"date,omitempty" firestore:"date,omitempty"`
	ClientTime       string    `json:"time,omitempty" firestore:"time,omitempty"`
}

const (
	clientDateLayout = "2006-01-02"
	clientTimeLayout = "15:04:05"
)

// EffectiveTimestamp is the ordering key for display: the server timestamp
// when it has materialized, otherwise the client-recorded date/time pair.
// Records with neither resolve to the zero time and sort last.
func (r *SearchRecord) EffectiveTimestamp() time.Time {
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	if r.ClientDate == "" {
		return time.Time{}
	}
	layout, value := clientDateLayout, r.ClientDate
	if r.ClientTime != "" {
		layout = clientDateLayout + " " + clientTimeLayout
		value = r.ClientDate + " " + r.ClientTime
	}
	t, err := time.ParseInLocation(layout, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SaveSearchRequest is the request body for saving a route search.
type SaveSearchRequest struct {
	StartingAddress  string   `json:"startingAddress" validate:"required"`
	Destination      string   `json:"destination" validate:"required"`
	DistanceText     string   `json:"distance"`
	DurationText     string   `json:"duration"`
	RouteType        string   `json:"routeType" validate:"omitempty,oneof=fastest shortest eco_friendly"`
	VehicleType      string   `json:"vehicleType" validate:"omitempty,oneof=car motorcycle bicycle electric_car hybrid"`
	AvoidTolls       bool     `json:"avoidTolls"`
	AvoidHighways    bool     `json:"avoidHighways"`
	CarbonEstimateKg *float64 `json:"carbonEstimateKg"`
	EcoScore         *int     `json:"ecoScore"`
}

// FilterClause is one equality condition on a stored field.
type FilterClause struct {
	Field string
	Value string
}

// HistoryFilter is the optional set of equality filters a history listing
// can be narrowed by. Only equality conditions are expressible; the owner
// condition is implicit and always applied by the engine.
type HistoryFilter struct {
	VehicleType string
	RouteType   string
}

// Clauses returns the equality conditions in a fixed field order, so query
// construction is deterministic regardless of which filters are set.
func (f HistoryFilter) Clauses() []FilterClause {
	var clauses []FilterClause
	if f.VehicleType != "" {
		clauses = append(clauses, FilterClause{Field: "vehicleType", Value: f.VehicleType})
	}
	if f.RouteType != "" {
		clauses = append(clauses, FilterClause{Field: "routeType", Value: f.RouteType})
	}
	return clauses
}

// IsZero reports whether no filters are set.
func (f HistoryFilter) IsZero() bool {
	return f.VehicleType == "" && f.RouteType == ""
}

// Matches reports whether the record satisfies every set filter. It is the
// in-memory equivalent of the equality clauses the store would apply.
func (f HistoryFilter) Matches(r *SearchRecord) bool {
	if f.VehicleType != "" && r.VehicleType != f.VehicleType {
		return false
	}
	if f.RouteType != "" && r.RouteType != f.RouteType {
		return false
	}
	return true
}
