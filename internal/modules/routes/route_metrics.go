package routes

import (
	"fmt"
	"math"
	"sort"

	"github.com/pavankontham/smart-maps/internal/models"
)

// Per-km CO2 emission factors by optimization type. Fastest routes lean on
// highways (steadier speeds), shortest routes simply cover less ground, and
// eco routes favor city streets, which costs a little per km but is offset
// by the traffic and routing adjustments below.
const (
	emissionPerKmFastest  = 0.18
	emissionPerKmShortest = 0.19
	emissionPerKmEco      = 0.21
	ecoCityStreetFactor   = 1.15
)

// applyMetrics computes the carbon estimate and eco score for one route
// according to the requested optimization type.
func applyMetrics(route *models.RouteInfo, routeType string) {
	distanceKm := float64(route.DistanceMeters) / 1000
	durationMin := float64(route.DurationSeconds) / 60
	delayMin := trafficDelayMinutes(route)

	switch routeType {
	case models.RouteTypeEcoFriendly:
		trafficFactor := 1.0
		switch {
		case delayMin > 10:
			trafficFactor = 1.35
		case delayMin > 5:
			trafficFactor = 1.20
		case delayMin > 0:
			trafficFactor = 1.10
		}
		route.CarbonEstimateKg = round3(distanceKm * emissionPerKmEco * trafficFactor * ecoCityStreetFactor)
		route.EcoScore = advancedEcoScore(distanceKm, durationMin, trafficFactor)

	case models.RouteTypeShortest:
		route.CarbonEstimateKg = round3(distanceKm * emissionPerKmShortest)
		route.EcoScore = clampScore(math.Max(20, 100-distanceKm*1.5))

	default: // fastest
		route.CarbonEstimateKg = round3(distanceKm * emissionPerKmFastest)
		timeEfficiency := math.Max(0, 100-durationMin*0.5)
		distanceScore := math.Max(0, 100-distanceKm*2)
		route.EcoScore = clampScore((timeEfficiency + distanceScore) / 2)
	}
}

// advancedEcoScore grades a route 0-100: distance and traffic pull the
// score down, cruising in the fuel-efficient 40-60 km/h band pushes it up.
func advancedEcoScore(distanceKm, durationMin, trafficFactor float64) int {
	score := 100.0
	score -= math.Min(distanceKm*1.5, 50)
	score -= (trafficFactor - 1.0) * 30

	if durationMin > 0 {
		speedKmh := distanceKm / durationMin * 60
		if speedKmh >= 40 && speedKmh <= 60 {
			score += 10
		} else if speedKmh < 20 {
			score -= 15
		}
	}
	return clampScore(score)
}

func trafficDelayMinutes(route *models.RouteInfo) float64 {
	if route.TrafficSeconds <= route.DurationSeconds {
		return 0
	}
	return float64(route.TrafficSeconds-route.DurationSeconds) / 60
}

// dedupRoutes drops alternatives whose distance and duration are within 5%
// of an already-kept route; the provider often returns near-identical paths.
func dedupRoutes(routes []models.RouteInfo) []models.RouteInfo {
	var unique []models.RouteInfo
	for _, route := range routes {
		duplicate := false
		for _, kept := range unique {
			distDiff := relativeDiff(float64(route.DistanceMeters), float64(kept.DistanceMeters))
			durDiff := relativeDiff(float64(route.DurationSeconds), float64(kept.DurationSeconds))
			if distDiff < 0.05 && durDiff < 0.05 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, route)
		}
	}
	return unique
}

func relativeDiff(a, b float64) float64 {
	if b == 0 {
		if a == 0 {
			return 0
		}
		return 1
	}
	return math.Abs(a-b) / b
}

// sortRoutes orders alternatives by the requested criterion: eco score for
// eco routes (emissions break ties), distance for shortest, time for
// fastest.
func sortRoutes(routes []models.RouteInfo, routeType string) {
	switch routeType {
	case models.RouteTypeEcoFriendly:
		sort.SliceStable(routes, func(i, j int) bool {
			if routes[i].EcoScore != routes[j].EcoScore {
				return routes[i].EcoScore > routes[j].EcoScore
			}
			return routes[i].CarbonEstimateKg < routes[j].CarbonEstimateKg
		})
	case models.RouteTypeShortest:
		sort.SliceStable(routes, func(i, j int) bool {
			return routes[i].DistanceMeters < routes[j].DistanceMeters
		})
	default:
		sort.SliceStable(routes, func(i, j int) bool {
			return routes[i].DurationSeconds < routes[j].DurationSeconds
		})
	}
}

// formatDuration renders seconds the way the directions provider does,
// e.g. "15 mins" or "1 hour 5 mins".
func formatDuration(seconds int) string {
	minutes := seconds / 60
	hours := minutes / 60
	minutes = minutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(minutes, "min"))
	case hours > 0:
		return plural(hours, "hour")
	default:
		return plural(minutes, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func clampScore(score float64) int {
	return int(math.Max(0, math.Min(100, score)))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
