package conditions

import (
	"math"
	"strings"

	"github.com/pavankontham/smart-maps/internal/models"
)

// baseEmissionFactors are per-km CO2 rates by vehicle type.
var baseEmissionFactors = map[string]float64{
	models.VehicleTypeCar:         0.21,
	models.VehicleTypeMotorcycle:  0.15,
	models.VehicleTypeBicycle:     0.0,
	models.VehicleTypeElectricCar: 0.05,
	models.VehicleTypeHybrid:      0.12,
}

// vehicleEcoBonuses adjust the eco score by vehicle type.
var vehicleEcoBonuses = map[string]int{
	models.VehicleTypeBicycle:     30,
	models.VehicleTypeElectricCar: 25,
	models.VehicleTypeHybrid:      15,
	models.VehicleTypeMotorcycle:  -5,
	models.VehicleTypeCar:         0,
}

// trafficScore grades overall traffic 0-100 (higher is better) from the
// congestion percentage and the number of active incidents.
func trafficScore(congestionPct float64, incidentCount int) int {
	score := 100.0
	score -= congestionPct * 0.8
	score -= float64(incidentCount) * 10
	return clamp(score)
}

func trafficRecommendations(score, incidentCount int) []string {
	var recs []string
	switch {
	case score < 30:
		recs = append(recs, "Heavy traffic detected. Consider alternative routes.")
	case score < 60:
		recs = append(recs, "Moderate traffic. Allow extra travel time.")
	default:
		recs = append(recs, "Traffic conditions are good.")
	}
	if incidentCount > 0 {
		recs = append(recs, "Traffic incidents reported in the area. Check for updates.")
	}
	return recs
}

// incidentSeverity maps the provider's magnitude-of-delay scale to a label.
func incidentSeverity(magnitude int) string {
	switch {
	case magnitude >= 4:
		return "severe"
	case magnitude >= 3:
		return "major"
	case magnitude >= 2:
		return "moderate"
	default:
		return "minor"
	}
}

// weatherImpact assesses how current conditions affect driving.
func weatherImpact(condition string, visibilityKm, windKph float64) models.WeatherImpact {
	condition = strings.ToLower(condition)
	score := 0
	var factors []string

	switch {
	case containsAny(condition, "rain", "storm", "snow"):
		score += 30
		factors = append(factors, "Precipitation")
	case containsAny(condition, "fog", "mist"):
		score += 20
		factors = append(factors, "Reduced visibility")
	}

	switch {
	case visibilityKm < 5:
		score += 25
		factors = append(factors, "Poor visibility")
	case visibilityKm < 10:
		score += 10
		factors = append(factors, "Limited visibility")
	}

	if windKph > 50 {
		score += 15
		factors = append(factors, "Strong winds")
	}

	if score > 100 {
		score = 100
	}

	level := "low"
	recommendation := "Weather conditions are favorable for driving."
	switch {
	case score > 50:
		level = "high"
		recommendation = "Exercise extreme caution. Consider delaying travel if possible."
	case score > 20:
		level = "medium"
		recommendation = "Drive carefully and allow extra time for your journey."
	}

	return models.WeatherImpact{
		ImpactScore:    score,
		ImpactLevel:    level,
		Factors:        factors,
		Recommendation: recommendation,
	}
}

// emissionFactors derives the multipliers applied to the base per-km rate
// from the current traffic score, the weather impact level, the route
// type, and the average trip speed.
func emissionFactors(trafficScore int, weatherImpactLevel, routeType string, distanceKm, durationMin float64) models.EmissionFactors {
	factors := models.EmissionFactors{Traffic: 1.0, Weather: 1.0, Route: 1.0, Efficiency: 1.0}

	switch {
	case trafficScore < 30:
		factors.Traffic = 1.4
	case trafficScore < 60:
		factors.Traffic = 1.2
	case trafficScore > 80:
		factors.Traffic = 0.9
	}

	switch weatherImpactLevel {
	case "high":
		factors.Weather = 1.3
	case "medium":
		factors.Weather = 1.15
	}

	switch routeType {
	case models.RouteTypeEcoFriendly:
		factors.Route = 0.85
	case models.RouteTypeShortest:
		factors.Route = 0.95
	}

	if durationMin > 0 && distanceKm > 0 {
		speed := distanceKm / durationMin * 60
		switch {
		case speed >= 50 && speed <= 80:
			factors.Efficiency = 0.9
		case speed < 20:
			factors.Efficiency = 1.3
		case speed > 100:
			factors.Efficiency = 1.2
		}
	}

	return factors
}

// environmentalEcoScore grades a trip 0-100 given its total emissions, the
// vehicle, the adjustment factors, and the trip length.
func environmentalEcoScore(co2Kg float64, vehicleType string, factors models.EmissionFactors, distanceKm float64) int {
	score := 100.0
	score -= math.Min(co2Kg*15, 60)
	score += float64(vehicleEcoBonuses[vehicleType])
	score -= (factors.Traffic - 1.0) * 25
	score -= (factors.Weather - 1.0) * 20
	score += (1.0 - factors.Route) * 15
	score += (1.0 - factors.Efficiency) * 10

	if distanceKm < 5 {
		score += 10
	} else if distanceKm > 50 {
		score -= 10
	}
	return clamp(score)
}

func emissionRecommendations(ecoScore int, factors models.EmissionFactors, vehicleType string) []string {
	var recs []string
	if ecoScore < 40 {
		recs = append(recs, "High emissions detected. Consider alternative transportation.")
	}
	if factors.Traffic > 1.2 {
		recs = append(recs, "Heavy traffic increases emissions. Try traveling during off-peak hours.")
	}
	if factors.Weather > 1.1 {
		recs = append(recs, "Weather conditions are affecting fuel efficiency. Drive more cautiously.")
	}
	if vehicleType == models.VehicleTypeCar {
		recs = append(recs, "Consider public transport, cycling, or an electric vehicle for eco-friendly alternatives.")
	}
	if ecoScore > 70 {
		recs = append(recs, "Great eco-friendly choice! You're helping reduce environmental impact.")
	}
	return recs
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(score float64) int {
	return int(math.Max(0, math.Min(100, score)))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
