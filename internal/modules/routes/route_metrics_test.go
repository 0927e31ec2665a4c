package routes

import (
	"context"
	"testing"

	"github.com/pavankontham/smart-maps/internal/models"
)

func route(meters, seconds, trafficSeconds int) models.RouteInfo {
	return models.RouteInfo{
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		TrafficSeconds:  trafficSeconds,
	}
}

func TestApplyMetricsFastest(t *testing.T) {
	r := route(10000, 900, 0) // 10 km, 15 min
	applyMetrics(&r, models.RouteTypeFastest)

	if r.CarbonEstimateKg != 1.8 {
		t.Errorf("expected 1.8 kg CO2 for 10 km fastest, got %v", r.CarbonEstimateKg)
	}
	// (100 - 15*0.5 + 100 - 10*2) / 2 = 86
	if r.EcoScore != 86 {
		t.Errorf("expected eco score 86, got %d", r.EcoScore)
	}
}

func TestApplyMetricsShortest(t *testing.T) {
	r := route(10000, 1200, 0)
	applyMetrics(&r, models.RouteTypeShortest)

	if r.CarbonEstimateKg != 1.9 {
		t.Errorf("expected 1.9 kg CO2 for 10 km shortest, got %v", r.CarbonEstimateKg)
	}
	if r.EcoScore != 85 { // 100 - 10*1.5
		t.Errorf("expected eco score 85, got %d", r.EcoScore)
	}
}

func TestApplyMetricsEcoTrafficFactors(t *testing.T) {
	tests := []struct {
		name           string
		trafficSeconds int
		wantCarbon     float64
	}{
		{"no traffic", 0, 2.415},            // 10 * 0.21 * 1.0 * 1.15
		{"light traffic", 900 + 120, 2.657}, // factor 1.10
		{"moderate traffic", 900 + 420, 2.898},
		{"heavy traffic", 900 + 720, 3.26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := route(10000, 900, tt.trafficSeconds)
			applyMetrics(&r, models.RouteTypeEcoFriendly)
			if r.CarbonEstimateKg != tt.wantCarbon {
				t.Errorf("expected %v kg CO2, got %v", tt.wantCarbon, r.CarbonEstimateKg)
			}
			if r.EcoScore < 0 || r.EcoScore > 100 {
				t.Errorf("eco score out of range: %d", r.EcoScore)
			}
		})
	}
}

func TestAdvancedEcoScore(t *testing.T) {
	// 10 km in 12 min is 50 km/h, inside the efficient band: 100 - 15 + 10.
	if got := advancedEcoScore(10, 12, 1.0); got != 95 {
		t.Errorf("expected 95 for efficient cruise, got %d", got)
	}
	// Crawling at 10 km/h loses the bonus and takes the slow penalty.
	if got := advancedEcoScore(10, 60, 1.0); got != 70 {
		t.Errorf("expected 70 for crawl, got %d", got)
	}
	// Scores never leave 0..100.
	if got := advancedEcoScore(500, 600, 1.35); got < 0 || got > 100 {
		t.Errorf("score out of range: %d", got)
	}
}

func TestDedupRoutes(t *testing.T) {
	routes := []models.RouteInfo{
		route(10000, 900, 0),
		route(10200, 910, 0), // within 5% of the first
		route(15000, 1400, 0),
	}
	unique := dedupRoutes(routes)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique routes, got %d", len(unique))
	}
	if unique[1].DistanceMeters != 15000 {
		t.Errorf("expected the distinct route to survive, got %d m", unique[1].DistanceMeters)
	}
}

func TestSortRoutes(t *testing.T) {
	a := route(10000, 1200, 0)
	b := route(15000, 900, 0)
	c := route(12000, 1000, 0)

	byDistance := []models.RouteInfo{b, a, c}
	sortRoutes(byDistance, models.RouteTypeShortest)
	if byDistance[0].DistanceMeters != 10000 || byDistance[2].DistanceMeters != 15000 {
		t.Errorf("shortest sort wrong: %d, %d, %d",
			byDistance[0].DistanceMeters, byDistance[1].DistanceMeters, byDistance[2].DistanceMeters)
	}

	byTime := []models.RouteInfo{a, c, b}
	sortRoutes(byTime, models.RouteTypeFastest)
	if byTime[0].DurationSeconds != 900 {
		t.Errorf("fastest sort wrong: first has %d s", byTime[0].DurationSeconds)
	}

	eco := []models.RouteInfo{a, b, c}
	for i := range eco {
		applyMetrics(&eco[i], models.RouteTypeEcoFriendly)
	}
	sortRoutes(eco, models.RouteTypeEcoFriendly)
	for i := 1; i < len(eco); i++ {
		if eco[i].EcoScore > eco[i-1].EcoScore {
			t.Errorf("eco sort wrong at %d: %d after %d", i, eco[i].EcoScore, eco[i-1].EcoScore)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{60, "1 min"},
		{900, "15 mins"},
		{3600, "1 hour"},
		{3900, "1 hour 5 mins"},
		{7500, "2 hours 5 mins"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestMockRouteWhenNoClient(t *testing.T) {
	svc := NewService(nil)
	resp, err := svc.PlanRoute(context.Background(), models.RouteRequest{
		Source:      "Kayamkulam",
		Destination: "Karunagappalli",
		RouteType:   models.RouteTypeEcoFriendly,
	})
	if err != nil {
		t.Fatalf("PlanRoute failed: %v", err)
	}
	if resp.Status != "OK_MOCK" {
		t.Errorf("expected OK_MOCK status, got %q", resp.Status)
	}
	if len(resp.Routes) != 1 {
		t.Fatalf("expected 1 mock route, got %d", len(resp.Routes))
	}
	if resp.Routes[0].CarbonEstimateKg <= 0 {
		t.Error("mock route should carry a carbon estimate")
	}
}
