package conditions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pavankontham/smart-maps/internal/models"
)

const (
	weatherAPIBase  = "https://api.weatherapi.com/v1"
	tomtomBase      = "https://api.tomtom.com"
	transitlandBase = "https://transit.land/api/v2"
	openWeatherBase = "https://api.openweathermap.org/data/2.5"
)

// APIKeys holds the credentials for the real-data providers. Any key may be
// empty; the corresponding endpoint then serves fallback data instead of
// failing.
type APIKeys struct {
	WeatherAPI  string
	TomTom      string
	OpenWeather string
	Transitland string
}

// ServiceInterface defines the real-time conditions contract.
type ServiceInterface interface {
	Weather(ctx context.Context, city string, lat, lon float64) (*models.WeatherReport, error)
	Traffic(ctx context.Context, lat, lon float64, radiusM int) (*models.TrafficReport, error)
	Transit(ctx context.Context, lat, lon float64, radiusM float64) (*models.TransitReport, error)
	AirQuality(ctx context.Context, lat, lon float64) (*models.AirQuality, error)
	Emissions(ctx context.Context, req models.EmissionsRequest) (*models.EmissionsReport, error)
}

// Service aggregates weather, traffic, transit, and air-quality data from
// their upstream providers, degrading to static fallbacks when a provider
// is unconfigured or unreachable.
type Service struct {
	httpClient *http.Client
	keys       APIKeys
}

// NewService creates a new conditions service.
func NewService(keys APIKeys) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		keys:       keys,
	}
}

func (s *Service) getJSON(ctx context.Context, rawURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", rawURL, err)
	}
	return nil
}

// ------------------- Weather -------------------

// weatherAPIResponse is the part of the WeatherAPI current-conditions
// response we care about.
type weatherAPIResponse struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		Humidity   int     `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		WindDir    string  `json:"wind_dir"`
		PressureMb float64 `json:"pressure_mb"`
		VisKm      float64 `json:"vis_km"`
		UV         float64 `json:"uv"`
		FeelsLikeC float64 `json:"feelslike_c"`
		AirQuality struct {
			CO         float64 `json:"co"`
			NO2        float64 `json:"no2"`
			O3         float64 `json:"o3"`
			SO2        float64 `json:"so2"`
			PM25       float64 `json:"pm2_5"`
			PM10       float64 `json:"pm10"`
			USEPAIndex int     `json:"us-epa-index"`
		} `json:"air_quality"`
	} `json:"current"`
}

type weatherForecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC     float64 `json:"maxtemp_c"`
				MinTempC     float64 `json:"mintemp_c"`
				MaxWindKph   float64 `json:"maxwind_kph"`
				ChanceOfRain int     `json:"daily_chance_of_rain"`
				Condition    struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Weather returns current conditions, air quality, a 3-day forecast, and
// the derived driving impact for the given point.
func (s *Service) Weather(ctx context.Context, city string, lat, lon float64) (*models.WeatherReport, error) {
	if s.keys.WeatherAPI == "" {
		return fallbackWeatherReport(city, lat, lon), nil
	}

	params := url.Values{}
	params.Set("key", s.keys.WeatherAPI)
	params.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("aqi", "yes")

	var data weatherAPIResponse
	if err := s.getJSON(ctx, weatherAPIBase+"/current.json", params, &data); err != nil {
		log.Printf("weather provider unavailable: %v", err)
		return fallbackWeatherReport(city, lat, lon), nil
	}

	report := &models.WeatherReport{
		Location: models.WeatherLocation{
			Name:    data.Location.Name,
			Region:  data.Location.Region,
			Country: data.Location.Country,
			Lat:     data.Location.Lat,
			Lon:     data.Location.Lon,
		},
		Current: models.CurrentWeather{
			TemperatureC: data.Current.TempC,
			Condition:    data.Current.Condition.Text,
			Humidity:     data.Current.Humidity,
			WindKph:      data.Current.WindKph,
			WindDir:      data.Current.WindDir,
			PressureMb:   data.Current.PressureMb,
			VisibilityKm: data.Current.VisKm,
			UVIndex:      data.Current.UV,
			FeelsLikeC:   data.Current.FeelsLikeC,
		},
		AirQuality: &models.AirQuality{
			CO:         data.Current.AirQuality.CO,
			NO2:        data.Current.AirQuality.NO2,
			O3:         data.Current.AirQuality.O3,
			SO2:        data.Current.AirQuality.SO2,
			PM25:       data.Current.AirQuality.PM25,
			PM10:       data.Current.AirQuality.PM10,
			USEPAIndex: data.Current.AirQuality.USEPAIndex,
		},
		TrafficImpact: weatherImpact(data.Current.Condition.Text, data.Current.VisKm, data.Current.WindKph),
		Source:        "WeatherAPI",
	}
	report.Forecast = s.weatherForecast(ctx, lat, lon)
	if report.Location.Name == "" {
		report.Location.Name = city
	}
	return report, nil
}

func (s *Service) weatherForecast(ctx context.Context, lat, lon float64) []models.ForecastDay {
	params := url.Values{}
	params.Set("key", s.keys.WeatherAPI)
	params.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("days", "3")
	params.Set("aqi", "no")

	var data weatherForecastResponse
	if err := s.getJSON(ctx, weatherAPIBase+"/forecast.json", params, &data); err != nil {
		log.Printf("weather forecast unavailable: %v", err)
		return nil
	}

	days := make([]models.ForecastDay, 0, len(data.Forecast.ForecastDay))
	for _, d := range data.Forecast.ForecastDay {
		days = append(days, models.ForecastDay{
			Date:         d.Date,
			MaxTempC:     d.Day.MaxTempC,
			MinTempC:     d.Day.MinTempC,
			Condition:    d.Day.Condition.Text,
			ChanceOfRain: d.Day.ChanceOfRain,
			MaxWindKph:   d.Day.MaxWindKph,
		})
	}
	return days
}

// ------------------- Traffic -------------------

type tomtomFlowResponse struct {
	FlowSegmentData struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
	} `json:"flowSegmentData"`
}

type tomtomIncidentsResponse struct {
	Incidents []struct {
		Properties struct {
			MagnitudeOfDelay int `json:"magnitudeOfDelay"`
			Events           []struct {
				Description string `json:"description"`
			} `json:"events"`
		} `json:"properties"`
	} `json:"incidents"`
}

// Traffic returns flow, incidents, and a derived 0-100 score around the
// given point.
func (s *Service) Traffic(ctx context.Context, lat, lon float64, radiusM int) (*models.TrafficReport, error) {
	if s.keys.TomTom == "" {
		return fallbackTrafficReport(), nil
	}

	flowParams := url.Values{}
	flowParams.Set("point", fmt.Sprintf("%f,%f", lat, lon))
	flowParams.Set("key", s.keys.TomTom)

	var flow tomtomFlowResponse
	if err := s.getJSON(ctx, tomtomBase+"/traffic/services/4/flowSegmentData/absolute/10/json", flowParams, &flow); err != nil {
		log.Printf("traffic provider unavailable: %v", err)
		return fallbackTrafficReport(), nil
	}

	congestion := 0.0
	if flow.FlowSegmentData.FreeFlowSpeed > 0 {
		congestion = (1 - flow.FlowSegmentData.CurrentSpeed/flow.FlowSegmentData.FreeFlowSpeed) * 100
		if congestion < 0 {
			congestion = 0
		}
	}

	incidents := s.trafficIncidents(ctx, lat, lon, radiusM)
	score := trafficScore(congestion, len(incidents))

	return &models.TrafficReport{
		CurrentSpeedKph:      flow.FlowSegmentData.CurrentSpeed,
		FreeFlowSpeedKph:     flow.FlowSegmentData.FreeFlowSpeed,
		CongestionPercentage: round3(congestion),
		Incidents:            incidents,
		OverallScore:         score,
		Recommendations:      trafficRecommendations(score, len(incidents)),
		Source:               "TomTom",
	}, nil
}

func (s *Service) trafficIncidents(ctx context.Context, lat, lon float64, radiusM int) []models.TrafficIncident {
	// Convert the radius to a rough bounding box in degrees.
	delta := float64(radiusM) / 111320.0
	bbox := fmt.Sprintf("%f,%f,%f,%f", lon-delta, lat-delta, lon+delta, lat+delta)

	params := url.Values{}
	params.Set("bbox", bbox)
	params.Set("key", s.keys.TomTom)

	var data tomtomIncidentsResponse
	if err := s.getJSON(ctx, tomtomBase+"/traffic/services/5/incidentDetails", params, &data); err != nil {
		log.Printf("traffic incidents unavailable: %v", err)
		return nil
	}

	incidents := make([]models.TrafficIncident, 0, len(data.Incidents))
	for _, inc := range data.Incidents {
		description := "Traffic incident"
		if len(inc.Properties.Events) > 0 && inc.Properties.Events[0].Description != "" {
			description = inc.Properties.Events[0].Description
		}
		incidents = append(incidents, models.TrafficIncident{
			Description: description,
			Severity:    incidentSeverity(inc.Properties.MagnitudeOfDelay),
		})
	}
	return incidents
}

// ------------------- Transit -------------------

type transitlandStopsResponse struct {
	Stops []struct {
		Name     string `json:"stop_name"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // lon, lat
		} `json:"geometry"`
	} `json:"stops"`
}

type transitlandRoutesResponse struct {
	Routes []struct {
		Name  string `json:"route_long_name"`
		Short string `json:"route_short_name"`
		Agency struct {
			Name string `json:"agency_name"`
		} `json:"agency"`
	} `json:"routes"`
}

// Transit lists public-transit stops and routes near the given point.
func (s *Service) Transit(ctx context.Context, lat, lon float64, radiusM float64) (*models.TransitReport, error) {
	if s.keys.Transitland == "" {
		return fallbackTransitReport(), nil
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("radius", fmt.Sprintf("%f", radiusM))
	params.Set("apikey", s.keys.Transitland)

	var stopsData transitlandStopsResponse
	if err := s.getJSON(ctx, transitlandBase+"/stops", params, &stopsData); err != nil {
		log.Printf("transit provider unavailable: %v", err)
		return fallbackTransitReport(), nil
	}

	report := &models.TransitReport{Source: "Transitland"}
	for _, stop := range stopsData.Stops {
		ts := models.TransitStop{Name: stop.Name}
		if len(stop.Geometry.Coordinates) == 2 {
			ts.Lon, ts.Lat = stop.Geometry.Coordinates[0], stop.Geometry.Coordinates[1]
		}
		report.Stops = append(report.Stops, ts)
	}

	var routesData transitlandRoutesResponse
	if err := s.getJSON(ctx, transitlandBase+"/routes", params, &routesData); err != nil {
		log.Printf("transit routes unavailable: %v", err)
		return report, nil
	}
	for _, route := range routesData.Routes {
		name := route.Name
		if name == "" {
			name = route.Short
		}
		report.Routes = append(report.Routes, models.TransitRoute{
			Name:     name,
			Operator: route.Agency.Name,
		})
	}
	return report, nil
}

// ------------------- Air Quality -------------------

type openWeatherAirResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			SO2  float64 `json:"so2"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}

// AirQuality returns pollutant concentrations for the given point.
func (s *Service) AirQuality(ctx context.Context, lat, lon float64) (*models.AirQuality, error) {
	if s.keys.OpenWeather == "" {
		return fallbackAirQuality(), nil
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("appid", s.keys.OpenWeather)

	var data openWeatherAirResponse
	if err := s.getJSON(ctx, openWeatherBase+"/air_pollution", params, &data); err != nil {
		log.Printf("air quality provider unavailable: %v", err)
		return fallbackAirQuality(), nil
	}
	if len(data.List) == 0 {
		return fallbackAirQuality(), nil
	}

	entry := data.List[0]
	return &models.AirQuality{
		CO:         entry.Components.CO,
		NO2:        entry.Components.NO2,
		O3:         entry.Components.O3,
		SO2:        entry.Components.SO2,
		PM25:       entry.Components.PM25,
		PM10:       entry.Components.PM10,
		USEPAIndex: entry.Main.AQI,
	}, nil
}

// ------------------- Emissions -------------------

// Emissions estimates CO2/NOx/PM output for a trip, adjusting the vehicle's
// base per-km rate by current traffic and weather around the trip area.
// Provider failures degrade to neutral adjustment factors; the estimate
// itself is always produced.
func (s *Service) Emissions(ctx context.Context, req models.EmissionsRequest) (*models.EmissionsReport, error) {
	if req.VehicleType == "" {
		req.VehicleType = models.VehicleTypeCar
	}
	if req.RouteType == "" {
		req.RouteType = models.RouteTypeFastest
	}
	if req.Lat == 0 && req.Lon == 0 {
		req.Lat, req.Lon = defaultLat, defaultLon
	}

	trafficScoreValue := 50
	if traffic, err := s.Traffic(ctx, req.Lat, req.Lon, 5000); err == nil {
		trafficScoreValue = traffic.OverallScore
	}
	weatherLevel := "low"
	if weather, err := s.Weather(ctx, "", req.Lat, req.Lon); err == nil {
		weatherLevel = weather.TrafficImpact.ImpactLevel
	}

	return calculateEmissions(req, trafficScoreValue, weatherLevel), nil
}

// calculateEmissions is the deterministic core of the estimate.
func calculateEmissions(req models.EmissionsRequest, trafficScoreValue int, weatherLevel string) *models.EmissionsReport {
	baseFactor, ok := baseEmissionFactors[req.VehicleType]
	if !ok {
		baseFactor = baseEmissionFactors[models.VehicleTypeCar]
	}

	factors := emissionFactors(trafficScoreValue, weatherLevel, req.RouteType, req.DistanceKm, req.DurationMinutes)
	adjustedFactor := baseFactor * factors.Traffic * factors.Weather
	co2 := req.DistanceKm * adjustedFactor
	ecoScore := environmentalEcoScore(co2, req.VehicleType, factors, req.DistanceKm)

	return &models.EmissionsReport{
		CO2Kg:           round3(co2),
		NOxKg:           round3(co2 * 0.15 * factors.Traffic),
		PMKg:            round3(co2 * 0.05 * factors.Weather),
		DistanceKm:      req.DistanceKm,
		VehicleType:     req.VehicleType,
		RouteType:       req.RouteType,
		BaseFactor:      baseFactor,
		AdjustedFactor:  round4(adjustedFactor),
		Factors:         factors,
		EcoScore:        ecoScore,
		Recommendations: emissionRecommendations(ecoScore, factors, req.VehicleType),
	}
}

// ------------------- Fallbacks -------------------

// Default coordinates when a request does not specify a location.
const (
	defaultLat = 17.3850
	defaultLon = 78.4867
)

func fallbackWeatherReport(city string, lat, lon float64) *models.WeatherReport {
	if city == "" {
		city = "Hyderabad"
	}
	return &models.WeatherReport{
		Location: models.WeatherLocation{Name: city, Lat: lat, Lon: lon},
		Current: models.CurrentWeather{
			TemperatureC: 28,
			Condition:    "Partly cloudy",
			Humidity:     65,
			WindKph:      12,
			VisibilityKm: 10,
			FeelsLikeC:   31,
		},
		TrafficImpact: weatherImpact("Partly cloudy", 10, 12),
		Source:        "fallback",
	}
}

func fallbackTrafficReport() *models.TrafficReport {
	score := trafficScore(25, 0)
	return &models.TrafficReport{
		CurrentSpeedKph:      35,
		FreeFlowSpeedKph:     47,
		CongestionPercentage: 25,
		OverallScore:         score,
		Recommendations:      trafficRecommendations(score, 0),
		Source:               "fallback",
	}
}

func fallbackTransitReport() *models.TransitReport {
	return &models.TransitReport{Source: "fallback"}
}

func fallbackAirQuality() *models.AirQuality {
	return &models.AirQuality{
		CO:         230,
		NO2:        15,
		O3:         60,
		PM25:       35,
		PM10:       50,
		USEPAIndex: 2,
	}
}
