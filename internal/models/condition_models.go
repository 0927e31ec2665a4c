package models

// WeatherLocation identifies the place a weather report describes.
type WeatherLocation struct {
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentWeather is the current conditions snapshot.
type CurrentWeather struct {
	TemperatureC float64 `json:"temperature_c"`
	Condition    string  `json:"condition"`
	Humidity     int     `json:"humidity"`
	WindKph      float64 `json:"wind_kph"`
	WindDir      string  `json:"wind_dir,omitempty"`
	PressureMb   float64 `json:"pressure_mb"`
	VisibilityKm float64 `json:"visibility_km"`
	UVIndex      float64 `json:"uv_index"`
	FeelsLikeC   float64 `json:"feels_like_c"`
}

// AirQuality carries pollutant concentrations and index values.
type AirQuality struct {
	CO         float64 `json:"co"`
	NO2        float64 `json:"no2"`
	O3         float64 `json:"o3"`
	SO2        float64 `json:"so2"`
	PM25       float64 `json:"pm2_5"`
	PM10       float64 `json:"pm10"`
	USEPAIndex int     `json:"us_epa_index"`
}

// ForecastDay is one day of the weather forecast.
type ForecastDay struct {
	Date         string  `json:"date"`
	MaxTempC     float64 `json:"max_temp_c"`
	MinTempC     float64 `json:"min_temp_c"`
	Condition    string  `json:"condition"`
	ChanceOfRain int     `json:"chance_of_rain"`
	MaxWindKph   float64 `json:"max_wind_kph"`
}

// WeatherImpact describes how current weather affects driving conditions.
type WeatherImpact struct {
	ImpactScore    int      `json:"impact_score"`
	ImpactLevel    string   `json:"impact_level"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// WeatherReport is the full weather response.
type WeatherReport struct {
	Location      WeatherLocation `json:"location"`
	Current       CurrentWeather  `json:"current_weather"`
	AirQuality    *AirQuality     `json:"air_quality,omitempty"`
	Forecast      []ForecastDay   `json:"forecast"`
	TrafficImpact WeatherImpact   `json:"traffic_impact"`
	Source        string          `json:"source"`
}

// TrafficIncident is one reported incident near the queried point.
type TrafficIncident struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// TrafficReport summarizes flow and incidents around a point.
type TrafficReport struct {
	CurrentSpeedKph      float64           `json:"current_speed_kph"`
	FreeFlowSpeedKph     float64           `json:"free_flow_speed_kph"`
	CongestionPercentage float64           `json:"congestion_percentage"`
	Incidents            []TrafficIncident `json:"incidents"`
	OverallScore         int               `json:"overall_score"`
	Recommendations      []string          `json:"recommendations"`
	Source               string            `json:"source"`
}

// TransitStop is one public-transit stop near the queried point.
type TransitStop struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// TransitRoute is one public-transit route serving the area.
type TransitRoute struct {
	Name     string `json:"name"`
	Operator string `json:"operator,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

// TransitReport lists nearby stops and routes.
type TransitReport struct {
	Stops  []TransitStop  `json:"stops"`
	Routes []TransitRoute `json:"routes"`
	Source string         `json:"source"`
}

// EmissionsRequest is the input for an emission estimate.
type EmissionsRequest struct {
	DistanceKm      float64 `json:"distance_km" validate:"required,gt=0"`
	DurationMinutes float64 `json:"duration_minutes" validate:"gte=0"`
	VehicleType     string  `json:"vehicle_type" validate:"omitempty,oneof=car motorcycle bicycle electric_car hybrid"`
	RouteType       string  `json:"route_type" validate:"omitempty,oneof=fastest shortest eco_friendly"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
}

// EmissionFactors are the multipliers applied to the base per-km emission
// rate when estimating real-world emissions.
type EmissionFactors struct {
	Traffic    float64 `json:"traffic_factor"`
	Weather    float64 `json:"weather_factor"`
	Route      float64 `json:"route_factor"`
	Efficiency float64 `json:"efficiency_factor"`
}

// EmissionsReport is the result of an emission estimate.
type EmissionsReport struct {
	CO2Kg           float64         `json:"co2_kg"`
	NOxKg           float64         `json:"nox_kg"`
	PMKg            float64         `json:"pm_kg"`
	DistanceKm      float64         `json:"distance_km"`
	VehicleType     string          `json:"vehicle_type"`
	RouteType       string          `json:"route_type"`
	BaseFactor      float64         `json:"base_emission_factor"`
	AdjustedFactor  float64         `json:"adjusted_emission_factor"`
	Factors         EmissionFactors `json:"environmental_factors"`
	EcoScore        int             `json:"eco_score"`
	Recommendations []string        `json:"recommendations"`
}
