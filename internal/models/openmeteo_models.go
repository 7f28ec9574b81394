package models

// GeocodingResponse represents the Open-Meteo geocoding search response
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// GeocodingResult is one match from the geocoding API
type GeocodingResult struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	CountryCode string  `json:"country_code"`
	Timezone    string  `json:"timezone"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"` // state / province / region
}

// DailyWeatherResponse represents the daily block shared by the Open-Meteo
// archive and climate APIs. Temperature entries are pointers because the
// APIs return explicit nulls for days without data.
type DailyWeatherResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     struct {
		Time             []string   `json:"time"`               // YYYY-MM-DD per day
		Temperature2mMax []*float64 `json:"temperature_2m_max"` // °C, nullable
		Temperature2mMin []*float64 `json:"temperature_2m_min"` // °C, nullable
	} `json:"daily"`
	DailyUnits struct {
		Temperature2mMax string `json:"temperature_2m_max"`
		Temperature2mMin string `json:"temperature_2m_min"`
	} `json:"daily_units"`
}
