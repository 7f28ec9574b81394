// Package mocks provides a synthetic weather source so the full pipeline can
// run offline (MOCKUP_MODE).
package mocks

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"cropcast/internal/logger"
	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// MockWeatherSource synthesizes plausible daily temperatures and locations.
// It mirrors the fetcher facade method for method, so the service cannot
// tell it apart from the real Open-Meteo client. All output is
// deterministic for a given query and window.
type MockWeatherSource struct{}

// NewMockWeatherSource creates the offline weather source.
func NewMockWeatherSource() *MockWeatherSource {
	logger.Warnw("MOCKUP_MODE enabled, serving synthetic weather data")
	return &MockWeatherSource{}
}

// Geocode derives stable coordinates from the query text. Known demo places
// resolve to their real coordinates; anything else lands somewhere in the
// continental US.
func (m *MockWeatherSource) Geocode(_ context.Context, _ string, query string) (models.Location, error) {
	if loc, ok := demoPlaces[query]; ok {
		loc.Query = query
		return loc, nil
	}

	h := fnv.New64a()
	h.Write([]byte(query))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	return models.Location{
		Query:     query,
		Name:      query,
		Country:   "United States",
		Latitude:  30 + rng.Float64()*18,   // 30..48 N
		Longitude: -120 + rng.Float64()*50, // 120..70 W
		Timezone:  "America/Chicago",
	}, nil
}

// FetchArchive synthesizes an observed series for the window.
func (m *MockWeatherSource) FetchArchive(_ context.Context, _ string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error) {
	return synthesizeSeries(lat, lon, startDate, endDate, 2.5), nil
}

// FetchClimate synthesizes a projected series. Climate model output is
// smoother than observations, so the jitter is smaller.
func (m *MockWeatherSource) FetchClimate(_ context.Context, _ string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error) {
	return synthesizeSeries(lat, lon, startDate, endDate, 1.0), nil
}

// FetchAdvisories returns canned bulletins dated relative to now.
func (m *MockWeatherSource) FetchAdvisories(_ context.Context, _ string) ([]models.Advisory, error) {
	now := time.Now().UTC()
	return []models.Advisory{
		{
			Title:     "Weekly agromet outlook: near-normal temperatures expected",
			Link:      "https://example.org/bulletins/weekly-outlook",
			Published: now.AddDate(0, 0, -2),
			Summary:   "Temperatures close to seasonal norms with scattered showers midweek.",
		},
		{
			Title:     "Soil moisture update for the corn belt",
			Link:      "https://example.org/bulletins/soil-moisture",
			Published: now.AddDate(0, 0, -5),
			Summary:   "Topsoil moisture adequate to surplus across most districts.",
		},
	}, nil
}

// synthesizeSeries builds a seasonal sinusoid with latitude-dependent mean
// and seeded day-to-day jitter. The same window always yields the same
// series.
func synthesizeSeries(lat, lon float64, startDate, endDate time.Time, jitter float64) phenology.TemperatureSeries {
	days := int(endDate.Sub(startDate)/(24*time.Hour)) + 1
	if days < 1 {
		return nil
	}

	seed := int64(lat*1e4)<<21 ^ int64(lon*1e4)<<3 ^ startDate.Unix()
	rng := rand.New(rand.NewSource(seed))

	series := make(phenology.TemperatureSeries, days)
	for i := range series {
		date := startDate.AddDate(0, 0, i)
		mean := seasonalMean(lat, date)
		spread := 9 + rng.Float64()*3

		series[i] = phenology.DailyTemperature{
			Date: date,
			TMax: mean + spread/2 + rng.NormFloat64()*jitter,
			TMin: mean - spread/2 + rng.NormFloat64()*jitter,
		}
		if series[i].TMin > series[i].TMax {
			series[i].TMax, series[i].TMin = series[i].TMin, series[i].TMax
		}
	}
	return series
}

// seasonalMean approximates the annual temperature cycle: warmest around
// mid-July, cooler per degree of northern latitude.
func seasonalMean(lat float64, date time.Time) float64 {
	base := 18 - (lat-35)*0.4
	amplitude := 11.0
	phase := 2 * math.Pi * float64(date.YearDay()-196) / 365
	return base + amplitude*math.Cos(phase)
}

// demoPlaces resolve to their real coordinates for nicer demo output.
var demoPlaces = map[string]models.Location{
	"Ames": {
		Name: "Ames", Admin1: "Iowa", Country: "United States",
		Latitude: 42.0308, Longitude: -93.6319, Timezone: "America/Chicago",
	},
	"Lincoln": {
		Name: "Lincoln", Admin1: "Nebraska", Country: "United States",
		Latitude: 40.8136, Longitude: -96.7026, Timezone: "America/Chicago",
	},
	"Fresno": {
		Name: "Fresno", Admin1: "California", Country: "United States",
		Latitude: 36.7378, Longitude: -119.7871, Timezone: "America/Los_Angeles",
	},
}
