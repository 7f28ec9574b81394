package fetchers

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"cropcast/internal/logger"
	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// WeatherFetcher handles fetching data from all external sources: the
// Open-Meteo API family for geocoding and daily temperatures, plus the
// optional agromet advisory feed.
type WeatherFetcher struct {
	client     *resty.Client
	openMeteo  *OpenMeteoFetcher
	advisory   *AdvisoryFetcher
	normalizer *DataNormalizer
}

// NewWeatherFetcher creates a new weather fetcher instance
func NewWeatherFetcher() *WeatherFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &WeatherFetcher{
		client:     client,
		openMeteo:  NewOpenMeteoFetcher(client),
		advisory:   NewAdvisoryFetcher(client),
		normalizer: NewDataNormalizer(),
	}
}

// Geocode resolves a free-form place query to a location.
func (f *WeatherFetcher) Geocode(ctx context.Context, baseURL, query string) (models.Location, error) {
	logger.Debugw("Geocoding location", "query", query)
	return f.openMeteo.Geocode(ctx, baseURL, query)
}

// FetchArchive fetches the observed temperature series for [startDate,
// endDate] from the historical archive API.
func (f *WeatherFetcher) FetchArchive(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error) {
	logger.Debugw("Fetching archive weather",
		"lat", lat, "lon", lon,
		"start", startDate.Format("2006-01-02"), "end", endDate.Format("2006-01-02"))

	resp, err := f.openMeteo.FetchArchiveDaily(ctx, baseURL, lat, lon, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return f.normalizer.DailySeries(resp)
}

// FetchClimate fetches the climate-model temperature series for [startDate,
// endDate] from the projection API.
func (f *WeatherFetcher) FetchClimate(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error) {
	logger.Debugw("Fetching climate projection",
		"lat", lat, "lon", lon,
		"start", startDate.Format("2006-01-02"), "end", endDate.Format("2006-01-02"))

	resp, err := f.openMeteo.FetchClimateDaily(ctx, baseURL, lat, lon, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return f.normalizer.DailySeries(resp)
}

// FetchAdvisories fetches recent agromet bulletins from the configured feed.
func (f *WeatherFetcher) FetchAdvisories(ctx context.Context, feedURL string) ([]models.Advisory, error) {
	logger.Debugw("Fetching advisory feed", "url", feedURL)
	return f.advisory.FetchAdvisories(ctx, feedURL, AdvisoryMaxAge)
}
