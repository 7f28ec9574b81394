package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"cropcast/internal/models"
)

// ErrLocationNotFound distinguishes "no such place" from transport failures
// so handlers can answer 404 instead of 502.
var ErrLocationNotFound = errors.New("location not found")

// ErrUpstream marks transport and non-200 failures from the Open-Meteo APIs
// so handlers can answer 502.
var ErrUpstream = errors.New("upstream weather service failure")

// OpenMeteoFetcher handles the Open-Meteo API family: geocoding search,
// historical archive, and climate projection.
type OpenMeteoFetcher struct {
	client *resty.Client
}

// NewOpenMeteoFetcher creates a new Open-Meteo fetcher instance
func NewOpenMeteoFetcher(client *resty.Client) *OpenMeteoFetcher {
	return &OpenMeteoFetcher{
		client: client,
	}
}

// Geocode resolves a free-form place query to coordinates. The search API
// works best with a bare place name, so the full query is tried first and,
// when it contains a comma and yields nothing, the first comma-delimited
// part is retried.
func (f *OpenMeteoFetcher) Geocode(ctx context.Context, baseURL, query string) (models.Location, error) {
	queries := []string{query}
	if i := strings.Index(query, ","); i >= 0 {
		queries = append(queries, strings.TrimSpace(query[:i]))
	}

	for _, q := range queries {
		if q == "" {
			continue
		}
		result, found, err := f.search(ctx, baseURL, q)
		if err != nil {
			return models.Location{}, err
		}
		if found {
			return models.Location{
				Query:     query,
				Name:      result.Name,
				Admin1:    result.Admin1,
				Country:   result.Country,
				Latitude:  result.Latitude,
				Longitude: result.Longitude,
				Timezone:  result.Timezone,
			}, nil
		}
	}

	return models.Location{}, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
}

func (f *OpenMeteoFetcher) search(ctx context.Context, baseURL, name string) (models.GeocodingResult, bool, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"name":     name,
			"count":    "1",
			"language": "en",
			"format":   "json",
		}).
		Get(baseURL)

	if err != nil {
		return models.GeocodingResult{}, false, fmt.Errorf("%w: geocoding: %v", ErrUpstream, err)
	}
	if resp.StatusCode() != 200 {
		return models.GeocodingResult{}, false, fmt.Errorf("%w: geocoding API returned status %d", ErrUpstream, resp.StatusCode())
	}

	var data models.GeocodingResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.GeocodingResult{}, false, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(data.Results) == 0 {
		return models.GeocodingResult{}, false, nil
	}
	return data.Results[0], true, nil
}

// FetchArchiveDaily fetches observed daily temperature extremes from the
// historical archive API.
func (f *OpenMeteoFetcher) FetchArchiveDaily(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (*models.DailyWeatherResponse, error) {
	return f.fetchDaily(ctx, baseURL, "archive", map[string]string{
		"latitude":   formatCoord(lat),
		"longitude":  formatCoord(lon),
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"daily":      "temperature_2m_max,temperature_2m_min",
		"timezone":   "UTC",
	})
}

// FetchClimateDaily fetches modeled daily temperature extremes from the
// climate projection API (EC_Earth3P_HR model, as the original tracker used).
func (f *OpenMeteoFetcher) FetchClimateDaily(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (*models.DailyWeatherResponse, error) {
	return f.fetchDaily(ctx, baseURL, "climate", map[string]string{
		"latitude":   formatCoord(lat),
		"longitude":  formatCoord(lon),
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"daily":      "temperature_2m_min,temperature_2m_max",
		"models":     "EC_Earth3P_HR",
	})
}

func (f *OpenMeteoFetcher) fetchDaily(ctx context.Context, baseURL, source string, params map[string]string) (*models.DailyWeatherResponse, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(baseURL)

	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s weather: %v", ErrUpstream, source, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: %s API returned status %d", ErrUpstream, source, resp.StatusCode())
	}

	var data models.DailyWeatherResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", source, err)
	}
	return &data, nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
