package fetchers

import (
	"fmt"
	"time"

	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// DataNormalizer converts Open-Meteo wire responses into validated domain
// series.
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// DailySeries converts the parallel arrays of a daily weather response into
// a contiguous temperature series.
//
// The APIs return explicit nulls for days a station or model has no value.
// A missing bound is substituted with the day's other bound so the series
// stays gap-free without ever inverting tmax/tmin; a day missing both
// bounds contributes zero GDD. Substitution happens here, never in the
// accumulation math.
func (n *DataNormalizer) DailySeries(resp *models.DailyWeatherResponse) (phenology.TemperatureSeries, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: no weather response", phenology.ErrEmptySeries)
	}

	days := resp.Daily.Time
	tmax := resp.Daily.Temperature2mMax
	tmin := resp.Daily.Temperature2mMin

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: response covers no days", phenology.ErrEmptySeries)
	}
	if len(tmax) != len(days) || len(tmin) != len(days) {
		return nil, fmt.Errorf("malformed daily block: %d dates, %d tmax, %d tmin",
			len(days), len(tmax), len(tmin))
	}

	series := make(phenology.TemperatureSeries, len(days))
	for i, raw := range days {
		date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed date %q at index %d: %w", raw, i, err)
		}

		max, min := substituteMissing(tmax[i], tmin[i])
		series[i] = phenology.DailyTemperature{
			Date: date,
			TMax: max,
			TMin: min,
		}
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("normalized series invalid: %w", err)
	}
	return series, nil
}

// substituteMissing fills a null temperature bound from the day's other
// bound; a fully missing day becomes 0/0.
func substituteMissing(tmax, tmin *float64) (float64, float64) {
	switch {
	case tmax != nil && tmin != nil:
		return *tmax, *tmin
	case tmax != nil:
		return *tmax, *tmax
	case tmin != nil:
		return *tmin, *tmin
	default:
		return 0, 0
	}
}
