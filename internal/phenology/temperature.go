package phenology

import (
	"fmt"
	"time"
)

// DailyTemperature is one day's observed or modeled temperature extremes, °C.
type DailyTemperature struct {
	Date time.Time `json:"date"`
	TMax float64   `json:"tmax"`
	TMin float64   `json:"tmin"`
}

// TemperatureSeries is an ordered run of daily temperatures: unique
// ascending dates with no gaps once validated.
type TemperatureSeries []DailyTemperature

// Date builds a civil UTC date, the only date form this package works with.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// civil truncates an arbitrary time to its civil UTC date.
func civil(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate fails fast on an empty, unordered, duplicated, or gapped series,
// and on inverted temperature bounds. Gap handling is deliberately the
// caller's problem: this package never interpolates.
func (s TemperatureSeries) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, day := range s {
		if day.TMax < day.TMin {
			return fmt.Errorf("temperature bounds inverted on %s: tmax %.2f < tmin %.2f",
				day.Date.Format("2006-01-02"), day.TMax, day.TMin)
		}
		if i == 0 {
			continue
		}
		want := s[i-1].Date.AddDate(0, 0, 1)
		if !civil(day.Date).Equal(civil(want)) {
			return fmt.Errorf("%w: expected %s after %s, got %s",
				ErrNonContiguousSeries,
				want.Format("2006-01-02"),
				s[i-1].Date.Format("2006-01-02"),
				day.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// First returns the first date of the series; zero time when empty.
func (s TemperatureSeries) First() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return civil(s[0].Date)
}

// Last returns the last date of the series; zero time when empty.
func (s TemperatureSeries) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return civil(s[len(s)-1].Date)
}
