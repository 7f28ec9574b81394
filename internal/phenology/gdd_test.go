package phenology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyGDD(t *testing.T) {
	profile := maizeProfile()

	tests := []struct {
		name     string
		tMax     float64
		tMin     float64
		expected float64
	}{
		{"plain day inside limits", 24, 14, 9},
		{"cold day clamps to zero", 8, 4, 0},
		{"hot day caps at upper limit", 40, 32, 20},
		{"mean exactly at base", 12, 8, 0},
		{"mean exactly at upper", 36, 24, 20},
		{"mean one above base", 13, 9, 1},
		{"freezing extremes", -5, -15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DailyGDD(tt.tMax, tt.tMin, profile)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	t.Run("inverted thermal limits", func(t *testing.T) {
		bad := Profile{CropID: "bad", BaseTemp: 30, UpperTemp: 10}
		_, err := DailyGDD(24, 14, bad)
		assert.ErrorIs(t, err, ErrInvalidThermalProfile)
	})

	t.Run("equal thermal limits", func(t *testing.T) {
		bad := Profile{CropID: "bad", BaseTemp: 10, UpperTemp: 10}
		_, err := DailyGDD(24, 14, bad)
		assert.ErrorIs(t, err, ErrInvalidThermalProfile)
	})
}

func TestAccumulate(t *testing.T) {
	profile := maizeProfile()
	start := Date(2024, time.May, 1)

	t.Run("mixed days", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start, TMax: 24, TMin: 14},
			{Date: start.AddDate(0, 0, 1), TMax: 8, TMin: 4},
			{Date: start.AddDate(0, 0, 2), TMax: 40, TMin: 32},
		}

		records, err := Accumulate(series, profile)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.InDelta(t, 9.0, records[0].GDD, 1e-9)
		assert.InDelta(t, 9.0, records[0].CumulativeGDD, 1e-9)
		assert.InDelta(t, 0.0, records[1].GDD, 1e-9)
		assert.InDelta(t, 9.0, records[1].CumulativeGDD, 1e-9)
		assert.InDelta(t, 20.0, records[2].GDD, 1e-9)
		assert.InDelta(t, 29.0, records[2].CumulativeGDD, 1e-9)
	})

	t.Run("cumulative column never decreases", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start, TMax: 30, TMin: 10},
			{Date: start.AddDate(0, 0, 1), TMax: 5, TMin: -5},
			{Date: start.AddDate(0, 0, 2), TMax: 2, TMin: -8},
			{Date: start.AddDate(0, 0, 3), TMax: 26, TMin: 16},
		}

		records, err := Accumulate(series, profile)
		require.NoError(t, err)

		for i := 1; i < len(records); i++ {
			assert.GreaterOrEqual(t, records[i].CumulativeGDD, records[i-1].CumulativeGDD,
				"day %d dipped below day %d", i, i-1)
		}
	})

	t.Run("dates carried through as civil days", func(t *testing.T) {
		noon := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		series := TemperatureSeries{{Date: noon, TMax: 24, TMin: 14}}

		records, err := Accumulate(series, profile)
		require.NoError(t, err)
		assert.Equal(t, Date(2024, time.May, 1), records[0].Date)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := Accumulate(TemperatureSeries{}, profile)
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("gap in series", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start, TMax: 24, TMin: 14},
			{Date: start.AddDate(0, 0, 2), TMax: 24, TMin: 14},
		}
		_, err := Accumulate(series, profile)
		assert.ErrorIs(t, err, ErrNonContiguousSeries)
	})

	t.Run("invalid profile rejected before scanning", func(t *testing.T) {
		bad := maizeProfile()
		bad.UpperTemp = bad.BaseTemp
		series := constantSeries(start, 3, 24, 14)

		_, err := Accumulate(series, bad)
		assert.ErrorIs(t, err, ErrInvalidThermalProfile)
	})
}
