package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast/internal/phenology"
)

func TestComputeSeriesStats(t *testing.T) {
	profile := maizeProfile()
	planting := phenology.Date(2024, time.May, 1)

	// Daily GDD: 9 (24/14), 0 (8/4, below base), 20 (40/32, capped), 10 (28/12).
	series := phenology.TemperatureSeries{
		{Date: planting, TMax: 24, TMin: 14},
		{Date: planting.AddDate(0, 0, 1), TMax: 8, TMin: 4},
		{Date: planting.AddDate(0, 0, 2), TMax: 40, TMin: 32},
		{Date: planting.AddDate(0, 0, 3), TMax: 28, TMin: 12},
	}
	records, err := phenology.Accumulate(series, profile)
	require.NoError(t, err)

	stats := ComputeSeriesStats(series, records)

	assert.Equal(t, 4, stats.TotalDays)
	assert.InDelta(t, (9.0+0+20+10)/4, stats.MeanDailyGDD, 1e-9)
	assert.Greater(t, stats.StdDevDailyGDD, 0.0)
	assert.InDelta(t, (24.0+8+40+28)/4, stats.MeanTMax, 1e-9)
	assert.InDelta(t, (14.0+4+32+12)/4, stats.MeanTMin, 1e-9)
	assert.Equal(t, planting.AddDate(0, 0, 2), stats.HottestDay)
	assert.Equal(t, 40.0, stats.HottestTMax)
	assert.Equal(t, planting.AddDate(0, 0, 1), stats.ColdestDay)
	assert.Equal(t, 4.0, stats.ColdestTMin)
	assert.Equal(t, 1, stats.ZeroGDDDays)
}

func TestComputeSeriesStats_Empty(t *testing.T) {
	stats := ComputeSeriesStats(nil, nil)
	assert.Zero(t, stats)
}

func TestComputeSeriesStats_SingleDay(t *testing.T) {
	profile := maizeProfile()
	planting := phenology.Date(2024, time.May, 1)
	series := constantSeries(planting, 1, 28, 12)
	records, err := phenology.Accumulate(series, profile)
	require.NoError(t, err)

	stats := ComputeSeriesStats(series, records)

	assert.Equal(t, 1, stats.TotalDays)
	assert.InDelta(t, 10.0, stats.MeanDailyGDD, 1e-9)
	// One sample has no spread; the std dev must not come back as NaN.
	assert.Equal(t, 0.0, stats.StdDevDailyGDD)
}

func TestTrailingMeanGDD(t *testing.T) {
	profile := maizeProfile()
	planting := phenology.Date(2024, time.May, 1)

	// 10 cold days contributing nothing, then 7 warm days at 10 GDD.
	series := constantSeries(planting, 10, 8, 4)
	series = append(series, constantSeries(planting.AddDate(0, 0, 10), 7, 28, 12)...)
	records, err := phenology.Accumulate(series, profile)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, TrailingMeanGDD(records, 7), 1e-9)
	assert.InDelta(t, 70.0/17, TrailingMeanGDD(records, 100), 1e-9, "window shrinks to available records")
	assert.Equal(t, 0.0, TrailingMeanGDD(nil, 7))
	assert.Equal(t, 0.0, TrailingMeanGDD(records, 0))
}

func TestEstimateRemainingDays(t *testing.T) {
	profile := maizeProfile() // harvest at 1800 GDD

	t.Run("steady pace", func(t *testing.T) {
		series := constantSeries(phenology.Date(2024, time.May, 1), 30, 28, 12) // 10 GDD/day
		records, err := phenology.Accumulate(series, profile)
		require.NoError(t, err)

		days, ok := EstimateRemainingDays(records, profile, TrailingWindowDays)
		require.True(t, ok)
		// 300 accumulated, 1500 to go at 10 per day.
		assert.Equal(t, 150, days)
	})

	t.Run("already mature", func(t *testing.T) {
		series := constantSeries(phenology.Date(2024, time.May, 1), 200, 28, 12)
		records, err := phenology.Accumulate(series, profile)
		require.NoError(t, err)

		days, ok := EstimateRemainingDays(records, profile, TrailingWindowDays)
		require.True(t, ok)
		assert.Equal(t, 0, days)
	})

	t.Run("stalled accumulation", func(t *testing.T) {
		// Warm start, then a cold snap covering the whole window.
		series := constantSeries(phenology.Date(2024, time.May, 1), 10, 28, 12)
		series = append(series, constantSeries(phenology.Date(2024, time.May, 11), 7, 8, 4)...)
		records, err := phenology.Accumulate(series, profile)
		require.NoError(t, err)

		_, ok := EstimateRemainingDays(records, profile, TrailingWindowDays)
		assert.False(t, ok, "zero pace cannot produce an estimate")
	})

	t.Run("no records", func(t *testing.T) {
		_, ok := EstimateRemainingDays(nil, profile, TrailingWindowDays)
		assert.False(t, ok)
	})
}
