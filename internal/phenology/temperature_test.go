package phenology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	d := Date(2024, time.May, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, time.UTC, d.Location())
}

func TestTemperatureSeriesValidate(t *testing.T) {
	start := Date(2024, time.May, 1)

	t.Run("contiguous series", func(t *testing.T) {
		assert.NoError(t, constantSeries(start, 30, 24, 14).Validate())
	})

	t.Run("single day", func(t *testing.T) {
		assert.NoError(t, constantSeries(start, 1, 24, 14).Validate())
	})

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, TemperatureSeries{}.Validate(), ErrEmptySeries)
	})

	t.Run("gap", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start, TMax: 24, TMin: 14},
			{Date: start.AddDate(0, 0, 2), TMax: 24, TMin: 14},
		}
		assert.ErrorIs(t, series.Validate(), ErrNonContiguousSeries)
	})

	t.Run("duplicate date", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start, TMax: 24, TMin: 14},
			{Date: start, TMax: 25, TMin: 15},
		}
		assert.ErrorIs(t, series.Validate(), ErrNonContiguousSeries)
	})

	t.Run("descending dates", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: start.AddDate(0, 0, 1), TMax: 24, TMin: 14},
			{Date: start, TMax: 24, TMin: 14},
		}
		assert.ErrorIs(t, series.Validate(), ErrNonContiguousSeries)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		series := TemperatureSeries{{Date: start, TMax: 10, TMin: 20}}
		err := series.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2024-05-01")
	})

	t.Run("equal bounds allowed", func(t *testing.T) {
		series := TemperatureSeries{{Date: start, TMax: 15, TMin: 15}}
		assert.NoError(t, series.Validate())
	})

	t.Run("month boundary is contiguous", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: Date(2024, time.May, 31), TMax: 24, TMin: 14},
			{Date: Date(2024, time.June, 1), TMax: 24, TMin: 14},
		}
		assert.NoError(t, series.Validate())
	})

	t.Run("leap day is contiguous", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: Date(2024, time.February, 28), TMax: 12, TMin: 2},
			{Date: Date(2024, time.February, 29), TMax: 12, TMin: 2},
			{Date: Date(2024, time.March, 1), TMax: 12, TMin: 2},
		}
		assert.NoError(t, series.Validate())
	})
}

func TestTemperatureSeriesFirstLast(t *testing.T) {
	start := Date(2024, time.May, 1)
	series := constantSeries(start, 5, 24, 14)

	assert.Equal(t, start, series.First())
	assert.Equal(t, start.AddDate(0, 0, 4), series.Last())

	empty := TemperatureSeries{}
	assert.True(t, empty.First().IsZero())
	assert.True(t, empty.Last().IsZero())
}
