package phenology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeason(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)

	t.Run("valid inputs", func(t *testing.T) {
		season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 10, 30, 10))
		require.NoError(t, err)

		assert.Equal(t, "Ames, Iowa", season.Location())
		assert.Equal(t, planting, season.PlantingDate())
		assert.Equal(t, "maize_dent", season.Profile().CropID)
		assert.Equal(t, planting.AddDate(0, 0, 9), season.LastDate())
		assert.InDelta(t, 100, season.LastCumulativeGDD(), 1e-9)
	})

	t.Run("planting date with a time of day", func(t *testing.T) {
		noon := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		season, err := NewSeason(profile, "Ames, Iowa", noon, constantSeries(planting, 10, 30, 10))
		require.NoError(t, err)
		assert.Equal(t, planting, season.PlantingDate())
	})

	t.Run("series does not start at planting", func(t *testing.T) {
		series := constantSeries(planting.AddDate(0, 0, 1), 10, 30, 10)
		_, err := NewSeason(profile, "Ames, Iowa", planting, series)
		assert.ErrorIs(t, err, ErrPlantingDateMismatch)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := NewSeason(profile, "Ames, Iowa", planting, TemperatureSeries{})
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("gapped series", func(t *testing.T) {
		series := TemperatureSeries{
			{Date: planting, TMax: 24, TMin: 14},
			{Date: planting.AddDate(0, 0, 3), TMax: 24, TMin: 14},
		}
		_, err := NewSeason(profile, "Ames, Iowa", planting, series)
		assert.ErrorIs(t, err, ErrNonContiguousSeries)
	})

	t.Run("invalid profile", func(t *testing.T) {
		bad := profile
		bad.Stages = nil
		_, err := NewSeason(bad, "Ames, Iowa", planting, constantSeries(planting, 10, 30, 10))
		assert.ErrorIs(t, err, ErrInvalidThresholdTable)
	})

	t.Run("inverted temperature bounds", func(t *testing.T) {
		series := TemperatureSeries{{Date: planting, TMax: 4, TMin: 14}}
		_, err := NewSeason(profile, "Ames, Iowa", planting, series)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inverted")
	})
}

func TestSeasonCurrentStatus(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)
	season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
	require.NoError(t, err)

	t.Run("first day", func(t *testing.T) {
		status, err := season.CurrentStatus(planting)
		require.NoError(t, err)
		assert.Equal(t, "initial", status.StageName)
		assert.InDelta(t, 10, status.CumulativeGDD, 1e-9)
		assert.InDelta(t, 0.05, status.StageProgress, 1e-9)
		assert.InDelta(t, 10.0/1800, status.OverallProgress, 1e-9)
		assert.False(t, status.IsFinalStage)
	})

	t.Run("exactly on a stage boundary", func(t *testing.T) {
		// Day 50 accumulates 500 GDD, the development threshold.
		status, err := season.CurrentStatus(Date(2024, time.June, 19))
		require.NoError(t, err)
		assert.Equal(t, "development", status.StageName)
		assert.InDelta(t, 500, status.CumulativeGDD, 1e-9)
		assert.InDelta(t, 1.0, status.StageProgress, 1e-9)
	})

	t.Run("last covered day", func(t *testing.T) {
		status, err := season.CurrentStatus(season.LastDate())
		require.NoError(t, err)
		assert.Equal(t, "mid_season", status.StageName)
		assert.InDelta(t, 1000, status.CumulativeGDD, 1e-9)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		midnight, err := season.CurrentStatus(Date(2024, time.June, 19))
		require.NoError(t, err)
		evening, err2 := season.CurrentStatus(time.Date(2024, 6, 19, 23, 59, 59, 0, time.UTC))
		require.NoError(t, err2)
		assert.Equal(t, midnight, evening)
	})

	t.Run("repeat queries agree", func(t *testing.T) {
		first, err := season.CurrentStatus(Date(2024, time.July, 4))
		require.NoError(t, err)
		second, err := season.CurrentStatus(Date(2024, time.July, 4))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("before planting", func(t *testing.T) {
		_, err := season.CurrentStatus(Date(2024, time.April, 30))
		assert.ErrorIs(t, err, ErrDateOutOfRange)
	})

	t.Run("past the series end", func(t *testing.T) {
		_, err := season.CurrentStatus(season.LastDate().AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrDateOutOfRange)
	})

	t.Run("maturity reached", func(t *testing.T) {
		long, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 200, 30, 10))
		require.NoError(t, err)

		status, err := long.CurrentStatus(planting.AddDate(0, 0, 179))
		require.NoError(t, err)
		assert.Equal(t, "harvest", status.StageName)
		assert.True(t, status.IsFinalStage)
		assert.InDelta(t, 1.0, status.OverallProgress, 1e-9)
	})
}

func TestSeasonMilestones(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)
	season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 200, 30, 10))
	require.NoError(t, err)

	milestones := season.Milestones()
	require.Len(t, milestones, 4)

	wantOffsets := []int{19, 49, 119, 179}
	for i, m := range milestones {
		assert.True(t, m.Reached, "stage %s", m.StageName)
		assert.False(t, m.ReachedBeforeStart)
		assert.Equal(t, ProvenanceMeasured, m.Provenance)
		assert.Equal(t, planting.AddDate(0, 0, wantOffsets[i]), m.Date)
		assert.Equal(t, wantOffsets[i], m.DaysFrom(planting))
	}

	t.Run("short season leaves later stages unreached", func(t *testing.T) {
		short, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 30, 30, 10))
		require.NoError(t, err)

		ms := short.Milestones()
		require.Len(t, ms, 4)
		assert.True(t, ms[0].Reached)
		assert.False(t, ms[1].Reached)
		assert.False(t, ms[2].Reached)
		assert.False(t, ms[3].Reached)
	})
}

func TestSeasonProjectFuture(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)
	season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
	require.NoError(t, err)

	t.Run("seeded with the measured total", func(t *testing.T) {
		futureStart := season.LastDate().AddDate(0, 0, 1)
		future := constantSeries(futureStart, 100, 30, 10)

		milestones, err := season.ProjectFuture(future)
		require.NoError(t, err)
		require.Len(t, milestones, 4)

		// 1000 GDD are already on the books; the first two stages were
		// passed during the measured run.
		assert.True(t, milestones[0].ReachedBeforeStart)
		assert.True(t, milestones[1].ReachedBeforeStart)
		assert.Equal(t, futureStart, milestones[0].Date)
		assert.Equal(t, futureStart, milestones[1].Date)

		assert.True(t, milestones[2].Reached)
		assert.False(t, milestones[2].ReachedBeforeStart)
		assert.Equal(t, futureStart.AddDate(0, 0, 19), milestones[2].Date)
		assert.InDelta(t, 1200, milestones[2].CumulativeGDD, 1e-9)

		assert.True(t, milestones[3].Reached)
		assert.Equal(t, futureStart.AddDate(0, 0, 79), milestones[3].Date)
		assert.InDelta(t, 1800, milestones[3].CumulativeGDD, 1e-9)

		for _, m := range milestones {
			assert.Equal(t, ProvenanceProjected, m.Provenance)
		}
	})

	t.Run("future series must abut the measured run", func(t *testing.T) {
		future := constantSeries(season.LastDate().AddDate(0, 0, 2), 30, 30, 10)
		_, err := season.ProjectFuture(future)
		assert.ErrorIs(t, err, ErrNonContiguousSeries)
	})

	t.Run("empty future series", func(t *testing.T) {
		_, err := season.ProjectFuture(TemperatureSeries{})
		assert.ErrorIs(t, err, ErrEmptySeries)
	})
}

func TestSeasonCumulativeSeries(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)
	season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
	require.NoError(t, err)

	points := season.CumulativeSeries()
	require.Len(t, points, 100)
	assert.Equal(t, planting, points[0].Date)
	assert.InDelta(t, 10, points[0].CumulativeGDD, 1e-9)
	assert.Equal(t, season.LastDate(), points[99].Date)
	assert.InDelta(t, 1000, points[99].CumulativeGDD, 1e-9)

	t.Run("returned slice is a copy", func(t *testing.T) {
		points[0].CumulativeGDD = -1
		fresh := season.CumulativeSeries()
		assert.InDelta(t, 10, fresh[0].CumulativeGDD, 1e-9)
	})
}

func TestSeasonReplaceSeries(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)

	t.Run("recomputes everything", func(t *testing.T) {
		season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
		require.NoError(t, err)

		err = season.ReplaceSeries(constantSeries(planting, 150, 30, 10))
		require.NoError(t, err)
		assert.InDelta(t, 1500, season.LastCumulativeGDD(), 1e-9)
		assert.Equal(t, planting.AddDate(0, 0, 149), season.LastDate())
	})

	t.Run("failed swap keeps the previous state", func(t *testing.T) {
		season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
		require.NoError(t, err)

		gapped := TemperatureSeries{
			{Date: planting, TMax: 30, TMin: 10},
			{Date: planting.AddDate(0, 0, 5), TMax: 30, TMin: 10},
		}
		err = season.ReplaceSeries(gapped)
		assert.ErrorIs(t, err, ErrNonContiguousSeries)
		assert.InDelta(t, 1000, season.LastCumulativeGDD(), 1e-9)
		assert.Equal(t, planting.AddDate(0, 0, 99), season.LastDate())
	})

	t.Run("new series must still start at planting", func(t *testing.T) {
		season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 100, 30, 10))
		require.NoError(t, err)

		err = season.ReplaceSeries(constantSeries(planting.AddDate(0, 0, -1), 100, 30, 10))
		assert.ErrorIs(t, err, ErrPlantingDateMismatch)
	})
}

func TestSeasonRecordsCopy(t *testing.T) {
	profile := maizeProfile()
	planting := Date(2024, time.May, 1)
	season, err := NewSeason(profile, "Ames, Iowa", planting, constantSeries(planting, 10, 30, 10))
	require.NoError(t, err)

	records := season.Records()
	require.Len(t, records, 10)
	records[0].CumulativeGDD = -1

	fresh := season.Records()
	assert.InDelta(t, 10, fresh[0].CumulativeGDD, 1e-9)
}
