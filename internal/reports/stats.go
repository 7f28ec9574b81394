package reports

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// TrailingWindowDays is the window for the recent-pace estimate.
const TrailingWindowDays = 7

// ComputeSeriesStats summarizes a temperature series and its derived thermal
// records for the report. Returns a zero value when the series is empty.
func ComputeSeriesStats(series phenology.TemperatureSeries, records []phenology.DailyThermalRecord) models.SeriesStats {
	if len(series) == 0 || len(records) == 0 {
		return models.SeriesStats{}
	}

	tmax := make([]float64, len(series))
	tmin := make([]float64, len(series))
	gdd := make([]float64, len(records))

	stats := models.SeriesStats{
		TotalDays:   len(series),
		HottestDay:  series[0].Date,
		HottestTMax: series[0].TMax,
		ColdestDay:  series[0].Date,
		ColdestTMin: series[0].TMin,
	}

	for i, d := range series {
		tmax[i] = d.TMax
		tmin[i] = d.TMin
		if d.TMax > stats.HottestTMax {
			stats.HottestTMax = d.TMax
			stats.HottestDay = d.Date
		}
		if d.TMin < stats.ColdestTMin {
			stats.ColdestTMin = d.TMin
			stats.ColdestDay = d.Date
		}
	}

	for i, r := range records {
		gdd[i] = r.GDD
		if r.GDD == 0 {
			stats.ZeroGDDDays++
		}
	}

	stats.MeanTMax = stat.Mean(tmax, nil)
	stats.MeanTMin = stat.Mean(tmin, nil)
	stats.MeanDailyGDD = stat.Mean(gdd, nil)
	if len(gdd) > 1 {
		stats.StdDevDailyGDD = stat.StdDev(gdd, nil)
	}

	return stats
}

// TrailingMeanGDD returns the mean daily GDD over the trailing window. A
// window longer than the records shrinks to what is available.
func TrailingMeanGDD(records []phenology.DailyThermalRecord, window int) float64 {
	if len(records) == 0 || window <= 0 {
		return 0
	}
	if window > len(records) {
		window = len(records)
	}

	vals := make([]float64, 0, window)
	for _, r := range records[len(records)-window:] {
		vals = append(vals, r.GDD)
	}
	return stat.Mean(vals, nil)
}

// EstimateRemainingDays projects how many more days the crop needs to reach
// the harvest threshold at the recent pace. The second return is false when
// no estimate is possible: the recent pace is zero and the crop is not done.
func EstimateRemainingDays(records []phenology.DailyThermalRecord, profile phenology.Profile, window int) (int, bool) {
	if len(records) == 0 {
		return 0, false
	}

	current := records[len(records)-1].CumulativeGDD
	remaining := profile.HarvestThreshold() - current
	if remaining <= 0 {
		return 0, true
	}

	pace := TrailingMeanGDD(records, window)
	if pace <= 0 {
		return 0, false
	}

	return int(math.Ceil(remaining / pace)), true
}
