package phenology

import "time"

// DailyThermalRecord is the per-day derivation: the day's GDD contribution
// and the running cumulative total from the planting date.
type DailyThermalRecord struct {
	Date          time.Time `json:"date"`
	GDD           float64   `json:"gdd"`
	CumulativeGDD float64   `json:"cumulative_gdd"`
}

// DailyGDD computes one day's thermal units for the given profile limits.
// The result is never negative and never exceeds T_upper - T_base.
func DailyGDD(tMax, tMin float64, p Profile) (float64, error) {
	if p.UpperTemp <= p.BaseTemp {
		return 0, ErrInvalidThermalProfile
	}
	return dailyGDD(tMax, tMin, p.BaseTemp, p.UpperTemp), nil
}

func dailyGDD(tMax, tMin, tBase, tUpper float64) float64 {
	tAvg := (tMax + tMin) / 2
	if tAvg > tUpper {
		tAvg = tUpper
	}
	gdd := tAvg - tBase
	if gdd < 0 {
		return 0
	}
	return gdd
}

// Accumulate derives the thermal record sequence for a validated series.
// The cumulative column is non-decreasing, strictly increasing on any day
// whose mean temperature exceeds T_base. The series must be contiguous;
// accumulation is all-or-nothing.
func Accumulate(series TemperatureSeries, p Profile) ([]DailyThermalRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	records := make([]DailyThermalRecord, len(series))
	total := 0.0
	for i, day := range series {
		g := dailyGDD(day.TMax, day.TMin, p.BaseTemp, p.UpperTemp)
		total += g
		records[i] = DailyThermalRecord{
			Date:          civil(day.Date),
			GDD:           g,
			CumulativeGDD: total,
		}
	}
	return records, nil
}
