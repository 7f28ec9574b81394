package phenology

import "time"

// Shared fixtures for the package tests. The maize profile mirrors the
// dent-corn reference row shipped in the crop catalog seed.

func maizeProfile() Profile {
	return Profile{
		CropID:    "maize_dent",
		BaseTemp:  10,
		UpperTemp: 30,
		Stages: []Stage{
			{Name: "initial", Threshold: 200},
			{Name: "development", Threshold: 500},
			{Name: "mid_season", Threshold: 1200},
			{Name: "harvest", Threshold: 1800},
		},
	}
}

// constantSeries builds days consecutive daily records sharing one
// tmax/tmin pair, starting at start.
func constantSeries(start time.Time, days int, tMax, tMin float64) TemperatureSeries {
	series := make(TemperatureSeries, days)
	for i := range series {
		series[i] = DailyTemperature{
			Date: start.AddDate(0, 0, i),
			TMax: tMax,
			TMin: tMin,
		}
	}
	return series
}
