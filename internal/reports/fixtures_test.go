package reports

import (
	"time"

	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// Shared fixtures for the report builder tests. The analysis mirrors a
// 30-day maize check with a steady 10 GDD per day.

func maizeProfile() phenology.Profile {
	return phenology.Profile{
		CropID:    "maize_dent",
		BaseTemp:  10,
		UpperTemp: 30,
		Stages: []phenology.Stage{
			{Name: "initial", Threshold: 200},
			{Name: "development", Threshold: 500},
			{Name: "mid_season", Threshold: 1200},
			{Name: "harvest", Threshold: 1800},
		},
	}
}

func constantSeries(start time.Time, days int, tMax, tMin float64) phenology.TemperatureSeries {
	series := make(phenology.TemperatureSeries, days)
	for i := range series {
		series[i] = phenology.DailyTemperature{
			Date: start.AddDate(0, 0, i),
			TMax: tMax,
			TMin: tMin,
		}
	}
	return series
}

// checkAnalysis builds a mid-season maize analysis: 30 observed days at
// 28/12 C, 10 GDD each, 300 cumulative.
func checkAnalysis() *models.SeasonAnalysis {
	profile := maizeProfile()
	planting := phenology.Date(2024, time.May, 1)
	series := constantSeries(planting, 30, 28, 12)

	season, err := phenology.NewSeason(profile, "Ames, Iowa, United States", planting, series)
	if err != nil {
		panic(err)
	}
	asOf := phenology.Date(2024, time.May, 30)
	status, err := season.CurrentStatus(asOf)
	if err != nil {
		panic(err)
	}

	analysis := &models.SeasonAnalysis{
		Mode:         models.ModeCheck,
		GeneratedAt:  time.Date(2024, time.May, 30, 14, 30, 45, 0, time.UTC),
		Location:     models.Location{Query: "Ames", Name: "Ames", Admin1: "Iowa", Country: "United States", Latitude: 42.0308, Longitude: -93.6319},
		CropID:       "maize_dent",
		CropLabel:    "Maize Dent",
		Profile:      profile,
		PlantingDate: planting,
		AsOfDate:     asOf,
		Series:       season.Series(),
		Records:      season.Records(),
		Status:       status,
		Milestones:   season.Milestones(),
	}
	analysis.Stats = ComputeSeriesStats(analysis.Series, analysis.Records)
	return analysis
}

// planAnalysis builds a projected season that reaches harvest maturity on
// day 180 of the horizon.
func planAnalysis() *models.SeasonAnalysis {
	profile := maizeProfile()
	planting := phenology.Date(2025, time.April, 15)
	series := constantSeries(planting, 240, 28, 12)

	records, err := phenology.Accumulate(series, profile)
	if err != nil {
		panic(err)
	}
	milestones, err := phenology.Project(series, profile, 0, planting)
	if err != nil {
		panic(err)
	}
	status, err := phenology.ResolveStage(records[len(records)-1].CumulativeGDD, profile.Stages)
	if err != nil {
		panic(err)
	}

	analysis := &models.SeasonAnalysis{
		Mode:         models.ModePlan,
		GeneratedAt:  time.Date(2024, time.November, 2, 9, 15, 0, 0, time.UTC),
		Location:     models.Location{Query: "Lincoln", Name: "Lincoln", Admin1: "Nebraska", Country: "United States", Latitude: 40.8, Longitude: -96.67},
		CropID:       "maize_dent",
		CropLabel:    "Maize Dent",
		Profile:      profile,
		PlantingDate: planting,
		HorizonDays:  240,
		Series:       series,
		Records:      records,
		Status:       status,
		Milestones:   milestones,
	}
	analysis.Stats = ComputeSeriesStats(analysis.Series, analysis.Records)
	return analysis
}
