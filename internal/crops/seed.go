package crops

import "cropcast/internal/phenology"

// referenceProfiles is the catalog seed: FAO-56 style four-stage threshold
// tables for the common field crops. IDs follow the {crop}_{variant}
// convention the API and UI key on. Thresholds are cumulative GDD at stage
// completion, strictly increasing within each row.
func referenceProfiles() []phenology.Profile {
	return []phenology.Profile{
		profile("maize_dent", 10, 30, 200, 500, 1200, 1800),
		profile("maize_sweet", 10, 30, 160, 390, 900, 1400),
		profile("wheat_spring", 0, 26, 180, 450, 1050, 1600),
		profile("wheat_winter", 0, 26, 220, 550, 1350, 2000),
		profile("barley_spring", 0, 25, 150, 400, 950, 1450),
		profile("soybean_early", 10, 30, 130, 400, 950, 1450),
		profile("soybean_late", 10, 30, 150, 450, 1100, 1700),
		profile("rice_lowland", 10, 34, 250, 600, 1350, 1950),
		profile("sunflower_oilseed", 8, 32, 170, 450, 1000, 1500),
		profile("tomato_processing", 10, 28, 150, 400, 900, 1350),
		profile("potato_russet", 7, 30, 150, 350, 850, 1300),
		profile("cotton_upland", 15, 35, 180, 500, 1200, 1800),
	}
}

func profile(id string, tBase, tUpper, initial, development, midSeason, harvest float64) phenology.Profile {
	return phenology.Profile{
		CropID:    id,
		BaseTemp:  tBase,
		UpperTemp: tUpper,
		Stages: []phenology.Stage{
			{Name: "initial", Threshold: initial},
			{Name: "development", Threshold: development},
			{Name: "mid_season", Threshold: midSeason},
			{Name: "harvest", Threshold: harvest},
		},
	}
}
