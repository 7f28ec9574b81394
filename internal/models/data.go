package models

import (
	"strings"
	"time"

	"cropcast/internal/phenology"
)

// AnalysisMode selects between reviewing an in-progress season and planning
// a future one.
type AnalysisMode string

const (
	// ModeCheck reviews a season already in the ground: observed weather
	// from planting to the as-of date.
	ModeCheck AnalysisMode = "check"
	// ModePlan projects a future season: climate-model weather from the
	// planting date over the projection horizon.
	ModePlan AnalysisMode = "plan"
)

// Valid reports whether the mode is one of the two supported values.
func (m AnalysisMode) Valid() bool {
	return m == ModeCheck || m == ModePlan
}

// Location is a geocoded place: the query as entered plus the resolved
// coordinates and naming.
type Location struct {
	Query     string  `json:"query"`               // what the user typed
	Name      string  `json:"name"`                // resolved place name
	Admin1    string  `json:"admin1,omitempty"`    // state/province
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DisplayName renders "Name, Admin1, Country" skipping empty parts.
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Admin1, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// AnalysisRequest is the user's input for one analysis run.
type AnalysisRequest struct {
	Location     string       `json:"location"`              // free-form place query
	CropID       string       `json:"crop_id"`               // {crop}_{variant} catalog key
	PlantingDate string       `json:"planting_date"`         // YYYY-MM-DD
	Mode         AnalysisMode `json:"mode"`                  // check or plan
	AsOfDate     string       `json:"as_of_date,omitempty"`  // check mode, defaults to today
	Advisory     bool         `json:"advisory,omitempty"`    // request the LLM advisory section
}

// Advisory is one agromet bulletin taken from the configured feed.
type Advisory struct {
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary,omitempty"`
}

// SeriesStats summarizes the temperature series behind an analysis.
type SeriesStats struct {
	TotalDays      int       `json:"total_days"`
	MeanDailyGDD   float64   `json:"mean_daily_gdd"`
	StdDevDailyGDD float64   `json:"std_dev_daily_gdd"`
	MeanTMax       float64   `json:"mean_tmax"`
	MeanTMin       float64   `json:"mean_tmin"`
	HottestDay     time.Time `json:"hottest_day"`
	HottestTMax    float64   `json:"hottest_tmax"`
	ColdestDay     time.Time `json:"coldest_day"`
	ColdestTMin    float64   `json:"coldest_tmin"`
	ZeroGDDDays    int       `json:"zero_gdd_days"` // days contributing nothing
}

// SeasonAnalysis is the normalized result of one analysis run: everything
// the charts, report builders, and API responses consume.
type SeasonAnalysis struct {
	Mode         AnalysisMode      `json:"mode"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Location     Location          `json:"location"`
	CropID       string            `json:"crop_id"`
	CropLabel    string            `json:"crop_label"`
	Profile      phenology.Profile `json:"profile"`
	PlantingDate time.Time         `json:"planting_date"`

	// AsOfDate is the evaluation date in check mode, zero in plan mode.
	AsOfDate time.Time `json:"as_of_date,omitempty"`
	// HorizonDays is the projection length in plan mode, zero in check mode.
	HorizonDays int `json:"horizon_days,omitempty"`

	Series     phenology.TemperatureSeries    `json:"series"`
	Records    []phenology.DailyThermalRecord `json:"records"`
	Status     phenology.StageStatus          `json:"status"`
	Milestones []phenology.Milestone          `json:"milestones"`
	Stats      SeriesStats                    `json:"stats"`

	// Advisory is the optional rendered agronomist note, empty when the
	// advisory step is disabled or failed.
	Advisory string `json:"advisory,omitempty"`
	// Advisories are recent agromet feed bulletins, empty when no feed is
	// configured.
	Advisories []Advisory `json:"advisories,omitempty"`
}

// CumulativeGDD returns the accumulation at the end of the analyzed series.
func (a SeasonAnalysis) CumulativeGDD() float64 {
	if len(a.Records) == 0 {
		return 0
	}
	return a.Records[len(a.Records)-1].CumulativeGDD
}

// HarvestMilestone returns the final-stage milestone and whether it exists.
func (a SeasonAnalysis) HarvestMilestone() (phenology.Milestone, bool) {
	if len(a.Milestones) == 0 {
		return phenology.Milestone{}, false
	}
	return a.Milestones[len(a.Milestones)-1], true
}
