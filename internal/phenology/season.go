package phenology

import (
	"fmt"
	"time"
)

// CumulativePoint is one (date, CGDD) pair of the season's accumulation
// curve, exported for charting.
type CumulativePoint struct {
	Date          time.Time `json:"date"`
	CumulativeGDD float64   `json:"cumulative_gdd"`
}

// Season is the per-analysis aggregate: one crop profile, one location, one
// planting date, one validated temperature series and its derived thermal
// records. A Season is owned exclusively by its caller and holds no shared
// state; it is recomputed in full whenever a new series is supplied and
// discarded when the analysis is done.
type Season struct {
	profile      Profile
	location     string
	plantingDate time.Time
	series       TemperatureSeries
	records      []DailyThermalRecord
}

// NewSeason validates the inputs and derives the thermal records. The series
// must start exactly at the planting date.
func NewSeason(profile Profile, location string, plantingDate time.Time, series TemperatureSeries) (*Season, error) {
	s := &Season{
		profile:      profile,
		location:     location,
		plantingDate: civil(plantingDate),
	}
	if err := s.ReplaceSeries(series); err != nil {
		return nil, err
	}
	return s, nil
}

// ReplaceSeries swaps in a new temperature series and recomputes every
// thermal record from scratch. All-or-nothing: on failure the season keeps
// its previous state.
func (s *Season) ReplaceSeries(series TemperatureSeries) error {
	if err := series.Validate(); err != nil {
		return err
	}
	if !series.First().Equal(s.plantingDate) {
		return fmt.Errorf("%w: series starts %s, planting date is %s",
			ErrPlantingDateMismatch,
			series.First().Format("2006-01-02"),
			s.plantingDate.Format("2006-01-02"))
	}

	records, err := Accumulate(series, s.profile)
	if err != nil {
		return err
	}

	s.series = series
	s.records = records
	return nil
}

// CurrentStatus resolves the stage as of the given date. The date must fall
// inside the available series.
func (s *Season) CurrentStatus(asOf time.Time) (StageStatus, error) {
	rec, err := s.recordAt(asOf)
	if err != nil {
		return StageStatus{}, err
	}
	return ResolveStage(rec.CumulativeGDD, s.profile.Stages)
}

// Milestones scans the measured accumulation for stage crossings. Stages the
// observed series has not reached yet come back unreached.
func (s *Season) Milestones() []Milestone {
	return scanCrossings(s.records, s.profile.Stages, 0, s.plantingDate, ProvenanceMeasured)
}

// ProjectFuture forecasts the remaining stage crossings from a
// forward-looking series, seeded with the season's last measured cumulative
// GDD. The future series must begin the day after the last measured date.
func (s *Season) ProjectFuture(future TemperatureSeries) ([]Milestone, error) {
	last := s.records[len(s.records)-1]
	return Project(future, s.profile, last.CumulativeGDD, last.Date.AddDate(0, 0, 1))
}

// CumulativeSeries exports the accumulation curve for charting. The slice is
// a copy; mutating it cannot corrupt the season.
func (s *Season) CumulativeSeries() []CumulativePoint {
	points := make([]CumulativePoint, len(s.records))
	for i, rec := range s.records {
		points[i] = CumulativePoint{Date: rec.Date, CumulativeGDD: rec.CumulativeGDD}
	}
	return points
}

// Records returns a copy of the derived thermal records.
func (s *Season) Records() []DailyThermalRecord {
	out := make([]DailyThermalRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Series returns the temperature series the season was computed from.
func (s *Season) Series() TemperatureSeries {
	out := make(TemperatureSeries, len(s.series))
	copy(out, s.series)
	return out
}

// Profile returns the crop profile the season was built with.
func (s *Season) Profile() Profile {
	return s.profile
}

// Location returns the opaque location label.
func (s *Season) Location() string {
	return s.location
}

// PlantingDate returns the planting date.
func (s *Season) PlantingDate() time.Time {
	return s.plantingDate
}

// LastDate returns the final date covered by the series.
func (s *Season) LastDate() time.Time {
	return s.records[len(s.records)-1].Date
}

// LastCumulativeGDD returns the cumulative GDD at the series end.
func (s *Season) LastCumulativeGDD() float64 {
	return s.records[len(s.records)-1].CumulativeGDD
}

// recordAt locates the thermal record for a date inside the series.
func (s *Season) recordAt(asOf time.Time) (DailyThermalRecord, error) {
	day := civil(asOf)
	if day.Before(s.plantingDate) {
		return DailyThermalRecord{}, fmt.Errorf("%w: %s precedes planting date %s",
			ErrDateOutOfRange, day.Format("2006-01-02"), s.plantingDate.Format("2006-01-02"))
	}
	idx := int(day.Sub(s.plantingDate) / (24 * time.Hour))
	if idx >= len(s.records) {
		return DailyThermalRecord{}, fmt.Errorf("%w: %s exceeds the series end %s",
			ErrDateOutOfRange, day.Format("2006-01-02"), s.LastDate().Format("2006-01-02"))
	}
	return s.records[idx], nil
}
