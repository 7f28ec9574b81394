package phenology

import (
	"fmt"
	"time"
)

// Provenance records whether a milestone came from observed temperatures or
// from a climate-model series. The tag travels through reports and APIs so
// a forecast can never pass for a measurement.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceProjected Provenance = "projected"
)

// Milestone is the (estimated) completion of one stage threshold. One
// Milestone is produced per table entry, in threshold order; entries the
// series never reaches come back with Reached=false rather than being
// dropped. ReachedBeforeStart marks thresholds already satisfied by the
// seed accumulation before the scanned series begins.
type Milestone struct {
	StageName          string     `json:"stage"`
	Threshold          float64    `json:"threshold"`
	Date               time.Time  `json:"date,omitempty"`
	CumulativeGDD      float64    `json:"cumulative_gdd"`
	Reached            bool       `json:"reached"`
	ReachedBeforeStart bool       `json:"reached_before_start,omitempty"`
	Provenance         Provenance `json:"provenance"`
}

// DaysFrom returns the day offset of the milestone from a reference date,
// usually the planting date. Meaningless when the milestone is unreached.
func (m Milestone) DaysFrom(ref time.Time) int {
	return int(civil(m.Date).Sub(civil(ref)) / (24 * time.Hour))
}

// Project runs the seeded accumulation over a future-looking series and
// scans for threshold crossings. The series must begin exactly at startDate
// so the seeded timeline has no hole. A single hot day can cross several
// closely spaced thresholds; they all share that day's date. Output carries
// ProvenanceProjected.
func Project(future TemperatureSeries, p Profile, seedCumulativeGDD float64, startDate time.Time) ([]Milestone, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := future.Validate(); err != nil {
		return nil, err
	}
	if !future.First().Equal(civil(startDate)) {
		return nil, fmt.Errorf("%w: projection series starts %s, expected %s",
			ErrNonContiguousSeries,
			future.First().Format("2006-01-02"),
			civil(startDate).Format("2006-01-02"))
	}

	records, err := Accumulate(future, p)
	if err != nil {
		return nil, err
	}
	return scanCrossings(records, p.Stages, seedCumulativeGDD, civil(startDate), ProvenanceProjected), nil
}

// scanCrossings finds, for each stage threshold, the first day on which the
// seeded cumulative total reaches it. Shared by measured and projected
// milestone derivation; only the provenance differs.
func scanCrossings(records []DailyThermalRecord, stages []Stage, seed float64, startDate time.Time, prov Provenance) []Milestone {
	milestones := make([]Milestone, 0, len(stages))
	next := 0

	for next < len(stages) && seed >= stages[next].Threshold {
		milestones = append(milestones, Milestone{
			StageName:          stages[next].Name,
			Threshold:          stages[next].Threshold,
			Date:               startDate,
			CumulativeGDD:      seed,
			Reached:            true,
			ReachedBeforeStart: true,
			Provenance:         prov,
		})
		next++
	}

	for _, rec := range records {
		total := seed + rec.CumulativeGDD
		for next < len(stages) && total >= stages[next].Threshold {
			milestones = append(milestones, Milestone{
				StageName:     stages[next].Name,
				Threshold:     stages[next].Threshold,
				Date:          rec.Date,
				CumulativeGDD: total,
				Reached:       true,
				Provenance:    prov,
			})
			next++
		}
		if next == len(stages) {
			break
		}
	}

	for ; next < len(stages); next++ {
		milestones = append(milestones, Milestone{
			StageName:  stages[next].Name,
			Threshold:  stages[next].Threshold,
			Provenance: prov,
		})
	}

	return milestones
}
