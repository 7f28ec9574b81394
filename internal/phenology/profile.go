package phenology

import "fmt"

// Stage is one entry of a crop's threshold table: the stage name and the
// cumulative GDD at which the stage completes.
type Stage struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

// Profile is the immutable thermal profile of one crop/season-length variant.
// Profiles are reference data rows loaded once at startup and never mutated.
type Profile struct {
	CropID    string  `json:"crop_id"`
	BaseTemp  float64 `json:"t_base"`
	UpperTemp float64 `json:"t_upper"`
	Stages    []Stage `json:"stages"`
}

// Validate checks the thermal limits and the stage threshold table.
func (p Profile) Validate() error {
	if p.UpperTemp <= p.BaseTemp {
		return fmt.Errorf("%w: T_upper %.2f must exceed T_base %.2f (crop %q)",
			ErrInvalidThermalProfile, p.UpperTemp, p.BaseTemp, p.CropID)
	}
	if len(p.Stages) == 0 {
		return fmt.Errorf("%w: no stages defined (crop %q)", ErrInvalidThresholdTable, p.CropID)
	}
	prev := 0.0
	for i, st := range p.Stages {
		if st.Name == "" {
			return fmt.Errorf("%w: stage %d has no name (crop %q)", ErrInvalidThresholdTable, i, p.CropID)
		}
		if st.Threshold <= prev {
			return fmt.Errorf("%w: threshold %.2f at %q does not increase past %.2f (crop %q)",
				ErrInvalidThresholdTable, st.Threshold, st.Name, prev, p.CropID)
		}
		prev = st.Threshold
	}
	return nil
}

// HarvestThreshold returns the cumulative GDD of the final (harvest) stage.
func (p Profile) HarvestThreshold() float64 {
	if len(p.Stages) == 0 {
		return 0
	}
	return p.Stages[len(p.Stages)-1].Threshold
}

// MaxDailyGDD returns the largest possible single-day contribution,
// T_upper - T_base. Used for the "ideal GDD" reference line and for sizing
// projection horizons.
func (p Profile) MaxDailyGDD() float64 {
	return p.UpperTemp - p.BaseTemp
}
