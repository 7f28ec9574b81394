package phenology

import "fmt"

// StageStatus is the answer to "where is this crop right now".
// OverallProgress is cumulative GDD over the harvest threshold, clamped to
// [0,1]. IsFinalStage turns true once harvest maturity is reached and the
// status becomes terminal for the season.
type StageStatus struct {
	StageName       string  `json:"stage"`
	CumulativeGDD   float64 `json:"cumulative_gdd"`
	StageProgress   float64 `json:"stage_progress"`
	OverallProgress float64 `json:"overall_progress"`
	IsFinalStage    bool    `json:"is_final_stage"`
}

// ResolveStage maps a cumulative GDD value onto the stage table.
// Intervals are lower-exclusive, upper-inclusive: a value exactly on a
// threshold resolves to the stage completing there with progress 1.0.
// Values at or beyond the final threshold are terminal.
func ResolveStage(cumulativeGDD float64, stages []Stage) (StageStatus, error) {
	if err := validateStages(stages); err != nil {
		return StageStatus{}, err
	}

	harvest := stages[len(stages)-1].Threshold
	overall := clampFraction(cumulativeGDD / harvest)

	if cumulativeGDD >= harvest {
		return StageStatus{
			StageName:       stages[len(stages)-1].Name,
			CumulativeGDD:   cumulativeGDD,
			StageProgress:   1.0,
			OverallProgress: 1.0,
			IsFinalStage:    true,
		}, nil
	}

	lower := 0.0
	for _, st := range stages {
		if cumulativeGDD <= st.Threshold {
			return StageStatus{
				StageName:       st.Name,
				CumulativeGDD:   cumulativeGDD,
				StageProgress:   clampFraction((cumulativeGDD - lower) / (st.Threshold - lower)),
				OverallProgress: overall,
			}, nil
		}
		lower = st.Threshold
	}

	// Unreachable: cumulativeGDD < harvest guarantees a match above.
	return StageStatus{}, fmt.Errorf("%w: no stage covers cumulative GDD %.2f", ErrInvalidThresholdTable, cumulativeGDD)
}

// validateStages is the defensive per-query variant of Profile.Validate;
// full validation happens at profile load.
func validateStages(stages []Stage) error {
	if len(stages) == 0 {
		return fmt.Errorf("%w: no stages defined", ErrInvalidThresholdTable)
	}
	prev := 0.0
	for _, st := range stages {
		if st.Threshold <= prev {
			return fmt.Errorf("%w: threshold %.2f at %q does not increase past %.2f",
				ErrInvalidThresholdTable, st.Threshold, st.Name, prev)
		}
		prev = st.Threshold
	}
	return nil
}

// clampFraction guards against floating-point overshoot at exact boundaries.
func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
