package phenology

import "errors"

// Validation and query failures. All are synchronous, raised at the point of
// detection, and never retried here; callers discriminate with errors.Is.
var (
	// ErrInvalidThermalProfile indicates malformed thermal limits (T_upper ≤ T_base).
	ErrInvalidThermalProfile = errors.New("invalid thermal profile")

	// ErrInvalidThresholdTable indicates a stage table whose cumulative
	// thresholds are missing, non-positive, or not strictly increasing.
	ErrInvalidThresholdTable = errors.New("invalid stage threshold table")

	// ErrEmptySeries indicates a temperature series with zero elements.
	ErrEmptySeries = errors.New("empty temperature series")

	// ErrNonContiguousSeries indicates a temperature series with unordered,
	// duplicate, or gapped dates.
	ErrNonContiguousSeries = errors.New("non-contiguous temperature series")

	// ErrUnknownCrop indicates a crop id that resolves to no known profile.
	ErrUnknownCrop = errors.New("unknown crop")

	// ErrPlantingDateMismatch indicates a series whose first date is not the
	// planting date.
	ErrPlantingDateMismatch = errors.New("series does not start at planting date")

	// ErrDateOutOfRange indicates a status query outside the available series.
	ErrDateOutOfRange = errors.New("date outside the available series")
)
