// Package phenology models crop development as accumulated thermal time
// (Growing Degree Days, GDD) and resolves it to phenological stages.
//
// # Thermal-Time Model
//
// Daily GDD follows the FAO-56 style averaging method with upper-limit
// capping:
//
//	T_avg = (T_max + T_min) / 2
//	GDD   = max(0, min(T_avg, T_upper) − T_base)
//
// Days with T_avg at or below T_base contribute exactly zero (development
// pauses, never reverses). Days with T_avg at or above T_upper contribute
// the fixed cap T_upper − T_base (development rate saturates; heat stress is
// not penalized in this model). Cumulative GDD (CGDD) is the running sum
// from the planting date and is non-decreasing by construction.
//
// # Stage Resolution
//
// A crop profile carries an ordered stage-threshold table: one cumulative
// threshold per stage, strictly increasing, the last marking harvest
// maturity. Stage intervals are lower-exclusive and upper-inclusive:
//
//	initial      [0, t0]
//	stage i      (t(i-1), t(i)]
//
// A CGDD exactly equal to a threshold therefore resolves to the stage that
// ends there with progress 1.0; the next positive increment lands in the
// following stage near 0. At or beyond the final threshold the status is
// terminal: final stage, progress 1.0, regardless of further accumulation.
// Every value in [0, ∞) maps to exactly one stage.
//
// # Measured vs. Projected
//
// The same threshold-crossing scan produces milestones from observed series
// (provenance "measured") and from climate-model series (provenance
// "projected"). The provenance tag travels with every Milestone so
// downstream consumers cannot mistake a forecast for a measurement.
// Milestones the series never reaches are returned unreached, never
// silently dropped.
//
// # Conventions
//
// Temperatures are °C. Dates are civil UTC dates (midnight time.Time in
// UTC); series must be ascending, unique, and contiguous — a gap is a hard
// validation failure, interpolation is deliberately not performed here.
// Everything in this package is pure computation: no I/O, no clock, no
// locking. One Season per analysis; callers own the instance exclusively.
package phenology
