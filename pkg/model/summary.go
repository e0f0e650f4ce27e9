// pkg/model/summary.go
package model

// OptionalFloat is a numeric field that may be missing or undefined. Blank or
// unparseable source values become invalid OptionalFloats rather than zero,
// and undefined ratios (zero or missing denominator) stay invalid instead of
// propagating Inf/NaN downstream.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid OptionalFloat holding v.
func Float(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

// MissingFloat returns the missing-value marker.
func MissingFloat() OptionalFloat {
	return OptionalFloat{}
}

// InstitutionSummary is one row of the wide per-institution comparison table,
// the pipeline's sole output contract with the plotting/report layer. An
// institution only appears here if both its Male and Female rows survived
// normalization; metrics may still be individually undefined.
type InstitutionSummary struct {
	Institution     string
	MaleMedian      OptionalFloat
	FemaleMedian    OptionalFloat
	MaleHeadcount   OptionalFloat
	FemaleHeadcount OptionalFloat
	TotalHeadcount  OptionalFloat
	AbsoluteGap     OptionalFloat // male median - female median
	RelativeGap     OptionalFloat // female median / male median
	PercentFemale   OptionalFloat // female headcount / total headcount
	InCohort        bool
}

// CohortAggregateLabel is the label of the synthetic comparison row emitted
// alongside the cohort institutions.
const CohortAggregateLabel = "Non-cohort Universities"

// CohortAggregate summarizes the absolute pay gap over the non-cohort subset.
// It is rendered as a synthetic institution-like row for direct comparison
// against the cohort institutions.
type CohortAggregate struct {
	Label           string
	MeanAbsoluteGap float64
	StandardError   float64
	SampleSize      int // number of non-cohort institutions aggregated
}
