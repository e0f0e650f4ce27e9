// pkg/cohort/cohort.go
package cohort

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ucass-tools/paygap/pkg/model"
)

// U15 is the fixed reference cohort of research-intensive universities.
// Names are the canonical post-normalization spellings, so tagging is an
// exact string match.
var U15 = map[string]struct{}{
	"University of Alberta":          {},
	"University of British Columbia": {},
	"University of Calgary":          {},
	"Dalhousie University":           {},
	"Université Laval":               {},
	"University of Manitoba":         {},
	"McGill University":              {},
	"McMaster University":            {},
	"Université de Montréal":         {},
	"University of Ottawa":           {},
	"Queen's University":             {},
	"University of Saskatchewan":     {},
	"University of Toronto":          {},
	"University of Waterloo":         {},
	"Western University":             {},
}

// Tag returns a copy of the rows with InCohort set for every institution in
// the reference set. Every row ends up in exactly one of the two groups.
func Tag(rows []model.InstitutionSummary) []model.InstitutionSummary {
	out := make([]model.InstitutionSummary, len(rows))
	for i, row := range rows {
		_, row.InCohort = U15[row.Institution]
		out[i] = row
	}
	return out
}

// ErrEmptyGroup is returned when either cohort group has no rows with a
// defined absolute gap, leaving the aggregate undefined.
var ErrEmptyGroup = errors.New("cohort aggregate undefined: empty group")

// Aggregate computes the mean absolute gap over the non-cohort institutions
// and its standard error as published: the variance of the non-cohort gaps
// divided by the COHORT group's count. That divisor matches the published
// analysis rather than the usual n of the sampled group; the published
// numbers depend on it, so the arithmetic is reproduced literally.
// AggregateCorrected carries the conventional computation.
func Aggregate(rows []model.InstitutionSummary) (model.CohortAggregate, error) {
	gaps, cohortCount := splitGaps(rows)
	if len(gaps) == 0 || cohortCount == 0 {
		return model.CohortAggregate{}, ErrEmptyGroup
	}

	return model.CohortAggregate{
		Label:           model.CohortAggregateLabel,
		MeanAbsoluteGap: stat.Mean(gaps, nil),
		StandardError:   stat.StdDev(gaps, nil) / math.Sqrt(float64(cohortCount)),
		SampleSize:      len(gaps),
	}, nil
}

// AggregateCorrected is the statistically conventional variant: the standard
// error divides by the non-cohort group's own count. Not wired into the
// pipeline; kept for consumers that renegotiate correctness over fidelity.
func AggregateCorrected(rows []model.InstitutionSummary) (model.CohortAggregate, error) {
	gaps, _ := splitGaps(rows)
	if len(gaps) == 0 {
		return model.CohortAggregate{}, ErrEmptyGroup
	}

	return model.CohortAggregate{
		Label:           model.CohortAggregateLabel,
		MeanAbsoluteGap: stat.Mean(gaps, nil),
		StandardError:   stat.StdDev(gaps, nil) / math.Sqrt(float64(len(gaps))),
		SampleSize:      len(gaps),
	}, nil
}

// splitGaps collects the defined absolute gaps of the non-cohort group and
// counts the cohort rows.
func splitGaps(rows []model.InstitutionSummary) ([]float64, int) {
	var gaps []float64
	cohortCount := 0
	for _, row := range rows {
		if row.InCohort {
			cohortCount++
			continue
		}
		if row.AbsoluteGap.Valid {
			gaps = append(gaps, row.AbsoluteGap.Value)
		}
	}
	return gaps, cohortCount
}
