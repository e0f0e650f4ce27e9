package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ucass-tools/paygap/pkg/model"
	"github.com/ucass-tools/paygap/pkg/pipeline"
)

var summaryHeader = []string{
	"institution",
	"male_median",
	"female_median",
	"male_headcount",
	"female_headcount",
	"total_headcount",
	"absolute_gap",
	"gap_standard_error",
	"relative_gap",
	"percent_female",
	"in_cohort",
}

// writeSummary renders the InstitutionSummary table plus the synthetic
// non-cohort comparison row as CSV for the plotting/report layer. Undefined
// metrics serialize as empty cells, never zero or Inf.
func writeSummary(w io.Writer, result *pipeline.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}

	for _, s := range result.Summaries {
		record := []string{
			s.Institution,
			formatOptional(s.MaleMedian),
			formatOptional(s.FemaleMedian),
			formatOptional(s.MaleHeadcount),
			formatOptional(s.FemaleHeadcount),
			formatOptional(s.TotalHeadcount),
			formatOptional(s.AbsoluteGap),
			"",
			formatOptional(s.RelativeGap),
			formatOptional(s.PercentFemale),
			strconv.FormatBool(s.InCohort),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	if agg := result.Aggregate; agg != nil {
		// The aggregate is a synthetic comparison row, not an institution;
		// in_cohort does not apply to it and stays empty.
		record := []string{
			agg.Label,
			"", "", "", "", "",
			strconv.FormatFloat(agg.MeanAbsoluteGap, 'f', -1, 64),
			strconv.FormatFloat(agg.StandardError, 'f', -1, 64),
			"", "",
			"",
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatOptional(v model.OptionalFloat) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}
