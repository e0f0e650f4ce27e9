package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucass-tools/paygap/pkg/model"
	"github.com/ucass-tools/paygap/pkg/pipeline"
)

func TestWriteSummary(t *testing.T) {
	result := &pipeline.Result{
		Summaries: []model.InstitutionSummary{
			{
				Institution:     "A University",
				MaleMedian:      model.Float(120000),
				FemaleMedian:    model.Float(110000),
				MaleHeadcount:   model.Float(100),
				FemaleHeadcount: model.Float(45),
				TotalHeadcount:  model.Float(145),
				AbsoluteGap:     model.Float(10000),
				RelativeGap:     model.Float(110000.0 / 120000.0),
				PercentFemale:   model.Float(45.0 / 145.0),
				InCohort:        true,
			},
			{
				Institution:  "B College",
				MaleMedian:   model.Float(90000),
				FemaleMedian: model.MissingFloat(),
				AbsoluteGap:  model.MissingFloat(),
				RelativeGap:  model.MissingFloat(),
			},
		},
		Aggregate: &model.CohortAggregate{
			Label:           model.CohortAggregateLabel,
			MeanAbsoluteGap: 7250,
			StandardError:   812.5,
			SampleSize:      34,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, result))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, summaryHeader, rows[0])

	cols := make(map[string]int, len(summaryHeader))
	for i, name := range summaryHeader {
		cols[name] = i
	}

	assert.Equal(t, "A University", rows[1][cols["institution"]])
	assert.Equal(t, "120000", rows[1][cols["male_median"]])
	assert.Equal(t, "true", rows[1][cols["in_cohort"]])

	// Undefined metrics render as empty cells, never zero.
	assert.Equal(t, "", rows[2][cols["female_median"]])
	assert.Equal(t, "", rows[2][cols["absolute_gap"]])
	assert.Equal(t, "false", rows[2][cols["in_cohort"]])

	// The aggregate is a synthetic comparison row, not an institution, so
	// only its own fields carry values and in_cohort stays empty.
	agg := rows[3]
	assert.Equal(t, model.CohortAggregateLabel, agg[cols["institution"]])
	assert.Equal(t, "7250", agg[cols["absolute_gap"]])
	assert.Equal(t, "812.5", agg[cols["gap_standard_error"]])
	assert.Equal(t, "", agg[cols["male_median"]])
	assert.Equal(t, "", agg[cols["in_cohort"]])
}
