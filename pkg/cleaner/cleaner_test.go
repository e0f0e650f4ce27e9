package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

func makeRecord(institution, gender string, stat model.Statistic, value string) model.RawRecord {
	return model.RawRecord{
		Institution: institution,
		Gender:      gender,
		Statistic:   stat,
		StaffCount:  "100",
		Value:       value,
	}
}

func TestNormalizeRowMergesBlocks(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	row, ops, retained := n.NormalizeRow(
		makeRecord("University of Calgary", "Male", model.StatisticHeadcount, "100"),
		makeRecord("University of Calgary", "Male", model.StatisticMedian, "120,500"),
		makeRecord("University of Calgary", "Male", model.StatisticAverage, "118,250.5"),
	)

	require.True(t, retained)
	assert.Empty(t, ops)
	assert.Equal(t, "University of Calgary", row.Institution)
	assert.Equal(t, model.GenderMale, row.Gender)

	require.True(t, row.Headcount.Valid)
	assert.Equal(t, 100.0, row.Headcount.Value)
	require.True(t, row.MedianSalary.Valid)
	assert.Equal(t, 120500.0, row.MedianSalary.Value)
	require.True(t, row.AverageSalary.Valid)
	assert.Equal(t, 118250.5, row.AverageSalary.Value)
}

func TestNormalizeRowMissingValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"blank", ""},
		{"statcan unavailable marker", ".."},
		{"statcan suppressed marker", "x"},
		{"garbage text", "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(zap.NewNop())

			row, ops, retained := n.NormalizeRow(
				makeRecord("University of Manitoba", "Female", model.StatisticHeadcount, "80"),
				makeRecord("University of Manitoba", "Female", model.StatisticMedian, tt.value),
				makeRecord("University of Manitoba", "Female", model.StatisticAverage, "99000"),
			)

			require.True(t, retained)
			// Missing, never zero
			assert.False(t, row.MedianSalary.Valid)
			assert.True(t, row.Headcount.Valid)
			assert.True(t, row.AverageSalary.Valid)

			require.Len(t, ops, 1)
			assert.Equal(t, model.OpMissingValue, ops[0].Operation)
			assert.Equal(t, "median_salary", ops[0].Field)
		})
	}
}

func TestNormalizeRowDropsExcludedVariant(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	_, ops, retained := n.NormalizeRow(
		makeRecord("McGill University - Excluding medical dental", "Male", model.StatisticHeadcount, "90"),
		makeRecord("McGill University - Excluding medical dental", "Male", model.StatisticMedian, "110000"),
		makeRecord("McGill University - Excluding medical dental", "Male", model.StatisticAverage, "108000"),
	)

	require.False(t, retained)
	require.Len(t, ops, 1)
	assert.Equal(t, model.OpVariantDrop, ops[0].Operation)
}

func TestNormalizeRowRecordsNameRepairs(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	row, ops, retained := n.NormalizeRow(
		makeRecord("UniversitÃ© Laval - Including medical dental", "Female", model.StatisticHeadcount, "70"),
		makeRecord("UniversitÃ© Laval - Including medical dental", "Female", model.StatisticMedian, "101000"),
		makeRecord("UniversitÃ© Laval - Including medical dental", "Female", model.StatisticAverage, "100000"),
	)

	require.True(t, retained)
	assert.Equal(t, "Université Laval", row.Institution)

	var opTypes []string
	for _, op := range ops {
		opTypes = append(opTypes, op.Operation)
	}
	assert.Contains(t, opTypes, model.OpEncodingRepair)
	assert.Contains(t, opTypes, model.OpSuffixStrip)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"120000", 120000, true},
		{"120,000", 120000, true},
		{" 98,765.4 ", 98765.4, true},
		{"0", 0, true},
		{"", 0, false},
		{"..", 0, false},
		{"x", 0, false},
		{"F", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumeric(tt.raw)
		assert.Equal(t, tt.valid, ok, tt.raw)
		if tt.valid {
			assert.Equal(t, tt.want, got, tt.raw)
		}
	}
}
