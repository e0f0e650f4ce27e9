package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ucass-tools/paygap/pkg/model"
)

func TestCategorize(t *testing.T) {
	consistency := &ConsistencyError{
		Key:    model.Key{Institution: "A University", Gender: string(model.GenderMale)},
		Detail: "total staff mismatch",
	}

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ErrorCategoryNone},
		{"shape", shapeErrorf("unexpected header %q", "bogus"), ErrorCategoryShape},
		{"consistency", consistency, ErrorCategoryConsistency},
		{"wrapped shape", fmt.Errorf("decoding source: %w", shapeErrorf("short row")), ErrorCategoryShape},
		{"wrapped consistency", fmt.Errorf("verifying streams: %w", consistency), ErrorCategoryConsistency},
		{"outside the taxonomy", errors.New("connection refused"), ErrorCategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.err))
		})
	}
}

func TestErrorCategoryFatal(t *testing.T) {
	assert.True(t, ErrorCategoryShape.Fatal())
	assert.True(t, ErrorCategoryConsistency.Fatal())
	assert.False(t, ErrorCategoryNone.Fatal())
	assert.False(t, ErrorCategoryMissingValue.Fatal())
	assert.False(t, ErrorCategoryUndefinedRatio.Fatal())
}

func TestErrorCategoryString(t *testing.T) {
	assert.Equal(t, "MissingValue", ErrorCategoryMissingValue.String())
	assert.Equal(t, "Consistency", ErrorCategoryConsistency.String())
	assert.Equal(t, "Unknown(99)", ErrorCategory(99).String())
}

func TestCategoryCounts(t *testing.T) {
	r := NewRunReport("test", "2023/2024")
	r.Operations = append(r.Operations,
		model.NormalizationOperation{Operation: model.OpMissingValue},
		model.NormalizationOperation{Operation: model.OpEncodingRepair},
		model.NormalizationOperation{Operation: model.OpMissingValue},
	)
	r.FlagUndefined("A University", "relative_gap")
	r.FlagUndefined("A University", "percent_female")
	r.FlagUndefined("B University", "total_headcount")

	counts := r.CategoryCounts()
	assert.Equal(t, 2, counts[ErrorCategoryMissingValue])
	assert.Equal(t, 3, counts[ErrorCategoryUndefinedRatio])
}
