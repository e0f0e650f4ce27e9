// pkg/pipeline/errors.go
package pipeline

import (
	"errors"
	"fmt"

	"github.com/ucass-tools/paygap/pkg/model"
)

// ErrorCategory defines categories of errors during a pipeline run
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	// ErrorCategoryMissingValue marks a row-local unparseable numeric field;
	// the affected metric is excluded, the run continues.
	ErrorCategoryMissingValue
	// ErrorCategoryUndefinedRatio marks a row-local zero/missing denominator;
	// the affected metric is undefined, the run continues.
	ErrorCategoryUndefinedRatio
	// ErrorCategoryShape marks schema drift in the source table. Fatal.
	ErrorCategoryShape
	// ErrorCategoryConsistency marks misaligned or contradictory rows across
	// the statistic blocks. Fatal.
	ErrorCategoryConsistency
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryMissingValue:
		return "MissingValue"
	case ErrorCategoryUndefinedRatio:
		return "UndefinedRatio"
	case ErrorCategoryShape:
		return "Shape"
	case ErrorCategoryConsistency:
		return "Consistency"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// Fatal reports whether errors of this category abort the run.
func (ec ErrorCategory) Fatal() bool {
	return ec == ErrorCategoryShape || ec == ErrorCategoryConsistency
}

// ShapeError indicates the source table no longer matches the published
// schema: wrong header, inconsistent field counts, an unknown statistic
// block, or statistic streams of different lengths.
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("data-shape error: %s", e.Detail)
}

func shapeErrorf(format string, args ...interface{}) *ShapeError {
	return &ShapeError{Detail: fmt.Sprintf(format, args...)}
}

// Categorize maps an error to its category in the run taxonomy. Errors from
// outside the taxonomy (a failed fetch, say) categorize as None; they still
// abort the run, they just are not the pipeline's own verdicts.
func Categorize(err error) ErrorCategory {
	var shapeErr *ShapeError
	var consErr *ConsistencyError

	switch {
	case err == nil:
		return ErrorCategoryNone
	case errors.As(err, &shapeErr):
		return ErrorCategoryShape
	case errors.As(err, &consErr):
		return ErrorCategoryConsistency
	default:
		return ErrorCategoryNone
	}
}

// ConsistencyError indicates the statistic blocks disagree on identity or on
// the repeated total-staff count for a specific (institution, gender) key.
// Proceeding with misaligned data is disallowed, so the first mismatch aborts
// the run.
type ConsistencyError struct {
	Key    model.Key
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency error at (%s, %s): %s",
		e.Key.Institution, e.Key.Gender, e.Detail)
}
