// pkg/pipeline/report.go
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// RunReport tracks what happened during one pipeline run: row counts per
// stage, every normalization repair, the institutions dropped for
// single-gender data and the metrics left undefined. Row-local issues are
// surfaced here explicitly rather than defaulted away, so the plotting layer
// can omit or annotate them.
type RunReport struct {
	RunID         uuid.UUID
	Source        string
	ReferenceYear string
	StartTime     time.Time
	EndTime       time.Time

	RowsLoaded          int // raw records decoded from the source
	RowsPerStream       int // records per statistic block after gender filter
	VariantRowsDropped  int // excluding-medical/dental duplicate rows
	GenderRows          int // merged rows after normalization
	Institutions        int // rows in the final summary table
	DroppedInstitutions []string
	Operations          []model.NormalizationOperation
	UndefinedMetrics    map[string][]string // institution -> undefined metric names
}

// NewRunReport creates a report for a run starting now.
func NewRunReport(source, referenceYear string) *RunReport {
	return &RunReport{
		RunID:            uuid.New(),
		Source:           source,
		ReferenceYear:    referenceYear,
		StartTime:        time.Now(),
		UndefinedMetrics: make(map[string][]string),
	}
}

// Duration returns the total duration of the run.
func (r *RunReport) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// FlagUndefined records an undefined metric for an institution.
func (r *RunReport) FlagUndefined(institution, metric string) {
	r.UndefinedMetrics[institution] = append(r.UndefinedMetrics[institution], metric)
}

// CategoryCounts tallies the run's row-local issues by error category:
// missing-value repairs recorded during normalization and metrics left
// undefined by the calculator.
func (r *RunReport) CategoryCounts() map[ErrorCategory]int {
	missing := 0
	for _, op := range r.Operations {
		if op.Operation == model.OpMissingValue {
			missing++
		}
	}

	undefined := 0
	for _, metrics := range r.UndefinedMetrics {
		undefined += len(metrics)
	}

	return map[ErrorCategory]int{
		ErrorCategoryMissingValue:   missing,
		ErrorCategoryUndefinedRatio: undefined,
	}
}

// LogSummary emits the run summary.
func (r *RunReport) LogSummary(logger *zap.Logger) {
	counts := r.CategoryCounts()
	logger.Info("Pipeline run complete",
		zap.String("run_id", r.RunID.String()),
		zap.String("source", r.Source),
		zap.String("reference_year", r.ReferenceYear),
		zap.Duration("duration", r.Duration()),
		zap.Int("rows_loaded", r.RowsLoaded),
		zap.Int("rows_per_stream", r.RowsPerStream),
		zap.Int("variant_rows_dropped", r.VariantRowsDropped),
		zap.Int("gender_rows", r.GenderRows),
		zap.Int("institutions", r.Institutions),
		zap.Strings("dropped_institutions", r.DroppedInstitutions),
		zap.Int("normalization_operations", len(r.Operations)),
		zap.Int("missing_values", counts[ErrorCategoryMissingValue]),
		zap.Int("undefined_metrics", counts[ErrorCategoryUndefinedRatio]))
}
