// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/cleaner"
	"github.com/ucass-tools/paygap/pkg/cohort"
	"github.com/ucass-tools/paygap/pkg/config"
	"github.com/ucass-tools/paygap/pkg/metrics"
	"github.com/ucass-tools/paygap/pkg/model"
	"github.com/ucass-tools/paygap/pkg/source"
)

// Pipeline runs the full ingest→normalize→pivot→derive→tag sequence over one
// immutable snapshot of the source table. Every stage is pure; fatal shape or
// consistency errors abort the run on first occurrence, row-local issues are
// carried in the data and the run report.
type Pipeline struct {
	source source.Source
	cfg    *config.Config
	logger *zap.Logger
	audit  *cleaner.AuditSink
}

// New creates a pipeline over the given source.
func New(src source.Source, cfg *config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		source: src,
		cfg:    cfg,
		logger: logger.Named("pipeline"),
	}
}

// WithAuditSink attaches an optional sink recording normalization operations.
func (p *Pipeline) WithAuditSink(sink *cleaner.AuditSink) *Pipeline {
	p.audit = sink
	return p
}

// Result is the pipeline's output contract: the per-institution summary
// table, the synthetic non-cohort comparison row (nil when it could not be
// computed) and the run report. The plotting/report layer consumes this
// as-is and must not re-derive metrics.
type Result struct {
	Summaries []model.InstitutionSummary
	Aggregate *model.CohortAggregate
	Report    *RunReport
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	report := NewRunReport(p.source.Describe(), p.cfg.ReferenceYear)
	p.logger.Info("Starting pipeline run",
		zap.String("run_id", report.RunID.String()),
		zap.String("source", report.Source))

	data, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	records, year, err := Decode(data, p.cfg.ReferenceYear)
	if err != nil {
		return nil, err
	}
	report.ReferenceYear = year
	report.RowsLoaded = len(records)

	streams, err := FilterSplit(records, p.logger)
	if err != nil {
		return nil, err
	}
	report.RowsPerStream = len(streams.Headcount)

	joined, err := Verify(streams, p.logger)
	if err != nil {
		return nil, err
	}

	rows, operations, variantDrops, err := p.normalize(joined)
	if err != nil {
		return nil, err
	}
	report.Operations = operations
	report.VariantRowsDropped = variantDrops
	report.GenderRows = len(rows)

	summaries, dropped := Pivot(rows, p.logger)
	report.DroppedInstitutions = dropped

	summaries = metrics.Derive(summaries, p.logger)
	summaries = cohort.Tag(summaries)
	report.Institutions = len(summaries)
	flagUndefined(summaries, report)

	result := &Result{
		Summaries: summaries,
		Report:    report,
	}

	aggregate, err := cohort.Aggregate(summaries)
	if err != nil {
		p.logger.Warn("Cohort aggregate unavailable", zap.Error(err))
	} else {
		result.Aggregate = &aggregate
	}

	if p.audit != nil {
		if err := p.audit.RecordOperations(ctx, report.RunID, operations); err != nil {
			return nil, fmt.Errorf("failed to record audit trail: %w", err)
		}
	}

	report.EndTime = time.Now()
	report.LogSummary(p.logger)
	return result, nil
}

// normalize merges the verified triples into GenderRows and enforces the
// post-normalization uniqueness of (institution, gender): two raw variants
// collapsing onto one canonical name would make the pivot ambiguous.
func (p *Pipeline) normalize(joined []JoinedRow) ([]model.GenderRow, []model.NormalizationOperation, int, error) {
	normalizer := cleaner.NewNormalizer(p.logger)

	rows := make([]model.GenderRow, 0, len(joined))
	var operations []model.NormalizationOperation
	variantDrops := 0
	seen := make(map[model.Key]struct{}, len(joined))

	for _, j := range joined {
		row, ops, retained := normalizer.NormalizeRow(j.Headcount, j.Median, j.Average)
		operations = append(operations, ops...)
		if !retained {
			variantDrops++
			continue
		}

		key := model.Key{Institution: row.Institution, Gender: string(row.Gender)}
		if _, dup := seen[key]; dup {
			return nil, nil, 0, &ConsistencyError{Key: key, Detail: "duplicate (institution, gender) after normalization"}
		}
		seen[key] = struct{}{}

		rows = append(rows, row)
	}

	return rows, operations, variantDrops, nil
}

// flagUndefined records every undefined metric on the run report.
func flagUndefined(summaries []model.InstitutionSummary, report *RunReport) {
	for _, s := range summaries {
		if !s.AbsoluteGap.Valid {
			report.FlagUndefined(s.Institution, "absolute_gap")
		}
		if !s.RelativeGap.Valid {
			report.FlagUndefined(s.Institution, "relative_gap")
		}
		if !s.TotalHeadcount.Valid {
			report.FlagUndefined(s.Institution, "total_headcount")
		}
		if !s.PercentFemale.Valid {
			report.FlagUndefined(s.Institution, "percent_female")
		}
	}
}
