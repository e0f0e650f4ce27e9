// pkg/metrics/metrics.go
package metrics

import (
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// Derive computes the per-institution pay-gap metrics on a copy of the input
// rows. The four metrics are independent: a missing median leaves the gaps
// undefined but still yields headcount metrics, and vice versa. Undefined
// ratios (zero or missing denominator) stay undefined instead of becoming
// Inf or NaN.
func Derive(rows []model.InstitutionSummary, logger *zap.Logger) []model.InstitutionSummary {
	out := make([]model.InstitutionSummary, len(rows))
	for i, row := range rows {
		out[i] = deriveRow(row, logger)
	}
	return out
}

func deriveRow(row model.InstitutionSummary, logger *zap.Logger) model.InstitutionSummary {
	if row.MaleMedian.Valid && row.FemaleMedian.Valid {
		row.AbsoluteGap = model.Float(row.MaleMedian.Value - row.FemaleMedian.Value)

		if row.MaleMedian.Value != 0 {
			row.RelativeGap = model.Float(row.FemaleMedian.Value / row.MaleMedian.Value)
		} else {
			logger.Warn("Relative gap undefined: male median is zero",
				zap.String("institution", row.Institution))
			row.RelativeGap = model.MissingFloat()
		}
	} else {
		row.AbsoluteGap = model.MissingFloat()
		row.RelativeGap = model.MissingFloat()
	}

	if row.MaleHeadcount.Valid && row.FemaleHeadcount.Valid {
		total := row.MaleHeadcount.Value + row.FemaleHeadcount.Value
		row.TotalHeadcount = model.Float(total)

		if total != 0 {
			row.PercentFemale = model.Float(row.FemaleHeadcount.Value / total)
		} else {
			logger.Warn("Percent female undefined: total headcount is zero",
				zap.String("institution", row.Institution))
			row.PercentFemale = model.MissingFloat()
		}
	} else {
		row.TotalHeadcount = model.MissingFloat()
		row.PercentFemale = model.MissingFloat()
	}

	return row
}
