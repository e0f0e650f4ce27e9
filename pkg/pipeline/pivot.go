// pkg/pipeline/pivot.go
package pipeline

import (
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// Pivot reshapes the per-(institution, gender) rows into one wide row per
// institution with separate male/female headcount and median columns.
// Institutions missing either gender's row are dropped, not zero-filled: the
// gap is undefined without both sides, and the dropped names are reported so
// the run report can surface them. Output keeps first-appearance order; any
// presentation ordering is the plotting layer's concern.
func Pivot(rows []model.GenderRow, logger *zap.Logger) ([]model.InstitutionSummary, []string) {
	type pair struct {
		male, female *model.GenderRow
	}

	order := make([]string, 0, len(rows)/2)
	byInstitution := make(map[string]*pair, len(rows)/2)

	for i := range rows {
		row := rows[i]
		p, ok := byInstitution[row.Institution]
		if !ok {
			p = &pair{}
			byInstitution[row.Institution] = p
			order = append(order, row.Institution)
		}
		switch row.Gender {
		case model.GenderMale:
			p.male = &rows[i]
		case model.GenderFemale:
			p.female = &rows[i]
		}
	}

	summaries := make([]model.InstitutionSummary, 0, len(order))
	var dropped []string

	for _, institution := range order {
		p := byInstitution[institution]
		if p.male == nil || p.female == nil {
			logger.Warn("Dropping institution with single-gender data",
				zap.String("institution", institution),
				zap.Bool("has_male", p.male != nil),
				zap.Bool("has_female", p.female != nil))
			dropped = append(dropped, institution)
			continue
		}

		summaries = append(summaries, model.InstitutionSummary{
			Institution:     institution,
			MaleMedian:      p.male.MedianSalary,
			FemaleMedian:    p.female.MedianSalary,
			MaleHeadcount:   p.male.Headcount,
			FemaleHeadcount: p.female.Headcount,
		})
	}

	return summaries, dropped
}
