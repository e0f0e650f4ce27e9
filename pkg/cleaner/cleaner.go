// pkg/cleaner/cleaner.go
package cleaner

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// Normalizer merges verified statistic rows into GenderRows: institution
// names are repaired and canonicalized, numeric text is coerced, and every
// repair is recorded as a NormalizationOperation for the audit trail. All
// transforms are pure; the normalizer holds no state between rows.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new Normalizer instance
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger.Named("normalizer")}
}

// NormalizeRow merges one verified (institution, gender) triple into a
// GenderRow. The institution name and gender come from the headcount record
// (the consistency check has already established the blocks agree), the
// three values from their respective blocks. Returns false when the row is
// the excluded medical/dental duplicate variant and must be dropped.
func (n *Normalizer) NormalizeRow(
	headcount, median, average model.RawRecord,
) (model.GenderRow, []model.NormalizationOperation, bool) {
	var operations []model.NormalizationOperation

	name, retained := CanonicalName(headcount.Institution)
	if !retained {
		operations = append(operations, model.NormalizationOperation{
			Institution:   headcount.Institution,
			Gender:        headcount.Gender,
			Field:         "institution",
			OriginalValue: headcount.Institution,
			Operation:     model.OpVariantDrop,
			Reason:        "excluding medical/dental duplicate variant",
		})
		return model.GenderRow{}, operations, false
	}

	repaired := RepairEncoding(headcount.Institution)
	if repaired != headcount.Institution {
		operations = append(operations, model.NormalizationOperation{
			Institution:   name,
			Gender:        headcount.Gender,
			Field:         "institution",
			OriginalValue: headcount.Institution,
			NewValue:      repaired,
			Operation:     model.OpEncodingRepair,
			Reason:        "known corrupted byte sequence",
		})
	}

	stripped := strings.TrimSpace(StripIncludingMarker(repaired))
	if stripped != strings.TrimSpace(repaired) {
		operations = append(operations, model.NormalizationOperation{
			Institution:   name,
			Gender:        headcount.Gender,
			Field:         "institution",
			OriginalValue: repaired,
			NewValue:      stripped,
			Operation:     model.OpSuffixStrip,
			Reason:        "including medical/dental qualifier",
		})
	}

	if _, wasRenamed := manualRenames[stripped]; wasRenamed {
		operations = append(operations, model.NormalizationOperation{
			Institution:   name,
			Gender:        headcount.Gender,
			Field:         "institution",
			OriginalValue: stripped,
			NewValue:      name,
			Operation:     model.OpManualRename,
			Reason:        "documented manual rename to common name",
		})
	}

	row := model.GenderRow{
		Institution: name,
		Gender:      model.Gender(headcount.Gender),
	}

	row.Headcount = n.coerce(headcount.Value, name, headcount.Gender, "headcount", &operations)
	row.MedianSalary = n.coerce(median.Value, name, median.Gender, "median_salary", &operations)
	row.AverageSalary = n.coerce(average.Value, name, average.Gender, "average_salary", &operations)

	return row, operations, true
}

// coerce parses one numeric field, tagging unparseable values as missing.
func (n *Normalizer) coerce(
	raw, institution, gender, field string,
	operations *[]model.NormalizationOperation,
) model.OptionalFloat {
	value, ok := parseNumeric(raw)
	if !ok {
		n.logger.Debug("Tagged unparseable value as missing",
			zap.String("institution", institution),
			zap.String("gender", gender),
			zap.String("field", field),
			zap.String("raw", raw))
		*operations = append(*operations, model.NormalizationOperation{
			Institution:   institution,
			Gender:        gender,
			Field:         field,
			OriginalValue: raw,
			Operation:     model.OpMissingValue,
			Reason:        "blank or non-numeric source value",
		})
		return model.MissingFloat()
	}
	return model.Float(value)
}

// parseNumeric coerces published numeric text to a float. Comma grouping is
// stripped; blanks and the StatCan suppression markers ("..", "x", "F") are
// missing values, never zero.
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "..", "x", "F":
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
