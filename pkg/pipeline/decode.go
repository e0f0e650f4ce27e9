// pkg/pipeline/decode.go
package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ucass-tools/paygap/pkg/model"
)

// The published FT-UCASS schema: three label columns, the repeated total-staff
// column, then one value column per reporting year. Any drift here is fatal.
var expectedLabelColumns = []string{
	"Institution",
	"Gender",
	"Statistics",
	"Total teaching staff",
}

// Statistic block labels as published in the Statistics column.
var statisticLabels = map[string]model.Statistic{
	"Number of full-time teaching staff":           model.StatisticHeadcount,
	"Median salaries of full-time teaching staff":  model.StatisticMedian,
	"Average salaries of full-time teaching staff": model.StatisticAverage,
}

// Decode parses the raw CSV bytes into RawRecords, validating the published
// schema and selecting the value column for the requested reference year
// (the latest year when referenceYear is empty). Header drift, per-row field
// count drift and unknown statistic blocks are all data-shape errors.
func Decode(data []byte, referenceYear string) ([]model.RawRecord, string, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err != nil {
		return nil, "", shapeErrorf("cannot read header: %v", err)
	}

	if len(header) < len(expectedLabelColumns)+1 {
		return nil, "", shapeErrorf("expected at least %d columns, got %d",
			len(expectedLabelColumns)+1, len(header))
	}

	for i, want := range expectedLabelColumns {
		if header[i] != want {
			return nil, "", shapeErrorf("column %d is %q, expected %q", i, header[i], want)
		}
	}

	years := header[len(expectedLabelColumns):]
	yearIdx := -1
	if referenceYear == "" {
		yearIdx = len(years) - 1
		referenceYear = years[yearIdx]
	} else {
		for i, y := range years {
			if y == referenceYear {
				yearIdx = i
				break
			}
		}
		if yearIdx < 0 {
			return nil, "", fmt.Errorf("reference year %q not among published columns %v", referenceYear, years)
		}
	}

	var records []model.RawRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader enforces a consistent field count after the header
			return nil, "", shapeErrorf("line %d: %v", line, err)
		}

		stat, ok := statisticLabels[row[2]]
		if !ok {
			return nil, "", shapeErrorf("line %d: unknown statistic block %q", line, row[2])
		}

		records = append(records, model.RawRecord{
			Institution: row[0],
			Gender:      row[1],
			Statistic:   stat,
			StaffCount:  row[3],
			Value:       row[len(expectedLabelColumns)+yearIdx],
		})
	}

	return records, referenceYear, nil
}
