// pkg/pipeline/verify.go
package pipeline

import (
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// JoinedRow is the keyed join of one (institution, gender) pair across the
// three statistic blocks, with the verification result of the redundancy
// check. Rows keep the Headcount stream's order.
type JoinedRow struct {
	Key       model.Key
	Headcount model.RawRecord
	Median    model.RawRecord
	Average   model.RawRecord
	Verified  bool
}

// Verify joins the three streams on (institution, gender) and runs the
// redundancy check: the total-staff count the source repeats under the
// Median and Average blocks must equal the Headcount block's published
// value. Every row must verify; the first mismatching key aborts the run,
// because silently proceeding with misaligned data is disallowed.
func Verify(streams *Streams, logger *zap.Logger) ([]JoinedRow, error) {
	medianByKey := make(map[model.Key]model.RawRecord, len(streams.Median))
	for _, rec := range streams.Median {
		if _, dup := medianByKey[rec.RecordKey()]; dup {
			return nil, &ConsistencyError{Key: rec.RecordKey(), Detail: "duplicate row in median block"}
		}
		medianByKey[rec.RecordKey()] = rec
	}
	averageByKey := make(map[model.Key]model.RawRecord, len(streams.Average))
	for _, rec := range streams.Average {
		if _, dup := averageByKey[rec.RecordKey()]; dup {
			return nil, &ConsistencyError{Key: rec.RecordKey(), Detail: "duplicate row in average block"}
		}
		averageByKey[rec.RecordKey()] = rec
	}

	joined := make([]JoinedRow, 0, len(streams.Headcount))
	for _, hc := range streams.Headcount {
		key := hc.RecordKey()

		median, ok := medianByKey[key]
		if !ok {
			return nil, &ConsistencyError{Key: key, Detail: "no matching row in median block"}
		}
		average, ok := averageByKey[key]
		if !ok {
			return nil, &ConsistencyError{Key: key, Detail: "no matching row in average block"}
		}

		// Only the repeated total-staff column is cross-checked. The
		// headcount statistic itself is year-selected and may be blank or
		// suppressed; that is a row-local missing value for the normalizer,
		// not a consistency failure.
		row := JoinedRow{
			Key:       key,
			Headcount: hc,
			Median:    median,
			Average:   average,
			Verified:  hc.StaffCount == median.StaffCount && hc.StaffCount == average.StaffCount,
		}
		if !row.Verified {
			logger.Error("Repeated staff counts disagree",
				zap.String("institution", key.Institution),
				zap.String("gender", key.Gender),
				zap.String("headcount_block", hc.StaffCount),
				zap.String("median_block", median.StaffCount),
				zap.String("average_block", average.StaffCount))
			return nil, &ConsistencyError{Key: key, Detail: "repeated total-staff counts disagree across statistic blocks"}
		}

		joined = append(joined, row)
	}

	logger.Debug("Verified statistic block alignment", zap.Int("rows", len(joined)))
	return joined, nil
}
