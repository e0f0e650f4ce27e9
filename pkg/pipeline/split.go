// pkg/pipeline/split.go
package pipeline

import (
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// Streams holds the raw records partitioned by statistic block. The three
// slices must cover the same multiset of (institution, gender) keys; the
// consistency checker enforces that before they are merged.
type Streams struct {
	Headcount []model.RawRecord
	Median    []model.RawRecord
	Average   []model.RawRecord
}

// FilterSplit retains only Male/Female rows and partitions them by statistic
// block. Aggregate and unknown gender categories are discarded. Unequal
// stream lengths signal upstream schema drift and abort the run.
func FilterSplit(records []model.RawRecord, logger *zap.Logger) (*Streams, error) {
	streams := &Streams{}
	discarded := 0

	for _, rec := range records {
		if rec.Gender != string(model.GenderMale) && rec.Gender != string(model.GenderFemale) {
			discarded++
			continue
		}

		switch rec.Statistic {
		case model.StatisticHeadcount:
			streams.Headcount = append(streams.Headcount, rec)
		case model.StatisticMedian:
			streams.Median = append(streams.Median, rec)
		case model.StatisticAverage:
			streams.Average = append(streams.Average, rec)
		}
	}

	logger.Debug("Partitioned raw records",
		zap.Int("headcount", len(streams.Headcount)),
		zap.Int("median", len(streams.Median)),
		zap.Int("average", len(streams.Average)),
		zap.Int("discarded_gender_rows", discarded))

	if len(streams.Headcount) != len(streams.Median) ||
		len(streams.Median) != len(streams.Average) {
		return nil, shapeErrorf("statistic streams disagree on length: headcount=%d median=%d average=%d",
			len(streams.Headcount), len(streams.Median), len(streams.Average))
	}

	return streams, nil
}
