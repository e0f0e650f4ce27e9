// pkg/model/record.go
package model

// Gender identifies one of the two gender categories retained by the pipeline.
// The published table also carries aggregate rows ("Total - gender"); those are
// discarded during filtering and never reach a GenderRow.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Statistic identifies which published statistic block a raw row belongs to.
type Statistic string

const (
	StatisticHeadcount Statistic = "Headcount"
	StatisticMedian    Statistic = "Median"
	StatisticAverage   Statistic = "Average"
)

// RawRecord is one row of the published FT-UCASS table as loaded: one record
// per institution, gender category and statistic block. Values are kept as the
// raw text from the source; coercion happens in the normalizer. StaffCount is
// the total-staff column the source repeats under every statistic block, used
// by the consistency check.
type RawRecord struct {
	Institution string // Raw institution label, possibly mis-encoded
	Gender      string // Raw gender category label
	Statistic   Statistic
	StaffCount  string // Repeated total-staff count, raw text
	Value       string // Statistic value for the selected reference year, raw text
}

// Key identifies the (institution, gender) pair a record belongs to. Records
// from the three statistic blocks are joined on this key.
type Key struct {
	Institution string
	Gender      string
}

// RecordKey returns the join key for a raw record.
func (r RawRecord) RecordKey() Key {
	return Key{Institution: r.Institution, Gender: r.Gender}
}

// GenderRow is the merged, cleaned view of one (institution, gender) pair:
// institution name repaired and canonicalized, numeric fields coerced.
// Invariant: the (Institution, Gender) pair is unique within a run.
type GenderRow struct {
	Institution   string
	Gender        Gender
	Headcount     OptionalFloat
	MedianSalary  OptionalFloat
	AverageSalary OptionalFloat
}
