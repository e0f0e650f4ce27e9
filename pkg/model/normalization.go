// pkg/model/normalization.go
package model

import (
	"time"
)

// NormalizationOperation represents a single repair applied to a raw row
// during normalization: an encoding fix, a suffix strip, a manual rename or a
// value tagged as missing. Operations are collected on the run report and,
// when an audit database is configured, written to the normalized_on_ingest
// tracking table.
type NormalizationOperation struct {
	Institution   string    `db:"institution"`    // Institution the row belongs to (post-repair)
	Gender        string    `db:"gender"`         // Gender category of the row
	Field         string    `db:"field"`          // Field that was repaired
	OriginalValue string    `db:"original_value"` // Value as published
	NewValue      string    `db:"new_value"`      // Value after repair (empty for drops/missing)
	Operation     string    `db:"operation"`      // Type of repair performed
	Reason        string    `db:"reason"`         // Why the repair was needed
	NormalizedAt  time.Time `db:"normalized_at"`  // When the repair occurred (set by database)
}

// Operation types recorded during normalization.
const (
	OpEncodingRepair = "encoding_repair"
	OpVariantDrop    = "variant_drop"
	OpSuffixStrip    = "suffix_strip"
	OpManualRename   = "manual_rename"
	OpMissingValue   = "missing_value"
)
