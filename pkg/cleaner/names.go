// pkg/cleaner/names.go
package cleaner

import (
	"strings"
)

// The source file was exported with UTF-8 bytes decoded once as Windows-1252,
// which corrupts the accented characters in the francophone institution
// names (Montréal, Québec, Trois-Rivières, École). This is a closed list of
// the four known corrupted sequences, not a general encoding detector.
var encodingRepairs = []struct {
	corrupted string
	repaired  string
}{
	{"Ã©", "é"},
	{"Ã¨", "è"},
	{"Ã ", "à"},
	{"Ã‰", "É"},
}

// Institutions with medical or dental faculties are published twice, once
// including and once excluding that staff. Only the including variant is
// retained, and its marker suffix is stripped so the canonical name carries
// no qualifier.
const (
	excludingMarker = "excluding medical dental"
	includingMarker = " - Including medical dental"
)

// The one documented manual rename: the legal name in the source is replaced
// with the institution's common operating name, which is also how the U15
// membership list spells it.
var manualRenames = map[string]string{
	"The University of Western Ontario": "Western University",
}

// RepairEncoding applies the closed corrupted-sequence corrections.
func RepairEncoding(name string) string {
	for _, r := range encodingRepairs {
		name = strings.ReplaceAll(name, r.corrupted, r.repaired)
	}
	return name
}

// IsExcludedVariant reports whether a raw institution name is the
// "excluding medical/dental staff" duplicate row, which is dropped entirely.
func IsExcludedVariant(name string) bool {
	return strings.Contains(strings.ToLower(name), excludingMarker)
}

// StripIncludingMarker removes the "including medical/dental" qualifier
// suffix from names that carry it.
func StripIncludingMarker(name string) string {
	lower := strings.ToLower(name)
	marker := strings.ToLower(includingMarker)
	if idx := strings.Index(lower, marker); idx >= 0 {
		return name[:idx] + name[idx+len(includingMarker):]
	}
	return name
}

// CanonicalName normalizes a raw institution name: encoding repair, marker
// suffix strip, whitespace trim and the manual rename. The transform is
// idempotent; an already-canonical name passes through unchanged. The second
// return is false when the name denotes the excluded duplicate variant.
func CanonicalName(raw string) (string, bool) {
	name := RepairEncoding(raw)

	if IsExcludedVariant(name) {
		return "", false
	}

	name = StripIncludingMarker(name)
	name = strings.TrimSpace(name)

	if renamed, ok := manualRenames[name]; ok {
		name = renamed
	}

	return name, true
}
