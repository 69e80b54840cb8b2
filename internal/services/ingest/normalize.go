// Package ingest loads the raw administrative datasets, canonicalizes
// region names and aggregates everything into the region-month table
// the analytics stages operate on.
package ingest

import (
	"regexp"
	"strings"
)

// stateAliases maps known spelling variants, abbreviations and
// merged-territory renames to one canonical form. Lookups happen after
// trimming and upper-casing, so keys are stored that way. Extending the
// table is the only change needed to handle a new variant.
var stateAliases = map[string]string{
	"WEST BANGAL":  "WEST BENGAL",
	"WEST BENGLI":  "WEST BENGAL",
	"WESTBENGAL":   "WEST BENGAL",
	"WEST  BENGAL": "WEST BENGAL",
	"WB":           "WEST BENGAL",

	"TAMILNADU":   "TAMIL NADU",
	"ORISSA":      "ODISHA",
	"PONDICHERRY": "PUDUCHERRY",
	"UTTARANCHAL": "UTTARAKHAND",
	"CHHATISGARH": "CHHATTISGARH",

	"ANDAMAN & NICOBAR ISLANDS": "ANDAMAN AND NICOBAR ISLANDS",
	"A & N ISLANDS":             "ANDAMAN AND NICOBAR ISLANDS",

	"JAMMU & KASHMIR": "JAMMU AND KASHMIR",
	"J & K":           "JAMMU AND KASHMIR",

	"DADRA & NAGAR HAVELI":                         "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
	"DADRA AND NAGAR HAVELI":                       "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
	"DAMAN & DIU":                                  "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
	"DAMAN AND DIU":                                "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
	"THE DADRA AND NAGAR HAVELI AND DAMAN AND DIU": "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
}

var numericName = regexp.MustCompile(`^\d+$`)

// NormalizeName canonicalizes a free-text region name: trims
// surrounding whitespace, upper-cases, then resolves known aliases.
// Unmapped values pass through unchanged; an empty value stays empty.
// Unknown input is not a failure.
func NormalizeName(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return name
	}
	if canonical, ok := stateAliases[name]; ok {
		return canonical
	}
	return name
}

// IsNumericName reports whether a region field is purely numeric,
// which marks the row as structurally corrupted.
func IsNumericName(raw string) bool {
	return numericName.MatchString(strings.TrimSpace(raw))
}
