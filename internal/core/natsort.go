package core

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newNaturalCollator returns a case-insensitive collator that orders embedded
// digit runs by numeric value ("a2" < "a10").
//
// Collators keep internal buffers and are not safe for concurrent use, so
// callers create one per sort.
func newNaturalCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
}

// parseNumber reports whether s is entirely a finite number.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// valueComparator orders cell values: numbers numerically when both sides are
// numbers, natural collation otherwise.
type valueComparator struct {
	col *collate.Collator
}

func (c valueComparator) compare(a, b string) int {
	fa, okA := parseNumber(a)
	fb, okB := parseNumber(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return c.col.CompareString(a, b)
}

// CompareValues compares two trimmed cell values the way option lists are
// ordered. It returns a negative number when a sorts first.
func CompareValues(a, b string) int {
	return valueComparator{col: newNaturalCollator()}.compare(a, b)
}

// SortValues sorts values in place using CompareValues. Equal values keep
// their relative order.
func SortValues(values []string) {
	cmp := valueComparator{col: newNaturalCollator()}
	slices.SortStableFunc(values, cmp.compare)
}

// UniqueSorted trims candidates, drops empties and duplicates, and returns the
// remainder sorted with SortValues.
func UniqueSorted(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, v := range candidates {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	SortValues(out)
	return out
}
