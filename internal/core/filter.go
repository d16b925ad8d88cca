package core

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/rollfinder/internal/sheet"
)

// FilterEngine answers the cascade queries over a loaded sheet. It only reads
// the records it was built with; every method recomputes its result.
//
// Values are compared after trimming whitespace, and equality is exact
// (case-sensitive).
type FilterEngine struct {
	records  []sheet.Record
	class    string
	division string
	roll     string
}

// NewFilterEngine binds records to a complete role mapping. A mapping with
// unresolved roles is rejected.
func NewFilterEngine(records []sheet.Record, mapping RoleMapping) (*FilterEngine, error) {
	if missing := mapping.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("filter engine: unresolved roles %v", missing)
	}
	return &FilterEngine{
		records:  records,
		class:    mapping[RoleClass],
		division: mapping[RoleDivision],
		roll:     mapping[RoleRoll],
	}, nil
}

// field returns the trimmed value of header in rec.
func field(rec sheet.Record, header string) string {
	return strings.TrimSpace(rec[header])
}

// ClassValues returns every distinct class in the sheet.
func (e *FilterEngine) ClassValues() []string {
	candidates := make([]string, 0, len(e.records))
	for _, rec := range e.records {
		candidates = append(candidates, rec[e.class])
	}
	return UniqueSorted(candidates)
}

// DivisionValues returns the distinct divisions of records in class.
func (e *FilterEngine) DivisionValues(class string) []string {
	class = strings.TrimSpace(class)

	var candidates []string
	for _, rec := range e.records {
		if field(rec, e.class) == class {
			candidates = append(candidates, rec[e.division])
		}
	}
	return UniqueSorted(candidates)
}

// RollValues returns the distinct roll numbers of records in class and
// division.
func (e *FilterEngine) RollValues(class, division string) []string {
	class = strings.TrimSpace(class)
	division = strings.TrimSpace(division)

	var candidates []string
	for _, rec := range e.records {
		if field(rec, e.class) == class && field(rec, e.division) == division {
			candidates = append(candidates, rec[e.roll])
		}
	}
	return UniqueSorted(candidates)
}

// FindRecord returns the first record, in sheet order, matching all three
// selections.
func (e *FilterEngine) FindRecord(class, division, roll string) (sheet.Record, bool) {
	class = strings.TrimSpace(class)
	division = strings.TrimSpace(division)
	roll = strings.TrimSpace(roll)

	for _, rec := range e.records {
		if field(rec, e.class) == class &&
			field(rec, e.division) == division &&
			field(rec, e.roll) == roll {
			return rec, true
		}
	}
	return nil, false
}

// Len returns the number of records the engine filters over.
func (e *FilterEngine) Len() int {
	return len(e.records)
}
