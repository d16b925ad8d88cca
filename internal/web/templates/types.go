// Package templates renders the lookup page and the fragments HTMX swaps in.
//
// Components are written in lookup.templ; lookup_templ.go is generated from it
// with `templ generate`.
package templates

// Level is one select control of the cascade.
type Level struct {
	Name     string // query parameter and select name
	Label    string
	Options  []string
	Selected string
}

// Disabled reports whether the control has nothing to choose from.
func (l Level) Disabled() bool {
	return len(l.Options) == 0
}

// Field is one column of a matched record.
type Field struct {
	Column string
	Value  string
}

// Banner is the status line above the controls.
type Banner struct {
	Message string
	Action  string
	Code    string
	Error   bool
	Loading bool
}

// LookupData is everything the cascade fragment shows.
type LookupData struct {
	Banner   Banner
	Levels   []Level
	Record   []Field
	NotFound bool
}
