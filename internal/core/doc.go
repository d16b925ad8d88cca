// Package core provides the lookup logic behind the student record finder.
//
// This package has no UI dependencies. Web handlers, tests and command-line
// tools all drive it through the same small surface.
//
// # Loading
//
// [Service.Load] runs once at startup:
//
//  1. The sheet URL is checked ([CheckSourceURL]); an empty or placeholder URL
//     stops here with [ErrSourceNotConfigured]
//  2. The export is downloaded once, without retries (*sheet.FetchError)
//  3. The text is parsed and zipped against its header row ([ErrNoData] if empty)
//  4. Headers are mapped to the class, division and roll roles ([Resolve]);
//     any unresolved role is a *[ColumnResolutionError]
//  5. The resulting [Dataset] is published and the status cleared
//
// Every failure is also published through [Service.Status] so the page can
// explain why the controls are disabled.
//
// # Column Roles
//
// Headers are matched against configured aliases after lower-casing and
// trimming. When no alias matches, the first header containing the role name
// wins:
//
//	Resolve([]string{"Std", "Section", "RollNo"}, DefaultAliases)
//	// class -> "Std", division -> "Section", roll -> "RollNo"
//
// # Cascade
//
// [FilterEngine] computes the option lists for each level and the final
// lookup. [Cascade] wraps it in a state machine whose transitions return a
// [View] describing the new UI state:
//
//	no_class -> class_selected -> division_selected -> found | not_found
//
// Option lists are trimmed, de-duplicated and ordered by [CompareValues], so
// roll numbers sort 1, 2, 10 rather than 1, 10, 2.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with codes by
// [MapError]; see error_messages.go for the catalogue.
package core
