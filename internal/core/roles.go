package core

// roles.go maps human-written sheet headers to the three columns the lookup
// needs.
//
// Resolution happens per role, in two passes:
//  1. Exact match: each configured alias (in priority order) is compared to every
//     header after lower-casing and trimming both. The first alias that hits wins.
//  2. Fallback: the first header whose normalized form contains the role name
//     itself ("class", "division", "roll").
//
// Roles are resolved independently, so two roles can land on the same header.
// That is reported by [RoleMapping.Shared] but not rejected.

import (
	"fmt"
	"strings"
)

// Role is one of the fixed semantic columns the lookup depends on.
type Role string

const (
	RoleClass    Role = "class"
	RoleDivision Role = "division"
	RoleRoll     Role = "roll"
)

// Roles lists every role in cascade order.
var Roles = []Role{RoleClass, RoleDivision, RoleRoll}

// Label returns a display name for the role.
func (r Role) Label() string {
	switch r {
	case RoleClass:
		return "Class"
	case RoleDivision:
		return "Division"
	case RoleRoll:
		return "Roll Number"
	default:
		return string(r)
	}
}

// RoleAliasConfig lists, per role, the header names accepted for it in
// priority order.
type RoleAliasConfig map[Role][]string

// DefaultAliases is used when no aliases are configured for a role.
var DefaultAliases = RoleAliasConfig{
	RoleClass:    {"class", "std", "standard", "grade"},
	RoleDivision: {"division", "div", "section", "sec"},
	RoleRoll:     {"roll", "roll no", "rollno", "roll number", "roll_no", "roll no."},
}

// WithDefaults returns a copy of c where roles without aliases fall back to
// DefaultAliases.
func (c RoleAliasConfig) WithDefaults() RoleAliasConfig {
	out := make(RoleAliasConfig, len(Roles))
	for _, role := range Roles {
		aliases := c[role]
		if len(aliases) == 0 {
			aliases = DefaultAliases[role]
		}
		out[role] = append([]string(nil), aliases...)
	}
	return out
}

// RoleMapping binds each resolved role to the original header text.
// A role missing from the map is unresolved.
type RoleMapping map[Role]string

// Header returns the header bound to role and whether it was resolved.
func (m RoleMapping) Header(role Role) (string, bool) {
	h, ok := m[role]
	return h, ok
}

// Complete reports whether every role is resolved.
func (m RoleMapping) Complete() bool {
	return len(m.Missing()) == 0
}

// Missing lists the unresolved roles in cascade order.
func (m RoleMapping) Missing() []Role {
	var missing []Role
	for _, role := range Roles {
		if _, ok := m[role]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

// Shared returns groups of roles bound to the same header, keyed by header.
func (m RoleMapping) Shared() map[string][]Role {
	byHeader := make(map[string][]Role)
	for _, role := range Roles {
		if h, ok := m[role]; ok {
			byHeader[h] = append(byHeader[h], role)
		}
	}
	for h, roles := range byHeader {
		if len(roles) < 2 {
			delete(byHeader, h)
		}
	}
	return byHeader
}

// normalizeHeader is the comparison form of a header or alias.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve determines which header fulfils each role.
func Resolve(headers []string, aliases RoleAliasConfig) RoleMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	mapping := make(RoleMapping, len(Roles))
	for _, role := range Roles {
		if h, ok := resolveRole(role, headers, normalized, aliases[role]); ok {
			mapping[role] = h
		}
	}
	return mapping
}

// resolveRole runs the alias pass and then the substring fallback for one role.
func resolveRole(role Role, headers, normalized, aliases []string) (string, bool) {
	for _, alias := range aliases {
		want := normalizeHeader(alias)
		if want == "" {
			continue
		}
		for i, h := range normalized {
			if h == want {
				return headers[i], true
			}
		}
	}

	needle := string(role)
	for i, h := range normalized {
		if strings.Contains(h, needle) {
			return headers[i], true
		}
	}

	return "", false
}

// ColumnResolutionError reports roles that no header could fulfil, together
// with what was expected and what the sheet actually contained.
type ColumnResolutionError struct {
	Missing []Role
	Aliases RoleAliasConfig
	Headers []string
}

func (e *ColumnResolutionError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, role := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (expected one of: %s)",
			role.Label(), strings.Join(e.Aliases[role], ", ")))
	}
	return fmt.Sprintf("missing columns: %s; headers found: %s",
		strings.Join(parts, "; "), strings.Join(e.Headers, ", "))
}

// CheckMapping returns a *ColumnResolutionError when mapping leaves any role
// unresolved.
func CheckMapping(headers []string, aliases RoleAliasConfig, mapping RoleMapping) error {
	missing := mapping.Missing()
	if len(missing) == 0 {
		return nil
	}
	return &ColumnResolutionError{
		Missing: missing,
		Aliases: aliases,
		Headers: append([]string(nil), headers...),
	}
}
