package web

// This file contains request parsing and view building shared across handlers.

import (
	"net/http"

	"github.com/JonMunkholm/rollfinder/internal/core"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/JonMunkholm/rollfinder/internal/web/templates"
)

// selection is the stateless cascade position carried in the query string.
type selection struct {
	Class    string
	Division string
	Roll     string
}

// parseSelection reads class, division and roll from the query string.
//
// When HTMX reports which select changed, the levels below it are dropped so
// that changing the class also clears a stale division and roll.
func parseSelection(r *http.Request) selection {
	q := r.URL.Query()
	sel := selection{
		Class:    q.Get(string(core.RoleClass)),
		Division: q.Get(string(core.RoleDivision)),
		Roll:     q.Get(string(core.RoleRoll)),
	}

	switch core.Role(r.Header.Get("HX-Trigger-Name")) {
	case core.RoleClass:
		sel.Division, sel.Roll = "", ""
	case core.RoleDivision:
		sel.Roll = ""
	}
	return sel
}

// replay drives a fresh cascade to sel.
func (sel selection) replay(c *core.Cascade) core.View {
	return c.Replay(sel.Class, sel.Division, sel.Roll)
}

// recordFields orders rec by the dataset's columns for display.
func recordFields(columns []string, rec sheet.Record) []templates.Field {
	if rec == nil {
		return nil
	}
	fields := make([]templates.Field, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, templates.Field{Column: col, Value: rec.Get(col)})
	}
	return fields
}

// buildBanner converts the service status to the page banner.
func buildBanner(st core.Status) templates.Banner {
	return templates.Banner{
		Message: st.Message,
		Action:  st.Action,
		Code:    st.Code,
		Error:   st.Error,
		Loading: !st.Ready && !st.Error,
	}
}

// buildLevels lists the three selects for v. A zero View yields three
// disabled controls.
func buildLevels(v core.View) []templates.Level {
	levels := make([]templates.Level, 0, len(core.Roles))
	for _, role := range core.Roles {
		levels = append(levels, templates.Level{
			Name:     string(role),
			Label:    role.Label(),
			Options:  v.Options(role),
			Selected: v.Selected(role),
		})
	}
	return levels
}
