package core

import (
	"strings"

	"github.com/JonMunkholm/rollfinder/internal/sheet"
)

// Phase is the position of a cascade in the selection flow.
type Phase string

const (
	PhaseNoClass          Phase = "no_class"
	PhaseClassSelected    Phase = "class_selected"
	PhaseDivisionSelected Phase = "division_selected"
	PhaseFound            Phase = "found"
	PhaseNotFound         Phase = "not_found"
)

// View describes what the presentation layer should show after a selection
// change. An empty option list means the control is disabled.
type View struct {
	Phase Phase `json:"phase"`

	Class    string `json:"class,omitempty"`
	Division string `json:"division,omitempty"`
	Roll     string `json:"roll,omitempty"`

	Classes   []string `json:"classes"`
	Divisions []string `json:"divisions"`
	Rolls     []string `json:"rolls"`

	Record sheet.Record `json:"record,omitempty"`
}

// Options returns the option list for role.
func (v View) Options(role Role) []string {
	switch role {
	case RoleClass:
		return v.Classes
	case RoleDivision:
		return v.Divisions
	case RoleRoll:
		return v.Rolls
	default:
		return nil
	}
}

// Selected returns the current selection for role.
func (v View) Selected(role Role) string {
	switch role {
	case RoleClass:
		return v.Class
	case RoleDivision:
		return v.Division
	case RoleRoll:
		return v.Roll
	default:
		return ""
	}
}

// Cascade drives the Class -> Division -> Roll selection flow.
//
// Each transition returns the complete new View; nothing is pushed to a UI.
// A Cascade is owned by a single caller and is not safe for concurrent use.
type Cascade struct {
	engine *FilterEngine
	view   View
}

// NewCascade starts a cascade in PhaseNoClass with the class list populated.
func NewCascade(engine *FilterEngine) *Cascade {
	c := &Cascade{engine: engine}
	c.reset()
	return c
}

func (c *Cascade) reset() {
	c.view = View{
		Phase:   PhaseNoClass,
		Classes: c.engine.ClassValues(),
	}
}

// View returns the current view.
func (c *Cascade) View() View {
	return c.view
}

// Clear discards every selection and returns to PhaseNoClass.
func (c *Cascade) Clear() View {
	c.reset()
	return c.view
}

// OnClassSelected selects a class, recomputes the divisions and disables the
// roll level. An empty value clears the cascade.
func (c *Cascade) OnClassSelected(value string) View {
	value = strings.TrimSpace(value)
	if value == "" {
		return c.Clear()
	}

	c.view = View{
		Phase:     PhaseClassSelected,
		Class:     value,
		Classes:   c.view.Classes,
		Divisions: c.engine.DivisionValues(value),
	}
	return c.view
}

// OnDivisionSelected selects a division within the current class and
// recomputes the roll list. It is ignored until a class is selected; an
// empty value steps back to PhaseClassSelected.
func (c *Cascade) OnDivisionSelected(value string) View {
	if c.view.Phase == PhaseNoClass {
		return c.view
	}

	value = strings.TrimSpace(value)
	v := View{
		Phase:     PhaseClassSelected,
		Class:     c.view.Class,
		Classes:   c.view.Classes,
		Divisions: c.view.Divisions,
	}
	if value != "" {
		v.Phase = PhaseDivisionSelected
		v.Division = value
		v.Rolls = c.engine.RollValues(v.Class, value)
	}

	c.view = v
	return c.view
}

// OnRollSelected looks up the record for the full selection and moves to
// PhaseFound or PhaseNotFound. It is ignored until a division is selected; an
// empty value steps back to PhaseDivisionSelected.
func (c *Cascade) OnRollSelected(value string) View {
	switch c.view.Phase {
	case PhaseNoClass, PhaseClassSelected:
		return c.view
	}

	value = strings.TrimSpace(value)
	v := c.view
	v.Roll = ""
	v.Record = nil
	v.Phase = PhaseDivisionSelected

	if value != "" {
		v.Roll = value
		if rec, ok := c.engine.FindRecord(v.Class, v.Division, value); ok {
			v.Phase = PhaseFound
			v.Record = rec
		} else {
			v.Phase = PhaseNotFound
		}
	}

	c.view = v
	return c.view
}

// Replay rebuilds a view from a stateless selection, applying each level in
// order. Levels after the first empty one are ignored.
func (c *Cascade) Replay(class, division, roll string) View {
	c.Clear()
	if strings.TrimSpace(class) == "" {
		return c.view
	}
	c.OnClassSelected(class)
	if strings.TrimSpace(division) == "" {
		return c.view
	}
	c.OnDivisionSelected(division)
	if strings.TrimSpace(roll) == "" {
		return c.view
	}
	return c.OnRollSelected(roll)
}
