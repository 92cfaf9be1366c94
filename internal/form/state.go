package form

import (
	"strings"
)

// State is the working state of one form session. It lives from navigation
// into the form until navigation away or a successful submission.
type State struct {
	Mode Mode `json:"mode"`
	// SourceID is the id of the record being edited; empty for new and copy.
	SourceID string            `json:"source_id,omitempty"`
	Type     string            `json:"type"`
	Values   map[string]string `json:"values"`

	schema Schema
}

// NewState seeds a session from a mode resolution. Edit keeps the source
// identity; copy takes the source's values as a template for a new record.
func NewState(schema Schema, res Resolution) *State {
	st := &State{
		Mode:   res.Mode,
		Values: make(map[string]string),
		schema: schema,
	}

	if res.Source != nil {
		st.Type = res.Source.Kind
		for name, value := range res.Source.Fields {
			st.Values[name] = value
		}
		if res.Mode == ModeEdit {
			st.SourceID = res.Source.ID
		}
	}

	if st.Type == "" && len(schema.Types) > 0 {
		st.Type = schema.Types[0]
	}
	return st
}

func (st *State) Set(field, value string) {
	st.Values[field] = value
}

func (st *State) Get(field string) string {
	return st.Values[field]
}

// ApplyTypeChange switches the type discriminator. Exactly the fields
// declared dependent on the type (and ones no longer applicable) are cleared;
// independent fields keep their values.
func (st *State) ApplyTypeChange(newType string) {
	if newType == st.Type {
		return
	}
	st.Type = newType

	for _, sec := range st.schema.Sections {
		for _, f := range sec.Fields {
			if f.ResetsOn(newType) {
				st.Values[f.Name] = ""
			}
		}
	}
}

// SectionValidity recomputes the validity of every section. Callers invoke it
// after each field mutation and after structural changes such as a
// conditional section appearing.
func (st *State) SectionValidity() map[string]bool {
	out := make(map[string]bool, len(st.schema.Sections))
	for _, sec := range st.schema.Sections {
		out[sec.ID] = ValidateSection(sec, st.Values, st.Type)
	}
	return out
}

// ValidateSection reports whether every required field in the section
// satisfies its kind-specific non-empty rule under the current type. A
// section with no required fields is vacuously valid.
func ValidateSection(sec Section, values map[string]string, currentType string) bool {
	checkedGroups := make(map[string]bool)

	for _, f := range sec.Fields {
		if !f.Required || !f.Applies(currentType) {
			continue
		}

		switch f.Kind {
		case KindCheckbox, KindRadio:
			group := f.Group
			if group == "" {
				group = f.Name
			}
			if checkedGroups[group] {
				continue
			}
			checkedGroups[group] = true
			if !groupHasValue(sec, group, values) {
				return false
			}
		case KindSelect:
			v := values[f.Name]
			if v == "" || v == SelectNone {
				return false
			}
		default:
			if strings.TrimSpace(values[f.Name]) == "" {
				return false
			}
		}
	}
	return true
}

// groupHasValue reports whether at least one member of a checkbox/radio
// group carries a value.
func groupHasValue(sec Section, group string, values map[string]string) bool {
	for _, f := range sec.Fields {
		member := f.Group
		if member == "" {
			member = f.Name
		}
		if member != group {
			continue
		}
		if values[f.Name] != "" {
			return true
		}
	}
	return false
}
