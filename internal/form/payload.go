package form

import (
	"fmt"
	"strings"
)

// Payload is a validated submission ready for the data layer.
type Payload struct {
	Mode     Mode              `json:"mode"`
	SourceID string            `json:"source_id,omitempty"`
	Type     string            `json:"type"`
	Fields   map[string]string `json:"fields"`
}

// ValidationError enumerates the required fields a submission is missing.
// It is returned as a value, never panicked; no network call is attempted
// while it is non-nil.
type ValidationError struct {
	Missing []string `json:"missing"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
}

// BuildPayload assembles the fields relevant to the current type value. A
// DEPOSIT submission never carries SERVICE-only fields. If any required field
// is empty the returned ValidationError lists all of them.
func (st *State) BuildPayload() (*Payload, *ValidationError) {
	var missing []string
	reportedGroups := make(map[string]bool)

	for _, sec := range st.schema.Sections {
		for _, f := range sec.Fields {
			if !f.Required || !f.Applies(st.Type) {
				continue
			}

			switch f.Kind {
			case KindCheckbox, KindRadio:
				group := f.Group
				if group == "" {
					group = f.Name
				}
				if reportedGroups[group] {
					continue
				}
				reportedGroups[group] = true
				if !groupHasValue(sec, group, st.Values) {
					missing = append(missing, group)
				}
			case KindSelect:
				if v := st.Values[f.Name]; v == "" || v == SelectNone {
					missing = append(missing, f.Name)
				}
			default:
				if strings.TrimSpace(st.Values[f.Name]) == "" {
					missing = append(missing, f.Name)
				}
			}
		}
	}

	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	fields := make(map[string]string)
	for _, sec := range st.schema.Sections {
		for _, f := range sec.Fields {
			if !f.Applies(st.Type) {
				continue
			}
			if v := st.Values[f.Name]; v != "" {
				fields[f.Name] = v
			}
		}
	}

	return &Payload{
		Mode:     st.Mode,
		SourceID: st.SourceID,
		Type:     st.Type,
		Fields:   fields,
	}, nil
}
