// Package form implements the record creation/edit form engine: mode
// resolution against the clipboard, type-dependent field resets, per-section
// validity, and submission payload assembly. Sections and fields are declared
// as data; validity is a pure function of the declared schema and the current
// values.
package form

type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// SelectNone is the disabled placeholder option of a select; a required
// select left on it counts as empty.
const SelectNone = "none"

type Field struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Required bool   `json:"required"`
	// Group names a checkbox/radio cluster that validates as one unit: the
	// group passes when at least one member holds a value.
	Group string `json:"group,omitempty"`
	// Types restricts the field to specific discriminator values. Nil means
	// the field applies to every type.
	Types []string `json:"types,omitempty"`
	// DependsOnType marks fields whose options are keyed by the type
	// discriminator; they reset whenever the type changes.
	DependsOnType bool `json:"depends_on_type,omitempty"`
}

type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema declares a record form: its type discriminator and its sections.
type Schema struct {
	// TypeField is the name of the discriminator field (e.g. refund type).
	TypeField string    `json:"type_field"`
	Types     []string  `json:"types"`
	Sections  []Section `json:"sections"`
}

// Applies reports whether the field participates under the given type value.
func (f Field) Applies(typ string) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// ResetsOn reports whether a change to newType clears the field: either its
// options are keyed by type, or it no longer applies at all.
func (f Field) ResetsOn(newType string) bool {
	return f.DependsOnType || !f.Applies(newType)
}
