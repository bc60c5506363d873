// Package form defines the questionnaire data model: a Form is an ordered
// list of Sections, each holding named Fields. It implements section
// validation and flat name/value serialization with browser form-encoding
// semantics.
package form

import (
	"fmt"
	"strings"
)

// Kind identifies the input type of a Field.
type Kind string

const (
	KindText     Kind = "text"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindRadio, KindCheckbox, KindSelect:
		return true
	}
	return false
}

// DefaultCheckedValue is what a checked checkbox without an explicit value
// serializes to.
const DefaultCheckedValue = "on"

// Option is one choice of a radio group or select field.
type Option struct {
	Value string
	Label string

	// Checked is the answer state for radio options.
	Checked bool

	// Selected is the cosmetic highlight applied to the chosen option.
	Selected bool
}

// Field is a single named input.
type Field struct {
	Name        string
	Label       string
	Help        string
	Placeholder string
	Kind        Kind
	Required    bool

	// Group is the radio group name. Empty means Name.
	Group string

	Options []Option

	// Value holds the answer for text and select fields.
	Value string

	// Checked and CheckedValue apply to checkboxes.
	Checked      bool
	CheckedValue string
}

// GroupName returns the radio group this field belongs to.
func (f *Field) GroupName() string {
	if f.Group != "" {
		return f.Group
	}
	return f.Name
}

// CheckedOption returns the checked radio option, if any.
func (f *Field) CheckedOption() (Option, bool) {
	for _, o := range f.Options {
		if o.Checked {
			return o, true
		}
	}
	return Option{}, false
}

// Section is a zero-indexed segment of the form.
type Section struct {
	Index       int
	Title       string
	Description string
	Fields      []*Field
}

// Form is an ordered, fixed sequence of sections.
type Form struct {
	Title    string
	Sections []*Section
}

// Len returns the number of sections.
func (f *Form) Len() int {
	return len(f.Sections)
}

// Section returns section i or an error when i is out of range.
func (f *Form) Section(i int) (*Section, error) {
	if i < 0 || i >= len(f.Sections) {
		return nil, fmt.Errorf("section %d out of range [0, %d)", i, len(f.Sections))
	}
	return f.Sections[i], nil
}

// Field finds a field by name across all sections. The first match wins,
// so a later field sharing the name must be addressed through its *Field.
func (f *Form) Field(name string) (*Field, bool) {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			if fld.Name == name {
				return fld, true
			}
		}
	}
	return nil, false
}

// SetValue sets the answer of a text or select field by name. Fields that
// share a name are reached through their *Field instead.
func (f *Form) SetValue(name, value string) error {
	fld, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	return fld.SetValue(value)
}

// SetChecked sets the state of the checkbox called name.
func (f *Form) SetChecked(name string, checked bool) error {
	fld, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	return fld.SetChecked(checked)
}

// ToggleCheckbox flips the checkbox called name and returns its new state.
func (f *Form) ToggleCheckbox(name string) (bool, error) {
	fld, ok := f.Field(name)
	if !ok {
		return false, fmt.Errorf("unknown field %q", name)
	}
	return fld.Toggle()
}

// SelectChoice checks value in the radio field named name.
func (f *Form) SelectChoice(name, value string) error {
	fld, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	return f.Choose(fld, value)
}

// Choose checks value in the radio field fld. Every option sharing the
// field's group name loses its checked state and selected style first, then
// the chosen option gets both.
func (f *Form) Choose(fld *Field, value string) error {
	if fld.Kind != KindRadio {
		return fmt.Errorf("field %q: not a radio group", fld.Name)
	}
	idx := -1
	for i, o := range fld.Options {
		if o.Value == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("field %q: %q is not an option", fld.Name, value)
	}

	group := fld.GroupName()
	for _, s := range f.Sections {
		for _, other := range s.Fields {
			if other.Kind != KindRadio || other.GroupName() != group {
				continue
			}
			for i := range other.Options {
				other.Options[i].Checked = false
				other.Options[i].Selected = false
			}
		}
	}
	fld.Options[idx].Checked = true
	fld.Options[idx].Selected = true
	return nil
}

// SetValue sets a text or select answer. Select values must be one of the
// field's options.
func (fld *Field) SetValue(value string) error {
	switch fld.Kind {
	case KindText:
		fld.Value = value
	case KindSelect:
		if value != "" && !hasOption(fld, value) {
			return fmt.Errorf("field %q: %q is not an option", fld.Name, value)
		}
		fld.Value = value
	default:
		return fmt.Errorf("field %q: cannot set value on %s field", fld.Name, fld.Kind)
	}
	return nil
}

// SetChecked sets the state of a checkbox.
func (fld *Field) SetChecked(checked bool) error {
	if fld.Kind != KindCheckbox {
		return fmt.Errorf("field %q: not a checkbox", fld.Name)
	}
	fld.Checked = checked
	return nil
}

// Toggle flips a checkbox and returns its new state.
func (fld *Field) Toggle() (bool, error) {
	if fld.Kind != KindCheckbox {
		return false, fmt.Errorf("field %q: not a checkbox", fld.Name)
	}
	fld.Checked = !fld.Checked
	return fld.Checked, nil
}

// Reset clears every answer.
func (f *Form) Reset() {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			fld.Value = ""
			fld.Checked = false
			for i := range fld.Options {
				fld.Options[i].Checked = false
				fld.Options[i].Selected = false
			}
		}
	}
}

func hasOption(fld *Field, value string) bool {
	for _, o := range fld.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// ValidationError lists the required fields of a section left unanswered.
type ValidationError struct {
	Section int
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("section %d: missing required answers: %s",
		e.Section+1, strings.Join(e.Missing, ", "))
}
