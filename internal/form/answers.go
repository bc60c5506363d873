package form

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a flat YAML mapping of field name to answer.
func LoadAnswers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}

	// Scalars decode to their literal text, so true and yes arrive as strings.
	raw := make(map[string]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return raw, nil
}

// ApplyAnswers fills the form from answers. Radio answers are keyed by group
// name. A checkbox answer naming the value of one of several same-named
// checkboxes ticks that one; otherwise on/true/yes/1 ticks the first.
// Unknown names are an error.
func (f *Form) ApplyAnswers(answers map[string]string) error {
	names := make([]string, 0, len(answers))
	for name := range answers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := answers[name]
		fld, ok := f.Field(name)
		if !ok {
			fld, ok = f.radioByGroup(name)
		}
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}

		var err error
		switch fld.Kind {
		case KindText, KindSelect:
			err = fld.SetValue(value)
		case KindCheckbox:
			if box, ok := f.checkboxWithValue(name, value); ok {
				err = box.SetChecked(true)
			} else {
				err = fld.SetChecked(truthy(value))
			}
		case KindRadio:
			err = f.selectInGroup(fld.GroupName(), value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) radioByGroup(group string) (*Field, bool) {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			if fld.Kind == KindRadio && fld.GroupName() == group {
				return fld, true
			}
		}
	}
	return nil, false
}

// selectInGroup checks the first field in group offering value.
func (f *Form) selectInGroup(group, value string) error {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			if fld.Kind != KindRadio || fld.GroupName() != group {
				continue
			}
			if hasOption(fld, value) {
				return f.Choose(fld, value)
			}
		}
	}
	return fmt.Errorf("field %q: %q is not an option", group, value)
}

// checkboxWithValue finds the checkbox called name that submits value.
func (f *Form) checkboxWithValue(name, value string) (*Field, bool) {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			if fld.Kind == KindCheckbox && fld.Name == name && fld.CheckedValue != "" && fld.CheckedValue == value {
				return fld, true
			}
		}
	}
	return nil, false
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "1", "y":
		return true
	}
	return false
}
