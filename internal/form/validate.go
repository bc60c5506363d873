package form

import "strings"

// Validate checks every required field of section i. Text and select fields
// must be non-blank, checkboxes must be checked, and every radio group with
// a required member needs one checked option among the section's fields of
// that group. It returns nil or a *ValidationError; the form is not modified.
func (f *Form) Validate(i int) error {
	s, err := f.Section(i)
	if err != nil {
		return err
	}

	var missing []string
	var groups []string
	seen := make(map[string]bool)

	for _, fld := range s.Fields {
		if !fld.Required {
			continue
		}
		switch fld.Kind {
		case KindText, KindSelect:
			if strings.TrimSpace(fld.Value) == "" {
				missing = append(missing, fld.Name)
			}
		case KindCheckbox:
			if !fld.Checked {
				missing = append(missing, fld.Name)
			}
		case KindRadio:
			g := fld.GroupName()
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}

	for _, g := range groups {
		if !groupAnswered(s, g) {
			missing = append(missing, g)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Section: i, Missing: missing}
	}
	return nil
}

func groupAnswered(s *Section, group string) bool {
	for _, fld := range s.Fields {
		if fld.Kind != KindRadio || fld.GroupName() != group {
			continue
		}
		if _, ok := fld.CheckedOption(); ok {
			return true
		}
	}
	return false
}
