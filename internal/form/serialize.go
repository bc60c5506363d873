package form

// Serialize flattens the form into field name → value in document order.
// Duplicate names keep the last value. Unchecked checkboxes and radio groups
// without a checked option produce no key; text and select fields are always
// present, possibly empty.
func (f *Form) Serialize() map[string]string {
	out := make(map[string]string)
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			switch fld.Kind {
			case KindText, KindSelect:
				out[fld.Name] = fld.Value
			case KindCheckbox:
				if !fld.Checked {
					continue
				}
				v := fld.CheckedValue
				if v == "" {
					v = DefaultCheckedValue
				}
				out[fld.Name] = v
			case KindRadio:
				if o, ok := fld.CheckedOption(); ok {
					out[fld.GroupName()] = o.Value
				}
			}
		}
	}
	return out
}
