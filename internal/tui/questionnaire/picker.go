package questionnaire

import (
	"strings"

	"github.com/druarnfield/mindcheck/internal/form"
)

// row is one focusable line of a section: a radio or select option, a
// checkbox, or a text input. Field labels are headers and never focused.
type row struct {
	isHeader bool
	field    *form.Field
	option   int // index into field.Options, -1 for checkbox and text rows
}

// focusable reports whether the cursor may rest on r.
func (r row) focusable() bool {
	return !r.isHeader
}

// isText reports whether r edits a text field.
func (r row) isText() bool {
	return !r.isHeader && r.field.Kind == form.KindText
}

// buildRows lays out a section as header and input rows.
func buildRows(s *form.Section) []row {
	var rows []row
	for _, f := range s.Fields {
		switch f.Kind {
		case form.KindRadio, form.KindSelect:
			rows = append(rows, row{isHeader: true, field: f, option: -1})
			for i := range f.Options {
				rows = append(rows, row{field: f, option: i})
			}
		case form.KindText:
			rows = append(rows, row{isHeader: true, field: f, option: -1})
			rows = append(rows, row{field: f, option: -1})
		case form.KindCheckbox:
			rows = append(rows, row{field: f, option: -1})
		}
	}
	return rows
}

// nextFocusable finds the next non-header row index in the given direction,
// wrapping around. It returns from when nothing else is focusable.
func nextFocusable(rows []row, from, dir int) int {
	n := len(rows)
	if n == 0 {
		return 0
	}

	pos := from + dir
	for i := 0; i < n; i++ {
		if pos < 0 {
			pos = n - 1
		} else if pos >= n {
			pos = 0
		}
		if rows[pos].focusable() {
			return pos
		}
		pos += dir
	}
	return from
}

// firstFocusable returns the first focusable row, or 0.
func firstFocusable(rows []row) int {
	for i, r := range rows {
		if r.focusable() {
			return i
		}
	}
	return 0
}

// firstUnanswered returns the first focusable row of a required field with
// no answer, or -1.
func firstUnanswered(rows []row) int {
	for i, r := range rows {
		if !r.focusable() || !r.field.Required {
			continue
		}
		if !answered(r.field) {
			return i
		}
	}
	return -1
}

func answered(f *form.Field) bool {
	switch f.Kind {
	case form.KindRadio:
		_, ok := f.CheckedOption()
		return ok
	case form.KindCheckbox:
		return f.Checked
	default:
		return strings.TrimSpace(f.Value) != ""
	}
}
