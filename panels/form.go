package panels

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/widgets"
)

type formField struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
}

func (f *formField) isChoice() bool { return len(f.options) > 0 }

// form is a column of text inputs and one-of selectors. Enter starts editing
// a text field; while editing, every key goes to the input.
type form struct {
	fields  []*formField
	focus   int
	editing bool
	invalid string
}

func newForm(fields ...*formField) *form { return &form{fields: fields} }

func textField(label, placeholder, value string) *formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.SetValue(value)
	return &formField{label: label, input: in}
}

func secretField(label, placeholder string, mask rune) *formField {
	f := textField(label, placeholder, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = mask
	return f
}

func choiceField(label string, options ...string) *formField {
	return &formField{label: label, options: options}
}

func (f *form) text(i int) string   { return strings.TrimSpace(f.fields[i].input.Value()) }
func (f *form) choice(i int) string { return f.fields[i].options[f.fields[i].choice] }

// number reads field i as an integer, 0 when it is not one.
func (f *form) number(i int) int {
	n, err := strconv.Atoi(f.text(i))
	if err != nil {
		return 0
	}
	return n
}

func (f *form) clear(i int) { f.fields[i].input.SetValue("") }

// check records a validation failure so the offending rows are flagged.
func (f *form) check(err error) error {
	f.invalid = ""
	if err != nil {
		f.invalid = err.Error()
	}
	return err
}

func (f *form) scope(base string) string {
	if f.editing {
		return "edit"
	}
	return base
}

// handle applies one key. It reports false for keys the form does not use.
func (f *form) handle(m *core.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	cur := f.fields[f.focus]
	if f.editing {
		switch {
		case m.Is(msg, "done-edit"):
			f.stopEditing()
			return true, nil
		case m.Is(msg, "next-field"):
			f.stopEditing()
			f.move(1)
			return true, nil
		case m.Is(msg, "prev-field"):
			f.stopEditing()
			f.move(-1)
			return true, nil
		}
		var cmd tea.Cmd
		cur.input, cmd = cur.input.Update(msg)
		return true, cmd
	}
	switch {
	case m.Is(msg, "next-field"):
		f.move(1)
	case m.Is(msg, "prev-field"):
		f.move(-1)
	case m.Is(msg, "edit"):
		if cur.isChoice() {
			cur.choice = (cur.choice + 1) % len(cur.options)
			return true, nil
		}
		f.editing = true
		return true, cur.input.Focus()
	case m.Is(msg, "choice-next") && cur.isChoice():
		cur.choice = (cur.choice + 1) % len(cur.options)
	case m.Is(msg, "choice-prev") && cur.isChoice():
		cur.choice = (cur.choice - 1 + len(cur.options)) % len(cur.options)
	default:
		return false, nil
	}
	return true, nil
}

func (f *form) stopEditing() {
	f.editing = false
	f.fields[f.focus].input.Blur()
}

func (f *form) move(delta int) {
	n := len(f.fields)
	f.focus = (f.focus + delta + n) % n
}

func (f *form) widget() widgets.Fields {
	rows := make(widgets.Fields, 0, len(f.fields))
	for i, fld := range f.fields {
		row := widgets.Field{
			Label:   fld.label,
			Focused: i == f.focus,
			Invalid: f.invalid != "" && strings.Contains(f.invalid, strings.ToLower(fld.label)),
		}
		if fld.isChoice() {
			row.Value = widgets.Choice(fld.options, fld.choice)
		} else {
			row.Value = fld.input.View()
		}
		rows = append(rows, row)
	}
	return rows
}
