package tui

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// customFieldInput is the name of the extra input that adds a custom field.
const customFieldInput = "+ custom field"

type formField struct {
	name    string
	choices []string
	input   textinput.Model
}

// form is the add/edit dialog for one record.
type form struct {
	title  string
	editID int64 // 0 when adding
	fields []formField
	focus  int
	err    string
}

func newForm(title string, editID int64, columns []string, values map[string]string, choices map[string][]string, custom bool) *form {
	f := &form{title: title, editID: editID}

	names := make([]string, 0, len(columns))
	seen := map[string]bool{}
	for _, c := range columns {
		if c == "id" {
			continue
		}
		names = append(names, c)
		seen[c] = true
	}
	var extra []string
	for k := range values {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	names = append(names, extra...)

	for _, name := range names {
		f.fields = append(f.fields, newFormField(name, values[name], choices[name]))
	}
	if custom {
		in := newFormField(customFieldInput, "", nil)
		in.input.Placeholder = "name=value"
		f.fields = append(f.fields, in)
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func newFormField(name, value string, choices []string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	in.Width = 40
	in.SetValue(value)
	return formField{name: name, choices: choices, input: in}
}

func (f *form) move(step int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + step + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) onLast() bool { return f.focus == len(f.fields)-1 }

// cycle steps the focused field through its choices, if it has any. It
// reports whether the field was a choice field.
func (f *form) cycle(step int) bool {
	fld := &f.fields[f.focus]
	if len(fld.choices) == 0 {
		return false
	}
	fld.input.SetValue(nextChoice(fld.choices, fld.input.Value(), step))
	return true
}

// update forwards a key to the focused text input. Choice fields ignore typing.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	fld := &f.fields[f.focus]
	if len(fld.choices) > 0 {
		return nil
	}
	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return cmd
}

// values returns the entered fields. The custom field input, when filled,
// contributes one extra name=value pair.
func (f *form) values() (map[string]string, error) {
	out := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		v := fld.input.Value()
		if fld.name != customFieldInput {
			out[fld.name] = v
			continue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New("custom field must look like name=value")
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
