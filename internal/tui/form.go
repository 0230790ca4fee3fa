package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// choice is a field whose value is one of a fixed set of options.
type choice struct {
	label   string
	options []string
	index   int
}

func (c choice) value() string { return c.options[c.index] }

func (c *choice) set(v string) {
	for i, o := range c.options {
		if o == v {
			c.index = i
		}
	}
}

// form is a vertical list of text inputs followed by choice fields.
// Focus moves across both; enter on the last field submits.
type form struct {
	labels  []string
	inputs  []textinput.Model
	choices []choice
	focus   int
	err     string
}

type field struct {
	label    string
	value    string
	password bool
	limit    int
}

func newForm(fields []field, choices ...choice) form {
	f := form{choices: choices}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.SetValue(fd.value)
		ti.CursorEnd()
		ti.Cursor.SetMode(cursor.CursorStatic)
		if fd.limit > 0 {
			ti.CharLimit = fd.limit
		}
		if fd.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	f.applyFocus()
	return f
}

func (f *form) size() int { return len(f.inputs) + len(f.choices) }

func (f *form) applyFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *form) move(delta int) {
	n := f.size()
	f.focus = ((f.focus+delta)%n + n) % n
	f.applyFocus()
}

func (f *form) value(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

// raw returns the input untrimmed; passwords keep their spaces.
func (f *form) raw(i int) string { return f.inputs[i].Value() }

func (f *form) choiceValue(i int) string { return f.choices[i].value() }

// update handles navigation and editing. It reports true when the user
// submitted the form.
func (f *form) update(msg tea.KeyMsg, keys KeyMap) (bool, tea.Cmd) {
	onChoice := f.focus >= len(f.inputs)
	switch {
	case key.Matches(msg, keys.Submit):
		if f.focus == f.size()-1 {
			return true, nil
		}
		f.move(1)
		return false, nil
	case key.Matches(msg, keys.Next):
		f.move(1)
		return false, nil
	case key.Matches(msg, keys.Prev):
		f.move(-1)
		return false, nil
	case onChoice && key.Matches(msg, keys.Cycle):
		c := &f.choices[f.focus-len(f.inputs)]
		step := 1
		if msg.String() == "left" {
			step = len(c.options) - 1
		}
		c.index = (c.index + step) % len(c.options)
		return false, nil
	}
	if onChoice {
		return false, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f form) view(s Styles) string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := s.Label.Render(f.labels[i])
		if i == f.focus {
			label = s.Focused.Width(14).Render(f.labels[i])
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	for i, c := range f.choices {
		label := s.Label.Render(c.label)
		val := "‹ " + c.value() + " ›"
		if len(f.inputs)+i == f.focus {
			label = s.Focused.Width(14).Render(c.label)
			val = s.Focused.Render(val)
		}
		b.WriteString(label + " " + val + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + s.Error.Render(f.err) + "\n")
	}
	return b.String()
}
