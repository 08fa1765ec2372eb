package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

type formField struct {
	label    string
	required bool
	input    textinput.Model
}

// formModel is a vertical list of text inputs. tab / up / down move the
// focus, enter on the last field submits, esc cancels.
type formModel struct {
	title  string
	fields []formField
	focus  int
	errMsg string
}

func newField(label, placeholder string, required bool) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Prompt = ""
	return formField{label: label, required: required, input: in}
}

func newFormModel(title string, fields ...formField) formModel {
	f := formModel{title: title, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f formModel) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f formModel) setValue(i int, v string) formModel {
	if i >= 0 && i < len(f.fields) {
		f.fields[i].input.SetValue(v)
	}
	return f
}

// missing lists the labels of empty required fields.
func (f formModel) missing() []string {
	var out []string
	for i, field := range f.fields {
		if field.required && f.value(i) == "" {
			out = append(out, field.label)
		}
	}
	return out
}

func (f formModel) moveFocus(delta int) formModel {
	if len(f.fields) == 0 {
		return f
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
	return f
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd, formAction) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return f, nil, formCancel
		case "tab", "down":
			return f.moveFocus(1), nil, formNone
		case "shift+tab", "up":
			return f.moveFocus(-1), nil, formNone
		case "enter":
			if f.focus < len(f.fields)-1 {
				return f.moveFocus(1), nil, formNone
			}
			if missing := f.missing(); len(missing) > 0 {
				f.errMsg = "Preencha: " + strings.Join(missing, ", ")
				return f, nil, formNone
			}
			f.errMsg = ""
			return f, nil, formSubmit
		}
	}

	if len(f.fields) == 0 {
		return f, nil, formNone
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, formNone
}

func (f formModel) View() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := field.label
		if field.required {
			label += " *"
		}
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(padRight(label, 16))
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errMsg))
		b.WriteString("\n")
	}
	return renderPage(f.title, b.String(), "tab: próximo campo │ enter: salvar │ esc: cancelar")
}
