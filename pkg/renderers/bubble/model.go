package bubble

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// focus positions after the three inputs.
const (
	focusToggle = len(fieldOrder)
	focusSubmit = focusToggle + 1
	focusCount  = focusSubmit + 1
)

var fieldOrder = [...]form.Field{form.FieldName, form.FieldEmail, form.FieldPassword}

// Model is the bubbletea model for one registration session. It drives a
// controller owned by the caller.
type Model struct {
	controller *form.Controller
	extra      map[string][]string
	inputs     []textinput.Model
	focus      int
	keys       KeyMap
	help       help.Model
	err        error
	aborted    bool
	quitting   bool
}

// NewModel builds a model around controller. extra carries feedback shown
// next to the validation messages (see render.FieldErrors).
func NewModel(controller *form.Controller, keys KeyMap, extra map[string][]string) Model {
	m := Model{
		controller: controller,
		extra:      extra,
		inputs:     make([]textinput.Model, len(fieldOrder)),
		keys:       keys,
		help:       help.New(),
	}

	state := controller.State()
	for i, field := range fieldOrder {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40
		t.Prompt = "> "
		t.Placeholder = field.Placeholder()
		t.SetValue(state.Get(field))
		if field == form.FieldPassword {
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	m.syncEcho()
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.controller.Phase() == form.PhaseSubmitted {
			m.quitting = true
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Activate):
			switch m.focus {
			case focusToggle:
				m.toggle()
				return m, nil
			case focusSubmit:
				m.submit()
				return m, nil
			default:
				return m, m.setFocus(m.focus + 1)
			}
		case key.Matches(msg, m.keys.Space) && m.focus == focusToggle:
			m.toggle()
			return m, nil
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.err = m.controller.Change(fieldOrder[m.focus], after)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	lines := make([]string, len(m.inputs))
	for i := range m.inputs {
		lines[i] = m.inputs[i].View()
	}
	footer := m.help.View(m.keys)
	if m.controller.Phase() == form.PhaseSubmitted {
		footer = labelStyle.Render("press any key to exit")
	}
	return frame(m.controller.View(), m.extra, lines, m.focus, footer)
}

// Aborted reports whether the user quit without submitting.
func (m Model) Aborted() bool {
	return m.aborted
}

// Err returns the last controller error, if any.
func (m Model) Err() error {
	return m.err
}

func (m *Model) toggle() {
	m.controller.TogglePassword()
	m.syncEcho()
}

func (m *Model) submit() {
	m.controller.Submit()
}

func (m *Model) syncEcho() {
	idx := len(fieldOrder) - 1
	if m.controller.ShowPassword() {
		m.inputs[idx].EchoMode = textinput.EchoNormal
	} else {
		m.inputs[idx].EchoMode = textinput.EchoPassword
	}
}

func (m *Model) setFocus(next int) tea.Cmd {
	m.focus = (next%focusCount + focusCount) % focusCount
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// frame lays out a view. inputs holds one pre-rendered line per field.
func frame(view form.View, extra map[string][]string, inputs []string, focus int, footer string) string {
	mapping := render.FieldErrors(view, extra)
	items := []string{titleStyle.Render(form.Title)}

	for i, field := range fieldOrder {
		label := labelStyle.Render(field.Label())
		if focus == i {
			label = focusedStyle.Render(field.Label())
		}
		items = append(items, label, inputs[i])
		if messages := mapping.For(field); len(messages) > 0 {
			items = append(items, errorStyle.Render(strings.Join(messages, " ")))
		}
		items = append(items, "")
	}

	box := "[ ]"
	if view.ShowPassword {
		box = "[x]"
	}
	toggle := box + " " + form.ToggleLabel
	if focus == focusToggle {
		toggle = focusedStyle.Render(toggle)
	}
	items = append(items, toggle, "")

	for _, message := range mapping.Form {
		items = append(items, errorStyle.Render(message))
	}

	button := "[ " + form.SubmitLabel + " ]"
	switch {
	case !view.SubmitEnabled:
		button = disabledStyle.Render(button)
	case focus == focusSubmit:
		button = focusedStyle.Render(button)
	}
	items = append(items, button)

	if view.Submitted() {
		items = append(items, "")
		for _, line := range view.Summary.Lines() {
			items = append(items, successStyle.Render(line))
		}
	}

	if footer != "" {
		items = append(items, "", footer)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
