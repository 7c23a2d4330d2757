package bubble

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func fillValid(t *testing.T, controller *form.Controller) Model {
	t.Helper()
	m := NewModel(controller, DefaultKeyMap(), nil)
	m = typeText(m, "Ada")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "ada@example.com")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "Engine1!")
	return m
}

func TestModel_TypingFeedsController(t *testing.T) {
	controller := form.NewController()
	m := fillValid(t, controller)

	assert.Equal(t, form.FormState{Name: "Ada", Email: "ada@example.com", Password: "Engine1!"}, controller.State())
	assert.Equal(t, form.PhaseSubmittable, controller.Phase())
	assert.NoError(t, m.Err())
}

func TestModel_SubmitBlockedIsNoop(t *testing.T) {
	controller := form.NewController()
	m := NewModel(controller, DefaultKeyMap(), nil)
	m = typeText(m, "Ada")

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, form.PhaseBlocked, controller.Phase())
	assert.False(t, controller.View().Submitted())
	assert.Contains(t, m.View(), form.MsgEmailInvalid)
}

func TestModel_SubmitViaButton(t *testing.T) {
	controller := form.NewController()
	m := fillValid(t, controller)

	// password -> toggle -> submit
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusSubmit, m.focus)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, form.PhaseSubmitted, controller.Phase())
	view := m.View()
	assert.Contains(t, view, "Name: Ada")
	assert.Contains(t, view, "Email: ada@example.com")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, next.(Model).Aborted())
}

func TestModel_TogglePassword(t *testing.T) {
	controller := form.NewController()
	m := NewModel(controller, DefaultKeyMap(), nil)
	assert.Contains(t, m.View(), "[ ] "+form.ToggleLabel)

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, controller.ShowPassword())
	assert.Contains(t, m.View(), "[x] "+form.ToggleLabel)

	// space on the focused checkbox toggles back
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, focusToggle, m.focus)
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, controller.ShowPassword())
}

func TestModel_QuitAborts(t *testing.T) {
	m := NewModel(form.NewController(), DefaultKeyMap(), nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Aborted())
	assert.Empty(t, next.(Model).View())
}

func TestRenderer_RenderMasksPassword(t *testing.T) {
	controller := form.NewController()
	require.NoError(t, controller.Change(form.FieldPassword, "Engine1!"))

	out, err := New().Render(context.Background(), controller.View(), render.RenderOptions{
		Errors: map[string][]string{"form": {"Service unavailable"}},
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, form.Title)
	assert.Contains(t, text, "> ••••••••")
	assert.NotContains(t, text, "Engine1!")
	assert.Contains(t, text, form.MsgNameRequired)
	assert.Contains(t, text, "Service unavailable")
	assert.True(t, strings.Contains(text, "[ "+form.SubmitLabel+" ]"))
}
