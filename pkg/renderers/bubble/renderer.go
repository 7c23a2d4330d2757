package bubble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// Name is the registry key of the full-screen renderer.
const Name = "bubble"

// ErrAborted is returned by Run when the user quits before submitting.
var ErrAborted = errors.New("bubble: aborted")

// Option configures the Renderer.
type Option func(*Renderer)

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(r *Renderer) {
		r.altScreen = enabled
	}
}

// WithInput reads key events from in instead of stdin.
func WithInput(in io.Reader) Option {
	return func(r *Renderer) {
		r.in = in
	}
}

// WithOutput draws to out instead of stdout.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(r *Renderer) {
		r.keys = keys
	}
}

// Renderer implements render.Renderer (a static frame) and render.Session
// (an interactive bubbletea program).
type Renderer struct {
	altScreen bool
	in        io.Reader
	out       io.Writer
	keys      KeyMap
}

var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Session  = (*Renderer)(nil)
)

// New constructs the renderer. The alternate screen is on by default.
func New(options ...Option) *Renderer {
	r := &Renderer{
		altScreen: true,
		keys:      DefaultKeyMap(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render draws a single frame for view without starting a program. The
// password is masked unless the view reveals it.
func (r *Renderer) Render(ctx context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines := make([]string, len(fieldOrder))
	for i, field := range fieldOrder {
		value := view.Value(field)
		if field == form.FieldPassword && !view.ShowPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		lines[i] = "> " + value
	}
	return []byte(frame(view, options.Errors, lines, -1, "")), nil
}

// Run starts a bubbletea program over controller and blocks until the user
// submits a valid form or quits.
func (r *Renderer) Run(ctx context.Context, controller *form.Controller, options render.RenderOptions) (form.Summary, error) {
	if controller == nil {
		return form.Summary{}, errors.New("bubble: controller is required")
	}

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if r.altScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	if r.in != nil {
		programOptions = append(programOptions, tea.WithInput(r.in))
	}
	if r.out != nil {
		programOptions = append(programOptions, tea.WithOutput(r.out))
	}

	final, err := tea.NewProgram(NewModel(controller, r.keys, options.Errors), programOptions...).Run()
	if err != nil {
		return form.Summary{}, fmt.Errorf("bubble: run program: %w", err)
	}
	if m, ok := final.(Model); ok && m.Aborted() {
		return form.Summary{}, ErrAborted
	}

	view := controller.View()
	if !view.Submitted() {
		return form.Summary{}, ErrAborted
	}
	return *view.Summary, nil
}
