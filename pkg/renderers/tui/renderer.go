package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// Name is the registry key of the prompt renderer.
const Name = "tui"

// Renderer implements render.Renderer and render.Session for line-oriented
// terminal sessions. Render serializes a view; Run drives the prompts.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
}

var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Session  = (*Renderer)(nil)
)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme: Theme{
			ErrorPrefix: "✗ ",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	case OutputFormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Render serializes the view in the configured output format. The password is
// never part of the output.
func (r *Renderer) Render(ctx context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.serialize(newPayload(view, options))
}

type payload struct {
	Name   string            `json:"name" yaml:"name"`
	Email  string            `json:"email" yaml:"email"`
	Phase  string            `json:"phase" yaml:"phase"`
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newPayload(view form.View, options render.RenderOptions) payload {
	out := payload{
		Name:  view.Value(form.FieldName),
		Email: view.Value(form.FieldEmail),
		Phase: string(view.Phase),
		Valid: view.Result.Valid,
	}
	if view.Submitted() {
		out.Name = view.Summary.Name
		out.Email = view.Summary.Email
	}

	mapping := render.FieldErrors(view, options.Errors)
	for _, field := range form.Fields() {
		messages := mapping.For(field)
		if len(messages) == 0 {
			continue
		}
		if out.Errors == nil {
			out.Errors = make(map[string]string)
		}
		out.Errors[string(field)] = strings.Join(messages, " ")
	}
	return out
}

func (r *Renderer) serialize(p payload) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(p)), nil
	case OutputFormatPrettyText:
		return []byte(r.pretty(p)), nil
	case OutputFormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

func formEncode(p payload) string {
	values := url.Values{}
	values.Set("name", p.Name)
	values.Set("email", p.Email)
	values.Set("phase", p.Phase)
	values.Set("valid", strconv.FormatBool(p.Valid))
	for field, message := range p.Errors {
		values.Set("errors."+field, message)
	}
	return values.Encode()
}

func (r *Renderer) pretty(p payload) string {
	var b strings.Builder
	summary := form.Summary{Name: p.Name, Email: p.Email}
	for _, line := range summary.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, field := range form.Fields() {
		if message, ok := p.Errors[string(field)]; ok {
			fmt.Fprintf(&b, "%s%s: %s\n", r.theme.ErrorPrefix, field.Label(), message)
		}
	}
	return b.String()
}
