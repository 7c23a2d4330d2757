// Package regform wires the registration form controller to its renderers.
//
// Most callers only need Generate (render a form snapshot through a named
// renderer) or Run (drive an interactive terminal session):
//
//	gen, err := regform.New()
//	html, err := gen.Generate(ctx, regform.Request{Renderer: "vanilla"})
//	summary, err := gen.Run(ctx, "tui", regform.RenderOptions{})
package regform

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/bubble"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

const defaultRendererName = vanilla.Name

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// Summary aliases the record revealed after a successful submit.
type Summary = form.Summary

// Option customises a Generator.
type Option func(*Generator)

// WithRegistry replaces the built-in renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.defaultRenderer = name
		}
	}
}

// WithTheme applies cfg to every render whose options carry no theme.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(g *Generator) {
		g.theme = cfg
	}
}

// WithListener observes every controller the generator creates.
func WithListener(fn form.Listener) Option {
	return func(g *Generator) {
		if fn != nil {
			g.listeners = append(g.listeners, fn)
		}
	}
}

// Generator owns a renderer registry and builds one controller per request.
type Generator struct {
	registry        *render.Registry
	defaultRenderer string
	theme           *theme.RendererConfig
	listeners       []form.Listener
}

// New constructs a Generator. Without WithRegistry it registers the vanilla,
// tui and bubble renderers with their defaults.
func New(options ...Option) (*Generator, error) {
	g := &Generator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		g.registry = registry
	}
	return g, nil
}

// DefaultRegistry registers every built-in renderer.
func DefaultRegistry() (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("regform: vanilla renderer: %w", err)
	}
	prompt, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("regform: tui renderer: %w", err)
	}

	registry := render.NewRegistry()
	for _, renderer := range []render.Renderer{html, prompt, bubble.New()} {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("regform: %w", err)
		}
	}
	return registry, nil
}

// Registry exposes the renderer registry.
func (g *Generator) Registry() *render.Registry {
	return g.registry
}

// Request describes one render of the form.
type Request struct {
	// Renderer names the renderer; empty uses the default.
	Renderer string
	// Values are raw inputs applied in field order before rendering.
	Values map[form.Field]string
	// ShowPassword reveals the password in renderers that display it.
	ShowPassword bool
	// Submit attempts a submit after applying Values. It is suppressed when
	// the form is invalid.
	Submit bool
	Options RenderOptions
}

// Generate renders req through the selected renderer.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	renderer, err := g.registry.Get(g.rendererName(req.Renderer))
	if err != nil {
		return nil, err
	}

	controller := g.Controller()
	if err := controller.Apply(req.Values); err != nil {
		return nil, fmt.Errorf("regform: apply values: %w", err)
	}
	controller.SetShowPassword(req.ShowPassword)
	if req.Submit {
		controller.Submit()
	}

	output, err := renderer.Render(ctx, controller.View(), g.options(req.Options))
	if err != nil {
		return nil, fmt.Errorf("regform: render with %q: %w", renderer.Name(), err)
	}
	return output, nil
}

// Run drives an interactive session on the named renderer until the user
// submits a valid form or aborts.
func (g *Generator) Run(ctx context.Context, name string, options RenderOptions) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := g.registry.Interactive(g.rendererName(name))
	if err != nil {
		return Summary{}, err
	}
	return session.Run(ctx, g.Controller(), g.options(options))
}

// Controller returns a fresh controller carrying the generator's listeners.
func (g *Generator) Controller() *form.Controller {
	options := make([]form.Option, 0, len(g.listeners))
	for _, fn := range g.listeners {
		options = append(options, form.WithListener(fn))
	}
	return form.NewController(options...)
}

func (g *Generator) rendererName(name string) string {
	if name == "" {
		return g.defaultRenderer
	}
	return name
}

func (g *Generator) options(options RenderOptions) RenderOptions {
	if options.Theme == nil {
		options.Theme = g.theme
	}
	return options
}

// GenerateHTML renders the empty form with the vanilla renderer.
func GenerateHTML(ctx context.Context, options ...Option) ([]byte, error) {
	gen, err := New(options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, Request{Renderer: vanilla.Name})
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// and override them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and live validation script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(regform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
