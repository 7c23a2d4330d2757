package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "vanilla"

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	title            string
	inlineStyles     bool
	inlineScript     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// must mirror the embedded layout (templates/form.tmpl).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templatesDir = path
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle overrides the heading shown above the form.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithInlineStyles toggles embedding the default stylesheet in the page.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithInlineScript toggles embedding the live validation runtime. It is only
// emitted when RenderOptions.LiveEndpoint is set.
func WithInlineScript(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineScript = enabled
	}
}

// Renderer produces a complete HTML page for a form.View.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	title        string
	inlineStyles bool
	inlineScript bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		title:        DefaultTitle,
		inlineStyles: true,
		inlineScript: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotemplate.Option{gotemplate.WithExtension(".tmpl")}
		if cfg.templatesDir != "" {
			engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.templatesDir))
		} else {
			engineOptions = append(engineOptions, gotemplate.WithFS(cfg.templateFS))
		}
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		title:        cfg.title,
		inlineStyles: cfg.inlineStyles,
		inlineScript: cfg.inlineScript,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"page": r.page(view, options),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// Reset drops cached templates when the underlying engine supports it.
func (r *Renderer) Reset() {
	if reloader, ok := r.templates.(rendertemplate.Reloader); ok {
		reloader.Reset()
	}
}
