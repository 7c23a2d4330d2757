package tui

import "io"

// OutputFormat controls how the collected form is serialized by Render.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits the summary lines.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatYAML emits a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat maps a config string onto an OutputFormat. Unknown values
// report false.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText, OutputFormatYAML:
		return OutputFormat(raw), true
	case "":
		return OutputFormatJSON, true
	default:
		return "", false
	}
}

// Theme captures optional message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints informational
// lines. Ignored when a custom driver is supplied.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how many times an invalid form is sent back for
// correction. Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
