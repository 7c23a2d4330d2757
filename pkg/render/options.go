package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the controller.
type RenderOptions struct {
	// Action is the URL the HTML form posts to. Empty keeps the current URL.
	Action string
	// Method overrides the HTTP method; only GET and POST are meaningful for a
	// browser form and anything else falls back to POST.
	Method string
	// LiveEndpoint is the websocket URL used for per-keystroke validation.
	// Renderers omit the live runtime when it is empty.
	LiveEndpoint string
	// Stylesheet links an external stylesheet in addition to the inline one.
	Stylesheet string
	// HiddenFields are emitted as hidden inputs (CSRF tokens and the like).
	HiddenFields map[string]string
	// Errors surfaces extra feedback keyed by field name ("name", "email",
	// "password"); unknown keys are shown as form-level messages.
	Errors map[string][]string
	// Theme carries theme tokens and CSS variables for the vanilla renderer.
	Theme *theme.RendererConfig
}
