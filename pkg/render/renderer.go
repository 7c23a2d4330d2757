package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/form"
)

// Renderer turns a form View into bytes (HTML for the browser, a serialised
// summary for terminal sessions).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}

// Session is implemented by interactive renderers that drive their own
// controller until the user submits or aborts. Render on such renderers
// starts a session seeded from the view.
type Session interface {
	Run(ctx context.Context, controller *form.Controller, options RenderOptions) (form.Summary, error)
}
