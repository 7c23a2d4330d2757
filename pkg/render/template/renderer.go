package template

import (
	"io"
)

// TemplateRenderer is the contract HTML renderers rely on. Render accepts
// either a template name or inline template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Reloader is implemented by engines that cache parsed templates and can drop
// that cache when the files on disk change.
type Reloader interface {
	Reset()
}
