package vanilla

import (
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// DefaultTitle is the heading rendered above the form.
const DefaultTitle = form.Title

type pageView struct {
	Title         string
	ToggleLabel   string
	SubmitLabel   string
	Action        string
	Method        string
	Phase         string
	Stylesheet    string
	InlineStyles  string
	InlineScript  string
	LiveEndpoint  string
	Fields        []fieldView
	Hidden        []render.HiddenField
	FormErrors    []string
	ShowPassword  bool
	SubmitEnabled bool
	Summary       []string
	Theme         themeView
	Classes       classView
}

type fieldView struct {
	Name         string
	ID           string
	Label        string
	Type         string
	Value        string
	Placeholder  string
	Autocomplete string
	MinLength    int
	Errors       []string
	IsPassword   bool
}

type themeView struct {
	Name         string
	Variant      string
	CSSVarsStyle string
}

type classView struct {
	Container string
	Form      string
	Field     string
	Input     string
	Error     string
	Toggle    string
	Actions   string
	Errors    string
	Summary   string
}

func (r *Renderer) page(view form.View, options render.RenderOptions) pageView {
	mapping := render.FieldErrors(view, options.Errors)

	page := pageView{
		Title:         r.title,
		ToggleLabel:   form.ToggleLabel,
		SubmitLabel:   form.SubmitLabel,
		Action:        strings.TrimSpace(options.Action),
		Method:        formMethod(options.Method),
		Phase:         string(view.Phase),
		Stylesheet:    strings.TrimSpace(options.Stylesheet),
		LiveEndpoint:  strings.TrimSpace(options.LiveEndpoint),
		Hidden:        render.SortedHiddenFields(options.HiddenFields),
		FormErrors:    mapping.Form,
		ShowPassword:  view.ShowPassword,
		SubmitEnabled: view.SubmitEnabled,
		Theme:         buildThemeView(options.Theme),
		Classes:       defaultClasses(),
	}
	if r.inlineStyles {
		page.InlineStyles = readAsset(StylesheetName)
	}
	if r.inlineScript && page.LiveEndpoint != "" {
		page.InlineScript = readAsset(RuntimeScriptName)
	}
	if view.Submitted() {
		page.Summary = view.Summary.Lines()
	}

	for _, field := range form.Fields() {
		page.Fields = append(page.Fields, buildField(view, field, mapping.For(field)))
	}
	return page
}

func buildField(view form.View, field form.Field, messages []string) fieldView {
	out := fieldView{
		Name:        string(field),
		ID:          "regform-" + string(field),
		Label:       field.Label(),
		Type:        "text",
		Value:       view.Value(field),
		Placeholder: field.Placeholder(),
		Errors:      messages,
	}
	switch field {
	case form.FieldName:
		out.Autocomplete = "name"
	case form.FieldEmail:
		out.Type = "email"
		out.Autocomplete = "email"
	case form.FieldPassword:
		out.Type = view.PasswordInputType()
		out.Autocomplete = "new-password"
		out.MinLength = form.PasswordMinLength
		out.IsPassword = true
	}
	return out
}

func formMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "get":
		return "get"
	default:
		return "post"
	}
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" || strings.ContainsAny(value, ";{}<>") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	}
	return b.String()
}

func defaultClasses() classView {
	return classView{
		Container: string(ClassContainer),
		Form:      string(ClassForm),
		Field:     string(ClassField),
		Input:     string(ClassInput),
		Error:     string(ClassError),
		Toggle:    string(ClassToggle),
		Actions:   string(ClassActions),
		Errors:    string(ClassErrors),
		Summary:   string(ClassSummary),
	}
}
