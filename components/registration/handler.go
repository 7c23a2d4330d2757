package registration

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// showPasswordParam is the checkbox posted alongside the three fields.
const showPasswordParam = "show_password"

// Handler builds the form handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the form handler from a pre-constructed Options
// value. GET and HEAD render the empty form; POST validates the submitted
// fields and renders either the inline errors or the summary.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	renderer, err := resolveRenderer(opts)
	if err != nil {
		opts.Logger.Error("registration: renderer unavailable", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		controller := form.NewController(form.WithListener(metrics.Listener(opts.Metrics)))
		if r.Method == http.MethodPost {
			if code, ok := submit(w, r, controller, opts); !ok {
				http.Error(w, http.StatusText(code), code)
				return
			}
		}

		body, err := renderer.Render(r.Context(), controller.View(), renderOptions(r, opts))
		if err != nil {
			opts.Logger.Error("registration: render form", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

// submit feeds the posted fields through controller and attempts a submit.
// It reports a status code when the body cannot be read.
func submit(w http.ResponseWriter, r *http.Request, controller *form.Controller, opts Options) (int, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, false
		}
		return http.StatusBadRequest, false
	}

	values := make(map[form.Field]string, len(form.Fields()))
	for _, field := range form.Fields() {
		values[field] = r.PostForm.Get(string(field))
	}
	if err := controller.Apply(values); err != nil {
		return http.StatusInternalServerError, false
	}
	controller.SetShowPassword(r.PostForm.Has(showPasswordParam))

	if summary, ok := controller.Submit(); ok {
		opts.Logger.Info("registration submitted",
			"name", logging.RedactName(summary.Name),
			"email", logging.RedactEmail(summary.Email),
		)
	} else {
		opts.Logger.Debug("registration blocked", "errors", len(controller.Result().Errors))
	}
	return http.StatusOK, true
}

func renderOptions(r *http.Request, opts Options) render.RenderOptions {
	options := render.RenderOptions{
		Action:     r.URL.Path,
		Method:     http.MethodPost,
		Stylesheet: opts.Stylesheet,
		Theme:      opts.Theme,
	}
	if opts.LivePath != "" {
		options.LiveEndpoint = liveURL(r.URL.Path, opts.LivePath)
	}
	if opts.HiddenFields != nil {
		options.HiddenFields = opts.HiddenFields(r)
	}
	return options
}

func liveURL(formPath, livePath string) string {
	if !strings.HasPrefix(livePath, "/") {
		livePath = "/" + livePath
	}
	return strings.TrimRight(formPath, "/") + livePath
}

func resolveRenderer(opts Options) (render.Renderer, error) {
	if opts.Renderer != nil {
		return opts.Renderer, nil
	}
	return vanilla.New()
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
