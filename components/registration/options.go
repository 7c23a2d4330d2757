package registration

import (
	"net/http"

	clog "github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/render"
)

// GuardFunc rejects a request before any form work happens. Returning an
// HTTPError picks the status code; any other error is a 403.
type GuardFunc func(r *http.Request) error

// HiddenFieldsFunc supplies hidden inputs (CSRF tokens) per request.
type HiddenFieldsFunc func(r *http.Request) map[string]string

type Options struct {
	RoutePath      string
	LivePath       string
	SchemaPath     string
	Renderer       render.Renderer
	Theme          *theme.RendererConfig
	Stylesheet     string
	Guard          GuardFunc
	HiddenFields   HiddenFieldsFunc
	Metrics        metrics.Recorder
	Logger         *clog.Logger
	OriginPatterns []string
	ReadLimit      int64
	MaxBodyBytes   int64
}

type OptionFn func(*Options)

const (
	defaultRoutePath    = "/register"
	defaultLivePath     = "/live"
	defaultSchemaPath   = "/openapi.json"
	defaultReadLimit    = 4 << 10
	defaultMaxBodyBytes = 16 << 10
)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		LivePath:     defaultLivePath,
		SchemaPath:   defaultSchemaPath,
		Metrics:      metrics.Nop{},
		ReadLimit:    defaultReadLimit,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.L
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = defaultReadLimit
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.OriginPatterns != nil {
		opts.OriginPatterns = append([]string{}, opts.OriginPatterns...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithLivePath mounts the websocket under the form route. An empty path
// disables live validation.
func WithLivePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LivePath = path
	}
}

// WithSchemaPath mounts the OpenAPI document under the form route. An empty
// path disables it.
func WithSchemaPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SchemaPath = path
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithStylesheet(href string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Stylesheet = href
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithHiddenFields(fn HiddenFieldsFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HiddenFields = fn
	}
}

func WithMetrics(rec metrics.Recorder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = rec
	}
}

func WithLogger(logger *clog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithOriginPatterns allows cross-origin websocket connections from hosts
// matching patterns (see websocket.AcceptOptions).
func WithOriginPatterns(patterns ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OriginPatterns = append([]string{}, patterns...)
	}
}

func WithReadLimit(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ReadLimit = limit
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}
