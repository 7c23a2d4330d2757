package registration

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered on a mux. Live and Schema are empty
// when disabled.
type Routes struct {
	Form   string
	Live   string
	Schema string
}

// MountPath returns the full form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// MountRoutes computes every route for basePath without registering them.
func MountRoutes(basePath string, opts Options) Routes {
	routes := Routes{Form: mountPath(basePath, opts.RoutePath)}
	if strings.TrimSpace(opts.LivePath) != "" {
		routes.Live = liveURL(routes.Form, strings.TrimSpace(opts.LivePath))
	}
	if strings.TrimSpace(opts.SchemaPath) != "" {
		routes.Schema = liveURL(routes.Form, strings.TrimSpace(opts.SchemaPath))
	}
	return routes
}

// RegisterRoutes registers the form, live and schema handlers under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("registration: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	routes := MountRoutes(basePath, opts)

	mux.Handle(routes.Form, HandlerWithOptions(opts))
	if routes.Live != "" {
		mux.Handle(routes.Live, LiveHandler(opts))
	}
	if routes.Schema != "" {
		mux.Handle(routes.Schema, SchemaHandler(routes))
	}
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
