package registration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/app"); got != "/app/register" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("app"); got != "/app/register" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/app/", WithRoutePath("signup")); got != "/app/signup" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersEveryHandler(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := RegisterRoutes(mux, "/app", WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := Routes{Form: "/app/register", Live: "/app/register/live", Schema: "/app/register/openapi.json"}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}

	req := httptest.NewRequest(http.MethodGet, routes.Form, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, routes.Schema, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected schema status 200, got %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	for _, path := range []string{routes.Form, routes.Live, routes.Schema} {
		if _, ok := paths[path]; !ok {
			t.Fatalf("expected schema to describe %q", path)
		}
	}
}

func TestRegisterRoutes_OptionalRoutesDisabled(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := RegisterRoutes(mux, "", WithLivePath(""), WithSchemaPath(""), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(Routes{Form: "/register"}, routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestComponent_Options(t *testing.T) {
	c := New(WithRoutePath("/signup"))
	if got := c.Options().RoutePath; got != "/signup" {
		t.Fatalf("unexpected route path %q", got)
	}

	var nilComponent *Component
	if got := nilComponent.Options().RoutePath; got != defaultRoutePath {
		t.Fatalf("expected default route path, got %q", got)
	}
}
