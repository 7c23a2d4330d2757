package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/internal/openapi"
)

func TestDocument_RoundTripsThroughLoader(t *testing.T) {
	doc := openapi.Document(openapi.Paths{
		Form:   "/register",
		Live:   "/register/live",
		Schema: "/register/openapi.json",
	})

	data, err := openapi.JSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	spec, err := openapi.Load(context.Background(), data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Paths.Len() != 3 {
		t.Fatalf("expected 3 paths, got %d", spec.Paths.Len())
	}

	fields, err := openapi.SubmitFields(spec)
	if err != nil {
		t.Fatalf("submit fields: %v", err)
	}
	want := []string{"email", "name", "password", "show_password"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	schema := spec.Paths.Value("/register").Post.RequestBody.Value.Content.Get(openapi.FormMediaType).Schema.Value
	if diff := cmp.Diff([]string{"name", "email", "password"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_YAMLLoads(t *testing.T) {
	data, err := openapi.YAML(openapi.Document(openapi.Paths{Form: "/signup"}))
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	spec, err := openapi.Load(context.Background(), data)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if spec.Paths.Value("/signup") == nil {
		t.Fatalf("expected /signup path")
	}
	if spec.Paths.Len() != 1 {
		t.Fatalf("expected only the form path, got %d", spec.Paths.Len())
	}
}

func TestRequestSchema_VisitJSON(t *testing.T) {
	schema := openapi.RequestSchema()

	valid := map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "Engine1!",
	}
	if err := schema.VisitJSON(valid); err != nil {
		t.Fatalf("expected valid body: %v", err)
	}

	invalid := map[string]any{
		"name":     "Ada",
		"email":    "not-an-email",
		"password": "Engine1!",
	}
	if err := schema.VisitJSON(invalid); err == nil {
		t.Fatalf("expected email pattern violation")
	}

	missing := map[string]any{"name": "Ada"}
	if err := schema.VisitJSON(missing); err == nil {
		t.Fatalf("expected required violation")
	}
}

func TestLoad_RejectsEmpty(t *testing.T) {
	if _, err := openapi.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
