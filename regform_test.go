package regform

import (
	"context"
	"encoding/json"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestDefaultRegistryListsBuiltins(t *testing.T) {
	gen, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []string{"bubble", "tui", "vanilla"}
	if diff := cmp.Diff(want, gen.Registry().List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<h2>"+form.Title+"</h2>") {
		t.Fatalf("expected title heading in output")
	}
	if !strings.Contains(out, form.MsgNameRequired) {
		t.Fatalf("expected empty form to carry its validation messages")
	}
}

func TestGenerateSubmitsThroughTUIRenderer(t *testing.T) {
	gen, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := gen.Generate(context.Background(), Request{
		Renderer: "tui",
		Values:   testsupport.ValidValues(),
		Submit:   true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["phase"] != string(form.PhaseSubmitted) {
		t.Fatalf("expected submitted phase, got %v", payload["phase"])
	}
	if payload["name"] != "Ada Lovelace" {
		t.Fatalf("unexpected name %v", payload["name"])
	}
	if _, leaked := payload["password"]; leaked {
		t.Fatalf("password must not be serialised")
	}
}

func TestGenerateBlockedSubmitStaysBlocked(t *testing.T) {
	var events []string
	gen, err := New(WithListener(func(tr form.Transition) { events = append(events, tr.Event) }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	values := testsupport.ValidValues()
	values[form.FieldEmail] = "nope"
	out, err := gen.Generate(context.Background(), Request{Renderer: "tui", Values: values, Submit: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `"phase":"blocked"`) {
		t.Fatalf("expected blocked phase, got %s", out)
	}
	if events[len(events)-1] != "submit_blocked" {
		t.Fatalf("expected last event submit_blocked, got %v", events)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	gen, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := gen.Generate(context.Background(), Request{Renderer: "pdf"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

type stubSession struct {
	name     string
	gotTheme *theme.RendererConfig
}

func (s *stubSession) Name() string        { return s.name }
func (s *stubSession) ContentType() string { return "text/plain" }
func (s *stubSession) Render(context.Context, form.View, render.RenderOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubSession) Run(_ context.Context, controller *form.Controller, options render.RenderOptions) (form.Summary, error) {
	s.gotTheme = options.Theme
	_ = controller.Apply(testsupport.ValidValues())
	summary, _ := controller.Submit()
	return summary, nil
}

func TestRunUsesInteractiveRendererAndTheme(t *testing.T) {
	session := &stubSession{name: "stub"}
	registry := render.NewRegistry()
	registry.MustRegister(session)
	cfg := &theme.RendererConfig{Theme: "acme"}

	gen, err := New(WithRegistry(registry), WithDefaultRenderer("stub"), WithTheme(cfg))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	summary, err := gen.Run(context.Background(), "", RenderOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(Summary{Name: "Ada Lovelace", Email: "ada@example.com"}, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if session.gotTheme != cfg {
		t.Fatalf("expected generator theme to reach the session")
	}
}

func TestRunRejectsNonInteractiveRenderer(t *testing.T) {
	gen, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := gen.Run(context.Background(), "vanilla", RenderOptions{}); err == nil {
		t.Fatalf("expected vanilla to be rejected as a session")
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.ReadFile(AssetsFS(), "regform-live.js"); err != nil {
		t.Fatalf("expected live runtime: %v", err)
	}
}
