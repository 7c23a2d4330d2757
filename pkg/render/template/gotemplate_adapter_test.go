package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_ErrorClassFilter(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name   string
		errors map[string]any
		want   string
	}{
		{name: "valid", errors: map[string]any{}, want: "<input class=\"field\">\n"},
		{name: "invalid", errors: map[string]any{"email": []string{"Invalid email format"}}, want: "<input class=\"field error\">\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.RenderTemplate("use-error-class", map[string]any{"errors": tc.errors})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("error_class mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ greeting|trim }}, {{ name }}", map[string]any{"greeting": "  Hi ", "name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hi, Ada" {
		t.Fatalf("unexpected output %q", got)
	}
	if engine.Cached() != 0 {
		t.Fatalf("inline templates must not be cached, got %d", engine.Cached())
	}
}

func TestGoTemplateEngine_ResetReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.tpl")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	first, err := engine.RenderTemplate("page", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != "v1" {
		t.Fatalf("unexpected first render %q", first)
	}
	if engine.Cached() != 1 {
		t.Fatalf("expected one cached template, got %d", engine.Cached())
	}

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	engine.Reset()
	if engine.Cached() != 0 {
		t.Fatalf("reset should clear the cache, got %d", engine.Cached())
	}

	second, err := engine.RenderTemplate("page", nil)
	if err != nil {
		t.Fatalf("render after reset: %v", err)
	}
	if second != "v2" {
		t.Fatalf("expected reloaded template, got %q", second)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
