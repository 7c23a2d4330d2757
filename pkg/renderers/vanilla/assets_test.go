package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFSIncludesStylesheetAndRuntime(t *testing.T) {
	css, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(css), ".regform-input.error") {
		t.Fatalf("expected stylesheet to style invalid inputs")
	}

	js, err := fs.ReadFile(AssetsFS(), RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected live runtime to be readable: %v", err)
	}
	for _, marker := range []string{`type: "change"`, `type: "toggle"`, `type: "submit"`} {
		if !strings.Contains(string(js), marker) {
			t.Fatalf("live runtime missing %s message", marker)
		}
	}
}

func TestCSSVarsStyleSkipsUnsafeValues(t *testing.T) {
	got := cssVarsStyle(map[string]string{
		"--b":     "2px",
		"--a":     "#fff",
		"color":   "red",
		"--evil":  "red;}</style>",
		"--blank": " ",
	})
	if got != "--a: #fff; --b: 2px;" {
		t.Fatalf("unexpected css vars style %q", got)
	}
}
