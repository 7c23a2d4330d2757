package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("session", 42),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"session":  "42",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "session", Value: "42"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFieldsEmpty(t *testing.T) {
	if got := render.SortedHiddenFields(map[string]string{" ": "x"}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
