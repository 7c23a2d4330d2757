package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/goliatone/go-regform/internal/logging"
)

type countingReloader struct {
	resets atomic.Int32
	done   chan struct{}
}

func newCountingReloader() *countingReloader {
	return &countingReloader{done: make(chan struct{}, 8)}
}

func (c *countingReloader) Reset() {
	c.resets.Add(1)
	c.done <- struct{}{}
}

func TestWatcher_ResetsOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := newCountingReloader()

	w, err := New(dir, target,
		WithDebounce(20*time.Millisecond),
		WithLogger(logging.New(io.Discard, clog.ErrorLevel)),
	)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	path := filepath.Join(dir, "form.tmpl")
	if err := os.WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("two"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-target.done:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a reset after writing a template")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
	if got := target.resets.Load(); got < 1 {
		t.Fatalf("expected at least one reset, got %d", got)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
	if _, err := New(filepath.Join(t.TempDir(), "missing"), newCountingReloader()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestTemplateFile(t *testing.T) {
	cases := map[string]bool{
		"form.tmpl":      true,
		"regform.css":    true,
		".form.tmpl.swp": false,
		"form.tmpl~":     false,
		"4913.tmp":       false,
	}
	for path, want := range cases {
		if got := templateFile(path); got != want {
			t.Fatalf("templateFile(%q) = %v, want %v", path, got, want)
		}
	}
}
