// Package watcher resets template caches when files under a directory change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-regform/internal/logging"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
)

const defaultDebounce = 100 * time.Millisecond

// Filter reports whether a changed path should trigger a reload.
type Filter func(path string) bool

type Option func(*Watcher)

// WithDebounce groups bursts of events (editors often write twice) into one
// reset.
func WithDebounce(delay time.Duration) Option {
	return func(w *Watcher) {
		if delay > 0 {
			w.debounce = delay
		}
	}
}

func WithLogger(logger *clog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithFilter(filter Filter) Option {
	return func(w *Watcher) {
		if filter != nil {
			w.filter = filter
		}
	}
}

// Watcher calls Reset on its target after files in dir change.
type Watcher struct {
	dir      string
	target   rendertemplate.Reloader
	fs       *fsnotify.Watcher
	debounce time.Duration
	filter   Filter
	logger   *clog.Logger
}

// New watches dir (not recursively) for target.
func New(dir string, target rendertemplate.Reloader, options ...Option) (*Watcher, error) {
	if target == nil {
		return nil, errors.New("watcher: reload target is nil")
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("watcher: directory is required")
	}
	dir = filepath.Clean(strings.TrimSpace(dir))

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watcher: watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		target:   target,
		fs:       fsw,
		debounce: defaultDebounce,
		filter:   templateFile,
		logger:   logging.L,
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Run blocks until ctx is done or the underlying watcher fails. It closes the
// watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending []string
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(event) || !w.filter(event.Name) {
				continue
			}
			pending = append(pending, filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		case <-fire:
			fire = nil
			w.target.Reset()
			w.logger.Info("templates reloaded", "dir", w.dir, "files", strings.Join(dedupe(pending), ","))
			pending = pending[:0]
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// templateFile skips editor swap and hidden files.
func templateFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch filepath.Ext(base) {
	case ".swp", ".swx", ".tmp":
		return false
	}
	return true
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
