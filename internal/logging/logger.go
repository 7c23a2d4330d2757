package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger used by the binaries. Libraries accept a
// *clog.Logger instead of reaching for L.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "regform",
})

// New returns a logger writing to w at level.
func New(w io.Writer, level clog.Level) *clog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Prefix:          "regform",
		Level:           level,
	})
}

// ParseLevel accepts debug, info, warn and error (case-insensitive). An empty
// string is info.
func ParseLevel(raw string) (clog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return clog.InfoLevel, nil
	}
	level, err := clog.ParseLevel(trimmed)
	if err != nil {
		return clog.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// SetLevel parses raw and applies it to L.
func SetLevel(raw string) error {
	level, err := ParseLevel(raw)
	if err != nil {
		return err
	}
	L.SetLevel(level)
	return nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
