// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/retarget/internal/core/ports"
)

// chainLink is implemented by zerr errors: the message of one link without its cause.
type chainLink interface {
	Message() string
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	output   io.Writer
	jsonMode bool
}

// New creates a new Logger writing human-readable output to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, keeping the current mode.
// A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild replaces the slog logger. Callers hold mu, except New.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorChain(collectErrorChain(err)))
}

// collectErrorChain returns one line per link of the chain, outermost first.
// Links without a message of their own (metadata-only wrappers) are folded into
// the next link that has one.
func collectErrorChain(err error) []string {
	var (
		lines []string
		meta  = map[string]any{}
	)

	for current := err; current != nil; current = errors.Unwrap(current) {
		link, ok := current.(chainLink)
		if !ok {
			lines = append(lines, withMetadata(current.Error(), meta))
			break
		}

		maps.Copy(meta, link.Metadata())
		if link.Message() == "" {
			continue
		}
		lines = append(lines, withMetadata(link.Message(), meta))
		meta = map[string]any{}
	}
	return lines
}

func withMetadata(msg string, meta map[string]any) string {
	if len(meta) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return msg + " (" + strings.Join(pairs, ", ") + ")"
}

func formatErrorChain(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	out := []string{"Error: " + lines[0]}
	if len(lines) > 1 {
		out = append(out, "", "  Caused by:")
		for _, cause := range lines[1:] {
			out = append(out, "    → "+cause)
		}
	}
	return strings.Join(out, "\n")
}
