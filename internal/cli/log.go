// Package cli implements the nativedeps command-line interface.
//
// The CLI loads a nativedeps.toml manifest, builds the declaration registry
// and resolves every binary target with the resolution engine. It is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - resolve: Print what each binary needs (table or JSON)
//   - validate: Check declarations and binaries without printing results
//   - graph: Export the binary/library graph as DOT or SVG
//   - browse: Explore resolutions interactively
//   - serve: Expose resolutions over a read-only HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes every coordinate handed to the host resolver.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Resolved 3 binaries (2ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
