// Package cli implements the dfamin command-line interface.
//
// This package provides commands for minimizing deterministic finite
// automata, rendering them with Graphviz, converting between the supported
// file formats and exploring an automaton interactively. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - minimize: Minimize an automaton and write the result
//   - render: Draw an automaton without minimizing it
//   - convert: Rewrite an automaton in another file format
//   - inspect: Show equivalence classes and statistics
//   - accepts: Test words against an automaton
//   - simulate: Step through an automaton in the terminal
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and pipeline stage timings are logged at
// debug level through the observability hooks.
//
// # Configuration
//
// Defaults for output formats, the missing-transition policy and diagram
// options are read from $XDG_CONFIG_HOME/dfamin/config.toml when present.
// Flags given on the command line take precedence.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dfamin/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Wrote 2 files (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline stages and written artifacts at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.ArtifactHooks = logHooks{}
)

func (h logHooks) OnLoadStart(_ context.Context, source, format string) {
	h.logger.Debug("load started", "source", source, "format", format)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, states int, d time.Duration, err error) {
	h.logger.Debug("load finished", "source", source, "states", states, "took", d, "err", err)
}

func (h logHooks) OnMinimizeStart(_ context.Context, states int) {
	h.logger.Debug("minimize started", "states", states)
}

func (h logHooks) OnMinimizeComplete(_ context.Context, classes int, d time.Duration, err error) {
	h.logger.Debug("minimize finished", "classes", classes, "took", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "took", d, "err", err)
}

func (h logHooks) OnArtifactWritten(_ context.Context, format, path string, size int) {
	h.logger.Debug("wrote artifact", "format", format, "path", path, "bytes", size)
}
