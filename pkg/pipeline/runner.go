package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
	"github.com/matzehuels/dfamin/pkg/errors"
	"github.com/matzehuels/dfamin/pkg/observability"
)

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner is stateless except for the logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → minimize → render pipeline.
// Cancellation is checked between stages; a stage that has started runs
// to completion.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])
	opts.Logger = logger
	logger.Debug("starting pipeline", "options", opts.String())

	// Stage 1: Load
	loadStart := time.Now()
	a, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Source = a
	result.Stats.LoadTime = time.Since(loadStart)

	if err := checkCanceled(ctx, "minimize"); err != nil {
		return nil, err
	}

	// Stage 2: Minimize
	minStart := time.Now()
	res, err := r.Minimize(ctx, a, opts)
	if err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}
	result.Minimized = res.Automaton
	result.Classes = res.Classes
	result.Stats.Stats = res.Stats
	result.Stats.MinimizeTime = time.Since(minStart)

	if err := checkCanceled(ctx, "render"); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, res.Automaton, &res.Classes, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Load runs the load stage.
func (r *Runner) Load(ctx context.Context, opts Options) (*dfa.Automaton, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	source, format := opts.Input, opts.InputFormat
	if opts.Automaton != nil {
		source, format = "<memory>", ""
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source, format)

	start := time.Now()
	a, err := Load(opts)
	states := 0
	if a != nil {
		states = a.NumStates()
	}
	hooks.OnLoadComplete(ctx, source, states, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("loaded automaton",
		"source", source,
		"states", a.NumStates(),
		"transitions", a.NumTransitions(),
		"symbols", len(a.Alphabet()),
		"complete", a.IsComplete(),
		"duration", time.Since(start))
	return a, nil
}

// Minimize runs the minimize stage.
func (r *Runner) Minimize(ctx context.Context, a *dfa.Automaton, opts Options) (*minimize.Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForMinimize(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnMinimizeStart(ctx, a.NumStates())

	start := time.Now()
	res, err := Minimize(a, opts)
	classes := 0
	if res != nil {
		classes = res.Classes.Count()
	}
	hooks.OnMinimizeComplete(ctx, classes, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAutomaton, err, "minimize")
	}

	s := res.Stats
	opts.Logger.Info("minimized automaton",
		"states", s.States,
		"reachable", s.ReachableStates,
		"classes", s.Classes,
		"missing", opts.Missing,
		"duration", time.Since(start))
	opts.Logger.Debug("distinguishability",
		"pair_edges", s.PairEdges,
		"distinguishable_pairs", s.DistinguishablePairs)
	if s.Conflicts > 0 {
		opts.Logger.Warn("classes disagree on transitions; later states won",
			"conflicts", s.Conflicts,
			"hint", "use --missing=distinguish for partial automata")
	}
	return res, nil
}

// Render runs the render stage. classes may be nil when a is not the result
// of a minimization.
func (r *Runner) Render(ctx context.Context, a *dfa.Automaton, classes *minimize.Classes, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	artifacts, err := Render(ctx, a, classes, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func checkCanceled(ctx context.Context, next string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "before %s", next)
	}
	return nil
}
