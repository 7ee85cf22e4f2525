// Package pipeline runs the load → minimize → render pipeline for dfamin.
//
// This package wires the library packages together so that every CLI
// command shares one implementation of defaults, validation, logging and
// observability hooks.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read an automaton from a file or standard input ([io.Import])
//  2. Minimize: Compute the minimal equivalent automaton ([minimize.Minimize])
//  3. Render: Generate outputs in the requested formats (DOT, SVG, PNG,
//     PDF, or one of the automaton file formats)
//
// Each stage can be run on its own through the [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "ab.txt",
//	    Formats: []string{"dot", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dot := result.Artifacts["dot"]
//
// [io.Import]: github.com/matzehuels/dfamin/pkg/io.Import
// [minimize.Minimize]: github.com/matzehuels/dfamin/pkg/dfa/minimize.Minimize
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
	"github.com/matzehuels/dfamin/pkg/errors"
	dfaio "github.com/matzehuels/dfamin/pkg/io"
	"github.com/matzehuels/dfamin/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for every command
// =============================================================================

const (
	// DefaultRankDir lays diagrams out left to right.
	DefaultRankDir = "LR"

	// DefaultPNGScale renders PNGs at 2x for high-DPI displays.
	DefaultPNGScale = 2.0

	// DefaultMissing is the missing-transition policy.
	DefaultMissing = string(minimize.DefaultMissingPolicy)
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatText = string(dfaio.FormatText)
	FormatJSON = string(dfaio.FormatJSON)
	FormatYAML = string(dfaio.FormatYAML)
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatDOT}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
}

// FormatNames returns the supported output formats in a stable order.
func FormatNames() []string {
	return []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatText, FormatJSON, FormatYAML}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Input       string         `json:"input"`                  // path or "-" for stdin
	InputFormat string         `json:"input_format,omitempty"` // txt, json, yaml; detected when empty
	Automaton   *dfa.Automaton `json:"-"`                      // preloaded input; skips the load stage
	Stdin       io.Reader      `json:"-"`                      // read for Input "-"; os.Stdin when nil

	// Minimize options
	Missing string `json:"missing,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	RankDir  string   `json:"rankdir,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string

	// Source is the automaton as loaded.
	Source *dfa.Automaton

	// Minimized is the minimal automaton; state k is class k.
	Minimized *dfa.Automaton

	// Classes maps source states to states of Minimized.
	Classes minimize.Classes

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	minimize.Stats
	LoadTime     time.Duration
	MinimizeTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks a Graphviz rankdir value.
func ValidateRankDir(dir string) error {
	if !nodelink.ValidRankDir(dir) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid rankdir: %q (must be one of: %s)",
			dir, strings.Join(nodelink.RankDirs, ", "))
	}
	return nil
}

// ValidateMissing checks a missing-transition policy.
func ValidateMissing(policy string) error {
	if _, err := minimize.ParseMissingPolicy(policy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "missing")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForMinimize(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input fields.
func (o *Options) ValidateForLoad() error {
	o.setLogger()
	if o.Automaton != nil {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if o.InputFormat != "" {
		f, err := dfaio.ParseFormat(o.InputFormat)
		if err != nil {
			return err
		}
		o.InputFormat = string(f)
	}
	return nil
}

// ValidateForMinimize validates and sets defaults for minimization.
func (o *Options) ValidateForMinimize() error {
	o.setLogger()
	if o.Missing == "" {
		o.Missing = DefaultMissing
	}
	return ValidateMissing(o.Missing)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", o.PNGScale)
	}
	return ValidateRankDir(o.RankDir)
}

// MissingPolicy returns the configured policy. Call after validation.
func (o *Options) MissingPolicy() minimize.MissingPolicy {
	return minimize.MissingPolicy(o.Missing)
}

// NeedsGraphviz reports whether any requested format is rendered through
// Graphviz.
func (o *Options) NeedsGraphviz() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool {
		return f == FormatSVG || f == FormatPNG || f == FormatPDF
	})
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// String summarizes the options for log output.
func (o Options) String() string {
	return fmt.Sprintf("input=%s formats=%v missing=%s rankdir=%s detailed=%t",
		o.Input, o.Formats, o.Missing, o.RankDir, o.Detailed)
}
