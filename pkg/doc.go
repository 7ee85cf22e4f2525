// Package pkg provides the core libraries for dfamin.
//
// # Overview
//
// dfamin turns a deterministic finite automaton into the smallest automaton
// that accepts the same words. The pkg directory is organized into three
// main areas:
//
//  1. [dfa] and [dfa/minimize] - The automaton model and the minimization stages
//  2. [io] and [render] - Reading and writing automata, Graphviz output
//  3. [pipeline] - Orchestration (load → minimize → render)
//
// # Architecture
//
// The typical data flow through dfamin:
//
//	automaton file (txt, json, yaml)
//	         ↓
//	    [io] package (parse and validate)
//	         ↓
//	    [dfa/minimize] package (reachability → distinguishability → partition → quotient)
//	         ↓
//	    [render/nodelink] package (DOT, then SVG/PNG/PDF through Graphviz)
//
// # Quick Start
//
// Minimize an automaton and print its DOT graph:
//
//	import (
//	    "fmt"
//	    "github.com/matzehuels/dfamin/pkg/dfa/minimize"
//	    dfaio "github.com/matzehuels/dfamin/pkg/io"
//	    "github.com/matzehuels/dfamin/pkg/render/nodelink"
//	)
//
//	a, _ := dfaio.Import("ab.txt", "")
//	res, _ := minimize.Minimize(a, minimize.Options{})
//	fmt.Print(nodelink.ToDOT(res.Automaton, nodelink.Options{}))
//
// # Main Packages
//
// ## Automata
//
//   - [dfa]: Automaton model with a fixed alphabet and partial transitions
//   - [dfa/minimize]: Reachability, pair-graph distinguishability, partition and quotient
//
// ## Input and Output
//
//   - [io]: Text, JSON and YAML automaton formats
//   - [render/nodelink]: DOT generation and Graphviz rendering
//   - [render]: SVG to PNG and PDF conversion
//
// ## Infrastructure
//
//   - [pipeline]: Shared defaults, validation and the stage runner
//   - [errors]: Coded errors and input validation
//   - [observability]: Hooks for stage timings and written artifacts
//   - [buildinfo]: Version information set at build time
//
// [dfa]: github.com/matzehuels/dfamin/pkg/dfa
// [dfa/minimize]: github.com/matzehuels/dfamin/pkg/dfa/minimize
// [io]: github.com/matzehuels/dfamin/pkg/io
// [render]: github.com/matzehuels/dfamin/pkg/render
// [render/nodelink]: github.com/matzehuels/dfamin/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/dfamin/pkg/pipeline
// [errors]: github.com/matzehuels/dfamin/pkg/errors
// [observability]: github.com/matzehuels/dfamin/pkg/observability
// [buildinfo]: github.com/matzehuels/dfamin/pkg/buildinfo
package pkg
