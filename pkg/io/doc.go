// Package io reads and writes automata in three interchangeable formats.
//
// # Text Format
//
// The text format is a stream of whitespace-separated tokens. Line breaks
// carry no meaning, but [WriteText] puts every section on its own line:
//
//	2              alphabet size
//	a b            symbols
//	3              state count
//	0 2 1 a 2 b    state 0: terminal flag, edge count, (target symbol) pairs
//	1 2 1 a 1 b    state 1
//	1 2 2 a 2 b    state 2
//	0              start state
//
// A terminal flag is any integer; non-zero means terminal.
//
// # JSON and YAML
//
// The document formats describe the same data with named fields. State i is
// the i-th element of "states":
//
//	{
//	  "alphabet": ["a", "b"],
//	  "states": [
//	    {"edges": [{"symbol": "a", "to": 1}, {"symbol": "b", "to": 2}]},
//	    {"terminal": true, "edges": [{"symbol": "a", "to": 1}, {"symbol": "b", "to": 1}]},
//	    {"terminal": true, "edges": [{"symbol": "a", "to": 2}, {"symbol": "b", "to": 2}]}
//	  ],
//	  "start": 0
//	}
//
// # Validation
//
// Every reader returns a validated [dfa.Automaton]. Symbols are checked with
// [errors.ValidateSymbol]. Unknown symbols, out-of-range targets and
// conflicting transitions are rejected. Failures are *[errors.Error] values;
// syntax problems in the text format carry an *[errors.ParseError] with the
// offending line.
//
// # Files
//
// [Import] and [Export] work on paths and pick the format from the extension
// when none is given (see [DetectFormat]). The path "-" stands for standard
// input or output.
package io
