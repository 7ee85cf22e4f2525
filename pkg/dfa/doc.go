// Package dfa provides the deterministic finite automaton model used by
// dfamin.
//
// # Overview
//
// An [Automaton] is a set of dense state indices 0..N-1, a declared alphabet
// of opaque [Symbol] tokens, a partial transition function and a start state.
// Each state carries a terminal (accepting) flag. The alphabet is fixed when
// the automaton is created with [New]; transitions on symbols outside of it
// are rejected instead of silently extending the alphabet.
//
// # Basic Usage
//
//	a, _ := dfa.New([]dfa.Symbol{"a", "b"})
//	s0 := a.AddState(false)
//	s1 := a.AddState(true)
//	_ = a.AddTransition(s0, "a", s1)
//	_ = a.SetStart(s0)
//
//	a.Accepts([]dfa.Symbol{"a"}) // true
//
// # Determinism
//
// Only deterministic automata are supported. [Automaton.AddTransition]
// returns [ErrNondeterministic] when a state already maps the same symbol to
// a different target. Missing transitions are allowed (partial automata):
// [Automaton.Accepts] rejects a word as soon as it hits one.
//
// # Iteration Order
//
// Every ordered view ([Automaton.Edges], [Automaton.AllEdges]) walks states in
// index order and symbols in alphabet declaration order, so rendering and
// serialization are deterministic.
//
// # Concurrency
//
// Automaton instances are not safe for concurrent mutation. A fully built
// automaton can be read from multiple goroutines.
//
// # Related Packages
//
// The [minimize] subpackage computes the minimal equivalent automaton.
//
// [minimize]: github.com/matzehuels/dfamin/pkg/dfa/minimize
package dfa
