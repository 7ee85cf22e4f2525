// Package minimize computes the minimal deterministic automaton equivalent
// to a [dfa.Automaton].
//
// # Overview
//
// [Minimize] runs four stages, each producing a new value from the previous
// one without mutating its inputs:
//
//  1. [Reachable]: depth-first walk from the start state.
//  2. [Distinguish]: table filling expressed as reachability on a reverse
//     graph over state pairs.
//  3. [Partition]: connected components of the "not distinguishable"
//     relation restricted to reachable states.
//  4. [Quotient]: one state per component.
//
// # Pair Graph
//
// For every pair (r,s) and symbol a where both r and s have an a-transition,
// the pair graph holds an edge from the target pair (δ(r,a), δ(s,a)) back to
// (r,s). Pairs whose terminal flags differ seed a traversal of that graph and
// every pair reached is distinguishable: if the targets can be told apart,
// so can the sources.
//
// Pairs are normalized [Pair] values and the result is a [Relation], a
// symmetric bitset over the lower triangle of the state matrix. All
// traversals use explicit stacks, so large automata do not grow the
// goroutine stack.
//
// # Missing Transitions
//
// When a symbol is defined for only one state of a pair, [MissingSkip] (the
// default) ignores that symbol for the pair. [MissingDistinguish] routes the
// undefined transition into an implicit non-terminal dead state instead.
// States that accept nothing then form one class, which stays in the result
// as an explicit sink, so the output is minimal up to that one dead class:
//
//	res, err := minimize.Minimize(a, minimize.Options{Missing: minimize.MissingDistinguish})
//
// For complete automata both policies give the same result.
//
// # Classes
//
// Class ids run from 0 to K-1 in the order components are discovered by a
// scan of state indices 0..N-1, so the lowest-index member represents its
// class. Unreachable states are [Unassigned]. State k of the minimized
// automaton is class k.
package minimize
