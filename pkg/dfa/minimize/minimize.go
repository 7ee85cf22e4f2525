package minimize

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

// Options configures [Minimize].
type Options struct {
	// Missing selects the missing-transition policy. Empty means
	// [DefaultMissingPolicy].
	Missing MissingPolicy
}

// Stats summarizes a minimization run.
type Stats struct {
	States               int // states in the input
	ReachableStates      int // states reachable from the start
	Classes              int // states in the minimized automaton
	PairEdges            int // edges in the reverse pair graph
	DistinguishablePairs int // pairs {i,j}, i<j, marked distinguishable
	Conflicts            int // disagreeing transitions overwritten by Quotient
}

// Result is the outcome of [Minimize].
type Result struct {
	// Automaton is the minimized automaton; state k is class k.
	Automaton *dfa.Automaton
	// Classes maps input states to classes.
	Classes Classes
	// Reachable is the set of input states reachable from the start.
	Reachable *bitset.BitSet
	// Relation is the distinguishability relation over all input states.
	Relation *Relation
	Stats    Stats
}

// Minimize computes the minimal automaton equivalent to a, restricted to its
// reachable states. The input is not modified.
//
// The stages run once, in order: reachability, distinguishability over state
// pairs, partitioning into classes and construction of the quotient.
func Minimize(a *dfa.Automaton, opts Options) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}
	policy := opts.Missing
	if policy == "" {
		policy = DefaultMissingPolicy
	}
	if _, err := ParseMissingPolicy(string(policy)); err != nil {
		return nil, err
	}

	reachable := Reachable(a)
	rel, pairEdges := distinguish(a, policy)
	classes := Partition(rel, reachable)
	q, conflicts, err := Quotient(a, classes)
	if err != nil {
		return nil, err
	}

	return &Result{
		Automaton: q,
		Classes:   classes,
		Reachable: reachable,
		Relation:  rel,
		Stats: Stats{
			States:               a.NumStates(),
			ReachableStates:      int(reachable.Count()),
			Classes:              classes.Count(),
			PairEdges:            pairEdges,
			DistinguishablePairs: rel.Count(),
			Conflicts:            conflicts,
		},
	}, nil
}
