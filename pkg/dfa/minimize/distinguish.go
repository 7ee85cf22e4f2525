package minimize

import (
	"fmt"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

// MissingPolicy decides how a symbol defined for only one state of a pair
// is treated when building the pair graph.
type MissingPolicy string

const (
	// MissingSkip ignores the symbol for that pair: it neither forces nor
	// prevents distinguishability. On partial automata this can merge states
	// that accept different languages.
	MissingSkip MissingPolicy = "skip"

	// MissingDistinguish treats an undefined transition as a transition into
	// an implicit non-terminal dead state. The result is minimal up to one
	// explicit dead class: reachable states that accept nothing are merged
	// into a single class and kept, along with the edges into it.
	MissingDistinguish MissingPolicy = "distinguish"
)

// DefaultMissingPolicy is used when no policy is given.
const DefaultMissingPolicy = MissingSkip

// ParseMissingPolicy converts a flag or config value to a MissingPolicy.
// The empty string selects [DefaultMissingPolicy].
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(s) {
	case "":
		return DefaultMissingPolicy, nil
	case MissingSkip, MissingDistinguish:
		return MissingPolicy(s), nil
	}
	return "", fmt.Errorf("invalid missing-transition policy: %q (must be 'skip' or 'distinguish')", s)
}

// pairGraph is the reverse graph over state pairs: preds[p] lists every pair
// that moves into p on some symbol.
type pairGraph struct {
	preds [][]Pair
	edges int
}

// table is the transition lookup the engine runs on. With a dead state it
// covers N+1 states; the dead state is index N.
type table struct {
	a    *dfa.Automaton
	dead int // -1 when absent
}

func newTable(a *dfa.Automaton, policy MissingPolicy) table {
	t := table{a: a, dead: -1}
	if policy == MissingDistinguish {
		t.dead = a.NumStates()
	}
	return t
}

func (t table) size() int {
	if t.dead >= 0 {
		return t.a.NumStates() + 1
	}
	return t.a.NumStates()
}

func (t table) terminal(s int) bool {
	if s == t.dead {
		return false
	}
	return t.a.IsTerminal(s)
}

func (t table) next(s int, sym dfa.Symbol) (int, bool) {
	if s == t.dead {
		return t.dead, true
	}
	if to, ok := t.a.Next(s, sym); ok {
		return to, true
	}
	if t.dead >= 0 {
		return t.dead, true
	}
	return 0, false
}

// buildPairGraph adds, for every pair (r,s) and symbol a with both
// transitions defined, an edge from the target pair back to (r,s).
func buildPairGraph(t table) *pairGraph {
	n := t.size()
	g := &pairGraph{preds: make([][]Pair, pairCount(n))}
	alphabet := t.a.Alphabet()

	for r := 0; r < n; r++ {
		for s := r + 1; s < n; s++ {
			src := Pair{I: r, J: s}
			for _, sym := range alphabet {
				tr, okR := t.next(r, sym)
				ts, okS := t.next(s, sym)
				if !okR || !okS {
					continue
				}
				dst := MakePair(tr, ts)
				if dst.IsSelf() {
					continue
				}
				g.preds[dst.index()] = append(g.preds[dst.index()], src)
				g.edges++
			}
		}
	}
	return g
}

// Distinguish computes the distinguishability relation over all states,
// reachable or not. Pairs with different terminal flags seed a traversal of
// the reverse pair graph; every pair reached is distinguishable.
func Distinguish(a *dfa.Automaton, policy MissingPolicy) *Relation {
	rel, _ := distinguish(a, policy)
	return rel
}

func distinguish(a *dfa.Automaton, policy MissingPolicy) (*Relation, int) {
	t := newTable(a, policy)
	g := buildPairGraph(t)
	n := t.size()

	rel := newRelation(n)
	var stack []Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if t.terminal(i) == t.terminal(j) {
				continue
			}
			seed := Pair{I: i, J: j}
			if !rel.mark(seed) {
				continue
			}
			stack = append(stack[:0], seed)
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, q := range g.preds[p.index()] {
					if rel.mark(q) {
						stack = append(stack, q)
					}
				}
			}
		}
	}

	// Drop the dead state from the visible range; its pairs sit past the
	// original lower triangle.
	rel.n = a.NumStates()
	return rel, g.edges
}
