package minimize

import (
	"fmt"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

// Quotient collapses every class into a single state. State k of the result
// is class k. Transitions are copied from reachable states in ascending
// index order; when two members of a class disagree on a symbol the later
// one wins and the disagreement is counted in the returned conflicts.
func Quotient(a *dfa.Automaton, classes Classes) (q *dfa.Automaton, conflicts int, err error) {
	q, err = dfa.New(a.Alphabet())
	if err != nil {
		return nil, 0, err
	}
	for _, members := range classes.Members {
		q.AddState(a.IsTerminal(members[0]))
	}

	targets := make([]map[dfa.Symbol]int, classes.Count())
	for i := range targets {
		targets[i] = make(map[dfa.Symbol]int)
	}
	for state := 0; state < a.NumStates(); state++ {
		from := classes.Class(state)
		if from == Unassigned {
			continue
		}
		for _, e := range a.Edges(state) {
			to := classes.Class(e.To)
			if prev, ok := targets[from][e.Symbol]; ok && prev != to {
				conflicts++
			}
			targets[from][e.Symbol] = to
		}
	}

	alphabet := a.Alphabet()
	for from, m := range targets {
		for _, sym := range alphabet {
			to, ok := m[sym]
			if !ok {
				continue
			}
			if err := q.AddTransition(from, sym, to); err != nil {
				return nil, conflicts, fmt.Errorf("class %d: %w", from, err)
			}
		}
	}

	start := classes.Class(a.Start())
	if err := q.SetStart(start); err != nil {
		return nil, conflicts, fmt.Errorf("start class: %w", err)
	}
	return q, conflicts, nil
}
