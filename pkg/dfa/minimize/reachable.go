package minimize

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

// Reachable returns the states reachable from the start state by following
// zero or more transitions. The walk is depth-first with an explicit stack.
func Reachable(a *dfa.Automaton) *bitset.BitSet {
	seen := bitset.New(uint(a.NumStates()))
	if a.NumStates() == 0 {
		return seen
	}

	stack := []int{a.Start()}
	seen.Set(uint(a.Start()))
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range a.Edges(state) {
			if !seen.Test(uint(e.To)) {
				seen.Set(uint(e.To))
				stack = append(stack, e.To)
			}
		}
	}
	return seen
}
