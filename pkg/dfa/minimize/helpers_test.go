package minimize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

type fixture struct {
	alphabet []dfa.Symbol
	terminal []bool
	edges    []dfa.Edge
	start    int
}

func build(t *testing.T, s fixture) *dfa.Automaton {
	t.Helper()
	a, err := dfa.New(s.alphabet)
	require.NoError(t, err)
	for _, term := range s.terminal {
		a.AddState(term)
	}
	for _, e := range s.edges {
		require.NoError(t, a.AddTransition(e.From, e.Symbol, e.To))
	}
	require.NoError(t, a.SetStart(s.start))
	return a
}

// randomAutomaton builds a seeded automaton with up to maxStates states.
// density is the probability that a (state, symbol) transition exists.
func randomAutomaton(t *testing.T, rng *rand.Rand, maxStates int, density float64) *dfa.Automaton {
	t.Helper()
	a, err := dfa.New([]dfa.Symbol{"a", "b", "c"})
	require.NoError(t, err)
	n := 1 + rng.IntN(maxStates)
	for i := 0; i < n; i++ {
		a.AddState(rng.Float64() < 0.4)
	}
	for s := 0; s < n; s++ {
		for _, sym := range a.Alphabet() {
			if rng.Float64() < density {
				require.NoError(t, a.AddTransition(s, sym, rng.IntN(n)))
			}
		}
	}
	require.NoError(t, a.SetStart(rng.IntN(n)))
	return a
}

// words returns every word over alphabet up to maxLen symbols.
func words(alphabet []dfa.Symbol, maxLen int) [][]dfa.Symbol {
	out := [][]dfa.Symbol{nil}
	frontier := [][]dfa.Symbol{nil}
	for l := 0; l < maxLen; l++ {
		var next [][]dfa.Symbol
		for _, w := range frontier {
			for _, sym := range alphabet {
				nw := append(append([]dfa.Symbol(nil), w...), sym)
				next = append(next, nw)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// sameLanguage compares acceptance on every word up to maxLen symbols.
func sameLanguage(a, b *dfa.Automaton, maxLen int) ([]dfa.Symbol, bool) {
	for _, w := range words(a.Alphabet(), maxLen) {
		if a.Accepts(w) != b.Accepts(w) {
			return w, false
		}
	}
	return nil, true
}

// isomorphic walks both automata from their start states in lockstep and
// checks that the induced state mapping is a bijection preserving edges and
// terminal flags.
func isomorphic(a, b *dfa.Automaton) bool {
	if a.NumStates() != b.NumStates() || a.NumTransitions() != b.NumTransitions() {
		return false
	}
	fwd := map[int]int{a.Start(): b.Start()}
	bwd := map[int]int{b.Start(): a.Start()}
	stack := []int{a.Start()}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t := fwd[s]
		if a.IsTerminal(s) != b.IsTerminal(t) {
			return false
		}
		for _, sym := range a.Alphabet() {
			sa, okA := a.Next(s, sym)
			sb, okB := b.Next(t, sym)
			if okA != okB {
				return false
			}
			if !okA {
				continue
			}
			if m, seen := fwd[sa]; seen {
				if m != sb {
					return false
				}
				continue
			}
			if _, taken := bwd[sb]; taken {
				return false
			}
			fwd[sa] = sb
			bwd[sb] = sa
			stack = append(stack, sa)
		}
	}
	return len(fwd) == a.NumStates()
}

// bruteForceClasses counts the distinct languages of the reachable states.
// Two states of an N-state DFA accept the same language iff they agree on
// every word shorter than N; the extra length covers the implicit dead state
// of a partial automaton.
func bruteForceClasses(a *dfa.Automaton) int {
	reach := Reachable(a)
	ws := words(a.Alphabet(), a.NumStates())
	seen := make(map[string]bool)
	for s := 0; s < a.NumStates(); s++ {
		if !reach.Test(uint(s)) {
			continue
		}
		sig := make([]byte, len(ws))
		for i, w := range ws {
			sig[i] = '0'
			if acceptsFrom(a, s, w) {
				sig[i] = '1'
			}
		}
		seen[string(sig)] = true
	}
	return len(seen)
}

func acceptsFrom(a *dfa.Automaton, state int, w []dfa.Symbol) bool {
	for _, sym := range w {
		next, ok := a.Next(state, sym)
		if !ok {
			return false
		}
		state = next
	}
	return a.IsTerminal(state)
}
