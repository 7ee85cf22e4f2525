package minimize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

var ab = []dfa.Symbol{"a", "b"}

func TestMinimize_MergesEquivalentTerminals(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, true, true},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2},
			{From: 1, Symbol: "a", To: 1}, {From: 1, Symbol: "b", To: 1},
			{From: 2, Symbol: "a", To: 2}, {From: 2, Symbol: "b", To: 2},
		},
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Classes.Count())
	assert.Equal(t, []int{0, 1, 1}, res.Classes.Of)
	assert.Equal(t, [][]int{{0}, {1, 2}}, res.Classes.Members)

	m := res.Automaton
	assert.Equal(t, 2, m.NumStates())
	assert.Equal(t, 0, m.Start())
	assert.False(t, m.IsTerminal(0))
	assert.True(t, m.IsTerminal(1))
	assert.Equal(t, []dfa.Edge{
		{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 1},
		{From: 1, Symbol: "a", To: 1}, {From: 1, Symbol: "b", To: 1},
	}, m.AllEdges())
	assert.Equal(t, 0, res.Stats.Conflicts)
}

func TestMinimize_SingleTerminalSelfLoop(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{true},
		edges:    []dfa.Edge{{From: 0, Symbol: "a", To: 0}, {From: 0, Symbol: "b", To: 0}},
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)

	m := res.Automaton
	assert.Equal(t, 1, m.NumStates())
	assert.True(t, m.IsTerminal(m.Start()))
	assert.Equal(t, []dfa.Edge{{From: 0, Symbol: "a", To: 0}, {From: 0, Symbol: "b", To: 0}}, m.AllEdges())
	assert.Zero(t, res.Stats.DistinguishablePairs)
}

func TestMinimize_UnreachableStateExcluded(t *testing.T) {
	a := build(t, fixture{alphabet: ab, terminal: []bool{false, false}})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Classes.Count())
	assert.Equal(t, []int{0, Unassigned}, res.Classes.Of)
	assert.Equal(t, 1, res.Automaton.NumStates())
	assert.Zero(t, res.Automaton.NumTransitions())
	assert.Equal(t, 1, res.Stats.ReachableStates)
}

func TestMinimize_AlreadyMinimal(t *testing.T) {
	// Words over {a,b} whose length is divisible by 3.
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{true, false, false},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 1},
			{From: 1, Symbol: "a", To: 2}, {From: 1, Symbol: "b", To: 2},
			{From: 2, Symbol: "a", To: 0}, {From: 2, Symbol: "b", To: 0},
		},
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)

	assert.Equal(t, a.NumStates(), res.Automaton.NumStates())
	assert.True(t, isomorphic(a, res.Automaton))
	assert.Equal(t, 3, res.Stats.DistinguishablePairs)
}

func TestMinimize_StartWithoutEdges(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, true},
		edges:    []dfa.Edge{{From: 1, Symbol: "a", To: 0}},
		start:    0,
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Automaton.NumStates())
	assert.False(t, res.Automaton.IsTerminal(0))
}

func TestMinimize_NoTerminals(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, false, false},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 1, Symbol: "b", To: 2}, {From: 2, Symbol: "a", To: 0},
		},
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Automaton.NumStates())
	assert.Equal(t, []dfa.Edge{{From: 0, Symbol: "a", To: 0}, {From: 0, Symbol: "b", To: 0}}, res.Automaton.AllEdges())
}

func TestMinimize_StartNotZero(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{true, false, true},
		edges: []dfa.Edge{
			{From: 1, Symbol: "a", To: 0}, {From: 1, Symbol: "b", To: 2},
			{From: 0, Symbol: "a", To: 0}, {From: 2, Symbol: "a", To: 2},
		},
		start: 1,
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)
	// Class 0 holds states 0 and 2; the start state 1 is class 1.
	assert.Equal(t, []int{0, 1, 0}, res.Classes.Of)
	assert.Equal(t, 1, res.Automaton.Start())
	assert.True(t, res.Automaton.Accepts([]dfa.Symbol{"b", "a"}))
}

func TestMinimize_PartialPolicies(t *testing.T) {
	// 1 and 2 are both terminal, but only 1 continues on "a".
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, true, true, true},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2},
			{From: 1, Symbol: "a", To: 3},
		},
	})

	skip, err := Minimize(a, Options{Missing: MissingSkip})
	require.NoError(t, err)
	assert.Equal(t, 2, skip.Classes.Count(), "skip merges every terminal state")
	assert.True(t, skip.Automaton.Accepts([]dfa.Symbol{"b", "a"}), "merged class over-accepts")

	dist, err := Minimize(a, Options{Missing: MissingDistinguish})
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Classes.Count())
	assert.Equal(t, []int{0, 1, 2, 2}, dist.Classes.Of)
	w, same := sameLanguage(a, dist.Automaton, 4)
	assert.True(t, same, "differs on %v", w)
}

func TestMinimize_DistinguishKeepsDeadClass(t *testing.T) {
	// 1 and 3 accept nothing. They merge into one sink class that stays in
	// the result together with the edges into it.
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, false, true, false},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2},
			{From: 2, Symbol: "a", To: 3},
		},
	})

	res, err := Minimize(a, Options{Missing: MissingDistinguish})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 1}, res.Classes.Of)
	assert.Equal(t, []dfa.Edge{
		{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2},
		{From: 2, Symbol: "a", To: 1},
	}, res.Automaton.AllEdges())
	assert.False(t, res.Automaton.IsTerminal(1))
	assert.Empty(t, res.Automaton.Edges(1))
	assert.Equal(t, bruteForceClasses(a), res.Classes.Count())

	single := build(t, fixture{
		alphabet: []dfa.Symbol{"a"},
		terminal: []bool{false, false},
		edges:    []dfa.Edge{{From: 0, Symbol: "a", To: 1}},
	})
	res, err = Minimize(single, Options{Missing: MissingDistinguish})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Classes.Count())
	assert.Equal(t, []dfa.Edge{{From: 0, Symbol: "a", To: 1}}, res.Automaton.AllEdges())
}

func TestMinimize_SkipConflicts(t *testing.T) {
	// Under skip, 1~2 and 2~3 but 1 and 3 disagree on "a"; the component
	// still merges all three and the quotient overwrites.
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, false, false, false, true, false},
		edges: []dfa.Edge{
			{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2},
			{From: 1, Symbol: "a", To: 4}, {From: 1, Symbol: "b", To: 3},
			{From: 3, Symbol: "a", To: 5},
		},
	})

	res, err := Minimize(a, Options{})
	require.NoError(t, err)
	assert.True(t, res.Relation.Distinguishable(1, 3))
	assert.False(t, res.Relation.Distinguishable(1, 2))
	assert.False(t, res.Relation.Distinguishable(2, 3))
	assert.Equal(t, res.Classes.Class(1), res.Classes.Class(3))
	assert.Greater(t, res.Stats.Conflicts, 0)
}

func TestMinimize_InvalidInput(t *testing.T) {
	a, err := dfa.New(ab)
	require.NoError(t, err)

	_, err = Minimize(a, Options{})
	assert.ErrorIs(t, err, dfa.ErrNoStates)

	a.AddState(true)
	_, err = Minimize(a, Options{Missing: "guess"})
	assert.Error(t, err)
}

func TestMinimize_DoesNotMutateInput(t *testing.T) {
	a := build(t, fixture{
		alphabet: ab,
		terminal: []bool{false, true, true},
		edges:    []dfa.Edge{{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 2}},
	})
	before := a.AllEdges()

	_, err := Minimize(a, Options{Missing: MissingDistinguish})
	require.NoError(t, err)
	assert.Equal(t, before, a.AllEdges())
	assert.Equal(t, 3, a.NumStates())
}

func TestParseMissingPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MissingPolicy
		wantErr bool
	}{
		{"", MissingSkip, false},
		{"skip", MissingSkip, false},
		{"distinguish", MissingDistinguish, false},
		{"Skip", "", true},
		{"dead", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMissingPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMissingPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMissingPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProperties_CompleteAutomata(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 150; i++ {
		a := randomAutomaton(t, rng, 6, 1.0)
		for _, policy := range []MissingPolicy{MissingSkip, MissingDistinguish} {
			res, err := Minimize(a, Options{Missing: policy})
			require.NoError(t, err)
			checkInvariants(t, a, res)

			w, same := sameLanguage(a, res.Automaton, 6)
			require.True(t, same, "case %d/%s: languages differ on %v", i, policy, w)
			require.Equal(t, bruteForceClasses(a), res.Classes.Count(), "case %d/%s", i, policy)
			require.Zero(t, res.Stats.Conflicts)
		}
	}
}

func TestProperties_PartialAutomataDistinguish(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 150; i++ {
		a := randomAutomaton(t, rng, 6, 0.6)
		res, err := Minimize(a, Options{Missing: MissingDistinguish})
		require.NoError(t, err)
		checkInvariants(t, a, res)

		w, same := sameLanguage(a, res.Automaton, 6)
		require.True(t, same, "case %d: languages differ on %v", i, w)
		require.Zero(t, res.Stats.Conflicts)
		require.Equal(t, bruteForceClasses(a), res.Classes.Count(), "case %d: one class per language, dead class included", i)
	}
}

func TestProperties_PartialAutomataSkip(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))
	for i := 0; i < 150; i++ {
		a := randomAutomaton(t, rng, 6, 0.6)
		res, err := Minimize(a, Options{Missing: MissingSkip})
		require.NoError(t, err)
		checkInvariants(t, a, res)
	}
}

func TestProperties_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 42))
	for i := 0; i < 100; i++ {
		a := randomAutomaton(t, rng, 7, 0.8)
		for _, policy := range []MissingPolicy{MissingSkip, MissingDistinguish} {
			first, err := Minimize(a, Options{Missing: policy})
			require.NoError(t, err)
			if policy == MissingSkip && first.Stats.Conflicts > 0 {
				// Overwritten transitions can expose new differences.
				continue
			}
			second, err := Minimize(first.Automaton, Options{Missing: policy})
			require.NoError(t, err)
			require.True(t, isomorphic(first.Automaton, second.Automaton), "case %d/%s", i, policy)
		}
	}
}

func TestProperties_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 1))
	for i := 0; i < 50; i++ {
		a := randomAutomaton(t, rng, 8, 0.7)
		want, err := Minimize(a, Options{})
		require.NoError(t, err)
		for run := 0; run < 3; run++ {
			got, err := Minimize(a.Clone(), Options{})
			require.NoError(t, err)
			require.Equal(t, want.Classes, got.Classes)
			require.Equal(t, want.Automaton.AllEdges(), got.Automaton.AllEdges())
			require.Equal(t, want.Stats, got.Stats)
		}
	}
}

// checkInvariants asserts terminal consistency, reachability exclusion and
// the class numbering contract.
func checkInvariants(t *testing.T, a *dfa.Automaton, res *Result) {
	t.Helper()
	require.Equal(t, res.Classes.Count(), res.Automaton.NumStates())

	next := 0
	for s := 0; s < a.NumStates(); s++ {
		class := res.Classes.Class(s)
		if !res.Reachable.Test(uint(s)) {
			require.Equal(t, Unassigned, class, "unreachable state %d has a class", s)
			continue
		}
		require.NotEqual(t, Unassigned, class)
		require.Equal(t, a.IsTerminal(s), res.Automaton.IsTerminal(class), "terminal flag of state %d", s)
		if class == next {
			require.Equal(t, s, res.Classes.Members[class][0], "class %d not discovered at its lowest member", class)
			next++
		}
		require.Less(t, class, next, "class ids must follow scan order")
	}

	for _, members := range res.Classes.Members {
		for _, m := range members {
			require.True(t, res.Reachable.Test(uint(m)))
		}
	}
	require.Equal(t, res.Classes.Class(a.Start()), res.Automaton.Start())
}
