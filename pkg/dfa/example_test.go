package dfa_test

import (
	"fmt"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

func ExampleAutomaton_basic() {
	// Words over {a,b} that end in "a".
	a, _ := dfa.New([]dfa.Symbol{"a", "b"})
	s0 := a.AddState(false)
	s1 := a.AddState(true)
	_ = a.AddTransition(s0, "a", s1)
	_ = a.AddTransition(s0, "b", s0)
	_ = a.AddTransition(s1, "a", s1)
	_ = a.AddTransition(s1, "b", s0)
	_ = a.SetStart(s0)

	fmt.Println("States:", a.NumStates())
	fmt.Println("Transitions:", a.NumTransitions())
	fmt.Println("Complete:", a.IsComplete())
	fmt.Println("Accepts bba:", a.Accepts([]dfa.Symbol{"b", "b", "a"}))
	fmt.Println("Accepts ab:", a.Accepts([]dfa.Symbol{"a", "b"}))
	// Output:
	// States: 2
	// Transitions: 4
	// Complete: true
	// Accepts bba: true
	// Accepts ab: false
}

func ExampleAutomaton_Edges() {
	a, _ := dfa.New([]dfa.Symbol{"x", "y", "z"})
	s0 := a.AddState(false)
	s1 := a.AddState(true)
	_ = a.AddTransition(s0, "z", s1)
	_ = a.AddTransition(s0, "x", s0)

	for _, e := range a.Edges(s0) {
		fmt.Printf("%d --%s--> %d\n", e.From, e.Symbol, e.To)
	}
	// Output:
	// 0 --x--> 0
	// 0 --z--> 1
}
