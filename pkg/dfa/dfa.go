package dfa

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrNoSymbols is returned by [New] when the alphabet is empty.
	ErrNoSymbols = errors.New("alphabet must not be empty")

	// ErrEmptySymbol is returned by [New] when a symbol is the empty string.
	ErrEmptySymbol = errors.New("symbol must not be empty")

	// ErrDuplicateSymbol is returned by [New] when the alphabet declares
	// the same symbol twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")

	// ErrUnknownSymbol is returned by [Automaton.AddTransition] when the
	// symbol was not declared in the alphabet. The alphabet is never inferred.
	ErrUnknownSymbol = errors.New("symbol not in alphabet")

	// ErrStateOutOfRange is returned when a state index is outside 0..N-1.
	ErrStateOutOfRange = errors.New("state index out of range")

	// ErrNondeterministic is returned by [Automaton.AddTransition] when a
	// state already has a different target for the same symbol.
	ErrNondeterministic = errors.New("conflicting transition for symbol")

	// ErrNoStates is returned by [Automaton.Validate] for an automaton
	// without any state; such an automaton has no valid start.
	ErrNoStates = errors.New("automaton has no states")
)

// Symbol is an opaque alphabet token compared by exact equality.
type Symbol string

// Edge is a single transition From --Symbol--> To.
type Edge struct {
	From   int
	Symbol Symbol
	To     int
}

// Automaton is a deterministic, possibly partial, finite automaton over a
// declared alphabet. States are dense indices 0..N-1.
//
// The zero value is not usable - use [New]. An Automaton is not safe for
// concurrent mutation; once built it may be read from several goroutines.
type Automaton struct {
	alphabet []Symbol
	symbols  map[Symbol]int // symbol -> position in alphabet

	terminal *bitset.BitSet
	delta    []map[Symbol]int
	start    int
}

// New creates an automaton with the given alphabet and no states.
// The alphabet order is kept and drives every ordered iteration
// ([Automaton.Edges], rendering, serialization).
func New(alphabet []Symbol) (*Automaton, error) {
	if len(alphabet) == 0 {
		return nil, ErrNoSymbols
	}
	symbols := make(map[Symbol]int, len(alphabet))
	for i, s := range alphabet {
		if s == "" {
			return nil, ErrEmptySymbol
		}
		if _, dup := symbols[s]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
		}
		symbols[s] = i
	}
	return &Automaton{
		alphabet: slices.Clone(alphabet),
		symbols:  symbols,
		terminal: bitset.New(0),
	}, nil
}

// AddState appends a state and returns its index.
func (a *Automaton) AddState(terminal bool) int {
	id := len(a.delta)
	a.delta = append(a.delta, make(map[Symbol]int))
	a.terminal.SetTo(uint(id), terminal)
	return id
}

// SetTerminal sets or clears the terminal flag of a state.
func (a *Automaton) SetTerminal(state int, terminal bool) error {
	if !a.valid(state) {
		return fmt.Errorf("%w: %d", ErrStateOutOfRange, state)
	}
	a.terminal.SetTo(uint(state), terminal)
	return nil
}

// SetStart marks the start state.
func (a *Automaton) SetStart(state int) error {
	if !a.valid(state) {
		return fmt.Errorf("%w: start %d", ErrStateOutOfRange, state)
	}
	a.start = state
	return nil
}

// AddTransition adds from --sym--> to. Adding the same transition twice is
// allowed; a second, different target for the same symbol is not.
func (a *Automaton) AddTransition(from int, sym Symbol, to int) error {
	if !a.valid(from) {
		return fmt.Errorf("%w: source %d", ErrStateOutOfRange, from)
	}
	if !a.valid(to) {
		return fmt.Errorf("%w: target %d", ErrStateOutOfRange, to)
	}
	if _, ok := a.symbols[sym]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	if prev, ok := a.delta[from][sym]; ok && prev != to {
		return fmt.Errorf("%w: state %d on %q goes to %d and %d", ErrNondeterministic, from, sym, prev, to)
	}
	a.delta[from][sym] = to
	return nil
}

func (a *Automaton) valid(state int) bool {
	return state >= 0 && state < len(a.delta)
}

// Alphabet returns a copy of the declared alphabet in declaration order.
func (a *Automaton) Alphabet() []Symbol { return slices.Clone(a.alphabet) }

// HasSymbol reports whether sym is part of the alphabet.
func (a *Automaton) HasSymbol(sym Symbol) bool {
	_, ok := a.symbols[sym]
	return ok
}

// NumStates returns N, the number of states.
func (a *Automaton) NumStates() int { return len(a.delta) }

// Start returns the start state index.
func (a *Automaton) Start() int { return a.start }

// IsTerminal reports whether the state is accepting.
func (a *Automaton) IsTerminal(state int) bool { return a.terminal.Test(uint(state)) }

// Terminals returns a copy of the terminal flags as a bitset.
func (a *Automaton) Terminals() *bitset.BitSet { return a.terminal.Clone() }

// Next returns the target of state on sym, if that transition is defined.
func (a *Automaton) Next(state int, sym Symbol) (int, bool) {
	if !a.valid(state) {
		return 0, false
	}
	to, ok := a.delta[state][sym]
	return to, ok
}

// Edges returns the transitions leaving state in alphabet order.
func (a *Automaton) Edges(state int) []Edge {
	if !a.valid(state) {
		return nil
	}
	edges := make([]Edge, 0, len(a.delta[state]))
	for _, sym := range a.alphabet {
		if to, ok := a.delta[state][sym]; ok {
			edges = append(edges, Edge{From: state, Symbol: sym, To: to})
		}
	}
	return edges
}

// AllEdges returns every transition ordered by source state, then alphabet.
func (a *Automaton) AllEdges() []Edge {
	var edges []Edge
	for s := range a.delta {
		edges = append(edges, a.Edges(s)...)
	}
	return edges
}

// NumTransitions returns the number of defined transitions.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, m := range a.delta {
		n += len(m)
	}
	return n
}

// IsComplete reports whether every state defines every symbol.
func (a *Automaton) IsComplete() bool {
	for _, m := range a.delta {
		if len(m) != len(a.alphabet) {
			return false
		}
	}
	return true
}

// Accepts runs input from the start state. An undefined transition rejects.
func (a *Automaton) Accepts(input []Symbol) bool {
	if len(a.delta) == 0 {
		return false
	}
	state := a.start
	for _, sym := range input {
		next, ok := a.delta[state][sym]
		if !ok {
			return false
		}
		state = next
	}
	return a.IsTerminal(state)
}

// Clone returns a deep copy.
func (a *Automaton) Clone() *Automaton {
	c := &Automaton{
		alphabet: slices.Clone(a.alphabet),
		symbols:  make(map[Symbol]int, len(a.symbols)),
		terminal: a.terminal.Clone(),
		delta:    make([]map[Symbol]int, len(a.delta)),
		start:    a.start,
	}
	for s, i := range a.symbols {
		c.symbols[s] = i
	}
	for i, m := range a.delta {
		c.delta[i] = make(map[Symbol]int, len(m))
		for s, to := range m {
			c.delta[i][s] = to
		}
	}
	return c
}

// Validate checks the structural invariant: at least one state, a valid
// start index and valid targets for every transition.
func (a *Automaton) Validate() error {
	if len(a.delta) == 0 {
		return ErrNoStates
	}
	if !a.valid(a.start) {
		return fmt.Errorf("%w: start %d", ErrStateOutOfRange, a.start)
	}
	for from, m := range a.delta {
		for sym, to := range m {
			if !a.valid(to) {
				return fmt.Errorf("%w: %d --%s--> %d", ErrStateOutOfRange, from, sym, to)
			}
			if _, ok := a.symbols[sym]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
			}
		}
	}
	return nil
}
