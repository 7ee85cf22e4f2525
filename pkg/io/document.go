package io

import (
	stderrors "errors"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
)

// document is the decoded form shared by every format. State i of the
// automaton is States[i].
type document struct {
	Alphabet []string `json:"alphabet" yaml:"alphabet"`
	States   []state  `json:"states" yaml:"states"`
	Start    int      `json:"start" yaml:"start"`
}

type state struct {
	Terminal bool   `json:"terminal,omitempty" yaml:"terminal,omitempty"`
	Edges    []edge `json:"edges,omitempty" yaml:"edges,omitempty,flow"`
}

type edge struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	To     int    `json:"to" yaml:"to"`
}

func toDocument(a *dfa.Automaton) document {
	alphabet := a.Alphabet()
	doc := document{
		Alphabet: make([]string, len(alphabet)),
		States:   make([]state, a.NumStates()),
		Start:    a.Start(),
	}
	for i, sym := range alphabet {
		doc.Alphabet[i] = string(sym)
	}
	for s := range doc.States {
		st := state{Terminal: a.IsTerminal(s)}
		for _, e := range a.Edges(s) {
			st.Edges = append(st.Edges, edge{Symbol: string(e.Symbol), To: e.To})
		}
		doc.States[s] = st
	}
	return doc
}

// automaton builds and validates the automaton described by doc.
func (doc document) automaton() (*dfa.Automaton, error) {
	if err := errors.ValidateAlphabet(doc.Alphabet); err != nil {
		return nil, err
	}
	symbols := make([]dfa.Symbol, len(doc.Alphabet))
	for i, s := range doc.Alphabet {
		symbols[i] = dfa.Symbol(s)
	}
	a, err := dfa.New(symbols)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSymbol, err, "alphabet")
	}
	if len(doc.States) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidAutomaton, dfa.ErrNoStates, "automaton")
	}

	for _, st := range doc.States {
		a.AddState(st.Terminal)
	}
	for from, st := range doc.States {
		for _, e := range st.Edges {
			if err := a.AddTransition(from, dfa.Symbol(e.Symbol), e.To); err != nil {
				return nil, errors.Wrap(automatonCode(err), err, "state %d: edge %q -> %d", from, e.Symbol, e.To)
			}
		}
	}
	if err := a.SetStart(doc.Start); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAutomaton, err, "start state %d", doc.Start)
	}
	return a, nil
}

func automatonCode(err error) errors.Code {
	if stderrors.Is(err, dfa.ErrUnknownSymbol) {
		return errors.ErrCodeInvalidSymbol
	}
	return errors.ErrCodeInvalidAutomaton
}
