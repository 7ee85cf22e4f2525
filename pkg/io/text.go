package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
)

// tokenizer yields whitespace-separated tokens and remembers the line each
// one came from.
type tokenizer struct {
	sc     *bufio.Scanner
	line   int
	fields []string
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	for len(t.fields) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return "", err
			}
			return "", &errors.ParseError{Line: t.line, Msg: "unexpected end of input"}
		}
		t.line++
		t.fields = strings.Fields(t.sc.Text())
	}
	tok := t.fields[0]
	t.fields = t.fields[1:]
	return tok, nil
}

func (t *tokenizer) int(what string, lo int) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &errors.ParseError{Line: t.line, Token: tok, Msg: "expected " + what}
	}
	if v < lo {
		return 0, &errors.ParseError{Line: t.line, Token: tok, Msg: fmt.Sprintf("%s must be at least %d", what, lo)}
	}
	return v, nil
}

// ReadText decodes the whitespace-separated text format:
//
//	<alphabet size>
//	<symbol> ...
//	<state count>
//	<terminal> <edge count> (<target> <symbol>)*   one group per state
//	<start>
//
// Any non-zero terminal flag marks the state terminal. Line breaks are not
// significant, but tokens after the start state are rejected.
func ReadText(r io.Reader) (*dfa.Automaton, error) {
	doc, err := parseText(newTokenizer(r))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read text automaton")
	}
	return doc.automaton()
}

func parseText(t *tokenizer) (document, error) {
	var doc document

	k, err := t.int("alphabet size", 1)
	if err != nil {
		return doc, err
	}
	for range k {
		sym, err := t.next()
		if err != nil {
			return doc, err
		}
		doc.Alphabet = append(doc.Alphabet, sym)
	}

	n, err := t.int("state count", 1)
	if err != nil {
		return doc, err
	}
	for range n {
		term, err := t.int("terminal flag", math.MinInt)
		if err != nil {
			return doc, err
		}
		st := state{Terminal: term != 0}

		m, err := t.int("edge count", 0)
		if err != nil {
			return doc, err
		}
		for range m {
			var e edge
			if e.To, err = t.int("edge target", 0); err != nil {
				return doc, err
			}
			if e.Symbol, err = t.next(); err != nil {
				return doc, err
			}
			st.Edges = append(st.Edges, e)
		}
		doc.States = append(doc.States, st)
	}

	if doc.Start, err = t.int("start state", 0); err != nil {
		return doc, err
	}
	if tok, err := t.next(); err == nil {
		return doc, &errors.ParseError{Line: t.line, Token: tok, Msg: "unexpected token after start state"}
	}
	return doc, nil
}

// WriteText encodes a in the text format read by [ReadText]. Each state's
// group is written on its own line with edges in alphabet order.
func WriteText(a *dfa.Automaton, w io.Writer) error {
	bw := bufio.NewWriter(w)
	alphabet := a.Alphabet()

	fmt.Fprintln(bw, len(alphabet))
	syms := make([]string, len(alphabet))
	for i, s := range alphabet {
		syms[i] = string(s)
	}
	fmt.Fprintln(bw, strings.Join(syms, " "))
	fmt.Fprintln(bw, a.NumStates())
	for s := 0; s < a.NumStates(); s++ {
		term := 0
		if a.IsTerminal(s) {
			term = 1
		}
		edges := a.Edges(s)
		fmt.Fprintf(bw, "%d %d", term, len(edges))
		for _, e := range edges {
			fmt.Fprintf(bw, " %d %s", e.To, e.Symbol)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, a.Start())

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
