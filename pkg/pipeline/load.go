package pipeline

import (
	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
	"github.com/matzehuels/dfamin/pkg/errors"
	dfaio "github.com/matzehuels/dfamin/pkg/io"
)

// Load reads the input automaton. A preloaded [Options.Automaton] is
// validated and returned as is. Input "-" reads [Options.Stdin] when set.
func Load(opts Options) (*dfa.Automaton, error) {
	if opts.Automaton != nil {
		if err := opts.Automaton.Validate(); err != nil {
			return nil, err
		}
		return opts.Automaton, nil
	}
	if opts.Input == "-" && opts.Stdin != nil {
		f := dfaio.Format(opts.InputFormat)
		if f == "" {
			f = dfaio.DetectFormat(opts.Input)
		}
		a, err := dfaio.Read(opts.Stdin, f)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInvalidInput
			}
			return nil, errors.Wrap(code, err, "stdin")
		}
		return a, nil
	}
	return dfaio.Import(opts.Input, dfaio.Format(opts.InputFormat))
}

// Minimize runs the minimization stage with the configured policy.
func Minimize(a *dfa.Automaton, opts Options) (*minimize.Result, error) {
	return minimize.Minimize(a, minimize.Options{Missing: opts.MissingPolicy()})
}
