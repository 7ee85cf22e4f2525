package cli

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
)

// acceptsCommand creates the accepts command, which runs words through an
// automaton.
func (c *CLI) acceptsCommand() *cobra.Command {
	var flags pipelineFlags
	var (
		sep       string
		minimized bool
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "accepts [file] [word...]",
		Short: "Test whether an automaton accepts words",
		Long: `Accepts prints one line per word saying whether the automaton accepts it.
Words are read from the arguments, or one per line from stdin when none are
given.

Symbols inside a word are separated by --sep. When every symbol of the
alphabet is a single character, words may also be written without
separators ("abba"). An empty word is written as "".`,
		Example: `  dfamin accepts ab.txt abba ab ""
  dfamin accepts ops.json push,pop,pop --minimized
  cat words.txt | dfamin accepts ab.txt --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, args[0], &flags)

			runner := c.newRunner()
			a, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			if minimized {
				res, err := runner.Minimize(ctx, a, opts)
				if err != nil {
					return err
				}
				a = res.Automaton
			}

			words := args[1:]
			if len(words) == 0 && args[0] == stdoutPath {
				return errors.New(errors.ErrCodeInvalidInput, "words must be given as arguments when the automaton is read from stdin")
			}
			if len(words) == 0 {
				if words, err = readWords(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, word := range words {
				syms, err := splitWord(a, word, sep)
				switch {
				case err != nil:
					rejected++
					printError(out, "%s %s", quoteWord(word), StyleDim.Render(errors.UserMessage(err)))
				case a.Accepts(syms):
					printSuccess(out, "%s", quoteWord(word))
				default:
					rejected++
					printError(out, "%s", quoteWord(word))
				}
			}

			if strict && rejected > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "%d of %d words rejected", rejected, len(words))
			}
			return nil
		},
	}

	flags.registerInput(cmd)
	flags.registerMissing(cmd)
	cmd.Flags().StringVar(&sep, "sep", ",", "separator between symbols of a word")
	cmd.Flags().BoolVar(&minimized, "minimized", false, "run words through the minimized automaton")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any word is rejected")

	return cmd
}

// splitWord turns word into symbols of a's alphabet. A word that is itself
// a symbol is never split, even when it contains sep.
func splitWord(a *dfa.Automaton, word, sep string) ([]dfa.Symbol, error) {
	if word == "" {
		return nil, nil
	}

	var parts []string
	switch {
	case a.HasSymbol(dfa.Symbol(word)):
		parts = []string{word}
	case sep != "" && strings.Contains(word, sep):
		parts = strings.Split(word, sep)
	case singleRuneAlphabet(a):
		for _, r := range word {
			parts = append(parts, string(r))
		}
	default:
		parts = []string{word}
	}

	syms := make([]dfa.Symbol, len(parts))
	for i, p := range parts {
		sym := dfa.Symbol(strings.TrimSpace(p))
		if !a.HasSymbol(sym) {
			return nil, errors.New(errors.ErrCodeInvalidSymbol, "unknown symbol %q", sym)
		}
		syms[i] = sym
	}
	return syms, nil
}

func singleRuneAlphabet(a *dfa.Automaton) bool {
	for _, sym := range a.Alphabet() {
		if utf8.RuneCountInString(string(sym)) != 1 {
			return false
		}
	}
	return true
}

// readWords reads one word per line. Blank lines are empty words.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read words")
	}
	return words, nil
}

func quoteWord(word string) string {
	if word == "" {
		return "ε"
	}
	return word
}

func formatWord(word []dfa.Symbol) string {
	if len(word) == 0 {
		return "ε"
	}
	parts := make([]string, len(word))
	for i, s := range word {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
