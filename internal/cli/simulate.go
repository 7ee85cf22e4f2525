package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/errors"
	"github.com/matzehuels/dfamin/pkg/render/nodelink"
)

// simulateCommand creates the simulate command for stepping through an
// automaton interactively.
func (c *CLI) simulateCommand() *cobra.Command {
	var flags pipelineFlags
	var raw bool

	cmd := &cobra.Command{
		Use:   "simulate [file]",
		Short: "Step through an automaton interactively",
		Long: `Simulate opens an interactive view that reads one symbol at a time and
shows the current state and whether the word read so far is accepted.

By default the minimized automaton is simulated and each state shows the
input states it merges. Use --raw to simulate the automaton as written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if args[0] == stdoutPath {
				return errors.New(errors.ErrCodeUnsupported, "simulate reads keys from stdin; pass a file")
			}
			if in, ok := cmd.InOrStdin().(*os.File); ok && !isTerminal(in) {
				return errors.New(errors.ErrCodeUnsupported, "simulate needs an interactive terminal")
			}

			opts := c.options(cmd, args[0], &flags)
			runner := c.newRunner()
			a, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}

			model := NewSimModel(a, nil)
			if !raw {
				res, err := runner.Minimize(ctx, a, opts)
				if err != nil {
					return err
				}
				model = NewSimModel(res.Automaton, nodelink.MemberLabels(res.Classes.Members))
			}

			p := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			final, err := p.Run()
			if err != nil {
				return err
			}

			if fm, ok := final.(SimModel); ok && len(fm.Word) > 0 {
				w := cmd.ErrOrStderr()
				if fm.Accepted() {
					printSuccess(w, "%s accepted", formatWord(fm.Word))
				} else {
					printError(w, "%s rejected", formatWord(fm.Word))
				}
			}
			return nil
		},
	}

	flags.registerInput(cmd)
	flags.registerMissing(cmd)
	cmd.Flags().BoolVar(&raw, "raw", false, "simulate the automaton without minimizing it")

	return cmd
}
