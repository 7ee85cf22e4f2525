package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/dfa"
	dfaio "github.com/matzehuels/dfamin/pkg/io"
	"github.com/matzehuels/dfamin/pkg/pipeline"
)

// renderCommand creates the render command, which draws an automaton as it
// is, without minimizing it.
func (c *CLI) renderCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an automaton without minimizing it",
		Long: `Render writes the automaton read from file as a Graphviz diagram. Output
goes to <name>.<format> unless --output is given.`,
		Example: `  dfamin render ab.txt -f svg
  dfamin render ab.yaml -f dot,png --rankdir TB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, c.options(cmd, args[0], &flags), flags.output)
		},
	}

	flags.registerInput(cmd)
	flags.registerRender(cmd)

	return cmd
}

// convertCommand creates the convert command for rewriting an automaton in
// another file format.
func (c *CLI) convertCommand() *cobra.Command {
	var flags pipelineFlags
	var to string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an automaton between txt, json and yaml",
		Example: `  dfamin convert ab.txt --to json
  dfamin convert ab.json --to txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dfaio.ParseFormat(to)
			if err != nil {
				return err
			}
			opts := c.options(cmd, args[0], &flags)
			opts.Formats = []string{string(f)}
			return c.runRender(cmd, opts, flags.output)
		},
	}

	flags.registerInput(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().StringVarP(&to, "to", "t", string(dfaio.FormatJSON), "target format: txt, json, yaml")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := opts.ValidateForLoad(); err != nil {
		return err
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	paths, err := outputPaths(opts.Formats, output, opts.Input, "", c.Config.outputDir(cmd))
	if err != nil {
		return err
	}
	if err := checkOverwrite(paths, opts.Input); err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := c.newRunner()

	a, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	var artifacts map[string][]byte
	run := func() error {
		var err error
		artifacts, err = runner.Render(ctx, a, nil, opts)
		return err
	}
	if opts.NeedsGraphviz() {
		err = c.spin(ctx, "Rendering with Graphviz", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	written, err := writeArtifacts(ctx, cmd.OutOrStdout(), artifacts, opts.Formats, paths)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d states", a.NumStates()))

	w := cmd.ErrOrStderr()
	printSuccess(w, "Rendered %s", displayName(opts.Input))
	printInfo(w, "%d states, %d transitions, %s", a.NumStates(), a.NumTransitions(), completeness(a))
	for _, path := range written {
		printFile(w, path)
	}
	return nil
}

func completeness(a *dfa.Automaton) string {
	if a.IsComplete() {
		return "complete"
	}
	return "partial"
}
