package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/pipeline"
)

// minimizeCommand creates the minimize command.
func (c *CLI) minimizeCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "minimize [file]",
		Short: "Minimize an automaton and write the result",
		Long: `Minimize reads an automaton, drops the states that cannot be reached from
the start state and merges the states that accept the same words.

The result is written next to the input as <name>.min.<format> unless
--output is given. Use "-" as the file to read from stdin.

Automata with missing transitions are handled by --missing:
  skip         a missing transition never tells two states apart (default)
  distinguish  a missing transition leads to an implicit rejecting dead state`,
		Example: `  dfamin minimize ab.txt
  dfamin minimize ab.txt -f dot,svg --detailed
  dfamin minimize ab.json -o min_aut.txt -f dot
  cat ab.txt | dfamin minimize - -f txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMinimize(cmd, c.options(cmd, args[0], &flags), flags.output)
		},
	}

	flags.registerInput(cmd)
	flags.registerMissing(cmd)
	flags.registerRender(cmd)
	flags.registerDetailed(cmd)

	return cmd
}

func (c *CLI) runMinimize(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	paths, err := outputPaths(opts.Formats, output, opts.Input, ".min", c.Config.outputDir(cmd))
	if err != nil {
		return err
	}
	if err := checkOverwrite(paths, opts.Input); err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := c.newRunner()

	var result *pipeline.Result
	run := func() error {
		var err error
		result, err = runner.Execute(ctx, opts)
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

	written, err := writeArtifacts(ctx, cmd.OutOrStdout(), result.Artifacts, opts.Formats, paths)
	if err != nil {
		return err
	}
	s := result.Stats
	prog.done(fmt.Sprintf("Minimized %d states to %d", s.States, s.Classes))

	w := cmd.ErrOrStderr()
	printSuccess(w, "Minimized %s", displayName(opts.Input))
	printStats(w, s.States, s.ReachableStates, s.Classes)
	for _, path := range written {
		printFile(w, path)
	}
	if s.Conflicts > 0 {
		printWarning(w, "%d transitions disagreed inside merged states", s.Conflicts)
		printNextStep(w, "Keep partial states apart", "dfamin minimize --missing=distinguish "+opts.Input)
	}
	return nil
}
