package cli

import (
	"strings"

	"github.com/spf13/cobra"

	dfaio "github.com/matzehuels/dfamin/pkg/io"
	"github.com/matzehuels/dfamin/pkg/pipeline"
	"github.com/matzehuels/dfamin/pkg/render/nodelink"
)

// pipelineFlags holds the flags shared by commands that load, minimize or
// render an automaton. Each command registers the groups it needs.
type pipelineFlags struct {
	output      string  // output file, base path, or "-" for stdout
	formats     string  // comma-separated output formats
	inputFormat string  // txt, json, yaml; detected from the extension when empty
	missing     string  // missing-transition policy
	rankDir     string  // Graphviz rank direction
	detailed    bool    // label minimized states with their members
	pngScale    float64 // PNG scale factor
}

func (f *pipelineFlags) registerInput(cmd *cobra.Command) {
	names := make([]string, len(dfaio.Formats))
	for i, fm := range dfaio.Formats {
		names[i] = string(fm)
	}
	cmd.Flags().StringVarP(&f.inputFormat, "input-format", "i", "",
		"input format: "+strings.Join(names, ", ")+" (default: from file extension)")
}

func (f *pipelineFlags) registerMissing(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.missing, "missing", pipeline.DefaultMissing,
		"missing transitions: skip (ignore) or distinguish (implicit dead state)")
}

func (f *pipelineFlags) registerOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
}

func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	f.registerOutput(cmd)
	cmd.Flags().StringVarP(&f.formats, "format", "f", "",
		"output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default dot)")
	cmd.Flags().StringVar(&f.rankDir, "rankdir", pipeline.DefaultRankDir,
		"diagram direction: "+strings.Join(nodelink.RankDirs, ", "))
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG scale factor")
}

func (f *pipelineFlags) registerDetailed(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label minimized states with the states they merge")
}

// options builds pipeline options from flags and the config file.
func (c *CLI) options(cmd *cobra.Command, input string, f *pipelineFlags) pipeline.Options {
	opts := pipeline.Options{
		Input:       input,
		InputFormat: f.inputFormat,
		Stdin:       cmd.InOrStdin(),
		Missing:     f.missing,
		Formats:     parseFormats(f.formats),
		RankDir:     f.rankDir,
		Detailed:    f.detailed,
		PNGScale:    f.pngScale,
		Logger:      loggerFromContext(cmd.Context()),
	}
	c.Config.apply(cmd, &opts)
	return opts
}

// displayName names an input path in status output.
func displayName(input string) string {
	if input == stdoutPath {
		return "stdin"
	}
	return input
}
