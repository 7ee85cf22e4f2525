package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/buildinfo"
	"github.com/matzehuels/dfamin/pkg/observability"
	"github.com/matzehuels/dfamin/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dfamin"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config holds the defaults loaded from the config file. It is filled
	// in by the root command before any subcommand runs.
	Config Config

	configPath string
	logOut     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dfamin minimizes deterministic finite automata",
		Long: `dfamin reads a deterministic finite automaton, removes unreachable states,
merges states that accept the same language and writes the minimal automaton
as a Graphviz diagram or back to one of its input formats.`,
		Version:      buildinfo.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.SetPipelineHooks(logHooks{logger: c.Logger})
			observability.SetArtifactHooks(logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dfamin/config.toml)")

	for _, cmd := range []*cobra.Command{
		c.minimizeCommand(),
		c.renderCommand(),
		c.convertCommand(),
		c.inspectCommand(),
		c.acceptsCommand(),
		c.simulateCommand(),
	} {
		cmd.ValidArgsFunction = automatonFiles
		registerFlagCompletions(cmd)
		root.AddCommand(cmd)
	}
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// stderr returns where the logger writes, falling back to os.Stderr.
func (c *CLI) stderr() io.Writer {
	if c.logOut == nil {
		return os.Stderr
	}
	return c.logOut
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Blank entries are dropped and names are lowercased.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
