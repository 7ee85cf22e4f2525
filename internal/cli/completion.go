package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
	dfaio "github.com/matzehuels/dfamin/pkg/io"
	"github.com/matzehuels/dfamin/pkg/pipeline"
	"github.com/matzehuels/dfamin/pkg/render/nodelink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dfamin.

To load completions:

Bash:
  $ source <(dfamin completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dfamin completion bash > /etc/bash_completion.d/dfamin
  # macOS:
  $ dfamin completion bash > $(brew --prefix)/etc/bash_completion.d/dfamin

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dfamin completion zsh > "${fpath[1]}/_dfamin"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dfamin completion fish | source

  # To load completions for each session, execute once:
  $ dfamin completion fish > ~/.config/fish/completions/dfamin.fish

PowerShell:
  PS> dfamin completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dfamin completion powershell > dfamin.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// automatonFiles completes the file argument with automaton files.
func automatonFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"txt", "json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerFlagCompletions adds value completions for the flags cmd defines.
func registerFlagCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	var ioFormats []string
	for _, f := range dfaio.Formats {
		ioFormats = append(ioFormats, string(f))
	}

	completions := map[string]func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective){
		"input-format": fixed(ioFormats...),
		"to":           fixed(ioFormats...),
		"missing":      fixed(string(minimize.MissingSkip), string(minimize.MissingDistinguish)),
		"rankdir":      fixed(nodelink.RankDirs...),
		"format": func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			// Complete the last element of a comma-separated list.
			prefix := ""
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix = toComplete[:i+1]
			}
			var out []string
			for _, f := range pipeline.FormatNames() {
				out = append(out, prefix+f)
			}
			return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
		},
	}
	for name, fn := range completions {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}
