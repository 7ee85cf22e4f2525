package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
)

// inspectCommand creates the inspect command, which prints statistics and
// the equivalence classes of an automaton.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the equivalence classes of an automaton",
		Long: `Inspect minimizes the automaton and prints which input states each
minimized state stands for, together with its transitions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, args[0], &flags)

			runner := c.newRunner()
			a, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			res, err := runner.Minimize(ctx, a, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, a, res, opts.Missing)
			fmt.Fprintln(out)
			fmt.Fprintln(out, classTable(res))
			if unreachable := unreachableStates(res); len(unreachable) > 0 {
				printDetail(out, "unreachable: %s", joinInts(unreachable))
			}
			return nil
		},
	}

	flags.registerInput(cmd)
	flags.registerMissing(cmd)

	return cmd
}

func printSummary(w io.Writer, a *dfa.Automaton, res *minimize.Result, missing string) {
	s := res.Stats
	syms := make([]string, 0, len(a.Alphabet()))
	for _, sym := range a.Alphabet() {
		syms = append(syms, string(sym))
	}

	fmt.Fprintln(w, StyleTitle.Render("Automaton"))
	printKeyValue(w, "Alphabet", strings.Join(syms, " "))
	printKeyValue(w, "States", strconv.Itoa(s.States))
	printKeyValue(w, "Transitions", fmt.Sprintf("%d (%s)", a.NumTransitions(), completeness(a)))
	printKeyValue(w, "Start", strconv.Itoa(a.Start()))
	printKeyValue(w, "Reachable", strconv.Itoa(s.ReachableStates))
	printKeyValue(w, "Missing", missing)
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Minimized"))
	printKeyValue(w, "States", strconv.Itoa(s.Classes))
	printKeyValue(w, "Transitions", strconv.Itoa(res.Automaton.NumTransitions()))
	printKeyValue(w, "Distinct pairs", strconv.Itoa(s.DistinguishablePairs))
	if s.Conflicts > 0 {
		printKeyValue(w, "Conflicts", StyleWarning.Render(strconv.Itoa(s.Conflicts)))
	}
}

// classTable renders one row per minimized state.
func classTable(res *minimize.Result) string {
	q := res.Automaton
	rows := make([][]string, 0, res.Classes.Count())
	for k, members := range res.Classes.Members {
		var flags []string
		if k == q.Start() {
			flags = append(flags, "start")
		}
		if q.IsTerminal(k) {
			flags = append(flags, "accept")
		}
		var edges []string
		for _, e := range q.Edges(k) {
			edges = append(edges, fmt.Sprintf("%s%s%d", e.Symbol, iconArrow, e.To))
		}
		rows = append(rows, []string{
			strconv.Itoa(k),
			"{" + joinInts(members) + "}",
			strings.Join(flags, ","),
			strings.Join(edges, " "),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("State", "Members", "Flags", "Transitions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return base.Inherit(styleHeader)
			case col == 0:
				return base.Foreground(colorCyan)
			case row >= 0 && row < len(rows) && strings.Contains(rows[row][2], "accept"):
				return base.Foreground(colorGreen)
			}
			return base
		}).
		String()
}

func unreachableStates(res *minimize.Result) []int {
	var states []int
	for s, k := range res.Classes.Of {
		if k == minimize.Unassigned {
			states = append(states, s)
		}
	}
	return states
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
