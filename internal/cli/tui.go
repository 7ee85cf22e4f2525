package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

// Simulator styles
var (
	simAcceptStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	simRejectStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	simSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	simDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// deadState marks the position after a missing transition was taken.
const deadState = -1

// =============================================================================
// SimModel - Interactive automaton simulator
// =============================================================================

// SimModel is the bubbletea model for stepping words through an automaton.
//
// Keys: ←/→ select a symbol, enter or space takes the selected transition,
// typing a one-character symbol takes its transition directly, backspace
// undoes the last step, r resets, q quits.
type SimModel struct {
	Automaton *dfa.Automaton
	Labels    map[int]string // optional state labels, e.g. class members
	Cursor    int            // index into the alphabet
	Path      []int          // visited states; Path[0] is the start state
	Word      []dfa.Symbol   // symbols read so far
	symbols   []dfa.Symbol
}

// NewSimModel creates a simulator positioned at the start state.
func NewSimModel(a *dfa.Automaton, labels map[int]string) SimModel {
	return SimModel{
		Automaton: a,
		Labels:    labels,
		Path:      []int{a.Start()},
		symbols:   a.Alphabet(),
	}
}

// Current returns the current state, or deadState after a missing transition.
func (m SimModel) Current() int {
	return m.Path[len(m.Path)-1]
}

// Accepted reports whether the word read so far is accepted.
func (m SimModel) Accepted() bool {
	cur := m.Current()
	return cur != deadState && m.Automaton.IsTerminal(cur)
}

// Step reads sym. Reading from the dead state stays there.
func (m SimModel) Step(sym dfa.Symbol) SimModel {
	next := deadState
	if cur := m.Current(); cur != deadState {
		if to, ok := m.Automaton.Next(cur, sym); ok {
			next = to
		}
	}
	m.Path = append(slices.Clip(m.Path), next)
	m.Word = append(slices.Clip(m.Word), sym)
	return m
}

// Undo removes the last symbol read.
func (m SimModel) Undo() SimModel {
	if len(m.Word) == 0 {
		return m
	}
	m.Path = m.Path[:len(m.Path)-1]
	m.Word = m.Word[:len(m.Word)-1]
	return m
}

// Reset returns to the start state with an empty word.
func (m SimModel) Reset() SimModel {
	m.Path = []int{m.Automaton.Start()}
	m.Word = nil
	return m
}

func (m SimModel) Init() tea.Cmd {
	return nil
}

func (m SimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "left":
		m.Cursor = (m.Cursor + len(m.symbols) - 1) % len(m.symbols)
		return m, nil
	case "right", "tab":
		m.Cursor = (m.Cursor + 1) % len(m.symbols)
		return m, nil
	case "enter", " ":
		return m.Step(m.symbols[m.Cursor]), nil
	case "backspace":
		return m.Undo(), nil
	}

	// Alphabet symbols take precedence over the letter shortcuts below.
	if i := slices.Index(m.symbols, dfa.Symbol(key.String())); i >= 0 {
		m.Cursor = i
		return m.Step(m.symbols[i]), nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m.Reset(), nil
	case "h":
		m.Cursor = (m.Cursor + len(m.symbols) - 1) % len(m.symbols)
	case "l":
		m.Cursor = (m.Cursor + 1) % len(m.symbols)
	}
	return m, nil
}

func (m SimModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Simulate"))
	b.WriteString("\n")
	b.WriteString(simDimStyle.Render("←/→ select  ⏎ step  ⌫ undo  r reset  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", styleKey.Render("Word"), StyleValue.Render(formatWord(m.Word))))
	b.WriteString(fmt.Sprintf("%s %s\n", styleKey.Render("Path"), StyleValue.Render(m.pathString())))

	status := simRejectStyle.Render(iconError + " rejected")
	if m.Accepted() {
		status = simAcceptStyle.Render(iconSuccess + " accepted")
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", styleKey.Render("Status"), status))

	rows := make([][]string, len(m.symbols))
	cur := m.Current()
	for i, sym := range m.symbols {
		target := "-"
		if cur != deadState {
			if to, ok := m.Automaton.Next(cur, sym); ok {
				target = m.stateName(to)
			}
		}
		marker := "  "
		if i == m.Cursor {
			marker = "▸ "
		}
		rows[i] = []string{marker, string(sym), target}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Symbol", "Next").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == m.Cursor:
				return simSelectedStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}

func (m SimModel) pathString() string {
	parts := make([]string, len(m.Path))
	for i, s := range m.Path {
		parts[i] = m.stateName(s)
	}
	return strings.Join(parts, " "+iconArrow+" ")
}

func (m SimModel) stateName(s int) string {
	if s == deadState {
		return "∅"
	}
	name := strconv.Itoa(s)
	if m.Automaton.IsTerminal(s) {
		name = "((" + name + "))"
	}
	if label, ok := m.Labels[s]; ok {
		name += " " + simDimStyle.Render(label)
	}
	return name
}
