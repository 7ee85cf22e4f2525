package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dfamin/pkg/dfa"
)

func twoState(t *testing.T, startTerminal bool) *dfa.Automaton {
	t.Helper()
	a, err := dfa.New([]dfa.Symbol{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	a.AddState(startTerminal)
	a.AddState(true)
	for _, tr := range []dfa.Edge{
		{From: 0, Symbol: "a", To: 1}, {From: 0, Symbol: "b", To: 1},
		{From: 1, Symbol: "a", To: 1}, {From: 1, Symbol: "b", To: 1},
	} {
		if err := a.AddTransition(tr.From, tr.Symbol, tr.To); err != nil {
			t.Fatal(err)
		}
	}
	return a
}

func TestToDOT_Basic(t *testing.T) {
	got := ToDOT(twoState(t, false), Options{})
	want := `digraph G {
  0 -> 1 [label="a"];
  0 -> 1 [label="b"];
  1 -> 1 [label="a"];
  1 -> 1 [label="b"];
  0 [label="start"];
  1 [peripheries=2];
}
`
	if got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOT_TerminalStart(t *testing.T) {
	dot := ToDOT(twoState(t, true), Options{})
	if !strings.Contains(dot, `  0 [peripheries=2,label="start"];`) {
		t.Errorf("ToDOT() terminal start missing double border:\n%s", dot)
	}
}

func TestToDOT_RankDir(t *testing.T) {
	dot := ToDOT(twoState(t, false), Options{RankDir: "LR"})
	if !strings.HasPrefix(dot, "digraph G {\n  rankdir=LR;\n") {
		t.Errorf("ToDOT() missing rankdir:\n%s", dot)
	}
}

func TestToDOT_Labels(t *testing.T) {
	a := twoState(t, false)
	a.AddState(false) // 2, unlabelled in the automaton, labelled below
	dot := ToDOT(a, Options{Labels: MemberLabels([][]int{{0}, {1, 2}, {3}})})

	for _, want := range []string{
		`  0 [label="start\n{0}"];`,
		`  1 [peripheries=2,label="1\n{1,2}"];`,
		`  2 [label="2\n{3}"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_PlainStatesOmitted(t *testing.T) {
	a := twoState(t, false)
	a.AddState(false)
	dot := ToDOT(a, Options{})
	if strings.Contains(dot, "  2 [") {
		t.Errorf("ToDOT() wrote attributes for a plain state:\n%s", dot)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	a := twoState(t, false)
	first := ToDOT(a, Options{RankDir: "TB"})
	for i := 0; i < 10; i++ {
		if got := ToDOT(a.Clone(), Options{RankDir: "TB"}); got != first {
			t.Fatalf("ToDOT() run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestMemberLabels(t *testing.T) {
	got := MemberLabels([][]int{{0, 3, 4}, {1}})
	if got[0] != "{0,3,4}" || got[1] != "{1}" || len(got) != 2 {
		t.Errorf("MemberLabels() = %v", got)
	}
}

func TestValidRankDir(t *testing.T) {
	for _, dir := range []string{"", "LR", "TB", "RL", "BT"} {
		if !ValidRankDir(dir) {
			t.Errorf("ValidRankDir(%q) = false", dir)
		}
	}
	for _, dir := range []string{"lr", "XY", " LR"} {
		if ValidRankDir(dir) {
			t.Errorf("ValidRankDir(%q) = true", dir)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(twoState(t, false), Options{RankDir: "LR"}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "start") {
		t.Errorf("RenderSVG() output missing svg root or start label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
