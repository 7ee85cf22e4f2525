package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/errors"
	"github.com/matzehuels/dfamin/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// RankDir sets the Graphviz rankdir attribute ("LR", "TB", ...).
	// Empty leaves the Graphviz default.
	RankDir string

	// Labels adds a second label line under the state index, for example
	// the members of a class. States without an entry keep the plain index.
	Labels map[int]string
}

// RankDirs lists the accepted rankdir values.
var RankDirs = []string{"LR", "TB", "RL", "BT"}

// ValidRankDir reports whether dir is empty or one of [RankDirs].
func ValidRankDir(dir string) bool {
	return dir == "" || slices.Contains(RankDirs, dir)
}

// ToDOT converts an automaton to Graphviz DOT.
//
// Every transition becomes one edge line labelled with its symbol, in state
// then alphabet order. The start state is labelled "start"; terminal states
// get a double border (peripheries=2). Output for a given automaton is
// byte-for-byte stable.
func ToDOT(a *dfa.Automaton, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.RankDir != "" {
		fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	}

	for _, e := range a.AllEdges() {
		fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n", e.From, e.To, string(e.Symbol))
	}

	for s := 0; s < a.NumStates(); s++ {
		if attrs := fmtAttrs(a, s, opts.Labels); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %d [%s];\n", s, strings.Join(attrs, ","))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(a *dfa.Automaton, s int, labels map[int]string) []string {
	var attrs []string
	if a.IsTerminal(s) {
		attrs = append(attrs, "peripheries=2")
	}

	extra, hasExtra := labels[s]
	switch {
	case s == a.Start() && hasExtra:
		attrs = append(attrs, fmt.Sprintf("label=%q", "start\n"+extra))
	case s == a.Start():
		attrs = append(attrs, `label="start"`)
	case hasExtra:
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(s)+"\n"+extra))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// MemberLabels formats class members as "{0,3,4}" labels for [Options.Labels].
func MemberLabels(members [][]int) map[int]string {
	labels := make(map[int]string, len(members))
	for class, ms := range members {
		parts := make([]string, len(ms))
		for i, m := range ms {
			parts[i] = strconv.Itoa(m)
		}
		labels[class] = "{" + strings.Join(parts, ",") + "}"
	}
	return labels
}
