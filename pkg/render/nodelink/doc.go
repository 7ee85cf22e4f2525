// Package nodelink renders automata as node-link state diagrams.
//
// # Overview
//
// States become circles numbered by index and transitions become arrows
// labelled with their symbol. The start state carries the label "start" and
// terminal states are drawn with a double border.
//
// # Usage
//
// Convert an automaton to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(a, nodelink.Options{RankDir: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - RankDir: Graphviz layout direction, omitted when empty
//   - Labels: extra per-state label lines; [MemberLabels] builds them from
//     the classes of a minimization so each state lists the input states it
//     replaces
//
// # DOT Format
//
//	digraph G {
//	  rankdir=LR;
//	  0 -> 1 [label="a"];
//	  0 -> 1 [label="b"];
//	  1 -> 1 [label="a"];
//	  1 -> 1 [label="b"];
//	  0 [label="start"];
//	  1 [peripheries=2];
//	}
//
// Edge lines come first, then one attribute line per state that needs one.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
