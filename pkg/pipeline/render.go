package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/dfamin/pkg/dfa"
	"github.com/matzehuels/dfamin/pkg/dfa/minimize"
	"github.com/matzehuels/dfamin/pkg/errors"
	dfaio "github.com/matzehuels/dfamin/pkg/io"
	"github.com/matzehuels/dfamin/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
//
// classes may be nil. When it is set and opts.Detailed is true, every state
// of the diagram lists the input states it stands for.
func Render(ctx context.Context, a *dfa.Automaton, classes *minimize.Classes, opts Options) (map[string][]byte, error) {
	dot := ToDOT(a, classes, opts)

	// Graphviz runs once; PNG and PDF convert the same SVG.
	var svg []byte
	renderSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "render")
		}

		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = renderSVG()
		case FormatPNG:
			if data, err = renderSVG(); err == nil {
				data, err = toPNG(ctx, data, opts.PNGScale)
			}
		case FormatPDF:
			if data, err = renderSVG(); err == nil {
				data, err = toPDF(ctx, data)
			}
		case FormatText, FormatJSON, FormatYAML:
			var buf bytes.Buffer
			err = dfaio.Write(a, &buf, dfaio.Format(format))
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// ToDOT builds the DOT source for a with the configured rank direction.
func ToDOT(a *dfa.Automaton, classes *minimize.Classes, opts Options) string {
	dotOpts := nodelink.Options{RankDir: opts.RankDir}
	if opts.Detailed && classes != nil {
		dotOpts.Labels = nodelink.MemberLabels(classes.Members)
	}
	return nodelink.ToDOT(a, dotOpts)
}
