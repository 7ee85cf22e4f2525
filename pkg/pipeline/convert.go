package pipeline

import "github.com/matzehuels/dfamin/pkg/render"

// Converters behind package variables so tests can run without librsvg.
var (
	toPNG = render.ToPNG
	toPDF = render.ToPDF
)
