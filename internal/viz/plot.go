package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quartercar/internal/dynamo"
)

// PlotSignal charts u(t) of a result.
func PlotSignal(r *dynamo.Result, width, height int) string {
	if r == nil || r.Len() == 0 {
		return ""
	}
	return asciigraph.Plot(r.Signal,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("u(t)  0..%.2fs", r.Times[r.Len()-1])),
	)
}

// PlotPositions charts x1 (red) and x2 (blue) on shared axes.
func PlotPositions(r *dynamo.Result, width, height int) string {
	if r == nil || r.Len() == 0 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{r.X1, r.X2},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("x1 (red)  x2 (blue)"),
	)
}
