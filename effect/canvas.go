package effect

import (
	"github.com/lixenwraith/trailfx/render"
)

// Canvas is a drawing surface in unit space, sized to the viewport
// render.Layer is the terminal implementation
type Canvas interface {
	Size() (width, height float64)
	Resize(width, height float64)
	Clear()
	// Fade paints c over the whole surface at alpha, leaving fading trails
	Fade(c render.RGB, alpha float64)
	Line(x0, y0, x1, y1 float64, c render.RGB, alpha float64)
	Disc(x, y, r float64, c render.RGB, alpha float64, glow bool)
}

// Surfaces are the two canvases an effect draws to
// A nil surface disables the loop that draws to it
type Surfaces struct {
	Ambient   Canvas
	Particles Canvas
}

var _ Canvas = (*render.Layer)(nil)
