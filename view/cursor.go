package view

import (
	"math"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/render"
)

// ringSamples is the number of points sampled around the follower ring
const ringSamples = 32

// CursorRenderer draws the primary pointer dot and the trailing follower ring
// The ring grows and turns pink while the pointer is over an interactive region
type CursorRenderer struct {
	state *State
	scale float64
}

// NewCursorRenderer creates a cursor renderer at rest scale
func NewCursorRenderer(state *State) *CursorRenderer {
	return &CursorRenderer{state: state, scale: 1}
}

// Scale returns the current ring scale
func (c *CursorRenderer) Scale() float64 {
	return c.scale
}

// Render implements render.SystemRenderer
func (c *CursorRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if c.state.Pointer == nil {
		return
	}

	target := 1.0
	if _, hovering := c.state.HoverRegion(); hovering {
		target = parameter.FollowerHoverScale
	}
	c.scale += (target - c.scale) * parameter.FollowerScaleEase
	t := (c.scale - 1) / (parameter.FollowerHoverScale - 1)
	color := render.Lerp(render.RgbFollower, render.RgbFollowerHot, t)

	// Ring
	f := c.state.Pointer.FollowerPos()
	r := parameter.FollowerRadius * c.scale
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i < ringSamples; i++ {
		a := 2 * math.Pi * float64(i) / ringSamples
		cx, cy := ctx.UnitToCell(f.X+r*math.Cos(a), f.Y+r*math.Sin(a))
		if cx == lastX && cy == lastY {
			continue
		}
		lastX, lastY = cx, cy
		buf.Set(cx, cy, '·', color, render.RGB{}, render.BlendAlphaFg, 0.9, 0)
	}

	// Primary dot with a soft halo
	live := c.state.Pointer.Live()
	cx, cy := ctx.UnitToCell(live.X, live.Y)
	buf.Set(cx, cy, 0, render.RGB{}, render.RgbCursorHalo, render.BlendAlphaBg, 0.3, 0)
	buf.Set(cx, cy, '•', render.RgbCursorDot, render.RGB{}, render.BlendAlphaFg, 1, 0)
}
