package view

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/trailfx/effect"
	"github.com/lixenwraith/trailfx/effect/glitch"
	"github.com/lixenwraith/trailfx/render"
)

// PageRenderer draws the active page text, jittered and dimmed near the observed pointer
type PageRenderer struct {
	state   *State
	params  glitch.Params
	rng     *rand.Rand
	scratch []glitch.Rune
}

// NewPageRenderer creates a page renderer using rng for glitch jitter
func NewPageRenderer(state *State, rng *rand.Rand) *PageRenderer {
	return &PageRenderer{
		state:  state,
		params: glitch.DefaultParams(),
		rng:    rng,
	}
}

// Render implements render.SystemRenderer
func (p *PageRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	var (
		obs    effect.Observed
		hasObs bool
	)
	if p.state.Pointer != nil {
		obs, hasObs = p.state.Pointer.Observed()
	}

	for _, line := range p.state.Layout.Lines {
		if !hasObs {
			buf.SetString(line.X, line.Y, line.Text, line.Fg, line.Attrs)
			continue
		}

		y := (float64(line.Y) + 0.5) * ctx.CellHeight
		p.scratch = p.params.Apply(p.scratch, line.Text, float64(line.X)*ctx.CellWidth, y, ctx.CellWidth, obs.Pos, p.rng)

		x := line.X
		i := 0
		for _, r := range line.Text {
			g := p.scratch[i]
			dy := int(math.Round(g.Offset / ctx.CellHeight))
			buf.Set(x, line.Y+dy, r, line.Fg, render.RGB{}, render.BlendAlphaFg, g.Opacity, line.Attrs)
			x++
			i++
		}
	}
}
