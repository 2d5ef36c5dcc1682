package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/trailfx/render"
)

// NavRenderer draws the tab bar on the top row
type NavRenderer struct {
	state *State
}

// NewNavRenderer creates a nav renderer
func NewNavRenderer(state *State) *NavRenderer {
	return &NavRenderer{state: state}
}

// Render implements render.SystemRenderer
func (n *NavRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	buf.SetString(1, 0, brandText, render.RgbText, tcell.AttrBold)

	hover, hovering := n.state.HoverRegion()
	active := n.state.Page()

	for i, tab := range n.state.Layout.Tabs {
		label := " " + n.state.Pages[i].Tab + " "
		switch {
		case i == n.state.Active:
			x := tab.X
			for _, r := range label {
				buf.SetWithBg(x, tab.Y, r, active.Accent, render.RgbTabActiveBg)
				x++
			}
		case hovering && hover == tab:
			buf.SetString(tab.X, tab.Y, label, render.RgbText, tcell.AttrUnderline)
		default:
			buf.SetString(tab.X, tab.Y, label, render.RgbTextMuted, tcell.AttrNone)
		}
	}
}
