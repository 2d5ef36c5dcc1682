package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/trailfx/render"
	"github.com/lixenwraith/trailfx/status"
)

const hintText = "tab/1-6 switch view · click a tab or card · q quit"

// StatusRenderer draws the bottom line: key hints, or live metrics in debug mode
type StatusRenderer struct {
	state *State
	reg   *status.Registry
	debug bool
}

// NewStatusRenderer creates a status line renderer; reg is only read in debug mode
func NewStatusRenderer(state *State, reg *status.Registry, debug bool) *StatusRenderer {
	return &StatusRenderer{state: state, reg: reg, debug: debug}
}

// Render implements render.SystemRenderer
func (s *StatusRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	y := ctx.ScreenHeight - 1
	if y < 1 {
		return
	}
	text := hintText
	if s.debug && s.reg != nil {
		text = fmt.Sprintf("[%s] %s", s.state.Page().Slug, s.reg.Format())
	}
	buf.SetString(1, y, text, render.RgbStatusText, tcell.AttrNone)
}
