package view

import (
	"math"

	"github.com/lixenwraith/trailfx/effect"
	"github.com/lixenwraith/trailfx/vmath"
)

// Pointer is the read surface of the mounted effect used by the renderers
type Pointer interface {
	Live() vmath.Vec2
	Observed() (effect.Observed, bool)
	FollowerPos() vmath.Vec2
}

// State is the view state shared by the renderers; the host main loop owns it
type State struct {
	Pages   []Page
	Active  int
	Layout  *Layout
	Pointer Pointer

	CellW, CellH float64
	width        int
	height       int
}

// NewState creates the state with the page at active selected
func NewState(pages []Page, active int, cellW, cellH float64) *State {
	return &State{Pages: pages, Active: active, CellW: cellW, CellH: cellH, Layout: &Layout{}}
}

// Page returns the active page
func (s *State) Page() Page {
	return s.Pages[s.Active]
}

// Relayout recomputes cell placement for a new screen size
func (s *State) Relayout(width, height int) {
	s.width, s.height = width, height
	s.Layout = NewLayout(s.Pages, s.Active, width, height)
}

// SetActive switches the active page and relayouts, false if out of range
func (s *State) SetActive(i int) bool {
	if i < 0 || i >= len(s.Pages) {
		return false
	}
	s.Active = i
	s.Relayout(s.width, s.height)
	return true
}

// PointerCell returns the cell under the live pointer
func (s *State) PointerCell() (int, int, bool) {
	if s.Pointer == nil {
		return 0, 0, false
	}
	p := s.Pointer.Live()
	return int(math.Floor(p.X / s.CellW)), int(math.Floor(p.Y / s.CellH)), true
}

// HoverRegion returns the interactive region under the live pointer
func (s *State) HoverRegion() (Region, bool) {
	cx, cy, ok := s.PointerCell()
	if !ok {
		return Region{}, false
	}
	return s.Layout.Hit(cx, cy)
}
