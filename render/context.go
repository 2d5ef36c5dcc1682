package render

import (
	"math"
	"time"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	// Frame counter and host time of the frame
	Frame uint64
	Now   time.Time

	// Screen dimensions (terminal size in cells)
	ScreenWidth  int
	ScreenHeight int

	// Units covered by one cell
	CellWidth  float64
	CellHeight float64
}

// UnitToCell converts a unit coordinate to screen cell coordinates
func (rc *RenderContext) UnitToCell(x, y float64) (int, int) {
	return int(math.Floor(x / rc.CellWidth)), int(math.Floor(y / rc.CellHeight))
}

