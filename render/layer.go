package render

import (
	"math"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/vmath"
)

// layerCell carries color plus coverage so layers can be composited with opacity
type layerCell struct {
	Rune rune
	Fg   RGB
	FgA  float64
	Bg   RGB
	BgA  float64
}

// Layer is an owned drawing surface in unit space backed by a cell grid
// Units map to cells through cellW x cellH; drawing outside the grid is clipped
type Layer struct {
	cells  []layerCell
	cols   int
	rows   int
	width  float64
	height float64
	cellW  float64
	cellH  float64
}

// NewLayer creates a layer sized width x height units
func NewLayer(width, height, cellW, cellH float64) *Layer {
	if cellW <= 0 {
		cellW = parameter.CellWidth
	}
	if cellH <= 0 {
		cellH = parameter.CellHeight
	}
	l := &Layer{cellW: cellW, cellH: cellH}
	l.Resize(width, height)
	return l
}

// Size returns the layer size in units
func (l *Layer) Size() (float64, float64) {
	return l.width, l.height
}

// Grid returns the layer size in cells
func (l *Layer) Grid() (int, int) {
	return l.cols, l.rows
}

// Resize resynchronizes the surface to width x height units, content is discarded
func (l *Layer) Resize(width, height float64) {
	width = math.Max(width, 0)
	height = math.Max(height, 0)
	cols := int(math.Ceil(width / l.cellW))
	rows := int(math.Ceil(height / l.cellH))
	size := cols * rows
	if cap(l.cells) < size {
		l.cells = make([]layerCell, size)
	} else {
		l.cells = l.cells[:size]
	}
	l.cols, l.rows = cols, rows
	l.width, l.height = width, height
	l.Clear()
}

// Clear resets every cell to fully transparent
func (l *Layer) Clear() {
	clear(l.cells)
}

// Fade paints c with alpha over the whole surface, leaving fading trails of prior frames
func (l *Layer) Fade(c RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	for i := range l.cells {
		cell := &l.cells[i]
		cell.Bg, cell.BgA = Over(cell.Bg, cell.BgA, c, alpha)
		if cell.Rune != 0 {
			cell.Fg = Blend(cell.Fg, c, alpha)
			cell.FgA *= 1 - alpha
			if cell.FgA < 0.02 {
				cell.Rune = 0
				cell.FgA = 0
			}
		}
	}
}

// cellAt maps a unit coordinate to its cell
func (l *Layer) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / l.cellW)), int(math.Floor(y / l.cellH))
}

func (l *Layer) at(cx, cy int) *layerCell {
	if cx < 0 || cy < 0 || cx >= l.cols || cy >= l.rows {
		return nil
	}
	return &l.cells[cy*l.cols+cx]
}

// tint composites c over the cell background
func (l *Layer) tint(cx, cy int, c RGB, alpha float64) {
	if cell := l.at(cx, cy); cell != nil {
		cell.Bg, cell.BgA = Over(cell.Bg, cell.BgA, c, alpha)
	}
}

// glyph places r over the cell, keeping the stronger of the existing and new coverage
func (l *Layer) glyph(cx, cy int, r rune, c RGB, alpha float64) {
	cell := l.at(cx, cy)
	if cell == nil || alpha <= 0 {
		return
	}
	if cell.Rune == 0 || alpha >= cell.FgA {
		cell.Rune = r
		cell.Fg = c
		cell.FgA = vmath.Clamp01(alpha)
	}
}

// Line strokes a segment, every crossed cell is tinted once
func (l *Layer) Line(x0, y0, x1, y1 float64, c RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	vmath.WalkCells(vmath.V(x0, y0), vmath.V(x1, y1), l.cellW, l.cellH, func(cx, cy int) bool {
		// Stop walking far off-grid
		if cx < -l.cols || cy < -l.rows || cx > 2*l.cols || cy > 2*l.rows {
			return false
		}
		l.tint(cx, cy, c, alpha)
		return true
	})
}

// discRune picks a glyph by radius relative to the cell
func (l *Layer) discRune(r float64) rune {
	if r >= l.cellW*0.375 {
		return '●'
	}
	if r >= l.cellW*0.25 {
		return '•'
	}
	return '·'
}

// Disc draws a filled disc; glow additionally tints the surrounding cells with a lighter halo
func (l *Layer) Disc(x, y, r float64, c RGB, alpha float64, glow bool) {
	if alpha <= 0 {
		return
	}
	cx, cy := l.cellAt(x, y)
	l.glyph(cx, cy, l.discRune(r), c, alpha)

	// Discs larger than a cell also cover neighbours
	rx := int(r / l.cellW)
	ry := int(r / l.cellH)
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			l.tint(cx+dx, cy+dy, c, alpha)
		}
	}

	if !glow {
		return
	}
	halo := Glow(c, 0.3)
	ga := alpha * parameter.ParticleGlowOpacity
	l.tint(cx, cy, halo, ga)
	for dy := -1 - ry; dy <= 1+ry; dy++ {
		for dx := -1 - rx; dx <= 1+rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			l.tint(cx+dx, cy+dy, halo, ga*0.5)
		}
	}
}

// Composite writes the layer into buf at the given opacity
func (l *Layer) Composite(buf *RenderBuffer, opacity float64) {
	if opacity <= 0 {
		return
	}
	bw, bh := buf.Bounds()
	cols := min(l.cols, bw)
	rows := min(l.rows, bh)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cell := l.cells[cy*l.cols+cx]
			if cell.BgA > 0 {
				buf.Set(cx, cy, 0, RGB{}, cell.Bg, BlendAlphaBg, cell.BgA*opacity, 0)
			}
			if cell.Rune != 0 && cell.FgA > 0 {
				buf.Set(cx, cy, cell.Rune, cell.Fg, RGB{}, BlendAlphaFg, cell.FgA*opacity, 0)
			}
		}
	}
}
