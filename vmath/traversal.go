package vmath

import "math"

// axisWalk tracks one axis of a DDA walk across a regular grid
type axisWalk struct {
	cell, target, step int
	next, delta        float64 // segment parameter of the next boundary, and between boundaries
}

func newAxisWalk(from, to, size float64) axisWalk {
	a := axisWalk{
		cell:   int(math.Floor(from / size)),
		target: int(math.Floor(to / size)),
		step:   1,
		next:   math.Inf(1),
	}
	span := to - from
	if span < 0 {
		a.step = -1
		span = -span
	}
	if span == 0 {
		return a
	}

	a.delta = size / span
	frac := from/size - math.Floor(from/size)
	if a.step > 0 {
		a.next = (1 - frac) * a.delta
	} else {
		a.next = frac * a.delta
	}
	return a
}

func (a *axisWalk) advance() {
	a.cell += a.step
	a.next += a.delta
}

func (a *axisWalk) arrived() bool {
	return a.cell == a.target
}

// CellWalker visits every cell of a cellW × cellH grid that a unit-space segment touches
// Cell (i, j) covers [i·cellW, (i+1)·cellW) × [j·cellH, (j+1)·cellH); diagonal corner
// crossings step both axes at once
type CellWalker struct {
	x, y    axisWalk
	started bool
	done    bool
}

// NewCellWalker creates a walker from a to b
func NewCellWalker(a, b Vec2, cellW, cellH float64) CellWalker {
	return CellWalker{
		x: newAxisWalk(a.X, b.X, cellW),
		y: newAxisWalk(a.Y, b.Y, cellH),
	}
}

// Next moves to the next touched cell, false once the end cell has been visited
func (w *CellWalker) Next() bool {
	switch {
	case w.done:
		return false
	case !w.started:
		w.started = true
		return true
	case w.x.arrived() && w.y.arrived():
		w.done = true
		return false
	}

	switch {
	case w.x.next < w.y.next:
		w.stepPreferring(&w.x, &w.y)
	case w.y.next < w.x.next:
		w.stepPreferring(&w.y, &w.x)
	default:
		if !w.x.arrived() {
			w.x.advance()
		}
		if !w.y.arrived() {
			w.y.advance()
		}
	}
	return true
}

// stepPreferring advances first unless it already reached its end cell
func (w *CellWalker) stepPreferring(first, other *axisWalk) {
	if !first.arrived() {
		first.advance()
		return
	}
	other.advance()
}

// Cell returns the current cell
func (w *CellWalker) Cell() (int, int) {
	return w.x.cell, w.y.cell
}

// WalkCells calls fn for every cell the segment a-b touches until fn returns false
func WalkCells(a, b Vec2, cellW, cellH float64, fn func(cx, cy int) bool) {
	w := NewCellWalker(a, b, cellW, cellH)
	for w.Next() {
		if !fn(w.Cell()) {
			return
		}
	}
}
