package render

import "github.com/gdamore/tcell/v2"

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// CellStyle builds the tcell style of a composited cell
func CellStyle(c Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(RGBToTcell(c.Fg)).
		Background(RGBToTcell(c.Bg)).
		Attributes(c.Attrs)
}
