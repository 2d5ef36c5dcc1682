package view

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/trailfx/render"
)

const (
	brandText = "ML Portfolio"
	backText  = "← Back to Home"
	marginX   = 2
)

// Region is an interactive cell rectangle; Target names the page it opens
type Region struct {
	X, Y, W, H int
	Target     string
}

// Contains reports whether the cell lies inside the region
func (r Region) Contains(cx, cy int) bool {
	return cx >= r.X && cx < r.X+r.W && cy >= r.Y && cy < r.Y+r.H
}

// TextLine is a run of page text placed on the cell grid
type TextLine struct {
	X, Y  int
	Text  string
	Fg    render.RGB
	Attrs tcell.AttrMask
}

// Layout is the cell placement of one page at one screen size
type Layout struct {
	Width, Height int
	Active        int
	Tabs          []Region
	Links         []Region
	Lines         []TextLine
}

// NewLayout places the nav bar and the active page's content
func NewLayout(pages []Page, active, width, height int) *Layout {
	l := &Layout{Width: width, Height: height, Active: active}

	// Nav bar: brand, then one tab per page
	x := 1 + utf8.RuneCountInString(brandText) + 3
	for _, p := range pages {
		w := utf8.RuneCountInString(p.Tab) + 2
		l.Tabs = append(l.Tabs, Region{X: x, Y: 0, W: w, H: 1, Target: p.Slug})
		x += w + 1
	}

	if active < 0 || active >= len(pages) {
		return l
	}
	page := pages[active]
	y := 2

	if page.Slug != Home {
		l.Links = append(l.Links, Region{X: marginX, Y: y, W: utf8.RuneCountInString(backText), H: 1, Target: Home})
		l.text(marginX, y, backText, render.RgbTextMuted, tcell.AttrNone)
		y += 2
	}

	l.text(marginX, y, page.Title, render.RgbText, tcell.AttrBold)
	l.text(marginX, y+1, page.Subtitle, render.RgbTextMuted, tcell.AttrNone)
	y += 3

	if len(page.Stats) > 0 {
		sx := marginX
		for _, s := range page.Stats {
			l.text(sx, y, s.Label, render.RgbTextDim, tcell.AttrNone)
			l.text(sx, y+1, s.Value, page.Accent, tcell.AttrBold)
			sx += max(utf8.RuneCountInString(s.Label), utf8.RuneCountInString(s.Value)) + 4
		}
		y += 3
	}

	for _, s := range page.Sections {
		l.text(marginX, y, s, render.RgbText, tcell.AttrNone)
		y++
	}
	if len(page.Sections) > 0 {
		y++
	}

	cardW := max(width-2*marginX, 1)
	for _, c := range page.Cards {
		accent := page.Accent
		if i := indexIn(pages, c.Target); i >= 0 {
			accent = pages[i].Accent
		}
		l.Links = append(l.Links, Region{X: marginX, Y: y, W: cardW, H: 3, Target: c.Target})
		l.text(marginX, y, c.Title, accent, tcell.AttrBold)
		l.text(marginX, y+1, c.Subtitle, render.RgbTextMuted, tcell.AttrNone)
		l.text(marginX, y+2, c.Description, render.RgbTextDim, tcell.AttrNone)
		y += 4
	}
	return l
}

func (l *Layout) text(x, y int, s string, fg render.RGB, attrs tcell.AttrMask) {
	l.Lines = append(l.Lines, TextLine{X: x, Y: y, Text: s, Fg: fg, Attrs: attrs})
}

// Hit returns the interactive region under the cell
func (l *Layout) Hit(cx, cy int) (Region, bool) {
	for _, r := range l.Tabs {
		if r.Contains(cx, cy) {
			return r, true
		}
	}
	for _, r := range l.Links {
		if r.Contains(cx, cy) {
			return r, true
		}
	}
	return Region{}, false
}

func indexIn(pages []Page, slug string) int {
	for i, p := range pages {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}
