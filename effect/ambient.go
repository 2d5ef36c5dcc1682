package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/vmath"
)

// Node is one drifting point of the ambient graph
type Node struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

// Link connects two nodes closer than the link distance
type Link struct {
	A, B    int
	Dist    float64
	Opacity float64
}

// AmbientField is the background node graph
type AmbientField struct {
	nodes []Node
	links []Link
}

// NewAmbientField seeds n nodes uniformly over [0,w)×[0,h) with velocities in [-speed, speed)
func NewAmbientField(n int, w, h, speed float64, rng *rand.Rand) *AmbientField {
	f := &AmbientField{nodes: make([]Node, n)}
	for i := range f.nodes {
		f.nodes[i] = Node{
			Pos: vmath.V(rng.Float64()*w, rng.Float64()*h),
			Vel: vmath.V((rng.Float64()*2-1)*speed, (rng.Float64()*2-1)*speed),
		}
	}
	return f
}

// Step integrates every node once and reflects escaped velocity components inward
// Bounds are read per call so a resize corrects escaped nodes on the next frame
func (f *AmbientField) Step(w, h float64) {
	for i := range f.nodes {
		n := &f.nodes[i]
		n.Pos = n.Pos.Add(n.Vel)
		n.Vel.X = vmath.ReflectInward(n.Pos.X, n.Vel.X, w)
		n.Vel.Y = vmath.ReflectInward(n.Pos.Y, n.Vel.Y, h)
	}
}

// LinkOpacity returns the opacity of a link of length d
func LinkOpacity(d, base, falloff float64) float64 {
	return math.Max(0, base-d/falloff)
}

// Links returns every unordered pair closer than maxDist
// The returned slice is reused by the next call
func (f *AmbientField) Links(maxDist, base, falloff float64) []Link {
	f.links = f.links[:0]
	maxSq := maxDist * maxDist
	for i := 0; i < len(f.nodes); i++ {
		for j := i + 1; j < len(f.nodes); j++ {
			dSq := f.nodes[i].Pos.Sub(f.nodes[j].Pos).LenSq()
			if dSq >= maxSq {
				continue
			}
			d := math.Sqrt(dSq)
			f.links = append(f.links, Link{A: i, B: j, Dist: d, Opacity: LinkOpacity(d, base, falloff)})
		}
	}
	return f.links
}

// Draw paints the translucent fade, then links, then nodes
func (f *AmbientField) Draw(c Canvas, cfg Config) {
	c.Fade(cfg.FadeColor, cfg.FadeAlpha)
	for _, l := range f.Links(cfg.LinkDistance, cfg.LinkOpacity, cfg.LinkFalloff) {
		a, b := f.nodes[l.A].Pos, f.nodes[l.B].Pos
		if l.Opacity > 0 {
			c.Line(a.X, a.Y, b.X, b.Y, cfg.NodeColor, l.Opacity)
		}
	}
	for _, n := range f.nodes {
		c.Disc(n.Pos.X, n.Pos.Y, parameter.AmbientNodeRadius, cfg.NodeColor, 1, false)
	}
}

// Len returns the node count
func (f *AmbientField) Len() int {
	return len(f.nodes)
}

// Nodes returns a copy of the nodes
func (f *AmbientField) Nodes() []Node {
	return append([]Node(nil), f.nodes...)
}
