// Package glitch computes pointer-reactive jitter for text near the observed pointer
package glitch

import (
	"math/rand/v2"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/vmath"
)

// Rune is the displacement and opacity of one character
type Rune struct {
	Offset  float64
	Opacity float64
}

// Params tunes the reaction
type Params struct {
	Radius    float64
	Amplitude float64
	Dim       float64
}

// DefaultParams returns the reference tuning
func DefaultParams() Params {
	return Params{
		Radius:    parameter.GlitchRadius,
		Amplitude: parameter.GlitchAmplitude,
		Dim:       parameter.GlitchDim,
	}
}

// Force returns the reaction strength in [0, 1] for a rune at distance d
func (p Params) Force(d float64) float64 {
	if d >= p.Radius || p.Radius <= 0 {
		return 0
	}
	return (p.Radius - d) / p.Radius
}

// Apply fills out with one Rune per character of text laid out from (x, y)
// Character i sits at x + (i+0.5)*cellW; out is grown as needed and returned
func (p Params) Apply(out []Rune, text string, x, y, cellW float64, pointer vmath.Vec2, rng *rand.Rand) []Rune {
	out = out[:0]
	i := 0
	for range text {
		center := vmath.V(x+(float64(i)+0.5)*cellW, y)
		g := Rune{Opacity: 1}
		if f := p.Force(vmath.Distance(center, pointer)); f > 0 {
			g.Offset = f * (rng.Float64() - 0.5) * p.Amplitude
			g.Opacity = 1 - f*p.Dim
		}
		out = append(out, g)
		i++
	}
	return out
}
