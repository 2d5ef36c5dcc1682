package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined default color
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Over composites src with coverage srcA over dst with coverage dstA (Porter-Duff source-over)
// Returns the resulting color and coverage; a fully transparent result keeps dst
func Over(dst RGB, dstA float64, src RGB, srcA float64) (RGB, float64) {
	if srcA <= 0 {
		return dst, dstA
	}
	if srcA >= 1 {
		return src, 1
	}
	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		return dst, 0
	}
	k := dstA * (1 - srcA)
	return RGB{
		R: clamp((float64(src.R)*srcA + float64(dst.R)*k) / outA),
		G: clamp((float64(src.G)*srcA + float64(dst.G)*k) / outA),
		B: clamp((float64(src.B)*srcA + float64(dst.B)*k) / outA),
	}, outA
}

// Scale multiplies all channels by factor (0.0-1.0)
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: clamp(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: clamp(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Luma returns perceived brightness in [0, 1] (Rec. 601)
func Luma(c RGB) float64 {
	return (float64(c.R)*0.299 + float64(c.G)*0.587 + float64(c.B)*0.114) / 255.0
}

// ParseHex parses "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustHex is ParseHex for compile-time palettes, panics on malformed input
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Glow returns a lighter tint of c used for halo cells, mixed in Lab space for even perceived lightness
func Glow(c RGB, amount float64) RGB {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := base.BlendLab(white, amount).Clamped().RGB255()
	return RGB{r, g, b}
}
