package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	// Standard Modes (affect both Fg and Bg)
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)

	// Targeted Modes
	BlendFgOnly  = BlendMode(opReplace | flagFg) // Replace Fg, Keep Bg
	BlendAlphaFg = BlendMode(opAlpha | flagFg)   // Alpha Fg, Keep Bg
	BlendAlphaBg = BlendMode(opAlpha | flagBg)   // Alpha Bg, Keep Fg
)
