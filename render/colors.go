package render

// UI colors
var (
	RgbBackground   = RGB{0, 0, 0}       // Pages render on black
	RgbText         = RGB{255, 255, 255} // Headline text
	RgbTextMuted    = RGB{156, 163, 175} // Subtitle / labels (gray-400)
	RgbTextDim      = RGB{107, 114, 128} // Stat captions (gray-500)
	RgbPanel        = RGB{17, 24, 39}    // Stat card fill (gray-900)
	RgbCursorDot    = RGB{255, 255, 255} // Primary pointer dot
	RgbCursorHalo   = RGB{128, 128, 128} // Primary pointer blur
	RgbFollower     = RGB{59, 130, 246}  // Follower ring (blue-500)
	RgbFollowerHot  = RGB{236, 72, 153}  // Follower ring while hovering (pink-500)
	RgbTabActiveBg  = RGB{31, 41, 55}    // Active tab fill (gray-800)
	RgbStatusText   = RGB{107, 114, 128} // Debug status line
	RgbAmbientFader = RGB{0, 0, 0}       // Translucent repaint color of the ambient canvas
)
