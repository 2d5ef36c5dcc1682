package app

import (
	"io"
	"os"
)

var (
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiSGR0           = []byte("\x1b[0m")
	csiAutoWrapOn     = []byte("\x1b[?7h")
)

// EmergencyReset restores the terminal after a crash while tcell still owns it
// Safe to call with the screen in any state
func EmergencyReset(w io.Writer) {
	for _, seq := range [][]byte{
		csiMouseMotionOff, csiMouseDragOff, csiMouseClickOff, csiMouseSGROff,
		csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn,
	} {
		_, _ = w.Write(seq)
	}

	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
