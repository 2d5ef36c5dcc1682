//go:build !linux

package app

// resetTerminalMode is a no-op where termios ioctls differ, tcell's Fini restores the mode
func resetTerminalMode() {}
