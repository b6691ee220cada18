// Package terminal queries and drives the controlling terminal.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// reservedRows keeps space below the map for the status lines.
	reservedRows = 3
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Viewport returns how many map columns and rows fit in a width×height
// terminal when every tile is drawn two characters wide.
func Viewport(width, height int) (cols, rows int) {
	cols = width / 2
	rows = height - reservedRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Window returns the first tile of a span-long window centered on focus,
// clamped so it stays inside [0, total).
func Window(focus, span, total int) int {
	if span >= total {
		return 0
	}
	start := focus - span/2
	if start < 0 {
		start = 0
	}
	if start+span > total {
		start = total - span
	}
	return start
}

// Home moves the cursor to the top left corner.
func Home(w io.Writer) {
	io.WriteString(w, "\x1b[H")
}

// Clear erases the screen and homes the cursor.
func Clear(w io.Writer) {
	io.WriteString(w, "\x1b[2J\x1b[H")
}

// HideCursor and ShowCursor toggle the cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\x1b[?25l")
}

func ShowCursor(w io.Writer) {
	io.WriteString(w, "\x1b[?25h")
}
