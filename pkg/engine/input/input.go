package input

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// TerminalReader turns raw terminal bytes into RawInput events.
// Terminals only report presses, so consumers treat each event as a short hold.
type TerminalReader struct {
	in       io.Reader
	fd       int
	oldState *term.State
}

// NewTerminalReader reads from stdin.
func NewTerminalReader() *TerminalReader {
	return &TerminalReader{in: os.Stdin, fd: int(os.Stdin.Fd())}
}

// newReader reads from an arbitrary stream without touching terminal modes.
func newReader(in io.Reader) *TerminalReader {
	return &TerminalReader{in: in, fd: -1}
}

// Start switches the terminal to raw mode and emits events until ctx is done
// or the input ends. The channel is closed when reading stops.
func (r *TerminalReader) Start(ctx context.Context) (<-chan RawInput, error) {
	if r.fd >= 0 && term.IsTerminal(r.fd) {
		state, err := term.MakeRaw(r.fd)
		if err != nil {
			return nil, err
		}
		r.oldState = state
	}

	out := make(chan RawInput, 64)
	go func() {
		defer close(out)
		br := bufio.NewReader(r.in)
		for {
			code, err := readCode(br)
			if err != nil {
				return
			}
			if code == "" {
				continue
			}
			select {
			case out <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Restore returns the terminal to the mode it had before Start.
func (r *TerminalReader) Restore() {
	if r.oldState != nil {
		term.Restore(r.fd, r.oldState)
		r.oldState = nil
	}
}

// readCode decodes one key press. Arrow keys arrive as ESC [ X or ESC O X.
// Ctrl+C maps to "q".
func readCode(br *bufio.Reader) (string, error) {
	b1, err := br.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b1 == 0x1b:
		if br.Buffered() == 0 {
			return "escape", nil
		}
		b2, err := br.ReadByte()
		if err != nil {
			return "escape", nil
		}
		if b2 != '[' && b2 != 'O' {
			return "escape", nil
		}
		b3, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		switch b3 {
		case 'A':
			return "arrow_up", nil
		case 'B':
			return "arrow_down", nil
		case 'C':
			return "arrow_right", nil
		case 'D':
			return "arrow_left", nil
		}
		// Unknown escape sequence - discard it
		return "", nil
	case b1 == 3:
		return "q", nil
	case b1 >= 'A' && b1 <= 'Z':
		return string(rune(b1 - 'A' + 'a')), nil
	case b1 >= 32 && b1 < 127:
		return string(rune(b1)), nil
	default:
		return "", nil
	}
}
