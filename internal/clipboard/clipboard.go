// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer puts text on a clipboard.
type Writer interface {
	Copy(text string) error
}

// System writes through the OS clipboard and falls back to an OSC52 escape
// sequence when no clipboard utility is available (ssh sessions, bare ttys).
type System struct {
	// Out receives OSC52 sequences; defaults to stderr.
	Out io.Writer
}

func (s System) Copy(text string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	out := s.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	} else if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard.
type Memory struct {
	Last string
	Err  error
}

func (m *Memory) Copy(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Last = text
	return nil
}
