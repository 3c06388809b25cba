package widgets

import (
	"strings"
	"testing"
)

func TestPopupOverKeepsUncoveredBaseRows(t *testing.T) {
	base := strings.Join([]string{
		"row-0...........................",
		"row-1...........................",
		"row-2...........................",
		"row-3...........................",
		"row-4...........................",
		"row-5...........................",
		"row-6...........................",
		"row-7...........................",
		"row-8...........................",
		"row-9...........................",
		"row-10..........................",
	}, "\n")
	out := Popup{Body: "Popup"}.Over(base, 32, 11)
	lines := strings.Split(out, "\n")
	if len(lines) != 11 {
		t.Fatalf("line count = %d, want 11", len(lines))
	}
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[10], "row-10") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[10])
	}
}

func TestPopupOverShowsTitle(t *testing.T) {
	out := Popup{Title: "Add vault item", Body: "title"}.Over("", 40, 12)
	if !strings.Contains(out, "Add vault item") {
		t.Fatalf("expected title in popup")
	}
}

func TestPopupOverZeroSize(t *testing.T) {
	if got := (Popup{Body: "x"}).Over("base", 0, 10); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
