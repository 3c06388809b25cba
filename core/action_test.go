package core

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestActionLifecycle(t *testing.T) {
	a := Action{Name: "decompile"}
	if a.State() != ActionIdle {
		t.Fatalf("zero action should be idle")
	}
	token, err := a.begin()
	if err != nil || !a.Pending() {
		t.Fatalf("begin: err=%v state=%v", err, a.State())
	}
	if _, err := a.begin(); !errors.Is(err, ErrActionPending) {
		t.Fatalf("second begin err = %v", err)
	}
	if a.Settle(ActionResultMsg{Tag: ActionTag{Action: "other", Token: token}}) {
		t.Fatalf("result for another action must not settle")
	}
	if !a.Settle(ActionResultMsg{Tag: ActionTag{Action: "decompile", Token: token}, Blob: Blob{Text: "ok"}}) {
		t.Fatalf("expected settle")
	}
	if blob, ok := a.Result(); !ok || blob.Text != "ok" || a.State() != ActionResolved {
		t.Fatalf("unexpected result %+v ok=%v state=%v", blob, ok, a.State())
	}
	a.Reset()
	if a.State() != ActionIdle {
		t.Fatalf("reset should return to idle")
	}
	if _, ok := a.Result(); ok {
		t.Fatalf("reset should forget the result")
	}
}

func TestActionRejectAndLateResult(t *testing.T) {
	a := Action{Name: "capture"}
	token, _ := a.begin()
	if !a.Settle(ActionResultMsg{Tag: ActionTag{Action: "capture", Token: token}, Err: errors.New("boom")}) {
		t.Fatalf("expected settle")
	}
	if a.State() != ActionRejected || a.Err() == nil {
		t.Fatalf("state = %v err = %v", a.State(), a.Err())
	}

	stale, _ := a.begin()
	a.Reset()
	if a.Settle(ActionResultMsg{Tag: ActionTag{Action: "capture", Token: stale}}) {
		t.Fatalf("a run cancelled by Reset must not settle")
	}
}

func TestBlobExportable(t *testing.T) {
	if (Blob{Text: "x"}).Exportable() {
		t.Fatalf("blob without filename is not exportable")
	}
	b := Blob{Filename: "a.json", Format: "json", Payload: map[string]int{"a": 1}}
	if !b.Exportable() || b.Job().Filename != "a.json" {
		t.Fatalf("unexpected job %+v", b.Job())
	}
}

func TestSecretDefaultsHiddenAndMasksByRuneCount(t *testing.T) {
	var s Secret
	value := "pässwörd!"
	got := s.Display(value, DefaultMask)
	if got == value || strings.Contains(got, "p") {
		t.Fatalf("hidden secret leaked: %q", got)
	}
	if utf8.RuneCountInString(got) != utf8.RuneCountInString(value) {
		t.Fatalf("mask length %d, want %d", utf8.RuneCountInString(got), utf8.RuneCountInString(value))
	}
	s.Toggle()
	if s.Display(value, DefaultMask) != value || s.Label() != "hide" {
		t.Fatalf("revealed secret should show the value")
	}
	s.Toggle()
	if s.Display(value, '*') != strings.Repeat("*", 9) {
		t.Fatalf("toggled back should mask again")
	}
}

func TestMaskDefaultsRune(t *testing.T) {
	if Mask("abc", 0) != "•••" {
		t.Fatalf("unexpected mask %q", Mask("abc", 0))
	}
	if Mask("", DefaultMask) != "" {
		t.Fatalf("empty value should mask to empty")
	}
}
