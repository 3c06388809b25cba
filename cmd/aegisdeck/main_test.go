package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeyBindingsWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	bindings, err := keyBindings(path)
	if err != nil {
		t.Fatalf("keyBindings: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults file not written: %v", err)
	}
	found := false
	for _, b := range bindings {
		if b.Action == "quit" && len(b.Keys) > 0 && b.Keys[0] == "q" {
			found = true
		}
	}
	if !found {
		t.Fatalf("quit binding missing from %d bindings", len(bindings))
	}
}

func TestKeyBindingsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	data := "version = 1\n\n[bindings]\nquit = [\"ctrl+q\"]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	bindings, err := keyBindings(path)
	if err != nil {
		t.Fatalf("keyBindings: %v", err)
	}
	for _, b := range bindings {
		if b.Action == "quit" && (len(b.Keys) != 1 || b.Keys[0] != "ctrl+q") {
			t.Fatalf("quit keys = %v", b.Keys)
		}
	}
}
