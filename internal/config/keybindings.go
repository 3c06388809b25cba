package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

const keybindingsVersion = 1

// KeybindingsFile is the on-disk shape of keybindings.toml.
type KeybindingsFile struct {
	Version  int                 `toml:"version"`
	Bindings map[string][]string `toml:"bindings"`
}

// LoadKeybindings merges the action -> keys overrides in path over defaults.
// The file is created from defaults when missing and rewritten when the merge
// adds actions it lacked. An empty path returns the defaults.
func LoadKeybindings(path string, defaults map[string][]string) (map[string][]string, error) {
	defaults = cleanBindings(defaults)
	if strings.TrimSpace(path) == "" {
		return defaults, nil
	}

	file, err := readKeybindings(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaults, writeKeybindings(path, defaults)
	}
	if err != nil {
		return nil, err
	}
	if file.Version == 0 {
		file.Version = keybindingsVersion
	}
	if file.Version != keybindingsVersion {
		return nil, fmt.Errorf("validate %s: unsupported version %d", path, file.Version)
	}

	merged := maps.Clone(defaults)
	for action, keys := range file.Bindings {
		action = strings.TrimSpace(action)
		if err := checkOverride(action, keys, defaults); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
		merged[action] = lowerKeys(keys)
	}
	if !maps.EqualFunc(file.Bindings, merged, func(a, b []string) bool { return slices.Equal(a, b) }) {
		if err := writeKeybindings(path, merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func checkOverride(action string, keys []string, defaults map[string][]string) error {
	if !isValidActionID(action) {
		return fmt.Errorf("invalid action %q", action)
	}
	if _, ok := defaults[action]; !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	if len(keys) == 0 {
		return fmt.Errorf("action %q: keys are required", action)
	}
	if slices.ContainsFunc(keys, func(k string) bool { return strings.TrimSpace(k) == "" }) {
		return fmt.Errorf("action %q: key cannot be empty", action)
	}
	return nil
}

func readKeybindings(path string) (KeybindingsFile, error) {
	var file KeybindingsFile
	if _, err := os.Stat(path); err != nil {
		return file, err
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

func writeKeybindings(path string, bindings map[string][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create keybindings dir: %w", err)
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(KeybindingsFile{Version: keybindingsVersion, Bindings: bindings}); err != nil {
		return fmt.Errorf("encode keybindings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// cleanBindings drops invalid action ids and blank keys, lowercasing the rest.
func cleanBindings(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for action, keys := range in {
		action = strings.TrimSpace(action)
		keys = lowerKeys(slices.DeleteFunc(slices.Clone(keys), func(k string) bool { return strings.TrimSpace(k) == "" }))
		if isValidActionID(action) && len(keys) > 0 {
			out[action] = keys
		}
	}
	return out
}

func lowerKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = strings.ToLower(strings.TrimSpace(k))
	}
	return out
}

// isValidActionID accepts letters and digits joined by single inner hyphens.
func isValidActionID(action string) bool {
	if action == "" || strings.HasPrefix(action, "-") || strings.HasSuffix(action, "-") {
		return false
	}
	for _, ch := range action {
		if ch != '-' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}
