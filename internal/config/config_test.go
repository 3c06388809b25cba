package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AEGISDECK_CONFIG", "")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "overview", cfg.UI.DefaultModule)
	require.Equal(t, "•", cfg.UI.MaskRune)
	require.Equal(t, filepath.Join(home, "Downloads"), cfg.Export.Dir)
	require.Equal(t, 400*time.Millisecond, cfg.Sim.MinDelay)
	require.Equal(t, 1500*time.Millisecond, cfg.Sim.MaxDelay)
	require.Zero(t, cfg.Sim.Seed)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
default_module = "Vault"

[sim]
min_delay = "3s"
max_delay = "5s"
seed = 7
`), 0o644))
	t.Setenv("AEGISDECK_CONFIG", path)
	t.Setenv("AEGISDECK_LOG_LEVEL", "debug")

	flags := Flags("test")
	require.NoError(t, flags.Parse([]string{"--export-dir", "/tmp/out"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, "vault", cfg.UI.DefaultModule)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/tmp/out", cfg.Export.Dir)
	require.Equal(t, int64(7), cfg.Sim.Seed)
	require.Equal(t, MaxSimDelay, cfg.Sim.MaxDelay, "max delay is clamped")
	require.Equal(t, MaxSimDelay, cfg.Sim.MinDelay, "min delay never exceeds max")
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AEGISDECK_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoadKeybindingsCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "keybindings.toml")
	defaults := map[string][]string{"quit": {"q"}, "next-module": {"]"}}

	got, err := LoadKeybindings(path, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `next-module = ["]"]`))
}

func TestLoadKeybindingsOverridesNamedActionOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n\n[bindings]\nquit = [\"X\"]\n"), 0o644))

	got, err := LoadKeybindings(path, map[string][]string{"quit": {"q"}, "export": {"e"}})
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got["quit"])
	require.Equal(t, []string{"e"}, got["export"])
}

func TestLoadKeybindingsRejectsUnknownAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n\n[bindings]\nfly = [\"f\"]\n"), 0o644))

	_, err := LoadKeybindings(path, map[string][]string{"quit": {"q"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown action")
}
