package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI     UIConfig
	Sim    SimConfig
	Export ExportConfig
	Log    LogConfig
	Keys   KeysConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultModule string `mapstructure:"default_module"`
	MaskRune      string `mapstructure:"mask_rune"`
	ShowClock     bool   `mapstructure:"show_clock"`
}

// SimConfig bounds the artificial latency and seeds the random source.
// A zero seed means time-seeded.
type SimConfig struct {
	MinDelay time.Duration `mapstructure:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
	Seed     int64
}

// ExportConfig controls where "downloads" land.
type ExportConfig struct {
	Dir string
}

// LogConfig holds logger settings.
type LogConfig struct {
	File  string
	Level string
}

// KeysConfig points at an optional keybinding override file.
type KeysConfig struct {
	File string
}

// Load reads configuration from file, env and flags. Env var overrides use prefix AEGISDECK_.
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("ui.default_module", "overview")
	v.SetDefault("ui.mask_rune", "•")
	v.SetDefault("ui.show_clock", true)
	v.SetDefault("sim.min_delay", 400*time.Millisecond)
	v.SetDefault("sim.max_delay", 1500*time.Millisecond)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("export.dir", filepath.Join(home, "Downloads"))
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "aegisdeck", "aegisdeck.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("keys.file", filepath.Join(home, ".config", "aegisdeck", "keybindings.toml"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("AEGISDECK_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "aegisdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AEGISDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

// Flags registers the command line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to config.toml")
	fs.String("module", "", "module to open on start (overview, identity, vault, ...)")
	fs.Int64("seed", 0, "seed for simulated results (0 = time based)")
	fs.String("export-dir", "", "directory exports are written to")
	fs.String("log-file", "", "path of the log file")
	return fs
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	binds := map[string]string{
		"ui.default_module": "module",
		"sim.seed":          "seed",
		"export.dir":        "export-dir",
		"log.file":          "log-file",
	}
	for key, name := range binds {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	if c.Sim.MinDelay < 0 {
		c.Sim.MinDelay = 0
	}
	if c.Sim.MaxDelay > MaxSimDelay {
		c.Sim.MaxDelay = MaxSimDelay
	}
	if c.Sim.MinDelay > c.Sim.MaxDelay {
		c.Sim.MinDelay = c.Sim.MaxDelay
	}
	if strings.TrimSpace(c.UI.MaskRune) == "" {
		c.UI.MaskRune = "•"
	}
	c.UI.DefaultModule = strings.ToLower(strings.TrimSpace(c.UI.DefaultModule))
}

// MaxSimDelay caps any configured artificial delay.
const MaxSimDelay = 2 * time.Second
