package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/clipboard"
	"github.com/jask/aegisdeck/internal/config"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/logging"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/store"
	"github.com/jask/aegisdeck/panels"
	"github.com/jask/aegisdeck/screens"
)

func main() {
	ctx := context.Background()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warn: .env: %v", err)
	}

	flags := config.Flags("aegisdeck")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("flags: %v", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := store.OpenMemory()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	records := store.NewRecordRepo(db)
	if err := records.Seed(ctx); err != nil {
		log.Fatalf("seed vault: %v", err)
	}

	engine := sim.New(cfg.Sim.Seed, sim.WithDelay(cfg.Sim.MinDelay, cfg.Sim.MaxDelay))
	deps := panels.Deps{
		Identities: sim.MockIdentities{Engine: engine},
		Sharer:     sim.MockSharer{Engine: engine, Logger: logger.Named("share")},
		Toolkit:    sim.MockToolkit{Engine: engine},
		Records:    records,
		Exporter:   &export.Writer{Dir: cfg.Export.Dir, Logger: logger.Named("export")},
		Clipboard:  clipboard.System{},
		Logger:     logger,
	}

	bindings, err := keyBindings(cfg.Keys.File)
	if err != nil {
		log.Fatalf("keybindings: %v", err)
	}

	mask, _ := utf8.DecodeRuneInString(cfg.UI.MaskRune)
	model := core.NewModel(core.Options{
		Panels:           panels.Specs(deps),
		Keys:             core.NewKeyRegistry(bindings),
		Commands:         core.NewCommandRegistry(nil),
		Logger:           logger,
		Engine:           engine,
		Initial:          cfg.UI.DefaultModule,
		MaskRune:         mask,
		ShowClock:        cfg.UI.ShowClock,
		OpenCommandModal: screens.NewCommandPalette,
		OpenModulePicker: screens.NewModulePicker,
	})
	logger.Info("starting", zap.String("module", cfg.UI.DefaultModule), zap.String("export_dir", cfg.Export.Dir))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

// keyBindings applies the user's keybindings.toml over the defaults.
func keyBindings(path string) ([]core.KeyBinding, error) {
	defaults := core.DefaultKeyBindings()
	actionKeys, err := config.LoadKeybindings(path, core.DefaultKeybindingsByAction(defaults))
	if err != nil {
		return nil, err
	}
	return core.ApplyActionKeybindings(defaults, actionKeys), nil
}
