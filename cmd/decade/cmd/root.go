package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/decade/config"
	"github.com/rustyeddy/decade/event"
	"github.com/rustyeddy/decade/event/gemini"
	"github.com/rustyeddy/decade/journal"
	"github.com/rustyeddy/decade/sim"
)

var rootCmd = &cobra.Command{
	Use:   "decade",
	Short: "A ten-year personal finance life simulator",
	Long: `Decade is a turn-based personal finance simulator written in Go.

You start at 18 with $5000 and ten years on the clock. Each month you
allocate your time and money across jobs, degrees, markets, bank products
and the occasional casino table, while the simulation moves prices,
accrues interest and throws life events at you.

Complete documentation is available at https://github.com/rustyeddy/decade`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildEngine wires a journal, narrator and engine from the config. The
// returned closer flushes the journal and narrator client.
func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Engine, func(), error) {
	// Optional .env for the narrator API key.
	_ = godotenv.Load()

	var j journal.Journal
	var err error
	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TicksFile, cfg.Journal.MessagesFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		j = journal.Noop{}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("create journal: %w", err)
	}

	var gen event.Generator
	var genClose func() error
	if cfg.Narrator.Enabled {
		key := os.Getenv(cfg.Narrator.KeyEnvVar)
		if key == "" {
			logger.Warn("narrator enabled but API key is not set",
				"env_var", cfg.Narrator.KeyEnvVar)
		} else {
			g, err := gemini.New(ctx, key, cfg.Narrator.Model)
			if err != nil {
				j.Close()
				return nil, nil, fmt.Errorf("create narrator: %w", err)
			}
			gen = g
			genClose = g.Close
		}
	}

	inj := event.NewInjector(gen, time.Duration(cfg.Narrator.TimeoutMS)*time.Millisecond, logger)
	engine := sim.NewEngine(j, inj, logger)
	engine.SetLanguage(cfg.Game.Language)
	if cfg.Game.Seed != 0 {
		engine.SetRand(rand.New(rand.NewSource(cfg.Game.Seed)))
	}

	closer := func() {
		if genClose != nil {
			_ = genClose()
		}
		_ = j.Close()
	}
	return engine, closer, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
