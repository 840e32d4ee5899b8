package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/abyss-dive/internal/config"
	"github.com/iburimskiy/abyss-dive/internal/game"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle), zenity.ErrorIcon)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to TOML config (default $ABYSS_CONFIG or "+config.DefaultConfig+")")
	pick := flag.Bool("pick", false, "choose the config file with a file dialog")
	flag.Parse()

	path, explicit, err := resolveConfigPath(*cfgPath, *pick)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path, !explicit)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tune, err := config.ResolveTuning(cfg)
	if err != nil {
		return fmt.Errorf("resolve tuning: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("config loaded",
		zap.String("path", path),
		zap.String("preset", cfg.Preset),
		zap.Int64("seed", seed),
		zap.Float64("total_depth", tune.TotalDepth))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	g := game.New(cfg, tune, rand.New(rand.NewSource(seed)), log)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// resolveConfigPath picks the config file: dialog, flag, env, then the
// default. explicit reports whether the file must exist.
func resolveConfigPath(flagPath string, pick bool) (string, bool, error) {
	if pick {
		filename, err := zenity.SelectFile(
			zenity.Title("Open Config File"),
			zenity.FileFilters{{
				Name:     "Config",
				Patterns: []string{"*.toml"},
			}},
		)
		if err == nil {
			return filename, true, nil
		}
		if !errors.Is(err, zenity.ErrCanceled) {
			return "", false, fmt.Errorf("select config: %w", err)
		}
	}
	if flagPath != "" {
		return flagPath, true, nil
	}
	if p := os.Getenv("ABYSS_CONFIG"); p != "" {
		return p, true, nil
	}
	return config.DefaultConfig, false, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
