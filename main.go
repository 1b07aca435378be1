package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/config"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in settings")
	assetsDir := flag.String("assets", "", "directory holding the animation GIFs (overrides assets_dir)")
	modelPath := flag.String("model", "", "tengo model script (overrides model_path)")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(log, err)
	}
	p := resolvePaths(cfg, *configPath, *assetsDir, *modelPath)

	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(cfg, p, *debug, log)
	if err != nil {
		fatal(log, err)
	}

	if w, err := config.NewWatcher(config.DefaultSettle, p.Model, p.Config); err != nil {
		log.Warn().Err(err).Msg("hot reload disabled")
	} else {
		defer w.Close()
		r := &reloader{configPath: p.Config, model: game.model, settings: game.chat, ui: game.loop, log: log.With().Str("component", "reload").Logger()}
		go r.run(w)
	}

	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}

// fatal reports a start-up failure in a window of its own and exits non-zero.
func fatal(log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("startup failed")
	ebiten.SetWindowTitle("desktopcat")
	ebiten.SetWindowSize(errorWidth, errorHeight)
	if runErr := ebiten.RunGame(newErrorScreen(err)); runErr != nil {
		log.Error().Err(runErr).Msg("error window")
	}
	os.Exit(1)
}
