package main

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/config"
)

type reloadableModel interface {
	Path() string
	Reload() error
}

type settingsSink interface {
	SetPersona(p chat.Persona)
	SetGeneration(g chat.Generation)
}

// reloader applies file changes reported by a config.Watcher: the model
// script is recompiled in place and config edits re-apply persona and
// generation settings on the UI goroutine.
type reloader struct {
	configPath string
	model      reloadableModel
	settings   settingsSink
	ui         chat.Dispatcher
	log        zerolog.Logger
}

// run consumes watcher events until both channels close.
func (r *reloader) run(w *config.Watcher) {
	events, errs := w.Events, w.Errors
	for events != nil || errs != nil {
		select {
		case name, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			r.handle(name)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.log.Warn().Err(err).Msg("watch")
		}
	}
}

func (r *reloader) handle(name string) {
	switch {
	case r.model != nil && config.SameFile(name, r.model.Path()):
		if err := r.model.Reload(); err != nil {
			r.log.Warn().Err(err).Msg("model reload failed, replies will use the fallback")
			return
		}
		r.log.Info().Str("path", name).Msg("model reloaded")
	case r.configPath != "" && config.SameFile(name, r.configPath):
		cfg, err := config.Load(r.configPath)
		if err != nil {
			r.log.Warn().Err(err).Msg("config reload failed, keeping current settings")
			return
		}
		persona, gen := personaFrom(cfg.Persona), generationFrom(cfg.Generation)
		r.ui.Post(func() {
			r.settings.SetPersona(persona)
			r.settings.SetGeneration(gen)
		})
		r.log.Info().Str("path", name).Msg("config reloaded")
	}
}
