package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/desktopcat/assets"
	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/config"
	"github.com/milk9111/desktopcat/pet"
)

// paths are the on-disk locations the pet reads at start-up, after flags and
// config-relative resolution.
type paths struct {
	Config  string
	Assets  string
	Model   string
	Profile string
}

func resolvePaths(cfg config.Config, configPath, assetsFlag, modelFlag string) paths {
	p := paths{
		Config: configPath,
		Assets: config.Resolve(configPath, cfg.AssetsDir),
		Model:  config.Resolve(configPath, cfg.ModelPath),
	}
	if assetsFlag != "" {
		p.Assets = assetsFlag
	}
	if modelFlag != "" {
		p.Model = modelFlag
	}
	p.Profile = cfg.ProfileImage
	if p.Profile != "" && !filepath.IsAbs(p.Profile) {
		p.Profile = filepath.Join(p.Assets, p.Profile)
	}
	return p
}

// loadClips decodes every configured animation. Any failure is fatal to the
// caller.
func loadClips(cfg config.Config, dir string) (pet.Library, map[string][]*ebiten.Image, error) {
	names := make([]string, 0, len(cfg.Animations))
	for name := range cfg.Animations {
		names = append(names, name)
	}
	sort.Strings(names)

	lib := make(pet.Library, len(names))
	frames := make(map[string][]*ebiten.Image, len(names))
	for _, name := range names {
		spec := cfg.Animations[name]
		imgs, err := assets.LoadAnimation(dir, spec.File, spec.Frames, cfg.Scale)
		if err != nil {
			return nil, nil, fmt.Errorf("load clip %s: %w", name, err)
		}
		frames[name] = imgs
		lib[name] = pet.Clip{Name: name, Frames: len(imgs), Delay: spec.Delay()}
	}
	return lib, frames, nil
}

func petConfig(cfg config.Config, lib pet.Library, screenW, screenH, spriteW, spriteH int) pet.Config {
	b := cfg.Behavior
	return pet.Config{
		Clips:        lib,
		Bounds:       pet.NewBounds(screenW, screenH, spriteW, spriteH),
		Start:        pet.HomePosition(screenW, screenH, spriteW, spriteH, cfg.Window.MarginX, cfg.Window.MarginY),
		IdleLoops:    b.IdleLoops,
		WalkStepsMin: b.WalkStepsMin,
		WalkStepsMax: b.WalkStepsMax,
		WalkDelta:    b.WalkDelta,
		RearmMin:     b.RearmMin(),
		RearmMax:     b.RearmMax(),
		PausedRetry:  b.PausedRetry(),
	}
}

func personaFrom(p config.PersonaSpec) chat.Persona {
	return chat.Persona{
		Name:         p.Name,
		Description:  p.Description,
		Tagline:      p.Tagline,
		FavoriteFood: p.FavoriteFood,
		HintKeyword:  p.HintKeyword,
		SleepyReply:  p.SleepyReply,
	}
}

func generationFrom(g config.GenerationSpec) chat.Generation {
	return chat.Generation{MaxTokens: g.MaxTokens, Temperature: g.Temperature}
}
