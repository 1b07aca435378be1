package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/config"
	"github.com/milk9111/desktopcat/pet"
)

func TestResolvePaths(t *testing.T) {
	cfg := config.Default()
	cases := []struct {
		name       string
		configPath string
		assets     string
		model      string
		want       paths
	}{
		{
			name: "defaults",
			want: paths{Assets: "assets", Model: filepath.Join("models", "miki.tengo"), Profile: filepath.Join("assets", "profile.png")},
		},
		{
			name:       "relative to config",
			configPath: filepath.Join("home", "pet.yaml"),
			want: paths{
				Config:  filepath.Join("home", "pet.yaml"),
				Assets:  filepath.Join("home", "assets"),
				Model:   filepath.Join("home", "models", "miki.tengo"),
				Profile: filepath.Join("home", "assets", "profile.png"),
			},
		},
		{
			name:       "flags win",
			configPath: filepath.Join("home", "pet.yaml"),
			assets:     "/gifs",
			model:      "/m.tengo",
			want:       paths{Config: filepath.Join("home", "pet.yaml"), Assets: "/gifs", Model: "/m.tengo", Profile: filepath.Join("/gifs", "profile.png")},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, resolvePaths(cfg, c.configPath, c.assets, c.model))
		})
	}
}

func TestPetConfig(t *testing.T) {
	cfg := config.Default()
	lib := pet.Library{pet.ClipIdle: {Name: pet.ClipIdle, Frames: 13, Delay: 180 * time.Millisecond}}

	pc := petConfig(cfg, lib, 1920, 1080, 120, 90)
	assert.Equal(t, pet.Position{X: 1920 - 220, Y: 1080 - 130}, pc.Start)
	assert.Equal(t, pet.NewBounds(1920, 1080, 120, 90), pc.Bounds)
	assert.Equal(t, 10, pc.IdleLoops)
	assert.Equal(t, 3, pc.WalkStepsMin)
	assert.Equal(t, 6, pc.WalkStepsMax)
	assert.Equal(t, 3, pc.WalkDelta)
	assert.Equal(t, 2*time.Second, pc.RearmMin)
	assert.Equal(t, 5*time.Second, pc.RearmMax)
	assert.Equal(t, time.Second, pc.PausedRetry)
	assert.Equal(t, lib, pc.Clips)
}

func TestPersonaAndGenerationFromConfig(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, chat.DefaultPersona(), personaFrom(cfg.Persona))
	assert.Equal(t, chat.DefaultGeneration(), generationFrom(cfg.Generation))
}
