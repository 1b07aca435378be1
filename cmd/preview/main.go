// Command preview loops one configured animation at its configured delay,
// for checking new GIFs before the pet uses them.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/assets"
	"github.com/milk9111/desktopcat/config"
)

const previewSize = 512

type previewGame struct {
	name    string
	frames  []*ebiten.Image
	delay   time.Duration
	current int
	elapsed time.Duration
	last    time.Time
}

func (g *previewGame) Update() error {
	now := time.Now()
	g.elapsed += now.Sub(g.last)
	g.last = now
	if len(g.frames) <= 1 {
		return nil
	}
	for g.elapsed >= g.delay {
		g.elapsed -= g.delay
		g.current = (g.current + 1) % len(g.frames)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x30, 0x30, 0x30, 0xff})
	if len(g.frames) == 0 {
		return
	}
	fw := g.frames[0].Bounds().Dx()
	fh := g.frames[0].Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((previewSize-fw)/2), float64((previewSize-fh)/2))
	screen.DrawImage(g.frames[g.current], op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  %v", g.name, g.current+1, len(g.frames), g.delay))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in settings")
	assetsDir := flag.String("assets", "", "directory holding the animation GIFs")
	clip := flag.String("clip", "idle", "animation to loop")
	scale := flag.Float64("scale", 0, "scale factor (defaults to the configured scale)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	spec, ok := cfg.Animations[*clip]
	if !ok {
		names := make([]string, 0, len(cfg.Animations))
		for name := range cfg.Animations {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Fatal().Str("clip", *clip).Strs("known", names).Msg("unknown clip")
	}

	dir := config.Resolve(*configPath, cfg.AssetsDir)
	if *assetsDir != "" {
		dir = *assetsDir
	}
	s := cfg.Scale
	if *scale > 0 {
		s = *scale
	}
	frames, err := assets.LoadAnimation(dir, spec.File, spec.Frames, s)
	if err != nil {
		log.Fatal().Err(err).Msg("load animation")
	}
	log.Info().Str("clip", *clip).Int("frames", len(frames)).Dur("delay", spec.Delay()).Msg("previewing")

	g := &previewGame{name: *clip, frames: frames, delay: spec.Delay(), last: time.Now()}
	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("Clip Preview: " + *clip)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
