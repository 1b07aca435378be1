package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/assets"
	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/config"
	"github.com/milk9111/desktopcat/model"
	"github.com/milk9111/desktopcat/pet"
	"github.com/milk9111/desktopcat/runloop"
)

// maxStep caps how much virtual time one frame may advance, so a stalled
// window does not replay seconds of animation at once.
const maxStep = 250 * time.Millisecond

type Game struct {
	frames int
	debug  bool
	log    zerolog.Logger

	loop   *runloop.Loop
	sched  *pet.Scheduler
	typing *pet.Typing
	chat   *chat.Controller
	chatUI *ChatUI
	sprite *Sprite
	model  *model.Script
	clip   *Clipboard

	input  Input
	clicks clickTracker

	last   time.Time
	window windowPlacer
}

func NewGame(cfg config.Config, p paths, debug bool, log zerolog.Logger) (*Game, error) {
	lib, frames, err := loadClips(cfg, p.Assets)
	if err != nil {
		return nil, err
	}
	sprite, err := NewSprite(frames)
	if err != nil {
		return nil, err
	}

	screenW, screenH := ebiten.Monitor().Size()
	spriteW, spriteH := sprite.Size()

	loop := runloop.New()
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	pcfg := petConfig(cfg, lib, screenW, screenH, spriteW, spriteH)
	sched, err := pet.NewScheduler(pcfg, loop, sprite, rng, log)
	if err != nil {
		return nil, err
	}
	typing := pet.NewTyping(sched, cfg.Behavior.TypingCadence())

	script := model.Open(p.Model, log)

	profile, ok := assets.LoadProfileImage(p.Profile, cfg.ProfileSize)
	if !ok {
		log.Info().Str("path", p.Profile).Msg("no profile image, showing placeholder")
	}
	chatUI := NewChatUI(cfg.Chat, profile)

	ctrl := chat.NewController(chat.Options{
		Title:      cfg.Chat.Title,
		Persona:    personaFrom(cfg.Persona),
		Generation: generationFrom(cfg.Generation),
	}, chatUI, typing, script, loop, log)

	g := &Game{
		debug:  debug,
		log:    log,
		loop:   loop,
		sched:  sched,
		typing: typing,
		chat:   ctrl,
		chatUI: chatUI,
		sprite: sprite,
		model:  script,
		clip:   &Clipboard{},
		last:   time.Now(),
		window: windowPlacer{win: ebitenWindow{}, title: cfg.Chat.Title},
	}
	sched.Start()
	g.place()
	log.Info().
		Int("screen_w", screenW).Int("screen_h", screenH).
		Int("sprite_w", spriteW).Int("sprite_h", spriteH).
		Bool("model_ready", script.Ready()).
		Msg("pet started")
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	if ebiten.IsWindowBeingClosed() {
		g.shutdown()
		return ebiten.Termination
	}

	now := time.Now()
	dt := min(now.Sub(g.last), maxStep)
	g.last = now

	g.input.Update()
	g.handleInput()
	g.chatUI.Update()
	g.loop.Advance(dt)
	g.place()
	return nil
}

func (g *Game) handleInput() {
	in := g.input
	if in.ClosePressed && g.chat.Current() != nil {
		g.chat.Close()
	}
	if in.CopyPressed {
		g.copyLastReply()
	}
	if in.ClickPressed && g.sprite.Hit(in.CursorX, in.CursorY, g.window.layout.SpriteX, g.window.layout.SpriteY) {
		if g.clicks.press(g.loop.Now(), in.CursorX, in.CursorY) {
			if _, err := g.chat.Open(); err != nil {
				g.log.Error().Err(err).Msg("open chat")
			}
		}
	} else if in.ClickPressed {
		g.clicks.reset()
	}
}

func (g *Game) copyLastReply() {
	s := g.chat.Current()
	if s == nil {
		return
	}
	reply, ok := s.LastReply()
	if !ok {
		return
	}
	if !g.clip.Copy(reply) {
		g.log.Debug().Msg("clipboard unavailable")
		return
	}
	g.log.Debug().Int("len", len(reply)).Msg("copied reply")
}

// place moves and resizes the OS window to follow the sprite and make room
// for the chat panel.
func (g *Game) place() {
	w, h := g.sprite.Size()
	pw, ph := g.chatUI.PanelSize()
	l := layoutWindow(g.sprite.Position(), w, h, pw, ph, g.chatUI.Open())
	g.window.apply(l)
	g.chatUI.SetSide(l.PanelLeft)
}

func (g *Game) shutdown() {
	g.chat.Close()
	g.sched.Stop()
	g.log.Info().Msg("pet stopped")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Clear()
	g.sprite.Draw(screen, g.window.layout.SpriteX, g.window.layout.SpriteY)
	g.chatUI.Draw(screen)

	if g.debug {
		clip, frame := g.sprite.Current()
		msg := fmt.Sprintf("FPS: %.1f\n%s #%d\n%s\nmodel: %t clipboard: %t",
			ebiten.ActualFPS(), clip, frame, g.typing.Mode(), g.model.Ready(), g.clip.IsAvailable())
		ebitenutil.DebugPrintAt(screen, msg, g.window.layout.SpriteX, g.window.layout.SpriteY)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
