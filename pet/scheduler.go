// Package pet drives the sprite: it picks autonomous actions, plays them frame
// by frame on the run loop and yields the display to typing mode while a chat
// is open.
package pet

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/runloop"
)

// Config holds the scheduler's tunables.
type Config struct {
	Clips  Library
	Bounds Bounds
	Start  Position

	IdleLoops    int
	WalkStepsMin int
	WalkStepsMax int
	WalkDelta    int

	RearmMin    time.Duration
	RearmMax    time.Duration
	PausedRetry time.Duration

	// OnAction, when set, is called with every action the scheduler starts.
	OnAction func(Action)
}

func (c *Config) setDefaults() {
	if c.IdleLoops <= 0 {
		c.IdleLoops = 10
	}
	if c.WalkStepsMin <= 0 {
		c.WalkStepsMin = 3
	}
	if c.WalkStepsMax < c.WalkStepsMin {
		c.WalkStepsMax = max(c.WalkStepsMin, 6)
	}
	if c.WalkDelta == 0 {
		c.WalkDelta = 3
	}
	if c.WalkDelta < 0 {
		c.WalkDelta = -c.WalkDelta
	}
	if c.RearmMin <= 0 {
		c.RearmMin = 2 * time.Second
	}
	if c.RearmMax < c.RearmMin {
		c.RearmMax = max(c.RearmMin, 5*time.Second)
	}
	if c.PausedRetry <= 0 {
		c.PausedRetry = time.Second
	}
}

// Scheduler owns the pet's position, its action bag and the paused flag.
// Every method must run on the run loop's goroutine.
type Scheduler struct {
	cfg    Config
	timers Timers
	render Renderer
	rng    *rand.Rand
	bag    *Bag
	log    zerolog.Logger

	pos       Position
	paused    bool
	current   *playback
	nextTimer runloop.TimerID
	started   bool
}

func NewScheduler(cfg Config, timers Timers, render Renderer, rng *rand.Rand, log zerolog.Logger) (*Scheduler, error) {
	if timers == nil || render == nil {
		return nil, errors.New("pet: scheduler needs timers and a renderer")
	}
	if rng == nil {
		return nil, errors.New("pet: scheduler needs a random source")
	}
	if err := cfg.Clips.Validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &Scheduler{
		cfg:    cfg,
		timers: timers,
		render: render,
		rng:    rng,
		bag:    NewBag(rng),
		log:    log.With().Str("component", "scheduler").Logger(),
		pos:    cfg.Bounds.Clamp(cfg.Start),
	}, nil
}

// Start places the pet, shows one idle cycle and arms the first action.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true
	s.render.MoveTo(s.pos)
	s.play([]Segment{{Clip: s.cfg.Clips[ClipIdle], Repeat: 1}}, nil)
	s.arm(s.rearmDelay())
}

// Stop cancels the pending action and any running playback.
func (s *Scheduler) Stop() {
	s.started = false
	s.timers.Cancel(s.nextTimer)
	s.nextTimer = 0
	if pb := s.current; pb != nil {
		s.timers.Cancel(pb.timer)
		s.current = nil
	}
}

func (s *Scheduler) Position() Position { return s.pos }

func (s *Scheduler) Paused() bool { return s.paused }

// Busy reports whether a playback is in progress.
func (s *Scheduler) Busy() bool { return s.current != nil }

// Bag exposes the action bag for inspection.
func (s *Scheduler) Bag() *Bag { return s.bag }

// NextAction picks and runs the next action. It is normally invoked by its own
// timer; calling it directly replaces the pending one.
func (s *Scheduler) NextAction() {
	s.timers.Cancel(s.nextTimer)
	s.nextTimer = 0
	if s.paused || s.current != nil {
		s.arm(s.cfg.PausedRetry)
		return
	}
	a := s.bag.Draw()
	s.log.Debug().Stringer("action", a).Int("left", s.bag.Len()).Msg("next action")
	if s.cfg.OnAction != nil {
		s.cfg.OnAction(a)
	}
	s.play(s.routine(a), func(aborted bool) {
		if aborted {
			s.log.Debug().Stringer("action", a).Msg("action interrupted")
		}
		s.arm(s.rearmDelay())
	})
}

func (s *Scheduler) arm(d time.Duration) {
	s.timers.Cancel(s.nextTimer)
	s.nextTimer = s.timers.After(d, s.NextAction)
}

func (s *Scheduler) rearmDelay() time.Duration {
	span := int64(s.cfg.RearmMax - s.cfg.RearmMin)
	return s.cfg.RearmMin + time.Duration(s.rng.Int64N(span+1))
}

func (s *Scheduler) routine(a Action) []Segment {
	clips := s.cfg.Clips
	idle := Segment{Clip: clips[ClipIdle], Repeat: s.cfg.IdleLoops}
	switch a {
	case ActionWalkLeft, ActionWalkRight:
		clip, dx := clips[ClipWalkLeft], -s.cfg.WalkDelta
		if a == ActionWalkRight {
			clip, dx = clips[ClipWalkRight], s.cfg.WalkDelta
		}
		steps := s.cfg.WalkStepsMin + s.rng.IntN(s.cfg.WalkStepsMax-s.cfg.WalkStepsMin+1)
		return []Segment{{Clip: clip, DX: dx, Repeat: steps}, idle}
	case ActionEat:
		return []Segment{
			{Clip: clips[ClipEat], Repeat: 1},
			{Clip: clips[ClipEatToIdle], Repeat: 1},
			idle,
		}
	case ActionSleep:
		return []Segment{
			{Clip: clips[ClipIdleToSleep], Repeat: 1},
			{Clip: clips[ClipSleep], Repeat: 1},
			{Clip: clips[ClipSleepToIdle], Repeat: 1},
			idle,
		}
	default:
		return []Segment{idle}
	}
}

func (s *Scheduler) play(segments []Segment, done func(aborted bool)) {
	if s.current != nil {
		s.finish(s.current, true)
	}
	pb := &playback{segments: segments, done: done}
	s.current = pb
	s.step(pb)
}

// step renders one frame and schedules the next. Pausing is checked before
// every frame so an action stops within one frame interval.
func (s *Scheduler) step(pb *playback) {
	pb.timer = 0
	if s.current != pb {
		return
	}
	if s.paused {
		s.finish(pb, true)
		return
	}
	seg, ok := pb.next()
	if !ok {
		s.finish(pb, false)
		return
	}
	s.render.ShowFrame(seg.Clip.Name, pb.frame)
	if seg.DX != 0 {
		s.pos = s.cfg.Bounds.Step(s.pos, seg.DX)
		s.render.MoveTo(s.pos)
	}
	pb.advance(seg)
	pb.timer = s.timers.After(seg.Clip.Delay, func() { s.step(pb) })
}

func (s *Scheduler) finish(pb *playback, aborted bool) {
	s.timers.Cancel(pb.timer)
	pb.timer = 0
	if s.current == pb {
		s.current = nil
	}
	if pb.done != nil {
		done := pb.done
		pb.done = nil
		done(aborted)
	}
}

// setPaused is the paused flag's only writer and is called by Typing. Pausing
// aborts the running action and leaves its last frame on screen.
func (s *Scheduler) setPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	s.log.Debug().Bool("paused", paused).Msg("pause changed")
	if paused && s.current != nil {
		s.finish(s.current, true)
	}
}

// restore shows one idle cycle unless an action is already playing.
func (s *Scheduler) restore() {
	if s.current != nil {
		return
	}
	s.play([]Segment{{Clip: s.cfg.Clips[ClipIdle], Repeat: 1}}, nil)
}
