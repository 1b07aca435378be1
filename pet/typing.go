package pet

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/desktopcat/runloop"
)

// Mode is the pet's display mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeTyping
)

func (m Mode) String() string {
	if m == ModeTyping {
		return "typing"
	}
	return "normal"
}

// Typing takes over the display while a chat is open, looping the typing clip
// and keeping the scheduler paused.
type Typing struct {
	s       *Scheduler
	clip    Clip
	cadence time.Duration
	log     zerolog.Logger

	mode  Mode
	frame int
	timer runloop.TimerID
}

// NewTyping binds typing mode to a scheduler. A non-positive cadence falls
// back to 120ms.
func NewTyping(s *Scheduler, cadence time.Duration) *Typing {
	if cadence <= 0 {
		cadence = 120 * time.Millisecond
	}
	return &Typing{
		s:       s,
		clip:    s.cfg.Clips[ClipTyping],
		cadence: cadence,
		log:     s.log.With().Str("component", "typing").Logger(),
	}
}

func (t *Typing) Mode() Mode { return t.mode }

// Enter pauses the scheduler and starts the typing loop. Entering while
// already typing does nothing.
func (t *Typing) Enter() {
	if t.mode == ModeTyping {
		return
	}
	t.mode = ModeTyping
	t.s.setPaused(true)
	t.frame = 0
	t.log.Debug().Msg("enter typing")
	t.tick()
}

// Exit stops the typing loop, resumes the scheduler and shows one idle cycle.
// Exiting while not typing does nothing.
func (t *Typing) Exit() {
	if t.mode != ModeTyping {
		return
	}
	t.mode = ModeNormal
	t.StopLoop()
	t.s.setPaused(false)
	t.log.Debug().Msg("exit typing")
	t.s.restore()
}

// StopLoop cancels the pending typing frame, if any. It is safe to call any
// number of times.
func (t *Typing) StopLoop() {
	t.s.timers.Cancel(t.timer)
	t.timer = 0
}

func (t *Typing) tick() {
	t.timer = 0
	if t.mode != ModeTyping {
		return
	}
	t.s.render.ShowFrame(t.clip.Name, t.frame)
	t.frame = (t.frame + 1) % t.clip.Frames
	t.timer = t.s.timers.After(t.cadence, t.tick)
}
