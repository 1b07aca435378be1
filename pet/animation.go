package pet

import (
	"fmt"
	"time"

	"github.com/milk9111/desktopcat/runloop"
)

// Clip names the scheduler and typing mode expect in a Library.
const (
	ClipIdle        = "idle"
	ClipIdleToSleep = "idle_to_sleep"
	ClipSleep       = "sleep"
	ClipSleepToIdle = "sleep_to_idle"
	ClipEat         = "eat"
	ClipEatToIdle   = "eat_to_idle"
	ClipWalkLeft    = "walk_left"
	ClipWalkRight   = "walk_right"
	ClipTyping      = "typing"
)

var requiredClips = []string{
	ClipIdle, ClipIdleToSleep, ClipSleep, ClipSleepToIdle,
	ClipEat, ClipEatToIdle, ClipWalkLeft, ClipWalkRight, ClipTyping,
}

// Clip describes a loaded animation: how many frames it has and how long each
// frame stays on screen. The frames themselves live with the Renderer.
type Clip struct {
	Name   string
	Frames int
	Delay  time.Duration
}

// Library maps clip names to clips.
type Library map[string]Clip

// Validate checks that every clip the pet plays is present and non-empty.
func (l Library) Validate() error {
	for _, name := range requiredClips {
		c, ok := l[name]
		if !ok {
			return fmt.Errorf("pet: missing clip %q", name)
		}
		if c.Frames <= 0 {
			return fmt.Errorf("pet: clip %q has no frames", name)
		}
		if c.Delay <= 0 {
			return fmt.Errorf("pet: clip %q has non-positive delay %v", name, c.Delay)
		}
	}
	return nil
}

// Renderer displays frames and moves the pet window.
type Renderer interface {
	ShowFrame(clip string, frame int)
	MoveTo(p Position)
}

// Timers is the subset of runloop.Loop the pet needs.
type Timers interface {
	After(d time.Duration, fn func()) runloop.TimerID
	Cancel(id runloop.TimerID) bool
}

// Segment plays a clip Repeat times, translating the pet by DX pixels on every
// frame.
type Segment struct {
	Clip   Clip
	DX     int
	Repeat int
}

// playback steps through segments one frame per timer tick.
type playback struct {
	segments []Segment
	seg      int
	rep      int
	frame    int
	timer    runloop.TimerID
	done     func(aborted bool)
}

// next returns the segment holding the next frame, skipping exhausted or empty
// segments.
func (pb *playback) next() (Segment, bool) {
	for pb.seg < len(pb.segments) {
		s := pb.segments[pb.seg]
		if pb.rep < s.Repeat && s.Clip.Frames > 0 {
			return s, true
		}
		pb.seg++
		pb.rep = 0
		pb.frame = 0
	}
	return Segment{}, false
}

// advance moves past the frame just rendered.
func (pb *playback) advance(s Segment) {
	pb.frame++
	if pb.frame >= s.Clip.Frames {
		pb.frame = 0
		pb.rep++
	}
}
