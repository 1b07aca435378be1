// Package runloop is the single-threaded timer queue that paces everything on
// the UI goroutine. Time is virtual: the owner advances it once per tick, which
// keeps animation pacing deterministic under test.
package runloop

import (
	"container/heap"
	"sync"
	"time"
)

// TimerID identifies a scheduled callback. The zero value never refers to a
// live timer.
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Duration
	seq      uint64
	fn       func()
	index    int
}

// Loop runs callbacks scheduled with After once enough time has been advanced.
// After, Cancel and Advance must be called from the owning goroutine; Post is
// safe from any goroutine.
type Loop struct {
	now    time.Duration
	seq    uint64
	nextID TimerID
	queue  timerHeap
	byID   map[TimerID]*timer

	mu     sync.Mutex
	posted []func()
}

func New() *Loop {
	return &Loop{byID: make(map[TimerID]*timer)}
}

// Now returns the loop's virtual clock.
func (l *Loop) Now() time.Duration {
	return l.now
}

// After schedules fn to run once d has elapsed. Negative delays run on the
// next Advance.
func (l *Loop) After(d time.Duration, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	l.nextID++
	l.seq++
	t := &timer{id: l.nextID, deadline: l.now + d, seq: l.seq, fn: fn}
	heap.Push(&l.queue, t)
	l.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer. It reports whether a timer was removed;
// cancelling an unknown, fired or already cancelled timer is a no-op.
func (l *Loop) Cancel(id TimerID) bool {
	t, ok := l.byID[id]
	if !ok {
		return false
	}
	delete(l.byID, id)
	heap.Remove(&l.queue, t.index)
	return true
}

// Pending returns the number of scheduled timers.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Post queues fn to run on the owning goroutine during the next Advance.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Advance moves the clock forward by dt. Posted callbacks run first, then every
// timer whose deadline falls inside the window runs in deadline order with the
// clock set to that deadline, including timers scheduled by earlier callbacks.
func (l *Loop) Advance(dt time.Duration) {
	l.drainPosted()
	if dt < 0 {
		dt = 0
	}
	target := l.now + dt
	for len(l.queue) > 0 && l.queue[0].deadline <= target {
		t := heap.Pop(&l.queue).(*timer)
		delete(l.byID, t.id)
		l.now = t.deadline
		t.fn()
	}
	l.now = target
}

func (l *Loop) drainPosted() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline == h[j].deadline {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline < h[j].deadline
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
