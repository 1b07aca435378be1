package runloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsTimersInDeadlineOrder(t *testing.T) {
	l := New()
	var got []string
	l.After(300*time.Millisecond, func() { got = append(got, "c") })
	l.After(100*time.Millisecond, func() { got = append(got, "a") })
	l.After(200*time.Millisecond, func() { got = append(got, "b") })
	l.After(200*time.Millisecond, func() { got = append(got, "b2") })

	l.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "b2"}, got)
	assert.Equal(t, 250*time.Millisecond, l.Now())

	l.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "b2", "c"}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopChainedTimersFireWithinOneAdvance(t *testing.T) {
	l := New()
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, l.Now())
		if len(at) < 5 {
			l.After(100*time.Millisecond, tick)
		}
	}
	l.After(100*time.Millisecond, tick)

	l.Advance(time.Second)
	require.Len(t, at, 5)
	for i, d := range at {
		assert.Equal(t, time.Duration(i+1)*100*time.Millisecond, d)
	}
}

func TestLoopCancel(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T, l *Loop)
	}{
		{"never_scheduled", func(t *testing.T, l *Loop) {
			assert.False(t, l.Cancel(0))
			assert.False(t, l.Cancel(42))
		}},
		{"twice", func(t *testing.T, l *Loop) {
			fired := false
			id := l.After(time.Millisecond, func() { fired = true })
			assert.True(t, l.Cancel(id))
			assert.False(t, l.Cancel(id))
			l.Advance(time.Second)
			assert.False(t, fired)
		}},
		{"already_fired", func(t *testing.T, l *Loop) {
			id := l.After(time.Millisecond, func() {})
			l.Advance(time.Second)
			assert.False(t, l.Cancel(id))
		}},
		{"middle_of_queue", func(t *testing.T, l *Loop) {
			var got []int
			l.After(10*time.Millisecond, func() { got = append(got, 1) })
			id := l.After(20*time.Millisecond, func() { got = append(got, 2) })
			l.After(30*time.Millisecond, func() { got = append(got, 3) })
			require.True(t, l.Cancel(id))
			l.Advance(time.Second)
			assert.Equal(t, []int{1, 3}, got)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.run(t, New())
		})
	}
}

func TestLoopPostFromOtherGoroutines(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { count++ })
		}()
	}
	wg.Wait()
	assert.Zero(t, count)
	l.Advance(0)
	assert.Equal(t, 20, count)
}
