package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClickTracker(t *testing.T) {
	type press struct {
		at   time.Duration
		x, y int
		want bool
	}
	cases := []struct {
		name    string
		presses []press
	}{
		{"double click", []press{{0, 10, 10, false}, {200 * time.Millisecond, 11, 12, true}}},
		{"too slow", []press{{0, 10, 10, false}, {time.Second, 10, 10, false}}},
		{"too far", []press{{0, 10, 10, false}, {100 * time.Millisecond, 40, 10, false}}},
		{"third press starts over", []press{
			{0, 10, 10, false},
			{100 * time.Millisecond, 10, 10, true},
			{200 * time.Millisecond, 10, 10, false},
			{300 * time.Millisecond, 10, 10, true},
		}},
		{"slow then double", []press{
			{0, 10, 10, false},
			{2 * time.Second, 10, 10, false},
			{2*time.Second + 300*time.Millisecond, 10, 10, true},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var ct clickTracker
			for i, p := range c.presses {
				assert.Equal(t, p.want, ct.press(p.at, p.x, p.y), "press %d", i)
			}
		})
	}
}

func TestClickTrackerReset(t *testing.T) {
	var ct clickTracker
	assert.False(t, ct.press(0, 5, 5))
	ct.reset()
	assert.False(t, ct.press(100*time.Millisecond, 5, 5))
}
