package pet

import (
	"math/rand/v2"
	"slices"
)

// Action is one autonomous behavior the scheduler can pick.
type Action int

const (
	ActionWalkLeft Action = iota + 1
	ActionEat
	ActionWalkRight
	ActionSleep
	ActionIdle
)

// Actions lists every action in refill order.
var Actions = [...]Action{ActionWalkLeft, ActionEat, ActionWalkRight, ActionSleep, ActionIdle}

func (a Action) String() string {
	switch a {
	case ActionWalkLeft:
		return "walk_left"
	case ActionEat:
		return "eat"
	case ActionWalkRight:
		return "walk_right"
	case ActionSleep:
		return "sleep"
	case ActionIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Bag hands out actions round-robin style: every action is drawn exactly once
// before the bag refills.
type Bag struct {
	rng   *rand.Rand
	items []Action
}

func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{rng: rng}
	b.refill()
	return b
}

func (b *Bag) refill() {
	b.items = append(b.items[:0], Actions[:]...)
}

// Len returns the number of actions left in the current round.
func (b *Bag) Len() int {
	return len(b.items)
}

// Contains reports whether a is still available this round.
func (b *Bag) Contains(a Action) bool {
	return slices.Contains(b.items, a)
}

// Draw removes and returns a uniformly chosen action, refilling first if the
// round is exhausted.
func (b *Bag) Draw() Action {
	if len(b.items) == 0 {
		b.refill()
	}
	i := b.rng.IntN(len(b.items))
	a := b.items[i]
	b.items = slices.Delete(b.items, i, i+1)
	return a
}
