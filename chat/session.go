package chat

import (
	"context"

	"github.com/google/uuid"
)

// Speaker identifies who said a turn.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerPet
)

// Turn is one line of the conversation log.
type Turn struct {
	Speaker Speaker
	Name    string
	Text    string
}

// Session is one chat window's lifetime. Only the UI goroutine touches it.
type Session struct {
	ID         uuid.UUID
	generation uint64

	window   Window
	turns    []Turn
	messages int
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(generation uint64) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:         uuid.New(),
		generation: generation,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Generation is the controller-wide sequence number of this session.
func (s *Session) Generation() uint64 { return s.generation }

// Messages returns how many messages the user has submitted.
func (s *Session) Messages() int { return s.messages }

// Closed reports whether the session's window has been torn down.
func (s *Session) Closed() bool { return s.closed }

// Log returns a copy of the conversation so far.
func (s *Session) Log() []Turn {
	return append([]Turn(nil), s.turns...)
}

// LastReply returns the pet's most recent reply.
func (s *Session) LastReply() (string, bool) {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Speaker == SpeakerPet {
			return s.turns[i].Text, true
		}
	}
	return "", false
}

func (s *Session) appendTurn(t Turn) {
	s.turns = append(s.turns, t)
}

func (s *Session) close() {
	s.closed = true
	s.cancel()
}
