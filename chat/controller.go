// Package chat manages the chat window: one session at a time, one background
// generation per submitted message, replies marshalled back onto the UI
// goroutine.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrWindowClosed is returned by Window.Destroy when the window is already gone.
var ErrWindowClosed = errors.New("chat: window already closed")

// Align places a bubble in the message log.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Bubble is one rendered message.
type Bubble struct {
	Align Align
	Text  string
}

// Window is the UI side of a session.
type Window interface {
	AppendBubble(b Bubble)
	ScrollToLatest()
	ClearEntry()
	Destroy() error
}

// WindowSpec describes the window to build. OnSubmit and OnClose are bound to
// the session the window belongs to.
type WindowSpec struct {
	Title       string
	PersonaName string
	Tagline     string
	OnSubmit    func(text string)
	OnClose     func()
}

// WindowFactory builds chat windows.
type WindowFactory interface {
	NewWindow(spec WindowSpec) (Window, error)
}

// Generator produces replies. Generate blocks and must not panic; failures
// come back as tagged reply text.
type Generator interface {
	Ready() bool
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string
}

// Mode is the typing-mode switch the controller flips on open and close.
type Mode interface {
	Enter()
	Exit()
}

// Dispatcher runs a function on the UI goroutine. Post must be safe to call
// from any goroutine.
type Dispatcher interface {
	Post(fn func())
}

// Options configures a Controller.
type Options struct {
	Title      string
	Persona    Persona
	Generation Generation
}

// Controller owns the single live chat session. Every exported method except
// Wait must run on the UI goroutine.
type Controller struct {
	windows WindowFactory
	mode    Mode
	gen     Generator
	ui      Dispatcher
	log     zerolog.Logger

	title    string
	persona  Persona
	settings Generation

	current    *Session
	generation uint64
	inflight   sync.WaitGroup
}

func NewController(opts Options, windows WindowFactory, mode Mode, gen Generator, ui Dispatcher, log zerolog.Logger) *Controller {
	if opts.Persona.Name == "" {
		opts.Persona = DefaultPersona()
	}
	if opts.Generation.MaxTokens <= 0 {
		opts.Generation = DefaultGeneration()
	}
	return &Controller{
		windows:  windows,
		mode:     mode,
		gen:      gen,
		ui:       ui,
		log:      log.With().Str("component", "chat").Logger(),
		title:    opts.Title,
		persona:  opts.Persona,
		settings: opts.Generation,
	}
}

// Current returns the live session, if any.
func (c *Controller) Current() *Session { return c.current }

// Persona returns the active persona.
func (c *Controller) Persona() Persona { return c.persona }

// SetPersona swaps the persona used for subsequent messages.
func (c *Controller) SetPersona(p Persona) {
	if p.Name == "" {
		return
	}
	c.persona = p
}

// SetGeneration swaps the token budget and temperature for subsequent messages.
func (c *Controller) SetGeneration(g Generation) {
	if g.MaxTokens <= 0 {
		return
	}
	c.settings = g
}

// Open tears down any live session and opens a fresh window in typing mode.
func (c *Controller) Open() (*Session, error) {
	reopening := c.current != nil
	if reopening {
		c.teardown(c.current)
	}

	c.generation++
	s := newSession(c.generation)
	w, err := c.windows.NewWindow(WindowSpec{
		Title:       c.title,
		PersonaName: c.persona.Name,
		Tagline:     c.persona.Tagline,
		OnSubmit:    func(text string) { c.submit(s, text) },
		OnClose:     func() { c.close(s) },
	})
	if err != nil {
		s.close()
		if reopening {
			c.mode.Exit()
		}
		return nil, fmt.Errorf("chat: open window: %w", err)
	}
	s.window = w
	c.current = s
	if !reopening {
		c.mode.Enter()
	}
	c.log.Info().Str("session", s.ID.String()).Uint64("generation", s.generation).Msg("chat opened")
	return s, nil
}

// teardown discards a session that is being replaced. Typing mode stays on.
func (c *Controller) teardown(s *Session) {
	s.close()
	if c.current == s {
		c.current = nil
	}
	if err := s.window.Destroy(); err != nil {
		c.log.Debug().Err(err).Str("session", s.ID.String()).Msg("teardown of previous window")
	}
}

// Close handles the window-close event for the live session.
func (c *Controller) Close() {
	if c.current != nil {
		c.close(c.current)
	}
}

func (c *Controller) close(s *Session) {
	if s.closed || c.current != s {
		return
	}
	s.close()
	c.current = nil
	c.mode.Exit()
	if err := s.window.Destroy(); err != nil {
		c.log.Debug().Err(err).Str("session", s.ID.String()).Msg("destroy window")
	}
	c.log.Info().Str("session", s.ID.String()).Int("messages", s.messages).Msg("chat closed")
}

// Submit sends text from the live session's entry field.
func (c *Controller) Submit(text string) {
	if c.current != nil {
		c.submit(c.current, text)
	}
}

type request struct {
	session *Session
	ctx     context.Context
	message string
	prompt  string
	n       int
}

func (c *Controller) submit(s *Session, text string) {
	text = strings.TrimSpace(text)
	if text == "" || s.closed {
		return
	}
	s.window.ClearEntry()
	s.window.AppendBubble(Bubble{Align: AlignRight, Text: text})
	s.window.ScrollToLatest()

	s.messages++
	req := request{
		session: s,
		ctx:     s.ctx,
		message: text,
		prompt:  BuildPrompt(c.persona, text),
		n:       s.messages,
	}
	persona, settings := c.persona, c.settings

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		reply := c.generate(req, persona, settings)
		c.ui.Post(func() { c.deliver(req, persona, reply) })
	}()
}

// generate runs on a worker goroutine and touches nothing but its request.
func (c *Controller) generate(req request, persona Persona, settings Generation) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			reply = fmt.Sprintf("(model error) %v", r)
		}
	}()
	if c.gen == nil || !c.gen.Ready() {
		c.log.Debug().Int("message", req.n).Msg("model not ready, using fallback reply")
		return FallbackReply(persona, req.message)
	}
	return c.gen.Generate(req.ctx, req.prompt, settings.MaxTokens, settings.Temperature)
}

func (c *Controller) deliver(req request, persona Persona, reply string) {
	s := req.session
	s.appendTurn(Turn{Speaker: SpeakerUser, Name: "You", Text: req.message})
	s.appendTurn(Turn{Speaker: SpeakerPet, Name: persona.Name, Text: reply})

	live := c.current
	if s.closed || live == nil || live.generation != s.generation {
		c.log.Debug().Str("session", s.ID.String()).Int("message", req.n).Msg("discarding reply for closed chat")
		return
	}
	s.window.AppendBubble(Bubble{Align: AlignLeft, Text: reply})
	s.window.ScrollToLatest()
}

// Wait blocks until every in-flight generation has handed its reply to the
// dispatcher.
func (c *Controller) Wait() {
	c.inflight.Wait()
}
