// Package model hosts the local text generator: a tengo script that turns a
// prompt into a reply entirely in-process.
package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"
)

const (
	// NotReadyReply is returned by Generate when no model is loaded.
	NotReadyReply = "(model not ready)"
	// ErrorTag prefixes replies produced by a failed generation.
	ErrorTag = "(model error)"
)

// ErrNotLoaded is reported by Err before the first successful load.
var ErrNotLoaded = errors.New("model: not loaded")

// Script is a generator backed by a tengo script. The script sees the globals
// prompt, max_tokens and temperature and must assign its answer to reply.
type Script struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	compiled *tengo.Compiled
	err      error
}

// Open loads the script at path. A missing or broken script leaves the
// generator not ready; the reason is available from Err.
func Open(path string, log zerolog.Logger) *Script {
	s := &Script{
		path: path,
		log:  log.With().Str("component", "model").Str("path", path).Logger(),
		err:  ErrNotLoaded,
	}
	if err := s.Reload(); err != nil {
		s.log.Info().Err(err).Msg("model unavailable, replies will use the fallback")
	}
	return s
}

// Path returns the script location.
func (s *Script) Path() string { return s.path }

// Reload recompiles the script from disk. On failure the previous model is
// dropped and the generator reports not ready.
func (s *Script) Reload() error {
	compiled, err := compile(s.path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.compiled = compiled
	s.err = err
	if err == nil {
		s.log.Info().Msg("model loaded")
	}
	return err
}

func compile(path string) (*tengo.Compiled, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model: no model path configured")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: load %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("prompt", "")
	_ = script.Add("max_tokens", 0)
	_ = script.Add("temperature", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("model: compile %s: %w", path, err)
	}
	return compiled, nil
}

// Ready reports whether a model is loaded.
func (s *Script) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compiled != nil
}

// Err returns why the model is not ready, or nil.
func (s *Script) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Generate runs the model once. It never fails: problems come back as a reply
// tagged with ErrorTag. The reply is trimmed and capped at maxTokens words.
func (s *Script) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (reply string) {
	s.mu.RLock()
	base := s.compiled
	s.mu.RUnlock()
	if base == nil {
		return NotReadyReply
	}

	defer func() {
		if r := recover(); r != nil {
			reply = fmt.Sprintf("%s %v", ErrorTag, r)
		}
	}()

	c := base.Clone()
	if err := setGlobals(c, prompt, maxTokens, temperature); err != nil {
		return fmt.Sprintf("%s %v", ErrorTag, err)
	}
	if err := c.RunContext(ctx); err != nil {
		return fmt.Sprintf("%s %v", ErrorTag, err)
	}
	if !c.IsDefined("reply") {
		return ErrorTag + " script did not set reply"
	}
	return truncateTokens(strings.TrimSpace(c.Get("reply").String()), maxTokens)
}

func setGlobals(c *tengo.Compiled, prompt string, maxTokens int, temperature float64) error {
	if err := c.Set("prompt", prompt); err != nil {
		return err
	}
	if err := c.Set("max_tokens", maxTokens); err != nil {
		return err
	}
	return c.Set("temperature", temperature)
}

// truncateTokens keeps the first n whitespace-separated words of s.
func truncateTokens(s string, n int) string {
	if n <= 0 {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) <= n {
		return s
	}
	return strings.Join(fields[:n], " ")
}
