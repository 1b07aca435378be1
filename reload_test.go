package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/desktopcat/chat"
	"github.com/milk9111/desktopcat/runloop"
)

type fakeModel struct {
	path    string
	reloads int
	err     error
}

func (m *fakeModel) Path() string { return m.path }

func (m *fakeModel) Reload() error {
	m.reloads++
	return m.err
}

type fakeSink struct {
	persona chat.Persona
	gen     chat.Generation
	calls   int
}

func (s *fakeSink) SetPersona(p chat.Persona)       { s.persona = p; s.calls++ }
func (s *fakeSink) SetGeneration(g chat.Generation) { s.gen = g }

func TestReloaderHandle(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pet.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("persona:\n  name: Tofu\ngeneration:\n  max_tokens: 20\n"), 0o644))

	loop := runloop.New()
	m := &fakeModel{path: filepath.Join(dir, "miki.tengo")}
	sink := &fakeSink{}
	r := &reloader{configPath: cfgPath, model: m, settings: sink, ui: loop, log: zerolog.Nop()}

	t.Run("model change reloads the script", func(t *testing.T) {
		r.handle(filepath.Join(dir, "miki.tengo"))
		assert.Equal(t, 1, m.reloads)
		assert.Zero(t, sink.calls)
	})

	t.Run("failed model reload is tolerated", func(t *testing.T) {
		m.err = errors.New("compile error")
		r.handle(m.path)
		assert.Equal(t, 2, m.reloads)
		m.err = nil
	})

	t.Run("config change applies on the ui loop", func(t *testing.T) {
		r.handle(cfgPath)
		assert.Zero(t, sink.calls, "nothing applied before the loop runs")
		loop.Advance(0)
		assert.Equal(t, 1, sink.calls)
		assert.Equal(t, "Tofu", sink.persona.Name)
		assert.Equal(t, 20, sink.gen.MaxTokens)
	})

	t.Run("broken config keeps settings", func(t *testing.T) {
		require.NoError(t, os.WriteFile(cfgPath, []byte("generation: [oops"), 0o644))
		r.handle(cfgPath)
		loop.Advance(0)
		assert.Equal(t, 1, sink.calls)
	})

	t.Run("unrelated file is ignored", func(t *testing.T) {
		r.handle(filepath.Join(dir, "other.yaml"))
		loop.Advance(0)
		assert.Equal(t, 2, m.reloads)
		assert.Equal(t, 1, sink.calls)
	})
}
