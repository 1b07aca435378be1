package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cases := []struct {
		name  string
		delay time.Duration
	}{
		{"idle", 180 * time.Millisecond},
		{"walk_left", 100 * time.Millisecond},
		{"walk_right", 100 * time.Millisecond},
		{"eat", 150 * time.Millisecond},
		{"eat_to_idle", 150 * time.Millisecond},
		{"idle_to_sleep", 150 * time.Millisecond},
		{"sleep_to_idle", 150 * time.Millisecond},
		{"sleep", 500 * time.Millisecond},
		{"typing", 120 * time.Millisecond},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, ok := cfg.Animations[c.name]
			require.True(t, ok)
			assert.Equal(t, c.delay, a.Delay())
			assert.NotEmpty(t, a.File)
			assert.Positive(t, a.Frames)
		})
	}

	assert.Equal(t, "idle to sleep.gif", cfg.Animations["idle_to_sleep"].File)
	assert.Equal(t, 150, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.8, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.Behavior.RearmMin())
	assert.Equal(t, 5*time.Second, cfg.Behavior.RearmMax())
	assert.Equal(t, time.Second, cfg.Behavior.PausedRetry())
	assert.Equal(t, 120*time.Millisecond, cfg.Behavior.TypingCadence())
	assert.Equal(t, 200, cfg.Chat.WrapWidth)
	assert.Equal(t, 100, cfg.Window.MarginX)
	assert.Equal(t, 40, cfg.Window.MarginY)
	assert.Equal(t, "Miki", cfg.Persona.Name)
	assert.Equal(t, "Mew~ I'm sleeeeepy!", cfg.Persona.SleepyReply)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
generation:
  max_tokens: 64
  temperature: 0.2
persona:
  name: Tofu
  description: a sleepy loaf
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, "Tofu", cfg.Persona.Name)
	assert.Equal(t, 180, cfg.Animations["idle"].DelayMS, "untouched defaults survive")
	assert.Equal(t, "assets", cfg.AssetsDir)
}

func TestLoadAnimationOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
animations:
  idle: {delay_ms: 200}
  walk_left:
    frames: 4
  wave: {file: wave.gif, frames: 6, delay_ms: 90}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cases := []struct {
		name string
		want AnimationSpec
	}{
		{"idle", AnimationSpec{File: "idle.gif", Frames: 13, DelayMS: 200}},
		{"walk_left", AnimationSpec{File: "walk left.gif", Frames: 4, DelayMS: 100}},
		{"wave", AnimationSpec{File: "wave.gif", Frames: 6, DelayMS: 90}},
		{"sleep", AnimationSpec{File: "sleeping.gif", Frames: 22, DelayMS: 500}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, cfg.Animations[c.name])
		})
	}
	assert.Equal(t, AnimationSpec{File: "idle.gif", Frames: 13, DelayMS: 180}, Default().Animations["idle"], "defaults are not mutated")
}

func TestLoadEmptyAnimationsKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animations:\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Animations, cfg.Animations)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	cases := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.yaml")},
		{"bad_yaml", write("bad.yaml", "generation: [oops")},
		{"bad_rearm", write("rearm.yaml", "behavior:\n  rearm_min_ms: 5000\n  rearm_max_ms: 10\n")},
		{"bad_scale", write("scale.yaml", "scale: 0\n")},
		{"no_delay", write("delay.yaml", "animations:\n  wave: {file: wave.gif, frames: 3}\n")},
		{"blank_file", write("blank.yaml", "animations:\n  idle: {file: \"\"}\n")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(c.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("conf", "assets"), Resolve(filepath.Join("conf", "pet.yaml"), "assets"))
	assert.Equal(t, "/abs/assets", Resolve("conf/pet.yaml", "/abs/assets"))
	assert.Equal(t, "assets", Resolve("", "assets"))
	assert.Equal(t, "", Resolve("conf/pet.yaml", ""))
}

func TestWatcherReportsWatchedFilesOnce(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "miki.tengo")
	cfgPath := filepath.Join(dir, "pet.yaml")
	w, err := NewWatcher(50*time.Millisecond, model, cfgPath, "")
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("ignored: true"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(model, []byte(`reply := "hi"`), 0o644))
	}

	select {
	case name := <-w.Events:
		assert.Equal(t, model, name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for model file")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("unexpected second event for %s", name)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(cfgPath, []byte("scale: 0.2"), 0o644))
	select {
	case name := <-w.Events:
		assert.Equal(t, cfgPath, name)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for config file")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(0, filepath.Join(t.TempDir(), "gone", "miki.tengo"))
	assert.Error(t, err)
}

func TestSameFile(t *testing.T) {
	assert.True(t, SameFile("models/miki.tengo", "./models/../models/miki.tengo"))
	assert.False(t, SameFile("a.yaml", "b.yaml"))
	assert.False(t, SameFile("", ""))
}
