// Package config loads the pet's settings. Defaults are compiled in from the
// embedded pet.yaml; an optional file on disk overrides any subset of them.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed pet.yaml
var defaultYAML []byte

type AnimationSpec struct {
	File    string `yaml:"file"`
	Frames  int    `yaml:"frames"`
	DelayMS int    `yaml:"delay_ms"`
}

func (a AnimationSpec) Delay() time.Duration { return ms(a.DelayMS) }

type WindowSpec struct {
	MarginX int `yaml:"margin_x"`
	MarginY int `yaml:"margin_y"`
}

type BehaviorSpec struct {
	IdleLoops       int `yaml:"idle_loops"`
	WalkStepsMin    int `yaml:"walk_steps_min"`
	WalkStepsMax    int `yaml:"walk_steps_max"`
	WalkDelta       int `yaml:"walk_delta"`
	RearmMinMS      int `yaml:"rearm_min_ms"`
	RearmMaxMS      int `yaml:"rearm_max_ms"`
	PausedRetryMS   int `yaml:"paused_retry_ms"`
	TypingCadenceMS int `yaml:"typing_cadence_ms"`
}

func (b BehaviorSpec) RearmMin() time.Duration      { return ms(b.RearmMinMS) }
func (b BehaviorSpec) RearmMax() time.Duration      { return ms(b.RearmMaxMS) }
func (b BehaviorSpec) PausedRetry() time.Duration   { return ms(b.PausedRetryMS) }
func (b BehaviorSpec) TypingCadence() time.Duration { return ms(b.TypingCadenceMS) }

type GenerationSpec struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type ChatSpec struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	WrapWidth int    `yaml:"wrap_width"`
}

type PersonaSpec struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Tagline      string `yaml:"tagline"`
	FavoriteFood string `yaml:"favorite_food"`
	HintKeyword  string `yaml:"hint_keyword"`
	SleepyReply  string `yaml:"sleepy_reply"`
}

type Config struct {
	AssetsDir    string                   `yaml:"assets_dir"`
	ModelPath    string                   `yaml:"model_path"`
	ProfileImage string                   `yaml:"profile_image"`
	ProfileSize  int                      `yaml:"profile_size"`
	Scale        float64                  `yaml:"scale"`
	Window       WindowSpec               `yaml:"window"`
	Animations   map[string]AnimationSpec `yaml:"animations"`
	Behavior     BehaviorSpec             `yaml:"behavior"`
	Generation   GenerationSpec           `yaml:"generation"`
	Chat         ChatSpec                 `yaml:"chat"`
	Persona      PersonaSpec              `yaml:"persona"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded pet.yaml: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// returns the defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	base := maps.Clone(cfg.Animations)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := mergeAnimations(&cfg, base, data); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// mergeAnimations re-decodes each clip named in the overlay on top of its
// default entry, so a file may change one field of a clip and keep the rest.
func mergeAnimations(cfg *Config, base map[string]AnimationSpec, data []byte) error {
	var overlay struct {
		Animations map[string]yaml.Node `yaml:"animations"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}
	if cfg.Animations == nil {
		cfg.Animations = base
	}
	for name, node := range overlay.Animations {
		spec := base[name]
		if err := node.Decode(&spec); err != nil {
			return fmt.Errorf("animation %q: %w", name, err)
		}
		cfg.Animations[name] = spec
	}
	return nil
}

// Validate rejects settings the pet cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", c.Scale))
	}
	for name, a := range c.Animations {
		if a.File == "" {
			errs = append(errs, fmt.Errorf("animation %q: missing file", name))
		}
		if a.DelayMS <= 0 {
			errs = append(errs, fmt.Errorf("animation %q: delay_ms must be positive", name))
		}
	}
	b := c.Behavior
	if b.WalkStepsMin <= 0 || b.WalkStepsMax < b.WalkStepsMin {
		errs = append(errs, fmt.Errorf("behavior: bad walk step range [%d, %d]", b.WalkStepsMin, b.WalkStepsMax))
	}
	if b.RearmMinMS <= 0 || b.RearmMaxMS < b.RearmMinMS {
		errs = append(errs, fmt.Errorf("behavior: bad rearm range [%d, %d]ms", b.RearmMinMS, b.RearmMaxMS))
	}
	if c.Generation.MaxTokens <= 0 {
		errs = append(errs, errors.New("generation: max_tokens must be positive"))
	}
	if c.Persona.Name == "" {
		errs = append(errs, errors.New("persona: name is required"))
	}
	return errors.Join(errs...)
}

// Resolve makes a relative path relative to base's directory. Absolute and
// empty paths are returned unchanged.
func Resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
