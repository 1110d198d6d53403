package tumble

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// KeyBindings maps the program's commands to buttons. Each command may be
// bound to several buttons; any one of them held counts.
type KeyBindings struct {
	Left  []Button `yaml:"left"`
	Right []Button `yaml:"right"`
	Skip  []Button `yaml:"skip"`
}

// Config is the full set of tunables for the two-stage program.
type Config struct {
	Title       string      `yaml:"title"`
	World       World       `yaml:"world"`
	Background  Color       `yaml:"background"`
	Ground      Color       `yaml:"ground"`
	Keys        KeyBindings `yaml:"keys"`
	IntroImage  string      `yaml:"intro_image"`
	PlayerImage string      `yaml:"player_image"`
	FadeIn      float64     `yaml:"fade_in"` // seconds for the player to fade in, 0 disables
}

// DefaultConfig returns the reference configuration: a 300x300 window, white
// background, deep green ground and arrow key steering.
func DefaultConfig() Config {
	return Config{
		Title:      "tumble",
		World:      DefaultWorld(),
		Background: ColorWhite,
		Ground:     ColorGround,
		Keys: KeyBindings{
			Left:  []Button{KeyButton(ebiten.KeyArrowLeft)},
			Right: []Button{KeyButton(ebiten.KeyArrowRight)},
			Skip:  []Button{KeyButton(ebiten.KeySpace), KeyButton(ebiten.KeyEnter)},
		},
		IntroImage:  "assets/intro.png",
		PlayerImage: "assets/player.png",
		FadeIn:      0.5,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports world geometry the physics step cannot work with.
func (c Config) Validate() error {
	w := c.World
	var errs []error
	if !(w.Width > 0) || !(w.Height > 0) {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", w.Width, w.Height))
	}
	if !(w.GroundFraction > 0 && w.GroundFraction <= 1) {
		errs = append(errs, fmt.Errorf("ground_fraction %v must be in (0, 1]", w.GroundFraction))
	}
	if !(w.Damping >= 0 && w.Damping < 1) {
		errs = append(errs, fmt.Errorf("damping %v must be in [0, 1)", w.Damping))
	}
	if !(w.MaxVelocity >= 0) {
		errs = append(errs, fmt.Errorf("max_velocity %v must not be negative", w.MaxVelocity))
	}
	if !finite(w.Acceleration) {
		errs = append(errs, fmt.Errorf("acceleration %v: %w", w.Acceleration, ErrNonFiniteInput))
	}
	return errors.Join(errs...)
}

// RunConfig returns the window settings for c.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:  c.Title,
		Width:  int(c.World.Width),
		Height: int(c.World.Height),
	}
}

// anyDown reports whether any of buttons is held in s.
func anyDown(s *InputState, buttons []Button) bool {
	for _, b := range buttons {
		if s.IsDown(b) {
			return true
		}
	}
	return false
}

func contains(buttons []Button, b Button) bool {
	for _, x := range buttons {
		if x == b {
			return true
		}
	}
	return false
}
