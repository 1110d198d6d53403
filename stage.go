package tumble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// Intro plays the animations of a scene until they have all finished or one
// of the skip buttons is pressed.
type Intro struct {
	scene      *Scene
	skip       []Button
	background Color
	skipped    bool
}

// NewIntro wraps a scene whose animations are already running.
func NewIntro(scene *Scene, skip []Button, background Color) *Intro {
	return &Intro{scene: scene, skip: skip, background: background}
}

// IntroBehaviors returns the two behaviors of the reference intro: a scale,
// drop, pause and fade sequence, and a three-turn spin run alongside it.
func IntroBehaviors() (sequence, spin Behavior) {
	sequence = Sequence(
		Do(Ease(ease.OutCubic, ScaleTo(2.0, 0.5, 0.5))),
		Do(Ease(ease.OutBounce, MoveBy(1.0, 0, 80))),
		Wait(0.5),
		Do(FadeOut(0.3)),
	)
	spin = Do(Ease(ease.InOutQuart, RotateTo(2.5, 1080)))
	return sequence, spin
}

// DefaultIntro builds the reference intro: content centered in the world,
// running both IntroBehaviors in parallel.
func DefaultIntro(content *Content, cfg Config) (*Intro, error) {
	scene := NewScene()
	e := NewEntity("intro", content)
	e.SetPosition(cfg.World.Width/2, cfg.World.Height/2)
	id := scene.Add(e)

	sequence, spin := IntroBehaviors()
	if _, err := scene.Run(id, sequence); err != nil {
		return nil, fmt.Errorf("start intro: %w", err)
	}
	if _, err := scene.Run(id, spin); err != nil {
		return nil, fmt.Errorf("start intro: %w", err)
	}
	return NewIntro(scene, cfg.Keys.Skip, cfg.Background), nil
}

// Scene returns the scene the intro plays.
func (in *Intro) Scene() *Scene {
	return in.scene
}

// HandleEvent implements Stage.
func (in *Intro) HandleEvent(ev Event) error {
	switch ev.Kind {
	case EventPress:
		if contains(in.skip, ev.Button) {
			in.skipped = true
		}
	case EventUpdate:
		if in.skipped {
			return nil
		}
		return in.scene.Update(ev.DT)
	}
	return nil
}

// Done implements Stage. The intro is done once skipped or once no animation
// is running.
func (in *Intro) Done() bool {
	return in.skipped || in.scene.Running() == 0
}

// Draw implements Stage.
func (in *Intro) Draw(dst *ebiten.Image) {
	dst.Fill(in.background.RGBA())
	in.scene.Draw(dst, ebiten.GeoM{})
}

// Playground is the interactive stage: a rolling player steered left and
// right above a ground strip. It never finishes on its own.
type Playground struct {
	scene  *Scene
	input  *InputState
	player *Body
	keys   KeyBindings

	background, ground Color
}

// NewPlayground creates the interactive stage for the player content.
func NewPlayground(content *Content, cfg Config) (*Playground, error) {
	player, err := NewPlayer(content, cfg.World)
	if err != nil {
		return nil, err
	}
	scene := NewScene()
	scene.Add(player.Entity)

	p := &Playground{
		scene:      scene,
		input:      NewInputState(),
		player:     player,
		keys:       cfg.Keys,
		background: cfg.Background,
		ground:     cfg.Ground,
	}
	if cfg.FadeIn > 0 {
		player.Entity.Alpha = 0
		if _, err := scene.Run(player.Entity.ID, Do(Ease(ease.OutQuad, FadeIn(cfg.FadeIn)))); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Player returns the player body.
func (p *Playground) Player() *Body {
	return p.player
}

// Input returns the held-button tracker.
func (p *Playground) Input() *InputState {
	return p.input
}

// Scene returns the scene holding the player entity. Behaviors may be run on
// the player through it as long as they leave position and rotation to the
// physics step.
func (p *Playground) Scene() *Scene {
	return p.scene
}

// HandleEvent implements Stage. Press and release events update the tracker;
// update events apply steering, integrate the player and advance any running
// animations, in that order.
func (p *Playground) HandleEvent(ev Event) error {
	p.input.Update(ev)
	if ev.Kind != EventUpdate {
		return nil
	}

	acc := p.player.World().Acceleration
	if anyDown(p.input, p.keys.Left) {
		p.player.Accelerate(-acc, 0)
	}
	if anyDown(p.input, p.keys.Right) {
		p.player.Accelerate(acc, 0)
	}
	if err := p.player.Update(ev.DT); err != nil {
		return err
	}
	return p.scene.Update(ev.DT)
}

// Done implements Stage.
func (p *Playground) Done() bool {
	return false
}

// Draw implements Stage.
func (p *Playground) Draw(dst *ebiten.Image) {
	dst.Fill(p.background.RGBA())
	g := p.player.World().Ground()
	vector.FillRect(dst, float32(g.X), float32(g.Y), float32(g.Width), float32(g.Height), p.ground.RGBA(), false)
	p.scene.Draw(dst, ebiten.GeoM{})
}
