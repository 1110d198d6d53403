package tumble

import (
	"fmt"
	"math"
)

// radiusTrim is taken off half the content height so the sprite's edge
// visibly touches the ground.
const radiusTrim = 2.0

// Body is a player-controlled entity integrated by a fixed per-frame step:
// move, clamp to the world, damp, clamp velocity, then derive rotation from
// the horizontal position so the entity appears to roll.
type Body struct {
	Entity *Entity
	Radius float64
	VX, VY float64

	world World
}

// NewBody wraps e in a physics body. It fails with ErrContentTooWide when the
// world is not wider than the body's diameter, since the rolling rotation is
// undefined there, and with ErrContentTooTall when the radius is above the
// ground line.
func NewBody(e *Entity, radius float64, w World) (*Body, error) {
	if w.Width-2*radius <= 0 {
		return nil, fmt.Errorf("new body %q: radius %v in width %v: %w",
			e.Name, radius, w.Width, ErrContentTooWide)
	}
	if w.GroundY()-radius < 0 {
		return nil, fmt.Errorf("new body %q: radius %v above ground %v: %w",
			e.Name, radius, w.GroundY(), ErrContentTooTall)
	}
	return &Body{Entity: e, Radius: radius, world: w}, nil
}

// NewPlayer creates the player body for content, with the radius derived from
// the content height and the body resting on the ground at one eighth of the
// world width.
func NewPlayer(content *Content, w World) (*Body, error) {
	radius := float64(content.Height())/2 - radiusTrim
	e := NewEntity("player", content)
	e.SetPosition(w.Width/8, w.GroundY()-radius)
	return NewBody(e, radius, w)
}

// World returns the world the body is confined to.
func (b *Body) World() World {
	return b.world
}

// Bounds returns the rectangle of reachable center positions.
func (b *Body) Bounds() Rect {
	return Rect{
		X:      b.Radius,
		Y:      0,
		Width:  b.world.Width - 2*b.Radius,
		Height: b.world.GroundY() - b.Radius,
	}
}

// Accelerate adds (dvx, dvy) to the velocity. Clamping happens in Update.
func (b *Body) Accelerate(dvx, dvy float64) {
	b.VX += dvx
	b.VY += dvy
}

// Velocity returns the current velocity.
func (b *Body) Velocity() Vec2 {
	return Vec2{b.VX, b.VY}
}

// Update advances the body by dt seconds. It returns ErrNonFiniteInput, and
// changes nothing, when dt, the velocity or the position is not finite.
func (b *Body) Update(dt float64) error {
	e := b.Entity
	if !finite(dt) || !finite(b.VX) || !finite(b.VY) || !finite(e.X) || !finite(e.Y) {
		return fmt.Errorf("update body %q: dt=%v v=(%v, %v) pos=(%v, %v): %w",
			e.Name, dt, b.VX, b.VY, e.X, e.Y, ErrNonFiniteInput)
	}

	x, okX := clampBetween(e.X+b.VX*dt, b.Radius, b.world.Width-b.Radius)
	y, okY := clampBetween(e.Y+b.VY*dt, 0, b.world.GroundY()-b.Radius)
	if !okX || !okY {
		return fmt.Errorf("update body %q: unordered position: %w", e.Name, ErrNonFiniteInput)
	}
	e.X, e.Y = x, y

	vx := b.VX * b.world.Damping
	vy := b.VY * b.world.Damping
	b.VX = math.Max(-b.world.MaxVelocity, math.Min(vx, b.world.MaxVelocity))
	b.VY = math.Max(-b.world.MaxVelocity, math.Min(vy, b.world.MaxVelocity))

	e.Rotation = (e.X - b.Radius) / (b.world.Width - 2*b.Radius) * 360
	return nil
}

// clampBetween clamps v to [lo, hi] with an explicit three-way comparison.
// It reports false when v is NaN, which compares neither less nor greater.
func clampBetween(v, lo, hi float64) (float64, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	case v >= lo && v <= hi:
		return v, true
	}
	return 0, false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
