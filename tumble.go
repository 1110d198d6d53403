package tumble

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default clear color of both program stages.
var ColorWhite = Color{1, 1, 1, 1}

// ColorGround is the deep green of the ground strip.
var ColorGround = Color{0.239, 0.404, 0.224, 1}

// RGBA returns the premultiplied color.RGBA for c.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// World holds the viewport geometry and the tuning constants of the physics
// step. All fields are plain values so a World can be copied freely.
type World struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	GroundFraction float64 `yaml:"ground_fraction"` // ground line as a fraction of Height
	MaxVelocity    float64 `yaml:"max_velocity"`    // per axis, units per second
	Damping        float64 `yaml:"damping"`         // velocity multiplier applied every frame
	Acceleration   float64 `yaml:"acceleration"`    // impulse per frame while a direction is held
}

// DefaultWorld returns the 300x300 reference world.
func DefaultWorld() World {
	return World{
		Width:          300,
		Height:         300,
		GroundFraction: 0.75,
		MaxVelocity:    400,
		Damping:        0.9,
		Acceleration:   250,
	}
}

// GroundY returns the y coordinate of the top of the ground strip.
func (w World) GroundY() float64 {
	return w.Height * w.GroundFraction
}

// Ground returns the rectangle covered by the ground strip.
func (w World) Ground() Rect {
	gy := w.GroundY()
	return Rect{X: 0, Y: gy, Width: w.Width, Height: w.Height - gy}
}
