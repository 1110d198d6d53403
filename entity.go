package tumble

import "github.com/google/uuid"

// EntityID identifies an entity within a Scene. It is generated by Scene.Add.
type EntityID uuid.UUID

// NilEntityID is the ID of an entity that has not been added to a scene.
var NilEntityID = EntityID(uuid.Nil)

// String returns the canonical uuid text form.
func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// Entity is a positioned, rotatable, scalable and fadeable visual object.
// A single flat struct is used for every entity; physics bodies and
// animations mutate its fields directly.
type Entity struct {
	// Identity
	ID   EntityID
	Name string

	// Transform
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees, clockwise on screen

	// AnchorX and AnchorY locate the rotation/scale pivot as a fraction of
	// the content size. The default (0.5, 0.5) centers the content on (X, Y).
	AnchorX, AnchorY float64

	// Alpha is the opacity in [0, 1].
	Alpha float64

	// Content is shared by reference and never modified.
	Content *Content
}

// entityDefaults sets the field values shared by all constructors.
func entityDefaults(e *Entity) {
	e.ScaleX = 1
	e.ScaleY = 1
	e.Alpha = 1
	e.AnchorX = 0.5
	e.AnchorY = 0.5
}

// NewEntity creates an entity drawing the given content at the origin.
func NewEntity(name string, content *Content) *Entity {
	e := &Entity{Name: name, Content: content}
	entityDefaults(e)
	return e
}

// SetPosition sets X and Y.
func (e *Entity) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
}

// Position returns X and Y.
func (e *Entity) Position() (float64, float64) {
	return e.X, e.Y
}

// SetScale sets a uniform scale.
func (e *Entity) SetScale(s float64) {
	e.ScaleX = s
	e.ScaleY = s
}

// size returns the content pixel size, or zero for entities without content.
func (e *Entity) size() (float64, float64) {
	if e.Content == nil {
		return 0, 0
	}
	return float64(e.Content.Width()), float64(e.Content.Height())
}
