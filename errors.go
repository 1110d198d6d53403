package tumble

import "errors"

var (
	// ErrUnknownEntity is returned when an operation names an entity that is
	// not in the scene.
	ErrUnknownEntity = errors.New("tumble: unknown entity")

	// ErrNonFiniteInput is returned when a time step, velocity or position is
	// NaN or infinite. The rejecting operation leaves all state untouched.
	ErrNonFiniteInput = errors.New("tumble: non-finite input")

	// ErrContentTooWide is returned by NewBody when the body cannot roll
	// because its diameter is at least the world width.
	ErrContentTooWide = errors.New("tumble: content too wide for world")

	// ErrContentTooTall is returned by NewBody when the body's radius
	// exceeds the ground height, leaving no vertical position to rest at.
	ErrContentTooTall = errors.New("tumble: content too tall for world")

	// ErrDegenerateBehavior is reported by Behavior.Validate for nodes the
	// interpreter resolves as immediate completion. It is never returned by
	// the interpreter itself.
	ErrDegenerateBehavior = errors.New("tumble: degenerate behavior")
)
