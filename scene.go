package tumble

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationEventKind identifies a lifecycle transition of an animation.
type AnimationEventKind uint8

const (
	AnimationStarted   AnimationEventKind = iota // Scene.Run accepted a behavior
	AnimationFinished                            // the behavior ran to completion
	AnimationStopped                             // Scene.Stop or Scene.Remove cancelled it
)

// String returns the lower-case event name.
func (k AnimationEventKind) String() string {
	switch k {
	case AnimationStarted:
		return "started"
	case AnimationFinished:
		return "finished"
	case AnimationStopped:
		return "stopped"
	}
	return fmt.Sprintf("AnimationEventKind(%d)", uint8(k))
}

// AnimationEvent describes one lifecycle transition, for the ECS bridge.
type AnimationEvent struct {
	Kind      AnimationEventKind
	Animation AnimationID
	Entity    EntityID
	Elapsed   float64
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, animation lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event AnimationEvent)
}

// Canvas is the drawing surface the scene issues draw calls against.
// *ebiten.Image satisfies it.
type Canvas interface {
	DrawImage(img *ebiten.Image, opts *ebiten.DrawImageOptions)
}

// Scene owns a set of entities, in insertion order, and the animations running
// on them. It is the only place animations mutate entities. A Scene is not
// safe for concurrent use; the frame loop is its sole driver.
type Scene struct {
	entities []*Entity
	index    map[EntityID]*Entity
	anims    []*Animation
	nextAnim AnimationID

	// While Update or Remove walks anims, Run parks new animations in started and
	// Stop and Remove only cancel; Update merges and compacts afterwards.
	updating bool
	started  []*Animation

	store EntityStore
	debug bool
	stats debugStats

	drawOp ebiten.DrawImageOptions
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{index: make(map[EntityID]*Entity)}
}

// Add inserts e, assigns it a fresh identifier and returns that identifier.
// Entities are drawn in the order they were added.
func (s *Scene) Add(e *Entity) EntityID {
	id := EntityID(uuid.New())
	e.ID = id
	s.entities = append(s.entities, e)
	s.index[id] = e
	return id
}

// Entity returns the entity with the given id.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	e, ok := s.index[id]
	return e, ok
}

// Entities returns the entities in draw order. The returned slice MUST NOT be
// mutated.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// Remove deletes the entity and cancels every animation targeting it.
func (s *Scene) Remove(id EntityID) error {
	e, ok := s.index[id]
	if !ok {
		return fmt.Errorf("remove entity %s: %w", id, ErrUnknownEntity)
	}
	delete(s.index, id)
	for i, other := range s.entities {
		if other == e {
			copy(s.entities[i:], s.entities[i+1:])
			s.entities[len(s.entities)-1] = nil
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}

	e.ID = NilEntityID
	walking := s.updating
	s.updating = true
	for _, list := range [2][]*Animation{s.anims, s.started} {
		for _, a := range list {
			if a.Target == id && a.state == AnimationActive {
				a.cancel()
				s.emit(AnimationStopped, a)
			}
		}
	}
	s.updating = walking
	s.compact()
	return nil
}

// Run starts b against the entity id. Several behaviors may run on one entity
// at once; they must not animate the same property. Run fails with
// ErrUnknownEntity, and starts nothing, when id is not in the scene.
func (s *Scene) Run(id EntityID, b Behavior) (AnimationID, error) {
	if _, ok := s.index[id]; !ok {
		return 0, fmt.Errorf("run animation on %s: %w", id, ErrUnknownEntity)
	}
	s.nextAnim++
	a := newAnimation(s.nextAnim, id, b)
	if s.updating {
		s.started = append(s.started, a)
	} else {
		s.anims = append(s.anims, a)
	}
	s.emit(AnimationStarted, a)
	return a.ID, nil
}

// Animation returns the running animation with the given id. Finished and
// stopped animations are no longer reachable.
func (s *Scene) Animation(id AnimationID) (*Animation, bool) {
	if a := s.find(id); a != nil {
		return a, true
	}
	return nil, false
}

func (s *Scene) find(id AnimationID) *Animation {
	for _, list := range [2][]*Animation{s.anims, s.started} {
		for _, a := range list {
			if a.ID == id && a.state == AnimationActive {
				return a
			}
		}
	}
	return nil
}

// Stop cancels a running animation, leaving the entity as it is. It reports
// whether the animation was running.
func (s *Scene) Stop(id AnimationID) bool {
	a := s.find(id)
	if a == nil {
		return false
	}
	a.cancel()
	s.emit(AnimationStopped, a)
	s.compact()
	return true
}

// Running returns the number of animations that have not finished.
func (s *Scene) Running() int {
	n := 0
	for _, list := range [2][]*Animation{s.anims, s.started} {
		for _, a := range list {
			if a.state == AnimationActive {
				n++
			}
		}
	}
	return n
}

// compact drops finished and cancelled animations and appends the ones
// started during Update. It does nothing while Update is iterating.
func (s *Scene) compact() {
	if s.updating {
		return
	}
	kept := s.anims[:0]
	for _, a := range s.anims {
		if a.state == AnimationActive {
			kept = append(kept, a)
		}
	}
	clear(s.anims[len(kept):])
	s.anims = kept
	for _, a := range s.started {
		if a.state == AnimationActive {
			s.anims = append(s.anims, a)
		}
	}
	clear(s.started)
	s.started = s.started[:0]
}

// Update advances every running animation by dt seconds and drops the ones
// that finish. It returns ErrNonFiniteInput, and advances nothing, when dt is
// negative, NaN or infinite.
func (s *Scene) Update(dt float64) error {
	if !finite(dt) || dt < 0 {
		return fmt.Errorf("update scene: dt=%v: %w", dt, ErrNonFiniteInput)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	// Store handlers may call Run, Stop or Remove from emit. anims is not
	// resized until compact, and animations cancelled mid-walk are skipped.
	s.updating = true
	for _, a := range s.anims {
		if a.state != AnimationActive {
			continue
		}
		if s.debug {
			debugCheckDepth(a)
		}
		if a.advance(s.index[a.Target], dt) {
			s.emit(AnimationFinished, a)
		}
	}
	s.updating = false
	s.compact()

	if s.debug {
		s.stats.advanceTime = time.Since(t0)
		s.stats.running = len(s.anims)
	}
	return nil
}

// Draw issues one draw call per entity, in insertion order, composing each
// entity's transform with view. Entities whose content has no image are
// skipped.
func (s *Scene) Draw(dst Canvas, view ebiten.GeoM) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	viewM := affineFromGeoM(view)
	calls := 0
	for _, e := range s.entities {
		if e.Content == nil || e.Content.Image() == nil {
			continue
		}
		s.drawOp = ebiten.DrawImageOptions{}
		s.drawOp.GeoM = geoMFromAffine(multiplyAffine(viewM, computeLocalTransform(e)))
		s.drawOp.ColorScale.ScaleAlpha(float32(clamp01(e.Alpha)))
		dst.DrawImage(e.Content.Image(), &s.drawOp)
		calls++
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawCalls = calls
		s.debugLog(s.stats)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats and animation lifecycle lines are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

func (s *Scene) emit(kind AnimationEventKind, a *Animation) {
	if s.debug {
		debugLifecycle(kind, a)
	}
	if s.store == nil {
		return
	}
	s.store.EmitEvent(AnimationEvent{
		Kind:      kind,
		Animation: a.ID,
		Entity:    a.Target,
		Elapsed:   a.elapsed,
	})
}
