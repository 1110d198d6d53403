package script

import (
	"fmt"

	"github.com/phanxgames/tumble"
)

// ContentLoader resolves an image path from a scene file. tumble.LoadContent
// is the usual choice.
type ContentLoader func(path string) (*tumble.Content, error)

// Placed is one entity added by Apply together with the animations started
// on it, in file order.
type Placed struct {
	Entity     tumble.EntityID
	Animations []tumble.AnimationID
}

// Apply adds the document's entities to scene and starts their behaviors.
// Every behavior is built and every image is loaded before the scene is
// touched, so a failing document leaves the scene unchanged. Images named
// more than once are loaded once and shared.
func Apply(scene *tumble.Scene, doc *Document, load ContentLoader) ([]Placed, error) {
	if load == nil {
		load = tumble.LoadContent
	}

	type pending struct {
		entity    *tumble.Entity
		behaviors []tumble.Behavior
	}
	cache := make(map[string]*tumble.Content)
	prepared := make([]pending, 0, len(doc.Entities))

	for i := range doc.Entities {
		es := &doc.Entities[i]
		path := fmt.Sprintf("entities[%d]", i)
		if es.Name != "" {
			path = fmt.Sprintf("entities[%d](%s)", i, es.Name)
		}

		content, err := resolveContent(es, cache, load)
		if err != nil {
			return nil, fmt.Errorf("script: %s: %w", path, err)
		}
		e := es.entity(content)

		behaviors := make([]tumble.Behavior, 0, len(es.Behaviors))
		for j := range es.Behaviors {
			b, err := es.Behaviors[j].build(fmt.Sprintf("%s.behaviors[%d]", path, j), 0)
			if err != nil {
				return nil, fmt.Errorf("script: %w", err)
			}
			behaviors = append(behaviors, b)
		}
		prepared = append(prepared, pending{entity: e, behaviors: behaviors})
	}

	placed := make([]Placed, 0, len(prepared))
	for _, p := range prepared {
		id := scene.Add(p.entity)
		pl := Placed{Entity: id, Animations: make([]tumble.AnimationID, 0, len(p.behaviors))}
		for _, b := range p.behaviors {
			aid, err := scene.Run(id, b)
			if err != nil {
				return placed, fmt.Errorf("script: run on %s: %w", p.entity.Name, err)
			}
			pl.Animations = append(pl.Animations, aid)
		}
		placed = append(placed, pl)
	}
	return placed, nil
}

func resolveContent(es *EntitySpec, cache map[string]*tumble.Content, load ContentLoader) (*tumble.Content, error) {
	if es.Image == "" {
		if es.Width < 0 || es.Height < 0 {
			return nil, fmt.Errorf("negative size %dx%d", es.Width, es.Height)
		}
		return tumble.NewContentSize(es.Width, es.Height), nil
	}
	if c, ok := cache[es.Image]; ok {
		return c, nil
	}
	c, err := load(es.Image)
	if err != nil {
		return nil, err
	}
	cache[es.Image] = c
	return c, nil
}

func (es *EntitySpec) entity(content *tumble.Content) *tumble.Entity {
	e := tumble.NewEntity(es.Name, content)
	e.SetPosition(es.X, es.Y)
	e.Rotation = es.Rotation
	if es.Scale != nil {
		e.SetScale(*es.Scale)
	}
	if es.Alpha != nil {
		e.Alpha = *es.Alpha
	}
	return e
}
