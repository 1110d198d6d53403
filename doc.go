// Package tumble is a small 2D animation and physics toolkit for [Ebitengine].
//
// It provides a held-button tracker, a rolling physics body, a behavior-tree
// animation interpreter and a scene that owns entities and the animations
// running on them. A [Loop] strings stages together and drives them from
// ebiten's frame loop.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and runs
// stages one after the other:
//
//	cfg := tumble.DefaultConfig()
//	intro, _ := tumble.DefaultIntro(logo, cfg)
//	game, _ := tumble.NewPlayground(player, cfg)
//	tumble.Run(cfg.RunConfig(), intro, game)
//
// # Behaviors
//
// A [Behavior] is a tree of primitive actions, waits, sequences and loops.
// [Scene.Run] binds a behavior to an entity and [Scene.Update] advances every
// running animation by one frame:
//
//	id := scene.Add(tumble.NewEntity("logo", logo))
//	scene.Run(id, tumble.Sequence(
//		tumble.Do(tumble.Ease(ease.OutCubic, tumble.ScaleTo(2, 0.5, 0.5))),
//		tumble.Wait(0.5),
//		tumble.Do(tumble.FadeOut(0.3)),
//	))
//
// Each frame exactly one leaf of a tree consumes the frame time. A leaf that
// completes mid-frame drops the remainder and the next sibling starts on the
// following frame. Loops ([While], [Repeat]) run their body before testing
// the condition.
//
// Several behaviors may run on one entity at once. They must not animate the
// same property; when they do, the one started last wins each frame.
//
// # Physics
//
// [Body] integrates a player entity with a fixed step: move, clamp to the
// world, damp, clamp velocity, then roll. Non-finite input is rejected with
// [ErrNonFiniteInput] rather than propagated.
//
// Scene files, hot reload and scripted loop conditions live in the script
// subpackage; the ecs subpackage forwards animation events into a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tumble
