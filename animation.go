package tumble

import "fmt"

// AnimationID identifies a running animation within a Scene.
type AnimationID uint32

// AnimationState is the lifecycle state of an Animation.
type AnimationState uint8

const (
	AnimationActive    AnimationState = iota // advancing every frame
	AnimationCompleted                       // the tree ran to completion
	AnimationCancelled                       // stopped by its owner
)

// String returns the lower-case state name.
func (s AnimationState) String() string {
	switch s {
	case AnimationActive:
		return "active"
	case AnimationCompleted:
		return "completed"
	case AnimationCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("AnimationState(%d)", uint8(s))
}

// cursor is one level of the path from the tree root to the active leaf.
type cursor struct {
	node *Behavior

	index     int     // sequence: active child
	iteration int     // while: completed body runs
	bodyDone  bool    // while: body finished, condition pending
	elapsed   float64 // leaf: time in this node; while: time in the loop

	started bool       // action: from values captured
	from    [2]float64 // action: property values at activation
}

// Animation is a behavior tree bound to one target entity, together with the
// interpreter state needed to resume it next frame. The tree is walked with an
// explicit cursor stack, so per-frame cost is bounded by tree depth.
type Animation struct {
	ID     AnimationID
	Target EntityID

	root    Behavior
	stack   []cursor
	state   AnimationState
	elapsed float64
}

func newAnimation(id AnimationID, target EntityID, b Behavior) *Animation {
	a := &Animation{ID: id, Target: target, root: b, state: AnimationActive}
	a.stack = append(make([]cursor, 0, 4), cursor{node: &a.root})
	return a
}

// State returns the lifecycle state.
func (a *Animation) State() AnimationState {
	return a.state
}

// Elapsed returns the total time the animation has been advanced by.
func (a *Animation) Elapsed() float64 {
	return a.elapsed
}

// Depth returns the current depth of the cursor stack. Zero once finished.
func (a *Animation) Depth() int {
	return len(a.stack)
}

// cancel stops the animation where it is. Entity fields keep their current
// values.
func (a *Animation) cancel() {
	if a.state == AnimationActive {
		a.state = AnimationCancelled
		a.stack = a.stack[:0]
	}
}

// advance moves the animation forward by one frame of dt seconds, mutating e.
// It reports whether the animation is finished.
//
// Exactly one leaf consumes dt per call. When a leaf completes, its leftover
// time is dropped and the next sibling starts on the following call. A
// sequence whose last child completes finishes in the same call.
func (a *Animation) advance(e *Entity, dt float64) bool {
	if a.state != AnimationActive {
		return true
	}
	a.elapsed += dt
	for i := range a.stack {
		if a.stack[i].node.Kind == BehaviorWhile {
			a.stack[i].elapsed += dt
		}
	}

	for {
		top := len(a.stack) - 1
		c := &a.stack[top]
		n := c.node

		switch n.Kind {
		case BehaviorSequence:
			if c.index >= len(n.Children) {
				return a.finish()
			}
			a.push(&n.Children[c.index])

		case BehaviorWhile:
			if n.Body == nil {
				return a.finish()
			}
			if c.bodyDone {
				ctx := LoopContext{Entity: e, Iteration: c.iteration, Elapsed: c.elapsed}
				if n.Condition == nil || !n.Condition(ctx) {
					return a.finish()
				}
				c.bodyDone = false
			}
			a.push(n.Body)

		case BehaviorWait:
			c.elapsed += dt
			if c.elapsed >= n.Duration {
				return a.finish()
			}
			return false

		case BehaviorWaitForever:
			c.elapsed += dt
			return false

		case BehaviorAction:
			if stepAction(c, &n.Action, e, dt) {
				return a.finish()
			}
			return false

		default:
			return a.finish()
		}
	}
}

func (a *Animation) push(n *Behavior) {
	a.stack = append(a.stack, cursor{node: n})
}

// finish pops the completed top of the stack and lets each parent react. It
// reports whether the root completed.
func (a *Animation) finish() bool {
	for {
		a.stack = a.stack[:len(a.stack)-1]
		if len(a.stack) == 0 {
			a.state = AnimationCompleted
			return true
		}

		p := &a.stack[len(a.stack)-1]
		switch p.node.Kind {
		case BehaviorSequence:
			p.index++
			if p.index < len(p.node.Children) {
				return false
			}
		case BehaviorWhile:
			p.iteration++
			p.bodyDone = true
			return false
		default:
			return false
		}
	}
}

// stepAction advances a primitive action by dt and applies it to e. It
// reports whether the action completed. On completion the exact final value
// is applied, absorbing any overshoot.
func stepAction(c *cursor, act *Action, e *Entity, dt float64) bool {
	if !c.started {
		c.started = true
		c.from = actionFrom(act, e)
	}
	c.elapsed += dt

	if act.Duration <= 0 || c.elapsed >= act.Duration {
		applyAction(act, c.from, e, 1, true)
		return true
	}
	t := easeProgress(act.Easing, c.elapsed/act.Duration)
	applyAction(act, c.from, e, t, false)
	return false
}

// actionFrom captures the property values an action interpolates from.
func actionFrom(act *Action, e *Entity) [2]float64 {
	switch act.Kind {
	case ActionScaleTo, ActionScaleBy:
		return [2]float64{e.ScaleX, e.ScaleY}
	case ActionMoveTo, ActionMoveBy:
		return [2]float64{e.X, e.Y}
	case ActionRotateTo, ActionRotateBy:
		return [2]float64{e.Rotation, 0}
	default:
		return [2]float64{e.Alpha, 0}
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// applyAction writes the value of act at eased progress t.
func applyAction(act *Action, from [2]float64, e *Entity, t float64, final bool) {
	switch act.Kind {
	case ActionScaleTo:
		e.ScaleX, e.ScaleY = lerp(from[0], act.X, t), lerp(from[1], act.Y, t)
	case ActionScaleBy:
		e.ScaleX, e.ScaleY = lerp(from[0], from[0]+act.X, t), lerp(from[1], from[1]+act.Y, t)
	case ActionMoveTo:
		e.X, e.Y = lerp(from[0], act.X, t), lerp(from[1], act.Y, t)
	case ActionMoveBy:
		e.X, e.Y = lerp(from[0], from[0]+act.X, t), lerp(from[1], from[1]+act.Y, t)
	case ActionRotateTo:
		e.Rotation = lerp(from[0], act.X, t)
	case ActionRotateBy:
		e.Rotation = lerp(from[0], from[0]+act.X, t)
	case ActionFadeIn:
		e.Alpha = lerp(from[0], 1, t)
	case ActionFadeOut:
		e.Alpha = lerp(from[0], 0, t)
	case ActionFadeTo:
		e.Alpha = lerp(from[0], act.X, t)
	case ActionBlink:
		e.Alpha = blinkAlpha(from[0], act.Times, t, final)
	}
}

// blinkAlpha is a square wave: each of the times periods starts hidden and
// ends visible. The original opacity is restored when the blink completes.
func blinkAlpha(original float64, times int, t float64, final bool) float64 {
	if final || times <= 0 {
		return original
	}
	phase := t * float64(times)
	if phase-float64(int(phase)) < 0.5 {
		return 0
	}
	return original
}
