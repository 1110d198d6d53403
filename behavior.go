package tumble

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// BehaviorKind selects the variant of a Behavior.
type BehaviorKind uint8

const (
	BehaviorAction      BehaviorKind = iota // run one timed Action
	BehaviorWait                            // let Duration pass
	BehaviorWaitForever                     // never complete
	BehaviorSequence                        // run Children one after another
	BehaviorWhile                           // repeat Body while Condition holds
)

// String returns the lower-case variant name.
func (k BehaviorKind) String() string {
	switch k {
	case BehaviorAction:
		return "action"
	case BehaviorWait:
		return "wait"
	case BehaviorWaitForever:
		return "wait_forever"
	case BehaviorSequence:
		return "sequence"
	case BehaviorWhile:
		return "while"
	}
	return fmt.Sprintf("BehaviorKind(%d)", uint8(k))
}

// Behavior is one node of an animation behavior tree. Trees are plain data:
// they name no entity and are never modified by the interpreter, so one tree
// may be run against many entities at once.
//
// A single flat struct covers every variant; which fields are meaningful
// depends on Kind.
type Behavior struct {
	Kind BehaviorKind

	Action    Action     // BehaviorAction
	Duration  float64    // BehaviorWait, in seconds
	Children  []Behavior // BehaviorSequence
	Condition Condition  // BehaviorWhile
	Body      *Behavior  // BehaviorWhile
}

// Do returns a behavior that runs a single action.
func Do(a Action) Behavior {
	return Behavior{Kind: BehaviorAction, Action: a}
}

// Wait returns a behavior that lets seconds pass without touching the entity.
func Wait(seconds float64) Behavior {
	return Behavior{Kind: BehaviorWait, Duration: seconds}
}

// WaitForever returns a behavior that never completes.
func WaitForever() Behavior {
	return Behavior{Kind: BehaviorWaitForever}
}

// Sequence returns a behavior that runs children strictly in order. An empty
// sequence completes on its first advance.
func Sequence(children ...Behavior) Behavior {
	return Behavior{Kind: BehaviorSequence, Children: append([]Behavior(nil), children...)}
}

// While returns a loop that runs body, then re-runs it for as long as cond
// holds when the previous run completes. The body always runs at least once.
func While(cond Condition, body Behavior) Behavior {
	return Behavior{Kind: BehaviorWhile, Condition: cond, Body: &body}
}

// Repeat runs body n times in total.
func Repeat(n int, body Behavior) Behavior {
	return While(Times(n), body)
}

// LoopContext is handed to a Condition when a loop body completes.
type LoopContext struct {
	// Entity is the animation target. Conditions must treat it as read-only.
	Entity *Entity
	// Iteration counts completed runs of the loop body.
	Iteration int
	// Elapsed is the time spent in the loop so far, in seconds.
	Elapsed float64
}

// Condition decides whether a While loop runs its body again.
type Condition func(LoopContext) bool

// Times returns a condition that allows n runs of a loop body in total.
func Times(n int) Condition {
	return func(c LoopContext) bool { return c.Iteration < n }
}

// Always returns a condition that never ends a loop.
func Always() Condition {
	return func(LoopContext) bool { return true }
}

// Validate walks the tree and reports nodes the interpreter would resolve as
// immediate completion (empty sequences, loops without a body) or that carry
// negative durations. The interpreter itself never fails on such trees;
// Validate exists for loaders that want to warn about them.
func (b Behavior) Validate() error {
	var errs []error
	stack := []*Behavior{&b}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case BehaviorAction:
			if n.Action.Duration < 0 {
				errs = append(errs, fmt.Errorf("%s: negative duration %v: %w", n.Action.Kind, n.Action.Duration, ErrDegenerateBehavior))
			}
		case BehaviorWait:
			if n.Duration < 0 {
				errs = append(errs, fmt.Errorf("wait: negative duration %v: %w", n.Duration, ErrDegenerateBehavior))
			}
		case BehaviorSequence:
			if len(n.Children) == 0 {
				errs = append(errs, fmt.Errorf("sequence: no children: %w", ErrDegenerateBehavior))
			}
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, &n.Children[i])
			}
		case BehaviorWhile:
			if n.Body == nil {
				errs = append(errs, fmt.Errorf("while: no body: %w", ErrDegenerateBehavior))
				continue
			}
			stack = append(stack, n.Body)
		}
	}
	return errors.Join(errs...)
}

// ActionKind selects the transformation an Action performs.
type ActionKind uint8

const (
	ActionScaleTo  ActionKind = iota // scale to (X, Y)
	ActionScaleBy                    // add (X, Y) to the scale
	ActionMoveTo                     // move to (X, Y)
	ActionMoveBy                     // move by (X, Y)
	ActionRotateTo                   // rotate to X degrees
	ActionRotateBy                   // rotate by X degrees
	ActionFadeIn                     // fade opacity to 1
	ActionFadeOut                    // fade opacity to 0
	ActionFadeTo                     // fade opacity to X
	ActionBlink                      // hide and show Times times
)

var actionKindNames = [...]string{
	ActionScaleTo:  "scale_to",
	ActionScaleBy:  "scale_by",
	ActionMoveTo:   "move_to",
	ActionMoveBy:   "move_by",
	ActionRotateTo: "rotate_to",
	ActionRotateBy: "rotate_by",
	ActionFadeIn:   "fade_in",
	ActionFadeOut:  "fade_out",
	ActionFadeTo:   "fade_to",
	ActionBlink:    "blink",
}

// String returns the snake_case action name used in scene files.
func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is a timed transformation of one entity property. X and Y hold the
// destination or delta; which is used depends on Kind. Easing, when set,
// remaps normalized time before interpolation.
type Action struct {
	Kind     ActionKind
	Duration float64 // seconds
	X, Y     float64
	Times    int // ActionBlink
	Easing   ease.TweenFunc
}

// ScaleTo scales to (sx, sy) over duration seconds.
func ScaleTo(duration, sx, sy float64) Action {
	return Action{Kind: ActionScaleTo, Duration: duration, X: sx, Y: sy}
}

// ScaleBy adds (dsx, dsy) to the scale over duration seconds.
func ScaleBy(duration, dsx, dsy float64) Action {
	return Action{Kind: ActionScaleBy, Duration: duration, X: dsx, Y: dsy}
}

// MoveTo moves to (x, y) over duration seconds.
func MoveTo(duration, x, y float64) Action {
	return Action{Kind: ActionMoveTo, Duration: duration, X: x, Y: y}
}

// MoveBy moves by (dx, dy) over duration seconds.
func MoveBy(duration, dx, dy float64) Action {
	return Action{Kind: ActionMoveBy, Duration: duration, X: dx, Y: dy}
}

// RotateTo rotates to degrees over duration seconds.
func RotateTo(duration, degrees float64) Action {
	return Action{Kind: ActionRotateTo, Duration: duration, X: degrees}
}

// RotateBy rotates by degrees over duration seconds.
func RotateBy(duration, degrees float64) Action {
	return Action{Kind: ActionRotateBy, Duration: duration, X: degrees}
}

// FadeIn fades opacity to 1 over duration seconds.
func FadeIn(duration float64) Action {
	return Action{Kind: ActionFadeIn, Duration: duration}
}

// FadeOut fades opacity to 0 over duration seconds.
func FadeOut(duration float64) Action {
	return Action{Kind: ActionFadeOut, Duration: duration}
}

// FadeTo fades opacity to alpha over duration seconds.
func FadeTo(duration, alpha float64) Action {
	return Action{Kind: ActionFadeTo, Duration: duration, X: alpha}
}

// Blink hides and shows the entity times times over duration seconds and
// restores the original opacity at the end.
func Blink(duration float64, times int) Action {
	return Action{Kind: ActionBlink, Duration: duration, Times: times}
}

// Ease returns a with its easing function replaced by fn.
func Ease(fn ease.TweenFunc, a Action) Action {
	a.Easing = fn
	return a
}
