package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/phanxgames/tumble"
)

// maxDepth bounds nesting in scene files.
const maxDepth = 64

// Build converts n into a behavior tree. Errors name the path of the
// offending node, for example "node.sequence[2].while.do".
func (n *NodeSpec) Build() (tumble.Behavior, error) {
	return n.build("node", 0)
}

func (n *NodeSpec) build(path string, depth int) (tumble.Behavior, error) {
	if depth > maxDepth {
		return tumble.Behavior{}, fmt.Errorf("%s: nested deeper than %d: %w", path, maxDepth, ErrInvalidNode)
	}

	forms := n.forms()
	if len(forms) != 1 {
		if len(forms) == 0 {
			return tumble.Behavior{}, fmt.Errorf("%s: no node form set: %w", path, ErrInvalidNode)
		}
		return tumble.Behavior{}, fmt.Errorf("%s: several node forms set (%s): %w",
			path, strings.Join(forms, ", "), ErrInvalidNode)
	}
	form := forms[0]

	if spec, kind, ok := n.action(); ok {
		act, err := buildAction(kind, spec)
		if err != nil {
			return tumble.Behavior{}, fmt.Errorf("%s.%s: %w", path, form, err)
		}
		if n.Ease != "" {
			fn, err := tumble.EaseByName(n.Ease)
			if err != nil {
				return tumble.Behavior{}, fmt.Errorf("%s.%s: %v: %w", path, form, err, ErrInvalidNode)
			}
			act = tumble.Ease(fn, act)
		}
		return tumble.Do(act), nil
	}
	if n.Ease != "" {
		return tumble.Behavior{}, fmt.Errorf("%s: ease applies to actions, not %s: %w", path, form, ErrInvalidNode)
	}

	switch {
	case n.Wait != nil:
		if *n.Wait < 0 || !finite(*n.Wait) {
			return tumble.Behavior{}, fmt.Errorf("%s.wait: invalid duration %v: %w", path, *n.Wait, ErrInvalidNode)
		}
		return tumble.Wait(*n.Wait), nil

	case n.WaitForever:
		return tumble.WaitForever(), nil

	case n.Sequence != nil:
		children := make([]tumble.Behavior, 0, len(n.Sequence))
		for i := range n.Sequence {
			child, err := n.Sequence[i].build(fmt.Sprintf("%s.sequence[%d]", path, i), depth+1)
			if err != nil {
				return tumble.Behavior{}, err
			}
			children = append(children, child)
		}
		return tumble.Sequence(children...), nil

	case n.While != nil:
		if n.While.Do == nil {
			return tumble.Behavior{}, fmt.Errorf("%s.while: missing do: %w", path, ErrInvalidNode)
		}
		cond, err := NewExprCondition(n.While.Cond)
		if err != nil {
			return tumble.Behavior{}, fmt.Errorf("%s.while: %v: %w", path, err, ErrInvalidNode)
		}
		body, err := n.While.Do.build(path+".while.do", depth+1)
		if err != nil {
			return tumble.Behavior{}, err
		}
		return tumble.While(cond.Condition(), body), nil

	case n.Repeat != nil:
		if n.Repeat.Do == nil {
			return tumble.Behavior{}, fmt.Errorf("%s.repeat: missing do: %w", path, ErrInvalidNode)
		}
		if n.Repeat.Times < 1 {
			return tumble.Behavior{}, fmt.Errorf("%s.repeat: times %d must be at least 1: %w", path, n.Repeat.Times, ErrInvalidNode)
		}
		body, err := n.Repeat.Do.build(path+".repeat.do", depth+1)
		if err != nil {
			return tumble.Behavior{}, err
		}
		return tumble.Repeat(n.Repeat.Times, body), nil
	}
	return tumble.Behavior{}, fmt.Errorf("%s: unhandled form %s: %w", path, form, ErrInvalidNode)
}

// forms lists the names of the node forms set on n.
func (n *NodeSpec) forms() []string {
	var out []string
	for _, f := range n.actionForms() {
		if f.spec != nil {
			out = append(out, f.kind.String())
		}
	}
	if n.Wait != nil {
		out = append(out, "wait")
	}
	if n.WaitForever {
		out = append(out, "wait_forever")
	}
	if n.Sequence != nil {
		out = append(out, "sequence")
	}
	if n.While != nil {
		out = append(out, "while")
	}
	if n.Repeat != nil {
		out = append(out, "repeat")
	}
	return out
}

type actionForm struct {
	kind tumble.ActionKind
	spec *ActionSpec
}

func (n *NodeSpec) actionForms() [10]actionForm {
	return [10]actionForm{
		{tumble.ActionScaleTo, n.ScaleTo},
		{tumble.ActionScaleBy, n.ScaleBy},
		{tumble.ActionMoveTo, n.MoveTo},
		{tumble.ActionMoveBy, n.MoveBy},
		{tumble.ActionRotateTo, n.RotateTo},
		{tumble.ActionRotateBy, n.RotateBy},
		{tumble.ActionFadeIn, n.FadeIn},
		{tumble.ActionFadeOut, n.FadeOut},
		{tumble.ActionFadeTo, n.FadeTo},
		{tumble.ActionBlink, n.Blink},
	}
}

// action returns the action form set on n, if any.
func (n *NodeSpec) action() (*ActionSpec, tumble.ActionKind, bool) {
	for _, f := range n.actionForms() {
		if f.spec != nil {
			return f.spec, f.kind, true
		}
	}
	return nil, 0, false
}

func buildAction(kind tumble.ActionKind, s *ActionSpec) (tumble.Action, error) {
	if s.Duration < 0 || !finite(s.Duration) {
		return tumble.Action{}, fmt.Errorf("invalid duration %v: %w", s.Duration, ErrInvalidNode)
	}
	switch kind {
	case tumble.ActionScaleTo:
		return tumble.ScaleTo(s.Duration, s.X, s.Y), nil
	case tumble.ActionScaleBy:
		return tumble.ScaleBy(s.Duration, s.X, s.Y), nil
	case tumble.ActionMoveTo:
		return tumble.MoveTo(s.Duration, s.X, s.Y), nil
	case tumble.ActionMoveBy:
		return tumble.MoveBy(s.Duration, s.X, s.Y), nil
	case tumble.ActionRotateTo:
		return tumble.RotateTo(s.Duration, s.Angle), nil
	case tumble.ActionRotateBy:
		return tumble.RotateBy(s.Duration, s.Angle), nil
	case tumble.ActionFadeIn:
		return tumble.FadeIn(s.Duration), nil
	case tumble.ActionFadeOut:
		return tumble.FadeOut(s.Duration), nil
	case tumble.ActionFadeTo:
		if s.Alpha < 0 || s.Alpha > 1 {
			return tumble.Action{}, fmt.Errorf("alpha %v outside [0, 1]: %w", s.Alpha, ErrInvalidNode)
		}
		return tumble.FadeTo(s.Duration, s.Alpha), nil
	case tumble.ActionBlink:
		if s.Times < 1 {
			return tumble.Action{}, fmt.Errorf("blink times %d must be at least 1: %w", s.Times, ErrInvalidNode)
		}
		return tumble.Blink(s.Duration, s.Times), nil
	}
	return tumble.Action{}, fmt.Errorf("unknown action %s: %w", kind, ErrInvalidNode)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
