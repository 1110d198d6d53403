package tumble

import (
	"errors"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

// runOn adds a fresh entity at (x, y) to a new scene and starts b on it.
func runOn(t *testing.T, x, y float64, b Behavior) (*Scene, *Entity, AnimationID) {
	t.Helper()
	s := NewScene()
	e := NewEntity("target", NewContentSize(32, 32))
	e.SetPosition(x, y)
	id := s.Add(e)
	aid, err := s.Run(id, b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s, e, aid
}

func step(t *testing.T, s *Scene, dts ...float64) {
	t.Helper()
	for _, dt := range dts {
		if err := s.Update(dt); err != nil {
			t.Fatalf("Update(%v): %v", dt, err)
		}
	}
}

// runToEnd advances s by dt until nothing is running and returns the number
// of frames and the total time advanced.
func runToEnd(t *testing.T, s *Scene, dt float64, limit int) (int, float64) {
	t.Helper()
	frames, total := 0, 0.0
	for s.Running() > 0 {
		if frames >= limit {
			t.Fatalf("still running after %d frames", limit)
		}
		step(t, s, dt)
		frames++
		total += dt
	}
	return frames, total
}

// --- Sequences ---

func TestSequenceOneChildPerFrame(t *testing.T) {
	b := Sequence(Do(ScaleTo(0.5, 0.5, 0.5)), Wait(0.5), Do(FadeOut(0.3)))
	s, e, _ := runOn(t, 150, 150, b)

	step(t, s, 0.6)
	assertNear(t, "ScaleX", e.ScaleX, 0.5)
	assertNear(t, "ScaleY", e.ScaleY, 0.5)
	if s.Running() != 1 {
		t.Fatalf("Running = %d after first frame, want 1", s.Running())
	}

	step(t, s, 0.5, 0.3)
	assertNear(t, "Alpha", e.Alpha, 0)
	if s.Running() != 0 {
		t.Errorf("Running = %d, want 0", s.Running())
	}
	if e.X != 150 || e.Y != 150 {
		t.Errorf("position moved to (%v, %v)", e.X, e.Y)
	}
}

func TestSequenceLongScaleStillRunning(t *testing.T) {
	b := Sequence(Do(ScaleTo(2, 0.5, 0.5)), Wait(0.5), Do(FadeOut(0.3)))
	s, e, _ := runOn(t, 150, 150, b)

	step(t, s, 0.6, 0.5, 0.3)
	if s.Running() != 1 {
		t.Fatalf("Running = %d, want 1", s.Running())
	}
	// 1.4 of 2 seconds: scale has covered 70% of the way from 1 to 0.5.
	assertNear(t, "ScaleX", e.ScaleX, 0.65)

	runToEnd(t, s, 0.5, 20)
	assertNear(t, "ScaleX", e.ScaleX, 0.5)
	assertNear(t, "Alpha", e.Alpha, 0)
}

func TestSequenceCompletesRegardlessOfStepSize(t *testing.T) {
	durations := []float64{0.4, 1.0, 0.25}
	sum := 0.0
	for _, d := range durations {
		sum += d
	}

	for _, dt := range []float64{1.0 / 60, 1.0 / 10, 0.5, 2} {
		b := Sequence(
			Do(MoveBy(durations[0], 40, 0)),
			Do(RotateTo(durations[1], 90)),
			Do(FadeTo(durations[2], 0.25)),
		)
		s, e, _ := runOn(t, 0, 0, b)
		frames, total := runToEnd(t, s, dt, 10000)

		if total < sum-1e-9 {
			t.Errorf("dt=%v: finished after %v seconds, want at least %v", dt, total, sum)
		}
		if frames < len(durations) {
			t.Errorf("dt=%v: finished in %d frames, want at least %d", dt, frames, len(durations))
		}
		assertNear(t, "X", e.X, 40)
		assertNear(t, "Rotation", e.Rotation, 90)
		assertNear(t, "Alpha", e.Alpha, 0.25)
	}
}

func TestEmptySequenceCompletesWithoutMutation(t *testing.T) {
	s, e, _ := runOn(t, 5, 6, Sequence())
	before := *e
	step(t, s, 1.0/60)
	if s.Running() != 0 {
		t.Errorf("Running = %d, want 0", s.Running())
	}
	if *e != before {
		t.Errorf("entity changed: %+v -> %+v", before, *e)
	}
}

func TestNestedSequenceFinishesWithLastLeaf(t *testing.T) {
	b := Sequence(Sequence(Wait(0.1)), Sequence(Sequence(Wait(0.1))))
	s, _, _ := runOn(t, 0, 0, b)
	step(t, s, 0.1)
	if s.Running() != 1 {
		t.Fatalf("Running = %d after first leaf, want 1", s.Running())
	}
	step(t, s, 0.1)
	if s.Running() != 0 {
		t.Errorf("Running = %d after last leaf, want 0", s.Running())
	}
}

// --- Primitives ---

func TestActionFinalValues(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		check  func(e *Entity) (float64, float64)
		want   [2]float64
	}{
		{"scale_to", ScaleTo(1, 2, 3), func(e *Entity) (float64, float64) { return e.ScaleX, e.ScaleY }, [2]float64{2, 3}},
		{"scale_by", ScaleBy(1, 0.5, -0.5), func(e *Entity) (float64, float64) { return e.ScaleX, e.ScaleY }, [2]float64{1.5, 0.5}},
		{"move_to", MoveTo(1, -5, 7), func(e *Entity) (float64, float64) { return e.X, e.Y }, [2]float64{-5, 7}},
		{"move_by", MoveBy(1, 0, 80), func(e *Entity) (float64, float64) { return e.X, e.Y }, [2]float64{10, 100}},
		{"rotate_to", RotateTo(1, 1080), func(e *Entity) (float64, float64) { return e.Rotation, 0 }, [2]float64{1080, 0}},
		{"rotate_by", RotateBy(1, -45), func(e *Entity) (float64, float64) { return e.Rotation, 0 }, [2]float64{-35, 0}},
		{"fade_in", FadeIn(1), func(e *Entity) (float64, float64) { return e.Alpha, 0 }, [2]float64{1, 0}},
		{"fade_out", FadeOut(1), func(e *Entity) (float64, float64) { return e.Alpha, 0 }, [2]float64{0, 0}},
		{"fade_to", FadeTo(1, 0.75), func(e *Entity) (float64, float64) { return e.Alpha, 0 }, [2]float64{0.75, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, _ := runOn(t, 10, 20, Do(tt.action))
			e.Rotation = 10
			e.Alpha = 0.5

			// Overshoot on the last frame is absorbed.
			step(t, s, 0.3, 0.3, 0.3, 0.3)
			if s.Running() != 0 {
				t.Fatalf("Running = %d, want 0", s.Running())
			}
			a, b := tt.check(e)
			assertNear(t, "first", a, tt.want[0])
			assertNear(t, "second", b, tt.want[1])
		})
	}
}

func TestActionInterpolatesFromActivation(t *testing.T) {
	b := Sequence(Wait(0.5), Do(MoveBy(1, 100, 0)))
	s, e, _ := runOn(t, 0, 0, b)

	step(t, s, 0.5)
	// Moved by someone else between activation of the sequence and the action.
	e.X = 50
	step(t, s, 0.25)
	assertNear(t, "X", e.X, 75)
	step(t, s, 0.75)
	assertNear(t, "X", e.X, 150)
}

func TestZeroDurationActionCompletesImmediately(t *testing.T) {
	s, e, _ := runOn(t, 0, 0, Do(MoveTo(0, 3, 4)))
	step(t, s, 0)
	if s.Running() != 0 {
		t.Errorf("Running = %d, want 0", s.Running())
	}
	assertNear(t, "X", e.X, 3)
	assertNear(t, "Y", e.Y, 4)
}

func TestEasedAction(t *testing.T) {
	s, e, _ := runOn(t, 0, 0, Do(Ease(ease.InQuad, MoveTo(1, 100, 0))))
	step(t, s, 0.5)
	if math.Abs(e.X-25) > 1e-4 {
		t.Errorf("X = %v at half time with InQuad, want 25", e.X)
	}
	step(t, s, 0.5)
	assertNear(t, "X", e.X, 100)
}

func TestBlinkSquareWave(t *testing.T) {
	s, e, _ := runOn(t, 0, 0, Do(Blink(1, 2)))
	e.Alpha = 0.8

	// Each period starts hidden and ends visible.
	want := []float64{0, 0.8, 0, 0.8}
	step(t, s, 0.125)
	for i, w := range want {
		if i > 0 {
			step(t, s, 0.25)
		}
		assertNear(t, "Alpha", e.Alpha, w)
	}
	if s.Running() != 1 {
		t.Fatalf("Running = %d before the blink ends, want 1", s.Running())
	}

	step(t, s, 0.125)
	if s.Running() != 0 {
		t.Fatalf("Running = %d, want 0", s.Running())
	}
	assertNear(t, "Alpha restored", e.Alpha, 0.8)
}

// --- Waits ---

func TestWaitLeavesEntityAlone(t *testing.T) {
	s, e, _ := runOn(t, 1, 2, Wait(0.3))
	before := *e
	step(t, s, 0.1, 0.1)
	if s.Running() != 1 {
		t.Fatalf("Running = %d before the wait elapsed, want 1", s.Running())
	}
	step(t, s, 0.1)
	if s.Running() != 0 {
		t.Errorf("Running = %d, want 0", s.Running())
	}
	if *e != before {
		t.Errorf("entity changed: %+v -> %+v", before, *e)
	}
}

func TestWaitForeverNeverCompletes(t *testing.T) {
	s, _, aid := runOn(t, 0, 0, WaitForever())
	for i := 0; i < 1000; i++ {
		step(t, s, 1)
	}
	if s.Running() != 1 {
		t.Fatalf("Running = %d, want 1", s.Running())
	}
	a, ok := s.Animation(aid)
	if !ok {
		t.Fatal("animation not found")
	}
	assertNear(t, "Elapsed", a.Elapsed(), 1000)
	if !s.Stop(aid) {
		t.Fatal("Stop should report a running animation")
	}
	if a.State() != AnimationCancelled {
		t.Errorf("State = %v, want cancelled", a.State())
	}
	if s.Running() != 0 {
		t.Errorf("Running = %d after Stop, want 0", s.Running())
	}
}

// --- Loops ---

func TestWhileRunsBodyWhileConditionHolds(t *testing.T) {
	b := While(Times(3), Do(MoveBy(0.1, 10, 0)))
	s, e, _ := runOn(t, 0, 0, b)
	frames, _ := runToEnd(t, s, 0.1, 100)
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
	assertNear(t, "X", e.X, 30)
}

func TestRepeat(t *testing.T) {
	b := Repeat(4, Sequence(Do(RotateBy(0.5, 90)), Wait(0.5)))
	s, e, _ := runOn(t, 0, 0, b)
	runToEnd(t, s, 0.5, 100)
	assertNear(t, "Rotation", e.Rotation, 360)
}

func TestWhileIsDoWhile(t *testing.T) {
	calls := 0
	never := func(LoopContext) bool {
		calls++
		return false
	}
	s, e, _ := runOn(t, 0, 0, While(never, Do(MoveBy(0, 5, 0))))
	runToEnd(t, s, 0.1, 10)
	assertNear(t, "X", e.X, 5)
	if calls != 1 {
		t.Errorf("condition evaluated %d times, want 1", calls)
	}
}

func TestWhileNilConditionRunsOnce(t *testing.T) {
	s, e, _ := runOn(t, 0, 0, While(nil, Do(MoveBy(0, 5, 0))))
	runToEnd(t, s, 0.1, 10)
	assertNear(t, "X", e.X, 5)
}

func TestWhileWithoutBodyCompletes(t *testing.T) {
	s, _, _ := runOn(t, 0, 0, Behavior{Kind: BehaviorWhile, Condition: Always()})
	step(t, s, 0.1)
	if s.Running() != 0 {
		t.Errorf("Running = %d, want 0", s.Running())
	}
}

func TestWhileConditionContext(t *testing.T) {
	var seen []LoopContext
	cond := func(c LoopContext) bool {
		seen = append(seen, c)
		return c.Elapsed < 0.35
	}
	s, e, _ := runOn(t, 0, 0, While(cond, Wait(0.1)))
	frames, _ := runToEnd(t, s, 0.1, 100)
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
	if len(seen) != 3 {
		t.Fatalf("condition evaluated %d times, want 3", len(seen))
	}
	for i, c := range seen {
		if c.Iteration != i+1 {
			t.Errorf("call %d: Iteration = %d, want %d", i, c.Iteration, i+1)
		}
		if c.Entity != e {
			t.Errorf("call %d: wrong entity", i)
		}
	}
	if math.Abs(seen[2].Elapsed-0.4) > 1e-9 {
		t.Errorf("last Elapsed = %v, want 0.4", seen[2].Elapsed)
	}
}

func TestAlwaysLoopsUntilStopped(t *testing.T) {
	s, e, aid := runOn(t, 0, 0, While(Always(), Do(RotateBy(0.1, 10))))
	step(t, s, 0.1, 0.1, 0.1, 0.1, 0.1)
	if s.Running() != 1 {
		t.Fatalf("Running = %d, want 1", s.Running())
	}
	s.Stop(aid)
	rot := e.Rotation
	step(t, s, 0.1)
	if e.Rotation != rot {
		t.Error("stopped animation kept mutating the entity")
	}
}

// --- Concurrency within one entity ---

func TestParallelAnimationsOnOneEntity(t *testing.T) {
	s := NewScene()
	e := NewEntity("logo", NewContentSize(64, 64))
	e.SetPosition(150, 150)
	id := s.Add(e)

	seq := Sequence(
		Do(Ease(ease.OutCubic, ScaleTo(2, 0.5, 0.5))),
		Do(Ease(ease.OutBounce, MoveBy(1, 0, 80))),
		Wait(0.5),
		Do(FadeOut(0.3)),
	)
	spin := Do(Ease(ease.InOutQuart, RotateTo(2.5, 1080)))
	if _, err := s.Run(id, seq); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(id, spin); err != nil {
		t.Fatal(err)
	}
	if s.Running() != 2 {
		t.Fatalf("Running = %d, want 2", s.Running())
	}

	runToEnd(t, s, 1.0/60, 1000)
	assertNear(t, "ScaleX", e.ScaleX, 0.5)
	assertNear(t, "Y", e.Y, 230)
	assertNear(t, "Rotation", e.Rotation, 1080)
	assertNear(t, "Alpha", e.Alpha, 0)
}

func TestTreeSharedBetweenEntities(t *testing.T) {
	b := Sequence(Do(MoveBy(0.2, 10, 0)), Do(FadeOut(0.2)))
	s := NewScene()
	e1 := NewEntity("a", nil)
	e2 := NewEntity("b", nil)
	e2.X = 100
	id1, id2 := s.Add(e1), s.Add(e2)

	if _, err := s.Run(id1, b); err != nil {
		t.Fatal(err)
	}
	step(t, s, 0.2)
	if _, err := s.Run(id2, b); err != nil {
		t.Fatal(err)
	}
	runToEnd(t, s, 0.1, 100)

	assertNear(t, "e1.X", e1.X, 10)
	assertNear(t, "e2.X", e2.X, 110)
	assertNear(t, "e1.Alpha", e1.Alpha, 0)
	assertNear(t, "e2.Alpha", e2.Alpha, 0)
	if len(b.Children) != 2 || b.Children[0].Action.X != 10 {
		t.Error("running a tree must not modify it")
	}
}

func TestAnimationStateAfterCompletion(t *testing.T) {
	s, _, aid := runOn(t, 0, 0, Wait(0.1))
	a, ok := s.Animation(aid)
	if !ok {
		t.Fatal("animation not found")
	}
	if a.State() != AnimationActive || a.Depth() != 1 {
		t.Errorf("State = %v, Depth = %d before advancing", a.State(), a.Depth())
	}
	step(t, s, 0.1)
	if a.State() != AnimationCompleted || a.Depth() != 0 {
		t.Errorf("State = %v, Depth = %d after completion", a.State(), a.Depth())
	}
	if _, ok := s.Animation(aid); ok {
		t.Error("finished animation should no longer be reachable")
	}
}

// --- Validate and names ---

func TestBehaviorValidate(t *testing.T) {
	valid := Sequence(Do(MoveBy(1, 1, 1)), Wait(0), Repeat(2, WaitForever()))
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name string
		b    Behavior
	}{
		{"empty sequence", Sequence()},
		{"negative wait", Wait(-1)},
		{"negative action", Do(FadeIn(-0.5))},
		{"loop without body", Behavior{Kind: BehaviorWhile}},
		{"nested", Sequence(Wait(1), Repeat(2, Sequence()))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); !errors.Is(err, ErrDegenerateBehavior) {
				t.Errorf("Validate = %v, want ErrDegenerateBehavior", err)
			}
		})
	}
}

func TestKindStrings(t *testing.T) {
	if BehaviorWaitForever.String() != "wait_forever" {
		t.Errorf("BehaviorWaitForever = %q", BehaviorWaitForever.String())
	}
	if ActionRotateTo.String() != "rotate_to" {
		t.Errorf("ActionRotateTo = %q", ActionRotateTo.String())
	}
	if AnimationCancelled.String() != "cancelled" {
		t.Errorf("AnimationCancelled = %q", AnimationCancelled.String())
	}
	if ActionKind(200).String() != "ActionKind(200)" {
		t.Errorf("unknown kind = %q", ActionKind(200).String())
	}
}

func TestEaseByName(t *testing.T) {
	fn, err := EaseByName("OutCubic")
	if err != nil {
		t.Fatal(err)
	}
	if got := easeProgress(fn, 1); math.Abs(got-1) > 1e-6 {
		t.Errorf("OutCubic(1) = %v, want 1", got)
	}
	if _, err := EaseByName("Wobbly"); err == nil {
		t.Error("expected error for unknown easing")
	}

	names := EaseNames()
	if len(names) != len(easings) {
		t.Errorf("EaseNames has %d entries, want %d", len(names), len(easings))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("EaseNames not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	if easeProgress(nil, 0.3) != 0.3 {
		t.Error("nil easing must be the identity")
	}
}
