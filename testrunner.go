package tumble

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Button string `json:"button,omitempty"`
	Frames int    `json:"frames,omitempty"`

	button Button
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated runs. Attach to a Loop via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Loop via SetTestRunner.
//
// Supported actions are "press", "release", "tap" and "hold" (all taking a
// "button" name such as "Left" or "Space"; "hold" also takes "frames"),
// "wait" (taking "frames") and "screenshot" (taking "label").
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap", "hold":
			b, err := ParseButton(st.Button)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.button = b
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the loop. The runner's step method
// is called at the start of every Loop.Update.
func (l *Loop) SetTestRunner(runner *TestRunner) {
	l.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Loop.Update.
func (r *TestRunner) step(l *Loop) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(l.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		l.Screenshot(st.Label)
	case "press":
		l.InjectPress(st.button)
	case "release":
		l.InjectRelease(st.button)
	case "tap":
		l.InjectTap(st.button)
	case "hold":
		l.InjectHold(st.button, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(l.injectQueue) == 0 {
		r.done = true
	}
}
