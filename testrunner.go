package knob

import (
	"encoding/json"
	"fmt"
	"math"
)

// expectTolerance absorbs float error when comparing expected values.
const expectTolerance = 1e-9

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Knob   string   `json:"knob,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Value  *float64 `json:"value,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and value checks across frames for
// automated testing. Attach it to a Panel with SetTestRunner.
//
// Actions: "press", "move", "release" (x, y), "drag" (fromX, fromY, toX, toY,
// frames), "wait" (frames) and "expect" (knob, value).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	errs      []error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached to a Panel.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "drag", "wait":
		case "expect":
			if st.Value == nil {
				return nil, fmt.Errorf("parse test script: step %d: expect needs a value", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the panel. The runner steps once per
// Update, before input is processed.
func (p *Panel) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the failed expectations, in script order.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the test runner by one frame.
func (r *TestRunner) step(p *Panel) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(p.injectQueue) > 0 {
		return
	}
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
	case "press":
		p.InjectPress(st.X, st.Y)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "release":
		p.InjectRelease(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		r.expect(p, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) expect(p *Panel, st testStep) {
	k := p.Knob(st.Knob)
	if k == nil {
		r.errs = append(r.errs, fmt.Errorf("step %d: no knob named %q", r.cursor-1, st.Knob))
		return
	}
	if got := k.Value(); math.Abs(got-*st.Value) > expectTolerance {
		r.errs = append(r.errs, fmt.Errorf("step %d: knob %q value = %v, want %v", r.cursor-1, st.Knob, got, *st.Value))
	}
}
