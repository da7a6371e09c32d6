package knob

import (
	"strings"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"invalid json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
		{"expect without value", `{"steps": [{"action": "expect", "knob": "a"}]}`, "expect needs a value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

// runScript attaches script to a two-knob panel without live input and runs
// it to completion.
func runScript(t *testing.T, script string) (*TestRunner, *Panel) {
	t.Helper()
	p, _, _, _ := newTestPanel()
	p.SetPointerSource(nil)

	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	p.SetTestRunner(runner)
	for i := 0; i < 100 && !runner.Done(); i++ {
		p.advance(frame)
	}
	if !runner.Done() {
		t.Fatal("script did not finish in 100 frames")
	}
	return runner, p
}

func TestTestRunnerPressMoveRelease(t *testing.T) {
	runner, p := runScript(t, `{"steps": [
		{"action": "press", "x": 50, "y": 20},
		{"action": "expect", "knob": "a", "value": 50},
		{"action": "move", "x": 20, "y": 45},
		{"action": "release", "x": 20, "y": 45},
		{"action": "expect", "knob": "a", "value": 20},
		{"action": "expect", "knob": "b", "value": 0},
		{"action": "wait", "frames": 2}
	]}`)

	if errs := runner.Errors(); len(errs) != 0 {
		t.Errorf("Errors() = %v", errs)
	}
	if p.Knob("a").Dragging() {
		t.Error("knob a still dragging after release")
	}
}

func TestTestRunnerDrag(t *testing.T) {
	runner, _ := runScript(t, `{"steps": [
		{"action": "drag", "fromX": 250, "fromY": 20, "toX": 220, "toY": 45, "frames": 5},
		{"action": "expect", "knob": "b", "value": 20},
		{"action": "expect", "knob": "a", "value": 0}
	]}`)

	if errs := runner.Errors(); len(errs) != 0 {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestTestRunnerReportsFailures(t *testing.T) {
	runner, _ := runScript(t, `{"steps": [
		{"action": "press", "x": 50, "y": 20},
		{"action": "expect", "knob": "a", "value": 99},
		{"action": "expect", "knob": "nope", "value": 0}
	]}`)

	errs := runner.Errors()
	if len(errs) != 2 {
		t.Fatalf("Errors() = %v, want 2", errs)
	}
	if !strings.Contains(errs[0].Error(), "want 99") {
		t.Errorf("errs[0] = %q", errs[0])
	}
	if !strings.Contains(errs[1].Error(), `no knob named "nope"`) {
		t.Errorf("errs[1] = %q", errs[1])
	}
}
