package knob

import "testing"

// fakeSource replays a fixed set of samples every poll.
type fakeSource struct {
	samples []PointerSample
	focused bool
}

func (s *fakeSource) Poll(dst []PointerSample) []PointerSample {
	return append(dst, s.samples...)
}

func (s *fakeSource) Focused() bool { return s.focused }

func (s *fakeSource) set(samples ...PointerSample) { s.samples = samples }

// at returns the destination point at angle degrees, 30 px from k's center.
func at(k *Knob, angle float64) Vec2 {
	p := k.Controller().Geometry().PointOnCircle(angle, 30)
	b := k.Bounds()
	return Vec2{X: p.X + b.X, Y: p.Y + b.Y}
}

func pressed(id int, p Vec2) PointerSample {
	return PointerSample{PointerID: id, X: p.X, Y: p.Y, Pressed: true}
}

func newTestPanel() (*Panel, *fakeSource, *Knob, *Knob) {
	src := &fakeSource{focused: true}
	p := NewPanel()
	p.SetPointerSource(src)
	a := New(DefaultConfig(), WithName("a"), WithBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100}))
	b := New(DefaultConfig(), WithName("b"), WithBounds(Rect{X: 200, Y: 0, Width: 100, Height: 100}))
	p.Add(a, b)
	return p, src, a, b
}

const frame = 1.0 / 60

func TestPanelRoutesPressToKnob(t *testing.T) {
	p, src, a, b := newTestPanel()

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)

	if a.Value() != 50 || !a.Dragging() {
		t.Errorf("a: Value() = %v, Dragging() = %v; want 50, true", a.Value(), a.Dragging())
	}
	if b.Value() != 0 || b.Dragging() {
		t.Errorf("b touched: Value() = %v, Dragging() = %v", b.Value(), b.Dragging())
	}
}

func TestPanelTwoPointersTwoKnobs(t *testing.T) {
	p, src, a, b := newTestPanel()

	src.set(pressed(0, at(a, 90)), pressed(1, at(b, 171)))
	p.advance(frame)
	if a.Value() != 50 || b.Value() != 20 {
		t.Fatalf("after press: a = %v, b = %v; want 50, 20", a.Value(), b.Value())
	}

	src.set(pressed(0, at(a, 171)), pressed(1, at(b, 90)))
	p.advance(frame)
	if a.Value() != 20 || b.Value() != 50 {
		t.Errorf("after move: a = %v, b = %v; want 20, 50", a.Value(), b.Value())
	}

	// Mouse released, touch still held.
	src.set(PointerSample{PointerID: 0}, pressed(1, at(b, 90)))
	p.advance(frame)
	if a.Dragging() || !b.Dragging() {
		t.Errorf("Dragging() = %v, %v; want false, true", a.Dragging(), b.Dragging())
	}
}

func TestPanelCaptureFollowsPointer(t *testing.T) {
	p, src, a, b := newTestPanel()

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)

	// Drag over b: a keeps the pointer and reads the angle around its own
	// center (3 o'clock).
	src.set(pressed(0, Vec2{X: 250, Y: 50}))
	p.advance(frame)

	if a.Value() != 83 {
		t.Errorf("a.Value() = %v, want 83", a.Value())
	}
	if b.Value() != 0 || b.Dragging() {
		t.Errorf("b received captured pointer: Value() = %v", b.Value())
	}
}

func TestPanelPressOutsideDialIgnored(t *testing.T) {
	p, src, a, _ := newTestPanel()

	src.set(pressed(0, Vec2{X: 2, Y: 2}))
	p.advance(frame)
	src.set(pressed(0, at(a, 90)))
	p.advance(frame)

	if a.Dragging() || a.Value() != 0 {
		t.Errorf("corner press started a drag: Value() = %v", a.Value())
	}
}

func TestPanelTopmostKnobWins(t *testing.T) {
	p, src, a, _ := newTestPanel()
	top := New(DefaultConfig(), WithName("top"), WithBounds(a.Bounds()))
	p.Add(top)

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)

	if !top.Dragging() || a.Dragging() {
		t.Errorf("Dragging() top = %v, below = %v; want true, false", top.Dragging(), a.Dragging())
	}
}

func TestPanelFocusLossCancels(t *testing.T) {
	p, src, a, _ := newTestPanel()
	var ends []DragEvent
	a.OnDragEnd(func(e DragEvent) { ends = append(ends, e) })

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)
	src.focused = false
	p.advance(frame)

	if a.Dragging() {
		t.Error("Dragging() = true after focus loss")
	}
	if len(ends) != 1 || !ends[0].Canceled {
		t.Errorf("drag ends = %+v, want one canceled", ends)
	}
	if a.Value() != 50 {
		t.Errorf("Value() = %v, want 50 kept", a.Value())
	}

	// Focus back with the button still down: the press starts a new drag.
	src.focused = true
	p.advance(frame)
	if !a.Dragging() {
		t.Error("held pointer did not press again after focus returned")
	}
}

func TestPanelMissingPointerReleases(t *testing.T) {
	p, src, _, b := newTestPanel()

	src.set(pressed(4, at(b, 90)))
	p.advance(frame)
	src.set()
	p.advance(frame)

	if b.Dragging() {
		t.Error("Dragging() = true after the touch vanished")
	}
	if b.Value() != 50 {
		t.Errorf("Value() = %v, want 50", b.Value())
	}
}

func TestPanelRemoveCancelsGesture(t *testing.T) {
	p, src, a, _ := newTestPanel()

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)
	p.Remove(a)

	if a.Dragging() {
		t.Error("removed knob still dragging")
	}
	if p.Knob("a") != nil || len(p.Knobs()) != 1 {
		t.Errorf("knobs after remove = %d", len(p.Knobs()))
	}

	src.set(pressed(0, at(a, 171)))
	p.advance(frame)
	if a.Value() != 50 {
		t.Errorf("removed knob still receives input: Value() = %v", a.Value())
	}
}

func TestPanelKnobByName(t *testing.T) {
	p, _, a, b := newTestPanel()
	if p.Knob("a") != a || p.Knob("b") != b {
		t.Error("Knob(name) returned the wrong knob")
	}
	if p.Knob("missing") != nil {
		t.Error("Knob(missing) != nil")
	}
}

func TestPanelInjectedDrag(t *testing.T) {
	p, _, a, _ := newTestPanel()
	p.SetPointerSource(nil)

	from, to := at(a, 90), at(a, 171)
	p.InjectDrag(from.X, from.Y, to.X, to.Y, 4)
	if p.Pending() != 4 {
		t.Fatalf("Pending() = %d, want 4", p.Pending())
	}

	p.advance(frame)
	if a.Value() != 50 || !a.Dragging() {
		t.Fatalf("after press: Value() = %v, Dragging() = %v", a.Value(), a.Dragging())
	}
	for p.Pending() > 0 {
		p.advance(frame)
	}
	if a.Value() != 20 {
		t.Errorf("Value() = %v, want 20", a.Value())
	}
	if a.Dragging() {
		t.Error("Dragging() = true after injected release")
	}
}

func TestPanelInjectionSkipsLiveInput(t *testing.T) {
	p, src, a, b := newTestPanel()
	src.set(pressed(0, at(b, 90)))

	pt := at(a, 90)
	p.InjectPress(pt.X, pt.Y)
	p.advance(frame)

	if !a.Dragging() || b.Dragging() {
		t.Errorf("Dragging() a = %v, b = %v; want true, false", a.Dragging(), b.Dragging())
	}
}

func TestPanelCancelAll(t *testing.T) {
	p, src, a, b := newTestPanel()
	src.set(pressed(0, at(a, 90)), pressed(1, at(b, 90)))
	p.advance(frame)

	p.CancelAll()
	if a.Dragging() || b.Dragging() {
		t.Errorf("Dragging() = %v, %v after CancelAll", a.Dragging(), b.Dragging())
	}
}

func TestPanelFeedbackFollowsDrag(t *testing.T) {
	p, src, a, _ := newTestPanel()

	src.set(pressed(0, at(a, 90)))
	p.advance(frame)
	for i := 0; i < 30; i++ {
		p.advance(frame)
	}
	if got := a.Feedback().Level(); got != 1 {
		t.Errorf("Level() while held = %v, want 1", got)
	}

	src.set()
	p.advance(frame)
	for i := 0; i < 30; i++ {
		p.advance(frame)
	}
	if got := a.Feedback().Level(); got != 0 {
		t.Errorf("Level() after release = %v, want 0", got)
	}
}
