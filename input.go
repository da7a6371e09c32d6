package knob

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerSample is the sampled state of one pointer for one frame, in
// destination (screen) coordinates.
type PointerSample struct {
	PointerID int
	X, Y      float64
	Pressed   bool
}

// PointerSource supplies pointer samples once per frame. Pointers missing
// from a poll are treated as released.
type PointerSource interface {
	// Poll appends this frame's samples to dst and returns the result.
	Poll(dst []PointerSample) []PointerSample
	// Focused reports whether the window has input focus. Losing focus
	// cancels every gesture.
	Focused() bool
}

// EbitenPointerSource reads the mouse as pointer 0 (left button) and up to
// nine touches as pointers 1-9.
type EbitenPointerSource struct {
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// Focused reports ebiten.IsFocused.
func (s *EbitenPointerSource) Focused() bool { return ebiten.IsFocused() }

// Poll samples the mouse and current touches.
func (s *EbitenPointerSource) Poll(dst []PointerSample) []PointerSample {
	mx, my := ebiten.CursorPosition()
	dst = append(dst, PointerSample{
		PointerID: 0,
		X:         float64(mx),
		Y:         float64(my),
		Pressed:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})

	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		dst = append(dst, PointerSample{PointerID: slot, X: float64(tx), Y: float64(ty), Pressed: true})
	}

	// Free slots whose touches ended; the tracker releases them.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
	return dst
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *EbitenPointerSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// --- Level to edge conversion ---

type trackedPointer struct {
	down   bool
	lastX  float64
	lastY  float64
	seenAt bool // sampled at least once
}

// pointerTracker turns per-frame pointer samples into down/move/up events.
type pointerTracker struct {
	pointers [maxPointers]trackedPointer
}

// track returns the event implied by s, if any. Hover movement without a
// pressed button produces no event.
func (t *pointerTracker) track(s PointerSample) (PointerEvent, bool) {
	if s.PointerID < 0 || s.PointerID >= maxPointers {
		return PointerEvent{}, false
	}
	ps := &t.pointers[s.PointerID]
	moved := !ps.seenAt || s.X != ps.lastX || s.Y != ps.lastY
	ps.seenAt = true
	ev := PointerEvent{X: s.X, Y: s.Y, PointerID: s.PointerID}

	var emit bool
	switch {
	case s.Pressed && !ps.down:
		ps.down = true
		ev.Kind = PointerDown
		emit = true
	case !s.Pressed && ps.down:
		ps.down = false
		ev.Kind = PointerUp
		emit = true
	case s.Pressed && ps.down && moved:
		ev.Kind = PointerMove
		emit = true
	}
	ps.lastX = s.X
	ps.lastY = s.Y
	return ev, emit
}

// missing returns release samples for pointers that are down but were not in
// this frame's poll.
func (t *pointerTracker) missing(seen *[maxPointers]bool, dst []PointerSample) []PointerSample {
	for i := range t.pointers {
		ps := &t.pointers[i]
		if ps.down && !seen[i] {
			dst = append(dst, PointerSample{PointerID: i, X: ps.lastX, Y: ps.lastY, Pressed: false})
		}
	}
	return dst
}

// reset forgets every pointer, as after a focus loss.
func (t *pointerTracker) reset() {
	t.pointers = [maxPointers]trackedPointer{}
}
