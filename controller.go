package knob

import (
	"math"
	"slices"
)

// noPointer marks the absence of an owning pointer.
const noPointer = -1

// ChangeSource tells observers what moved the value.
type ChangeSource uint8

const (
	ChangeGesture      ChangeSource = iota // a press or drag on the dial
	ChangeProgrammatic                     // SetValue
	ChangeConfig                           // a configuration replacement re-clamped the value
)

// String returns the lowercase source name.
func (s ChangeSource) String() string {
	switch s {
	case ChangeGesture:
		return "gesture"
	case ChangeProgrammatic:
		return "programmatic"
	case ChangeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ValueChange carries a value-changed notification.
type ValueChange struct {
	Old, New float64
	Source   ChangeSource
}

// DragEvent carries drag lifecycle data. Value is the knob value at the time
// of the event; Canceled is set on drag end when the host aborted the gesture.
type DragEvent struct {
	PointerID int
	Value     float64
	Canceled  bool
}

// State is the mutable part of a knob. Value is always clamped and quantized.
type State struct {
	value         float64
	dragging      bool
	activePointer int
}

// Value returns the current value.
func (s State) Value() float64 { return s.value }

// Dragging reports whether a pointer currently owns the gesture.
func (s State) Dragging() bool { return s.dragging }

// ActivePointer returns the owning pointer, if any.
func (s State) ActivePointer() (int, bool) {
	if !s.dragging {
		return 0, false
	}
	return s.activePointer, true
}

// --- Handler registry ---

type eventKind uint8

const (
	eventValueChanged eventKind = iota
	eventDragStart
	eventDragEnd
)

type valueHandler struct {
	id uint32
	fn func(ValueChange)
}

type dragHandler struct {
	id uint32
	fn func(DragEvent)
}

type handlerRegistry struct {
	valueChanged []valueHandler
	dragStart    []dragHandler
	dragEnd      []dragHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event eventKind
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback; a notification already in progress still reaches
// the callbacks it started with. Removing twice, or removing the zero handle,
// is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case eventValueChanged:
		h.reg.valueChanged = removeValueHandler(h.reg.valueChanged, h.id)
	case eventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case eventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

// The remove helpers build a new slice instead of shifting in place, so a
// dispatch loop already ranging over the old one is not disturbed when a
// callback removes itself or another callback.
func removeValueHandler(s []valueHandler, id uint32) []valueHandler {
	for i := range s {
		if s[i].id == id {
			return slices.Concat(s[:i], s[i+1:])
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			return slices.Concat(s[:i], s[i+1:])
		}
	}
	return s
}

// --- Controller ---

// Controller is the knob's gesture state machine. It owns the State and is the
// only place the value changes: through pointer events, SetValue or SetMapper.
// Controllers are not safe for concurrent use; drive them from the game loop.
type Controller struct {
	mapper   Mapper
	geom     Geometry
	state    State
	maxJump  float64
	handlers handlerRegistry

	// last accepted travel angle of the current gesture
	lastAngle float64
}

// NewController creates an idle controller holding initial, clamped and
// quantized by m.
func NewController(m Mapper, initial float64) *Controller {
	return &Controller{
		mapper: m,
		state:  State{value: m.Quantize(initial), activePointer: noPointer},
	}
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State { return c.state }

// Value returns the current value.
func (c *Controller) Value() float64 { return c.state.value }

// Dragging reports whether a pointer owns the gesture.
func (c *Controller) Dragging() bool { return c.state.dragging }

// ActivePointer returns the owning pointer, if any.
func (c *Controller) ActivePointer() (int, bool) { return c.state.ActivePointer() }

// Mapper returns the current mapper.
func (c *Controller) Mapper() Mapper { return c.mapper }

// Geometry returns the current geometry.
func (c *Controller) Geometry() Geometry { return c.geom }

// SetGeometry replaces the hit region and rotation center.
func (c *Controller) SetGeometry(g Geometry) { c.geom = g }

// SetMaxJump sets the drag jump guard in degrees. 0 disables it.
func (c *Controller) SetMaxJump(deg float64) {
	if deg < 0 || math.IsNaN(deg) {
		deg = 0
	}
	c.maxJump = deg
}

// SetMapper installs a new mapping and immediately re-clamps and re-quantizes
// the value. Observers see a ChangeConfig notification if the value moved.
func (c *Controller) SetMapper(m Mapper) {
	c.mapper = m
	c.commit(c.state.value, ChangeConfig)
}

// SetValue assigns the value programmatically. Out-of-range or off-step input
// is clamped and quantized; the return value reports whether it changed.
func (c *Controller) SetValue(v float64) bool {
	return c.commit(v, ChangeProgrammatic)
}

// commit quantizes v and stores it, notifying observers when it differs from
// the current value.
func (c *Controller) commit(v float64, src ChangeSource) bool {
	q := c.mapper.Quantize(v)
	old := c.state.value
	if q == old {
		return false
	}
	c.state.value = q
	change := ValueChange{Old: old, New: q, Source: src}
	for _, h := range c.handlers.valueChanged {
		h.fn(change)
	}
	return true
}

// HandlePointer feeds one widget-local event through the state machine and
// reports whether this controller consumed it.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	if !c.state.dragging {
		if ev.Kind != PointerDown || !c.geom.Contains(ev.X, ev.Y) {
			return false
		}
		c.begin(ev)
		return true
	}

	// Single owner: everything from other pointers is ignored.
	if ev.PointerID != c.state.activePointer {
		return false
	}

	switch ev.Kind {
	case PointerMove:
		c.track(ev.X, ev.Y, true)
	case PointerUp:
		c.end(false)
	case PointerCancel:
		c.end(true)
	case PointerDown:
		// A repeated press from the owner without a release in between; treat
		// it as a move so the gesture stays consistent.
		c.track(ev.X, ev.Y, false)
	}
	return true
}

// Cancel aborts the current gesture, if any. The value keeps whatever the last
// move committed.
func (c *Controller) Cancel() {
	if c.state.dragging {
		c.end(true)
	}
}

func (c *Controller) begin(ev PointerEvent) {
	c.state.dragging = true
	c.state.activePointer = ev.PointerID
	c.lastAngle = c.mapper.ValueToAngle(c.state.value)

	logger().Debug("knob: drag start", "pointer", ev.PointerID, "value", c.state.value)
	de := DragEvent{PointerID: ev.PointerID, Value: c.state.value}
	for _, h := range c.handlers.dragStart {
		h.fn(de)
	}

	c.track(ev.X, ev.Y, false)
}

func (c *Controller) end(canceled bool) {
	id := c.state.activePointer
	c.state.dragging = false
	c.state.activePointer = noPointer

	logger().Debug("knob: drag end", "pointer", id, "value", c.state.value, "canceled", canceled)
	de := DragEvent{PointerID: id, Value: c.state.value, Canceled: canceled}
	for _, h := range c.handlers.dragEnd {
		h.fn(de)
	}
}

// track converts a local point to a travel angle and commits the matching
// value. guarded applies the jump guard.
func (c *Controller) track(x, y float64, guarded bool) {
	raw, ok := c.geom.PointerAngle(x, y)
	if !ok {
		return
	}
	angle := c.mapper.TravelAngle(raw)
	if guarded && c.maxJump > 0 && math.Abs(angle-c.lastAngle) > c.maxJump {
		return
	}
	c.lastAngle = angle
	c.commit(c.mapper.AngleToValue(angle), ChangeGesture)
}

// --- Observer registration ---

// OnValueChanged registers a callback fired on every actual value change.
func (c *Controller) OnValueChanged(fn func(ValueChange)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.valueChanged = append(c.handlers.valueChanged, valueHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: eventValueChanged}
}

// OnDragStart registers a callback fired when a pointer takes the gesture.
func (c *Controller) OnDragStart(fn func(DragEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.dragStart = append(c.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: eventDragStart}
}

// OnDragEnd registers a callback fired when the owning pointer releases or the
// gesture is canceled.
func (c *Controller) OnDragEnd(fn func(DragEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.dragEnd = append(c.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: eventDragEnd}
}
