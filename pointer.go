package knob

import "math"

// PointerKind identifies a kind of pointer event.
type PointerKind uint8

const (
	PointerDown   PointerKind = iota // a pointer button was pressed or a touch began
	PointerMove                      // a held pointer moved
	PointerUp                        // the pointer was released
	PointerCancel                    // the gesture was aborted by the host
)

// String returns the lowercase event name.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer event in widget-local coordinates. Pointer 0
// is the mouse; touches use 1 and up.
type PointerEvent struct {
	Kind      PointerKind
	X, Y      float64
	PointerID int
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle. A circle
// without a positive radius contains nothing.
func (c HitCircle) Contains(x, y float64) bool {
	if !(c.Radius > 0) {
		return false
	}
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Geometry is the knob's layout in widget-local coordinates, recomputed each
// time the widget is resized.
type Geometry struct {
	Center Vec2
	Radius float64
}

// GeometryFor returns the geometry of a w by h widget: centered, with the
// radius of the largest inscribed circle.
func GeometryFor(w, h float64) Geometry {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Geometry{
		Center: Vec2{X: w / 2, Y: h / 2},
		Radius: math.Min(w, h) / 2,
	}
}

// HitCircle returns the dial face's hit region.
func (g Geometry) HitCircle() HitCircle {
	return HitCircle{CenterX: g.Center.X, CenterY: g.Center.Y, Radius: g.Radius}
}

// Contains reports whether the local point (x, y) is on the dial. The corners
// of the bounding box are outside.
func (g Geometry) Contains(x, y float64) bool {
	return g.HitCircle().Contains(x, y)
}

// PointerAngle returns the angle in degrees of the local point (x, y) around
// the center, 0 at 3 o'clock and growing counter-clockwise on screen. ok is
// false when the point coincides with the center and no angle exists.
func (g Geometry) PointerAngle(x, y float64) (angle float64, ok bool) {
	dx := x - g.Center.X
	dy := g.Center.Y - y // screen Y grows downward
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return math.Atan2(dy, dx) * 180 / math.Pi, true
}

// PointOnCircle returns the local point at angle degrees and radius r from the
// center.
func (g Geometry) PointOnCircle(angle, r float64) Vec2 {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vec2{X: g.Center.X + r*cos, Y: g.Center.Y - r*sin}
}
