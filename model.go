package knob

import (
	"math"
	"strconv"
	"strings"
)

// maxAutoPrecision caps the decimals picked automatically for labels.
const maxAutoPrecision = 10

// Arc is one segment of the marker ring: an annular sector between Inner and
// Outer radius around Center, from Start to End degrees (either order).
type Arc struct {
	Center       Vec2
	Inner, Outer float64
	Start, End   float64
	Color        Color
}

// Sweep returns the signed angular length of the arc.
func (a Arc) Sweep() float64 { return a.End - a.Start }

// RenderModel is the derived, read-only data needed to draw a knob at one
// value. Build a fresh one whenever the value, configuration or geometry
// changes; Knob does this automatically.
type RenderModel struct {
	cfg    Config
	mapper Mapper
	geom   Geometry
	value  float64
}

// NewRenderModel derives the presentation of value for the given
// configuration and geometry. value is clamped and quantized.
func NewRenderModel(cfg Config, geom Geometry, value float64) RenderModel {
	cfg = cfg.normalized()
	m := NewMapper(cfg)
	return RenderModel{cfg: cfg, mapper: m, geom: geom, value: m.Quantize(value)}
}

// Value returns the value the model was built for.
func (r RenderModel) Value() float64 { return r.value }

// Geometry returns the geometry the model was built for.
func (r RenderModel) Geometry() Geometry { return r.geom }

// RotationAngle returns the angle of the value on the travel, in degrees.
func (r RenderModel) RotationAngle() float64 {
	return r.mapper.ValueToAngle(r.value)
}

// FaceRotation returns the face texture rotation in radians, clockwise on
// screen. An unrotated face points its indicator at 90 degrees (12 o'clock).
func (r RenderModel) FaceRotation() float64 {
	return (90 - r.RotationAngle()) * math.Pi / 180
}

// KnobRadius returns the radius of the rotating face.
func (r RenderModel) KnobRadius() float64 {
	return r.geom.Radius * r.cfg.KnobScale
}

// FaceRect returns the centered square the face texture is drawn into, in
// local coordinates.
func (r RenderModel) FaceRect() Rect {
	kr := r.KnobRadius()
	return Rect{
		X:      r.geom.Center.X - kr,
		Y:      r.geom.Center.Y - kr,
		Width:  2 * kr,
		Height: 2 * kr,
	}
}

// FaceColor returns the tint of the face.
func (r RenderModel) FaceColor() Color { return r.cfg.FaceColor }

// FaceBackground returns the color of the disc behind the face and whether it
// is drawn at all. It is only drawn together with the marker.
func (r RenderModel) FaceBackground() (Color, bool) {
	return r.cfg.FaceBackground, r.cfg.ShowMarker
}

// LabelVisible reports whether the label is shown.
func (r RenderModel) LabelVisible() bool { return r.cfg.ShowLabel }

// LabelColor returns the label color.
func (r RenderModel) LabelColor() Color { return r.cfg.FontColor }

// FontSize returns the label font size.
func (r RenderModel) FontSize() float64 { return r.cfg.FontSize }

// LabelText formats the value for the label.
func (r RenderModel) LabelText() string {
	return FormatValue(r.value, r.labelPrecision())
}

func (r RenderModel) labelPrecision() int {
	if r.cfg.LabelPrecision >= 0 {
		return r.cfg.LabelPrecision
	}
	return max(decimals(r.cfg.Step), decimals(r.cfg.Min))
}

// FormatValue prints v with prec decimals. Negative zero prints as "0".
func FormatValue(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}

// decimals returns the number of fractional digits needed to print v exactly,
// capped at maxAutoPrecision.
func decimals(v float64) int {
	if !finite(v) || v == math.Trunc(v) {
		return 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return min(len(s)-i-1, maxAutoPrecision)
}

// MarkerGeometry returns the marker ring split at the current value: the
// filled arc from the ring start (AngleStart moved forward by MarkerStart) and
// the unfilled arc up to AngleEnd. The two arcs always meet. It returns nil
// when the marker is hidden.
func (r RenderModel) MarkerGeometry() []Arc {
	if !r.cfg.ShowMarker {
		return nil
	}
	start, end := r.markerStart(), r.mapper.AngleEnd
	split := r.markerSplit()
	inner, outer := r.KnobRadius(), r.geom.Radius
	return []Arc{
		{Center: r.geom.Center, Inner: inner, Outer: outer, Start: start, End: split, Color: r.cfg.MarkerColor},
		{Center: r.geom.Center, Inner: inner, Outer: outer, Start: split, End: end, Color: r.cfg.MarkerOffColor},
	}
}

// markerStart returns the angle where the marker ring begins.
func (r RenderModel) markerStart() float64 {
	start, end := r.mapper.AngleStart, r.mapper.AngleEnd
	if end < start {
		return start - r.cfg.MarkerStart
	}
	return start + r.cfg.MarkerStart
}

// markerSplit returns the angle where the filled arc ends, kept between the
// ring start and AngleEnd. Values still before the ring start leave the filled
// arc empty; past it, MarkerAhead pushes the split forward.
func (r RenderModel) markerSplit() float64 {
	start, end := r.mapper.AngleStart, r.mapper.AngleEnd
	ringStart := r.markerStart()
	if end == start {
		return ringStart
	}
	split := r.RotationAngle()
	// Positions along the travel, 0 at AngleStart and 1 at AngleEnd.
	pos := func(a float64) float64 { return (a - start) / (end - start) }
	if pos(split) <= pos(ringStart) {
		return ringStart
	}
	if r.cfg.MarkerAhead != 0 && r.value != r.mapper.Min {
		if end < start {
			split -= r.cfg.MarkerAhead
		} else {
			split += r.cfg.MarkerAhead
		}
	}
	switch t := pos(split); {
	case t < pos(ringStart):
		return ringStart
	case t > 1:
		return end
	}
	return split
}
