package knob

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// premultiplied returns the color with R, G and B scaled by A, each component
// clamped to [0, 1].
func (c Color) premultiplied() (r, g, b, a float32) {
	al := clamp01(c.A)
	return float32(clamp01(c.R) * al), float32(clamp01(c.G) * al), float32(clamp01(c.B) * al), float32(al)
}

// Scale multiplies R, G and B by f, leaving alpha untouched.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

// toRGBA converts the color to premultiplied 8-bit RGBA.
func (c Color) toRGBA() color.RGBA {
	r, g, b, a := c.premultiplied()
	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// --- Configuration ---

const (
	defaultKnobScale = 0.9
	minKnobScale     = 0.1
	defaultFontSize  = 14
	maxTravel        = 360.0
)

// Config enumerates every recognized knob option. Start from DefaultConfig
// and override fields; a Config is treated as immutable once handed to a Knob.
// Replace it wholesale with Knob.SetConfig.
type Config struct {
	// Value domain.
	Min, Max float64
	Step     float64
	Value    float64 // initial value, clamped and quantized on use

	// Rotational travel in degrees. 0 points to 3 o'clock and angles grow
	// counter-clockwise on screen. AngleStart may exceed AngleEnd, in which
	// case increasing values turn the knob clockwise.
	AngleStart, AngleEnd float64

	// KnobScale sizes the face relative to the widget, in (0, 1]. The
	// remaining annulus holds the marker ring.
	KnobScale float64

	ShowLabel  bool
	ShowMarker bool

	// Texture paths resolved by a TextureLoader. Empty means none.
	FaceSource      string
	MarkerSource    string
	MarkerOffSource string

	FaceColor      Color // tint applied to the face texture, or the solid face disc
	FaceBackground Color // disc behind the face, drawn only with the marker
	MarkerColor    Color // filled portion of the marker ring
	MarkerOffColor Color // unfilled portion of the marker ring

	// MarkerAhead pushes the end of the filled marker arc forward by this many
	// degrees, except at the minimum value.
	MarkerAhead float64

	// MarkerStart moves the beginning of the marker ring this many degrees
	// along the travel, leaving that stretch undrawn. 0 starts at AngleStart.
	MarkerStart float64

	// LabelPrecision is the number of decimals in the label. Negative picks
	// automatically from Step.
	LabelPrecision int
	FontSize       float64
	FontColor      Color

	// MaxJump drops drag moves whose angle differs from the last accepted
	// angle by more than this many degrees. 0 disables the guard.
	MaxJump float64

	// PressDim darkens the face by this fraction while dragging. 0 disables.
	PressDim float64
}

// DefaultConfig returns the documented defaults: a 0..100 knob in unit steps
// turning clockwise from 7:30 to 4:30.
func DefaultConfig() Config {
	return Config{
		Min:            0,
		Max:            100,
		Step:           1,
		AngleStart:     225,
		AngleEnd:       -45,
		KnobScale:      defaultKnobScale,
		ShowLabel:      true,
		ShowMarker:     true,
		FaceColor:      ColorWhite,
		FaceBackground: ColorBlack,
		MarkerColor:    ColorWhite,
		MarkerOffColor: ColorTransparent,
		LabelPrecision: -1,
		FontSize:       defaultFontSize,
		FontColor:      ColorWhite,
		PressDim:       0.15,
	}
}

// Validate reports every problem with the configuration. A Knob never refuses
// a Config: invalid ranges degrade to a fixed control and out-of-range sizes
// are clamped. Validate exists so callers can surface the problems.
func (c Config) Validate() error {
	var errs []error
	if !finite(c.Min) || !finite(c.Max) {
		errs = append(errs, fmt.Errorf("min/max must be finite (min=%v, max=%v)", c.Min, c.Max))
	} else if c.Min >= c.Max {
		errs = append(errs, fmt.Errorf("min must be less than max (min=%v, max=%v)", c.Min, c.Max))
	}
	if !finite(c.Step) || c.Step <= 0 {
		errs = append(errs, fmt.Errorf("step must be positive (step=%v)", c.Step))
	}
	if !finite(c.AngleStart) || !finite(c.AngleEnd) {
		errs = append(errs, fmt.Errorf("angles must be finite (start=%v, end=%v)", c.AngleStart, c.AngleEnd))
	} else {
		if c.AngleStart == c.AngleEnd {
			errs = append(errs, fmt.Errorf("travel is empty (start=end=%v)", c.AngleStart))
		}
		if math.Abs(c.AngleEnd-c.AngleStart) > maxTravel {
			errs = append(errs, fmt.Errorf("travel exceeds %v degrees (start=%v, end=%v)", maxTravel, c.AngleStart, c.AngleEnd))
		}
	}
	if !(c.KnobScale > 0 && c.KnobScale <= 1) {
		errs = append(errs, fmt.Errorf("knob scale must be in (0, 1] (scale=%v)", c.KnobScale))
	}
	if finite(c.AngleStart) && finite(c.AngleEnd) {
		if travel := math.Min(math.Abs(c.AngleEnd-c.AngleStart), maxTravel); !(c.MarkerStart >= 0 && c.MarkerStart <= travel) {
			errs = append(errs, fmt.Errorf("marker start must be within the travel [0, %v] (marker_startangle=%v)", travel, c.MarkerStart))
		}
	}
	if c.MaxJump < 0 {
		errs = append(errs, fmt.Errorf("max jump must not be negative (max_jump=%v)", c.MaxJump))
	}
	if c.PressDim < 0 || c.PressDim > 1 {
		errs = append(errs, fmt.Errorf("press dim must be in [0, 1] (press_dim=%v)", c.PressDim))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("knob: invalid config: %w", errors.Join(errs...))
}

// normalized returns a copy with sizes clamped into their legal ranges and the
// travel capped at a full turn. The value domain is left alone; Mapper handles
// a degenerate domain itself.
func (c Config) normalized() Config {
	switch {
	case !(c.KnobScale > 0):
		c.KnobScale = defaultKnobScale
	case c.KnobScale < minKnobScale:
		c.KnobScale = minKnobScale
	case c.KnobScale > 1:
		c.KnobScale = 1
	}
	if finite(c.AngleStart) && finite(c.AngleEnd) {
		if d := c.AngleEnd - c.AngleStart; d > maxTravel {
			c.AngleEnd = c.AngleStart + maxTravel
		} else if d < -maxTravel {
			c.AngleEnd = c.AngleStart - maxTravel
		}
	}
	if finite(c.AngleStart) && finite(c.AngleEnd) {
		c.MarkerStart = math.Min(math.Max(c.MarkerStart, 0), math.Abs(c.AngleEnd-c.AngleStart))
	} else {
		c.MarkerStart = 0
	}
	if c.MaxJump < 0 {
		c.MaxJump = 0
	}
	c.PressDim = clamp01(c.PressDim)
	if !(c.FontSize > 0) {
		c.FontSize = defaultFontSize
	}
	return c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
