package knob

import "math"

// Mapper converts between the value domain [Min, Max], quantized by Step, and
// the angular travel [AngleStart, AngleEnd]. It is a plain value with no state;
// a degenerate mapper (see Fixed) pins everything to Min.
type Mapper struct {
	Min, Max             float64
	Step                 float64
	AngleStart, AngleEnd float64
}

// NewMapper builds the mapper for a configuration.
func NewMapper(cfg Config) Mapper {
	cfg = cfg.normalized()
	return Mapper{
		Min:        cfg.Min,
		Max:        cfg.Max,
		Step:       cfg.Step,
		AngleStart: cfg.AngleStart,
		AngleEnd:   cfg.AngleEnd,
	}
}

// Fixed reports whether the mapping is degenerate: an empty or inverted value
// domain, a non-positive step, or non-finite inputs. A fixed mapper behaves as
// a static control at Min.
func (m Mapper) Fixed() bool {
	if !finite(m.Min) || !finite(m.Max) || !finite(m.Step) ||
		!finite(m.AngleStart) || !finite(m.AngleEnd) {
		return true
	}
	return m.Max <= m.Min || m.Step <= 0
}

// Clamp limits v to [Min, Max]. NaN clamps to Min.
func (m Mapper) Clamp(v float64) float64 {
	if m.Fixed() || math.IsNaN(v) || v <= m.Min {
		return m.Min
	}
	if v >= m.Max {
		return m.Max
	}
	return v
}

// Quantize snaps v to the nearest step counted from Min and clamps the result
// to [Min, Max]. Ties round away from zero. When Step does not divide the
// range, Max itself is kept as a legal value next to the last full step.
func (m Mapper) Quantize(v float64) float64 {
	if m.Fixed() || math.IsNaN(v) {
		return m.Min
	}
	v = m.Clamp(v)
	last := m.lastStep()
	if v > last && m.Max-v <= v-last {
		return m.Max
	}
	// (v-Min)/Step lands just short of a half for ties like 0.15/0.1; the
	// nudge keeps those rounding away from zero.
	x := (v - m.Min) / m.Step
	n := math.Round(x + stepEpsilon*math.Max(1, x))
	return m.Clamp(m.gridPoint(n))
}

// stepEpsilon absorbs float error when counting whole steps in the range.
const stepEpsilon = 1e-9

// lastStep returns the largest grid point not above Max.
func (m Mapper) lastStep() float64 {
	n := math.Floor((m.Max-m.Min)/m.Step + stepEpsilon)
	return math.Min(m.gridPoint(n), m.Max)
}

// gridPoint returns Min + n*Step rounded to the decimals of Step and Min, so
// 3 steps of 0.1 give 0.3 rather than 0.30000000000000004. Steps that need
// more than maxAutoPrecision decimals are left unrounded.
func (m Mapper) gridPoint(n float64) float64 {
	v := m.Min + n*m.Step
	d := max(decimals(m.Step), decimals(m.Min))
	if d == 0 || d >= maxAutoPrecision {
		return v
	}
	p := math.Pow10(d)
	return math.Round(v*p) / p
}

// Fraction returns the position of v within [Min, Max] as a number in [0, 1].
func (m Mapper) Fraction(v float64) float64 {
	if m.Fixed() {
		return 0
	}
	return (m.Clamp(v) - m.Min) / (m.Max - m.Min)
}

// ValueToAngle linearly maps v onto the travel. v is clamped first.
func (m Mapper) ValueToAngle(v float64) float64 {
	if m.Fixed() {
		return m.AngleStart
	}
	return m.AngleStart + m.Fraction(v)*(m.AngleEnd-m.AngleStart)
}

// AngleToValue maps an angle on the travel back to a quantized value. Angles
// beyond either end of the travel clamp to Min or Max.
func (m Mapper) AngleToValue(angle float64) float64 {
	if m.Fixed() || m.AngleEnd == m.AngleStart || math.IsNaN(angle) {
		return m.Min
	}
	t := (angle - m.AngleStart) / (m.AngleEnd - m.AngleStart)
	return m.Quantize(m.Min + t*(m.Max-m.Min))
}

// travelBounds returns the travel as an ascending interval.
func (m Mapper) travelBounds() (lo, hi float64) {
	if m.AngleStart <= m.AngleEnd {
		return m.AngleStart, m.AngleEnd
	}
	return m.AngleEnd, m.AngleStart
}

// TravelAngle brings an arbitrary angle (for example an atan2 result) onto the
// travel by adding whole turns. Angles falling in the dead zone saturate to the
// nearer end of the travel; the exact middle of the dead zone goes to AngleEnd.
func (m Mapper) TravelAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return m.AngleStart
	}
	lo, hi := m.travelBounds()
	a := lo + math.Mod(angle-lo, 360)
	if a < lo {
		a += 360
	}
	if a <= hi {
		return a
	}
	toHi := a - hi
	toLo := lo + 360 - a
	switch {
	case toHi < toLo:
		return hi
	case toLo < toHi:
		return lo
	default:
		return m.AngleEnd
	}
}
