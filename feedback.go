package knob

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const defaultPressDuration = 0.12 // seconds

// PressFeedback eases the face tint toward a darker shade while the knob is
// held and back when it is released. It never touches the value.
//
// There is no global animation manager; Knob.Update drives it.
type PressFeedback struct {
	Dim      float64 // fraction the face darkens at full press, in [0, 1]
	Duration float32 // seconds for a full transition
	Ease     ease.TweenFunc

	level float64 // 0 = released, 1 = fully pressed
	tween *gween.Tween
}

// NewPressFeedback creates a feedback animation darkening by dim.
func NewPressFeedback(dim float64) *PressFeedback {
	return &PressFeedback{
		Dim:      clamp01(dim),
		Duration: defaultPressDuration,
		Ease:     ease.OutQuad,
	}
}

// Press starts easing toward the pressed shade.
func (p *PressFeedback) Press() { p.animateTo(1) }

// Release starts easing back to the normal shade.
func (p *PressFeedback) Release() { p.animateTo(0) }

func (p *PressFeedback) animateTo(target float64) {
	if p.Dim == 0 || p.Duration <= 0 {
		p.level = target
		p.tween = nil
		return
	}
	fn := p.Ease
	if fn == nil {
		fn = ease.Linear
	}
	p.tween = gween.New(float32(p.level), float32(target), p.Duration, fn)
}

// Update advances the animation by dt seconds.
func (p *PressFeedback) Update(dt float32) {
	if p.tween == nil {
		return
	}
	val, finished := p.tween.Update(dt)
	p.level = clamp01(float64(val))
	if finished {
		p.tween = nil
	}
}

// Animating reports whether a transition is still running.
func (p *PressFeedback) Animating() bool { return p.tween != nil }

// Level returns the current press amount in [0, 1].
func (p *PressFeedback) Level() float64 { return p.level }

// Tint applies the current press shade to c.
func (p *PressFeedback) Tint(c Color) Color {
	if p.level == 0 || p.Dim == 0 {
		return c
	}
	return c.Scale(1 - p.Dim*p.level)
}
