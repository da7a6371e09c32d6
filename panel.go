package knob

import "github.com/hajimehoshi/ebiten/v2"

// Panel owns a set of knobs, polls pointer input once per frame and routes it.
// A press goes to the topmost knob under it and that pointer stays captured by
// the knob until release, so several pointers can turn different knobs at the
// same time while each knob keeps a single owner.
//
// For a custom game loop, call Update from ebiten.Game.Update and Draw from
// ebiten.Game.Draw.
type Panel struct {
	knobs    []*Knob
	captured [maxPointers]*Knob
	tracker  pointerTracker
	source   PointerSource

	samples     []PointerSample
	injectQueue []PointerSample
	testRunner  *TestRunner
}

// NewPanel creates a panel reading live input from Ebitengine.
func NewPanel() *Panel {
	return &Panel{source: &EbitenPointerSource{}}
}

// SetPointerSource replaces the live input source. nil disables live input;
// injected input still works.
func (p *Panel) SetPointerSource(src PointerSource) {
	p.source = src
}

// Add appends knobs on top of the existing ones.
func (p *Panel) Add(knobs ...*Knob) {
	p.knobs = append(p.knobs, knobs...)
}

// Remove detaches k, canceling its gesture.
func (p *Panel) Remove(k *Knob) {
	for i, kk := range p.knobs {
		if kk != k {
			continue
		}
		copy(p.knobs[i:], p.knobs[i+1:])
		p.knobs[len(p.knobs)-1] = nil
		p.knobs = p.knobs[:len(p.knobs)-1]
		break
	}
	for i := range p.captured {
		if p.captured[i] == k {
			p.captured[i] = nil
		}
	}
	k.Cancel()
}

// Knobs returns the knobs in paint order (bottom first).
func (p *Panel) Knobs() []*Knob { return p.knobs }

// Knob returns the first knob with the given name, or nil.
func (p *Panel) Knob(name string) *Knob {
	for _, k := range p.knobs {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// Update advances test scripts, press feedback and input by one tick.
func (p *Panel) Update() {
	p.advance(1.0 / float64(ebiten.TPS()))
}

func (p *Panel) advance(dt float64) {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	for _, k := range p.knobs {
		k.Update(dt)
	}
	p.processInput()
}

// Draw paints every knob in order.
func (p *Panel) Draw(dst *ebiten.Image) {
	for _, k := range p.knobs {
		k.Draw(dst)
	}
}

// CancelAll aborts every gesture in progress.
func (p *Panel) CancelAll() {
	for i, k := range p.captured {
		if k != nil {
			k.HandlePointer(PointerEvent{Kind: PointerCancel, PointerID: i})
		}
		p.captured[i] = nil
	}
	p.tracker.reset()
}

// processInput consumes one injected sample if any are queued; otherwise it
// polls the live source.
func (p *Panel) processInput() {
	if p.processInjectedInput() {
		return
	}
	if p.source == nil {
		return
	}
	if !p.source.Focused() {
		if p.gestureActive() {
			logger().Debug("knob: focus lost, canceling gestures")
		}
		p.CancelAll()
		return
	}

	p.samples = p.source.Poll(p.samples[:0])
	var seen [maxPointers]bool
	for _, s := range p.samples {
		if s.PointerID >= 0 && s.PointerID < maxPointers {
			seen[s.PointerID] = true
		}
	}
	p.samples = p.tracker.missing(&seen, p.samples)
	for _, s := range p.samples {
		p.processSample(s)
	}
}

func (p *Panel) gestureActive() bool {
	for _, k := range p.captured {
		if k != nil {
			return true
		}
	}
	return false
}

func (p *Panel) processSample(s PointerSample) {
	ev, ok := p.tracker.track(s)
	if !ok {
		return
	}
	p.dispatch(ev)
}

// dispatch routes a destination-space event to its knob.
func (p *Panel) dispatch(ev PointerEvent) {
	id := ev.PointerID
	if ev.Kind == PointerDown && p.captured[id] == nil {
		// Reverse paint order: topmost first. The first knob under the
		// pointer takes or refuses the press; knobs below never see it.
		for i := len(p.knobs) - 1; i >= 0; i-- {
			k := p.knobs[i]
			local := toLocal(k, ev)
			if !k.HitTest(local.X, local.Y) {
				continue
			}
			if k.HandlePointer(local) {
				p.captured[id] = k
			}
			break
		}
		return
	}

	k := p.captured[id]
	if k == nil {
		return
	}
	k.HandlePointer(toLocal(k, ev))
	if ev.Kind == PointerUp || ev.Kind == PointerCancel {
		p.captured[id] = nil
	}
}

// toLocal converts a destination-space event into k's local space.
func toLocal(k *Knob, ev PointerEvent) PointerEvent {
	b := k.Bounds()
	ev.X -= b.X
	ev.Y -= b.Y
	return ev
}
