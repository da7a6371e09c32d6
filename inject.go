package knob

// InjectPress queues a press of pointer 0 at the given destination
// coordinates. Queued samples are consumed one per Update, and live input is
// skipped in a frame that consumed one.
func (p *Panel) InjectPress(x, y float64) {
	p.InjectSample(PointerSample{PointerID: 0, X: x, Y: y, Pressed: true})
}

// InjectMove queues a move of pointer 0 with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (p *Panel) InjectMove(x, y float64) {
	p.InjectSample(PointerSample{PointerID: 0, X: x, Y: y, Pressed: true})
}

// InjectRelease queues a release of pointer 0.
func (p *Panel) InjectRelease(x, y float64) {
	p.InjectSample(PointerSample{PointerID: 0, X: x, Y: y, Pressed: false})
}

// InjectSample queues an arbitrary sample, for example a touch pointer.
func (p *Panel) InjectSample(s PointerSample) {
	p.injectQueue = append(p.injectQueue, s)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves ending on (toX, toY), and a release there. The sequence
// consumes frames frames; the minimum is 3 (press, move, release) since a
// release alone never changes the value.
func (p *Panel) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		p.InjectMove(x, y)
	}
	p.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected samples.
func (p *Panel) Pending() int { return len(p.injectQueue) }

// processInjectedInput pops one queued sample and runs it through the same
// path as live input. Returns true if a sample was consumed.
func (p *Panel) processInjectedInput() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	s := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	p.processSample(s)
	return true
}
