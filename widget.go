package knob

import "github.com/hajimehoshi/ebiten/v2"

// Knob is a rotary control: a Controller for the gesture, a cached
// RenderModel for drawing, and the textures, font and press feedback used by
// Draw. Knobs are driven from a single game loop and are not safe for
// concurrent use.
type Knob struct {
	Name string

	cfg      Config
	ctrl     *Controller
	bounds   Rect
	textures Textures
	font     *Font
	feedback *PressFeedback
	model    RenderModel
	render   renderer
}

// Option configures a Knob at construction.
type Option func(*Knob)

// WithName names the knob in log output and test scripts.
func WithName(name string) Option {
	return func(k *Knob) { k.Name = name }
}

// WithBounds places the knob; see SetBounds.
func WithBounds(r Rect) Option {
	return func(k *Knob) { k.bounds = r }
}

// WithTextures sets the texture handles; see SetTextures.
func WithTextures(t Textures) Option {
	return func(k *Knob) { k.textures = t }
}

// WithFont sets the label font; see SetFont.
func WithFont(f *Font) Option {
	return func(k *Knob) { k.font = f }
}

// New creates a knob. Configuration problems are logged and absorbed, never
// returned: see Config.Validate.
func New(cfg Config, opts ...Option) *Knob {
	k := &Knob{}
	for _, opt := range opts {
		opt(k)
	}
	warnConfig(k.Name, cfg)
	k.cfg = cfg.normalized()
	k.ctrl = NewController(NewMapper(k.cfg), k.cfg.Value)
	k.ctrl.SetMaxJump(k.cfg.MaxJump)
	k.ctrl.SetGeometry(GeometryFor(k.bounds.Width, k.bounds.Height))
	k.feedback = NewPressFeedback(k.cfg.PressDim)

	// Registered first so the model is current before any user observer runs.
	k.ctrl.OnValueChanged(func(ValueChange) { k.refresh() })
	k.ctrl.OnDragStart(func(DragEvent) { k.feedback.Press() })
	k.ctrl.OnDragEnd(func(DragEvent) { k.feedback.Release() })

	k.refresh()
	return k
}

func (k *Knob) refresh() {
	k.model = NewRenderModel(k.cfg, k.ctrl.Geometry(), k.ctrl.Value())
}

// Config returns the configuration as last set. Its Value field is the
// initial value, not the current one; use Value for that.
func (k *Knob) Config() Config { return k.cfg }

// SetConfig replaces the configuration wholesale. The current value is
// re-clamped and re-quantized immediately; observers see a ChangeConfig
// notification if it moved. Texture paths are not reloaded; call SetTextures
// with freshly loaded handles.
func (k *Knob) SetConfig(cfg Config) {
	warnConfig(k.Name, cfg)
	k.cfg = cfg.normalized()
	k.ctrl.SetMaxJump(k.cfg.MaxJump)
	k.feedback.Dim = k.cfg.PressDim
	k.ctrl.SetMapper(NewMapper(k.cfg))
	k.refresh()
}

// Controller returns the knob's gesture controller.
func (k *Knob) Controller() *Controller { return k.ctrl }

// Value returns the current value.
func (k *Knob) Value() float64 { return k.ctrl.Value() }

// SetValue assigns the value, clamped and quantized, and reports whether it
// changed.
func (k *Knob) SetValue(v float64) bool { return k.ctrl.SetValue(v) }

// Dragging reports whether a pointer is turning the knob.
func (k *Knob) Dragging() bool { return k.ctrl.Dragging() }

// Bounds returns the knob's rectangle in destination coordinates.
func (k *Knob) Bounds() Rect { return k.bounds }

// SetBounds moves and resizes the knob and recomputes its geometry.
func (k *Knob) SetBounds(r Rect) {
	k.bounds = r
	k.ctrl.SetGeometry(GeometryFor(r.Width, r.Height))
	k.refresh()
}

// Model returns the render model for the current value.
func (k *Knob) Model() RenderModel { return k.model }

// Textures returns the texture handles.
func (k *Knob) Textures() Textures { return k.textures }

// SetTextures replaces the texture handles.
func (k *Knob) SetTextures(t Textures) { k.textures = t }

// SetFont replaces the label font. nil selects DefaultFont.
func (k *Knob) SetFont(f *Font) { k.font = f }

// Feedback returns the press feedback animation.
func (k *Knob) Feedback() *PressFeedback { return k.feedback }

// HitTest reports whether the local point (x, y) is on the dial.
func (k *Knob) HitTest(x, y float64) bool {
	return k.ctrl.Geometry().Contains(x, y)
}

// HandlePointer feeds a widget-local pointer event to the controller and
// reports whether the knob consumed it.
func (k *Knob) HandlePointer(ev PointerEvent) bool {
	return k.ctrl.HandlePointer(ev)
}

// Cancel aborts any gesture in progress.
func (k *Knob) Cancel() { k.ctrl.Cancel() }

// Update advances the press feedback by dt seconds.
func (k *Knob) Update(dt float64) {
	k.feedback.Update(float32(dt))
}

// Draw paints the knob onto dst at its bounds.
func (k *Knob) Draw(dst *ebiten.Image) {
	k.render.draw(dst, k.model, drawOptions{
		origin:   Vec2{X: k.bounds.X, Y: k.bounds.Y},
		textures: k.textures,
		font:     k.font,
		faceTint: k.feedback.Tint(k.cfg.FaceColor),
	})
}

// OnValueChanged registers a callback fired on every actual value change.
func (k *Knob) OnValueChanged(fn func(ValueChange)) CallbackHandle {
	return k.ctrl.OnValueChanged(fn)
}

// OnDragStart registers a callback fired when a pointer takes the knob.
func (k *Knob) OnDragStart(fn func(DragEvent)) CallbackHandle {
	return k.ctrl.OnDragStart(fn)
}

// OnDragEnd registers a callback fired when the gesture ends.
func (k *Knob) OnDragEnd(fn func(DragEvent)) CallbackHandle {
	return k.ctrl.OnDragEnd(fn)
}
