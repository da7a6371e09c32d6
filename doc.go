// Package knob is a rotary control widget for [Ebitengine].
//
// A knob maps a bounded, stepped numeric value onto an angular travel. The
// user presses inside the circular dial and drags around its center; the
// pointer's angle becomes the value. A marker ring shows the filled portion
// of the travel and an optional label prints the value.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for a [Panel]:
//
//	cfg := knob.DefaultConfig()
//	cfg.Min, cfg.Max, cfg.Step = 0, 10, 0.5
//	k := knob.New(cfg, knob.WithName("gain"), knob.WithBounds(knob.Rect{X: 20, Y: 20, Width: 160, Height: 160}))
//	k.OnValueChanged(func(c knob.ValueChange) { fmt.Println(c.New) })
//
//	panel := knob.NewPanel()
//	panel.Add(k)
//	knob.Run(panel, knob.RunConfig{Title: "Knob", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Panel.Update] and [Panel.Draw] directly.
//
// # Layers
//
// The package is split so each part can be used on its own:
//
//   - [Mapper] converts between values and angles, with clamping and
//     quantization. It has no state and no Ebitengine dependency.
//   - [Controller] is the gesture state machine. It accepts a press only
//     inside the dial, lets a single pointer own the gesture, and notifies
//     observers on every actual value change.
//   - [RenderModel] derives everything needed to draw one value: face
//     rotation, marker arcs and label text.
//   - [Knob] ties them together with textures, a font and press feedback.
//   - [Panel] polls mouse and touch input once per frame and routes each
//     pointer to the knob it pressed.
//
// # Angles
//
// Angles are in degrees, 0 at 3 o'clock, growing counter-clockwise on
// screen. The default travel runs from 225 (7:30) to -45 (4:30), clockwise,
// leaving a dead zone at the bottom. Pointer angles in the dead zone saturate
// to the nearer end of the travel.
//
// # Configuration
//
// [Config] lists every option; [DefaultConfig] gives the defaults. A knob
// never rejects a configuration: a degenerate range makes a fixed control,
// sizes are clamped, and the problems are logged through [SetLogger]. Use
// [Config.Validate] to surface them yourself. [LoadConfig] and [LoadLayout]
// read configurations from TOML.
//
// # Testing
//
// [Panel.InjectPress], [Panel.InjectMove], [Panel.InjectRelease] and
// [Panel.InjectDrag] queue synthetic input consumed one sample per frame.
// [LoadTestScript] reads a JSON script of actions and value expectations.
//
// [Ebitengine]: https://ebitengine.org
package knob
