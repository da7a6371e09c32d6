package knob

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config in the declarative file format. Pointer fields
// distinguish "absent" (keep the default) from zero values. Key names follow
// the widget's historical option names, with the aliases it accepted.
type fileConfig struct {
	Min        *float64 `toml:"min"`
	Max        *float64 `toml:"max"`
	Step       *float64 `toml:"step"`
	Value      *float64 `toml:"value"`
	AngleStart *float64 `toml:"angle_start"`
	AngleEnd   *float64 `toml:"angle_end"`

	KnobScale *float64 `toml:"knob_scale"`
	KnobSize  *float64 `toml:"knob_size"` // alias of knob_scale

	ShowLabel  *bool `toml:"show_label"`
	ShowMarker *bool `toml:"show_marker"`

	FaceSource      *string `toml:"knobimg_source"`
	MarkerSource    *string `toml:"marker_img"`
	MarkerOffSource *string `toml:"markeroff_img"`

	FaceColor       []float64 `toml:"knobimg_color"`
	FaceBackground  []float64 `toml:"knobimg_bgcolor"`
	MarkerColor     []float64 `toml:"marker_color"`
	MarkerOffColor  []float64 `toml:"marker_off_color"`
	MarkerOffColor2 []float64 `toml:"markeroff_color"` // alias of marker_off_color

	MarkerAhead    *float64  `toml:"marker_ahead"`
	MarkerStart    *float64  `toml:"marker_startangle"`
	LabelPrecision *int      `toml:"label_precision"`
	FontSize       *float64  `toml:"font_size"`
	FontColor      []float64 `toml:"font_color"`
	MaxJump        *float64  `toml:"max_jump"`
	PressDim       *float64  `toml:"press_dim"`
}

// apply overlays the fields present in fc onto cfg.
func (fc *fileConfig) apply(cfg *Config) error {
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setFloat(&cfg.Min, fc.Min)
	setFloat(&cfg.Max, fc.Max)
	setFloat(&cfg.Step, fc.Step)
	setFloat(&cfg.Value, fc.Value)
	setFloat(&cfg.AngleStart, fc.AngleStart)
	setFloat(&cfg.AngleEnd, fc.AngleEnd)
	setFloat(&cfg.KnobScale, fc.KnobSize)
	setFloat(&cfg.KnobScale, fc.KnobScale)
	setBool(&cfg.ShowLabel, fc.ShowLabel)
	setBool(&cfg.ShowMarker, fc.ShowMarker)
	setString(&cfg.FaceSource, fc.FaceSource)
	setString(&cfg.MarkerSource, fc.MarkerSource)
	setString(&cfg.MarkerOffSource, fc.MarkerOffSource)
	setFloat(&cfg.MarkerAhead, fc.MarkerAhead)
	setFloat(&cfg.MarkerStart, fc.MarkerStart)
	setFloat(&cfg.FontSize, fc.FontSize)
	setFloat(&cfg.MaxJump, fc.MaxJump)
	setFloat(&cfg.PressDim, fc.PressDim)
	if fc.LabelPrecision != nil {
		cfg.LabelPrecision = *fc.LabelPrecision
	}

	var errs []error
	setColor := func(key string, dst *Color, src []float64) {
		if src == nil {
			return
		}
		c, err := ParseColor(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = c
	}
	setColor("knobimg_color", &cfg.FaceColor, fc.FaceColor)
	setColor("knobimg_bgcolor", &cfg.FaceBackground, fc.FaceBackground)
	setColor("marker_color", &cfg.MarkerColor, fc.MarkerColor)
	setColor("markeroff_color", &cfg.MarkerOffColor, fc.MarkerOffColor2)
	setColor("marker_off_color", &cfg.MarkerOffColor, fc.MarkerOffColor)
	setColor("font_color", &cfg.FontColor, fc.FontColor)
	return errors.Join(errs...)
}

// ParseColor reads an RGB or RGBA tuple. Channels are in [0, 1] unless any of
// them exceeds 1, in which case the whole tuple is read as 0-255. A missing
// alpha is opaque.
func ParseColor(vals []float64) (Color, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return Color{}, fmt.Errorf("color needs 3 or 4 channels, got %d", len(vals))
	}
	scale := 1.0
	for _, v := range vals {
		if !finite(v) || v < 0 {
			return Color{}, fmt.Errorf("color channel %v out of range", v)
		}
		if v > 1 {
			scale = 255
		}
	}
	c := Color{R: vals[0] / scale, G: vals[1] / scale, B: vals[2] / scale, A: 1}
	if len(vals) == 4 {
		c.A = vals[3] / scale
	}
	if c.R > 1 || c.G > 1 || c.B > 1 || c.A > 1 {
		return Color{}, fmt.Errorf("color channel above 255 in %v", vals)
	}
	return c, nil
}

// LoadConfig reads one knob configuration from TOML. Keys absent from the
// file keep their DefaultConfig value; unknown keys are an error. The result
// is not validated: Knob absorbs semantic problems, and callers wanting to
// reject them can call Config.Validate.
func LoadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("knob: decode config: %w", err)
	}
	cfg := DefaultConfig()
	if err := fc.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("knob: decode config: %w", err)
	}
	return cfg, nil
}

// LayoutEntry is one knob of a layout file: a name, its bounds and its
// configuration.
type LayoutEntry struct {
	Name   string
	Bounds Rect
	Config Config
}

type layoutEntry struct {
	Name   string  `toml:"name"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	fileConfig
}

type layoutFile struct {
	Knobs []layoutEntry `toml:"knob"`
}

// LoadLayout reads a TOML file holding a [[knob]] array. Each entry takes
// name, x, y, width and height plus any LoadConfig key.
func LoadLayout(r io.Reader) ([]LayoutEntry, error) {
	var lf layoutFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&lf); err != nil {
		return nil, fmt.Errorf("knob: decode layout: %w", err)
	}
	entries := make([]LayoutEntry, 0, len(lf.Knobs))
	for i := range lf.Knobs {
		le := &lf.Knobs[i]
		cfg := DefaultConfig()
		if err := le.fileConfig.apply(&cfg); err != nil {
			return nil, fmt.Errorf("knob: decode layout: knob %d (%s): %w", i, le.Name, err)
		}
		entries = append(entries, LayoutEntry{
			Name:   le.Name,
			Bounds: Rect{X: le.X, Y: le.Y, Width: le.Width, Height: le.Height},
			Config: cfg,
		})
	}
	return entries, nil
}

// NewPanelFromLayout builds a panel holding one knob per entry, textures
// loaded through loader (which may be nil). Texture failures are logged and
// fall back to solid colors.
func NewPanelFromLayout(entries []LayoutEntry, loader TextureLoader) *Panel {
	p := NewPanel()
	for _, e := range entries {
		tex, _ := LoadTextures(loader, e.Config)
		p.Add(New(e.Config, WithName(e.Name), WithBounds(e.Bounds), WithTextures(tex)))
	}
	return p
}
