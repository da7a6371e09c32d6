package knob

import (
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
min = -1
max = 1
step = 0.25
value = 0.5
angle_start = 180
angle_end = 0
knob_size = 0.7
show_label = false
knobimg_source = "face.png"
marker_color = [255, 128, 0]
markeroff_color = [0.1, 0.2, 0.3, 0.5]
marker_ahead = 4
marker_startangle = 6
label_precision = 3
max_jump = 45
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Min, want.Max, want.Step, want.Value = -1, 1, 0.25, 0.5
	want.AngleStart, want.AngleEnd = 180, 0
	want.KnobScale = 0.7
	want.ShowLabel = false
	want.FaceSource = "face.png"
	want.MarkerColor = Color{R: 1, G: 128.0 / 255, B: 0, A: 1}
	want.MarkerOffColor = Color{R: 0.1, G: 0.2, B: 0.3, A: 0.5}
	want.MarkerAhead, want.MarkerStart = 4, 6
	want.LabelPrecision = 3
	want.MaxJump = 45

	if cfg != want {
		t.Errorf("LoadConfig =\n%+v\nwant\n%+v", cfg, want)
	}
}

func TestLoadConfigEmptyIsDefault(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfigCanonicalKeyWins(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"alias first", `
knob_size = 0.5
knob_scale = 0.6
markeroff_color = [1, 1, 1]
marker_off_color = [0, 0, 0]
`},
		{"alias last", `
knob_scale = 0.6
knob_size = 0.5
marker_off_color = [0, 0, 0]
markeroff_color = [1, 1, 1]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if cfg.KnobScale != 0.6 {
				t.Errorf("KnobScale = %v, want 0.6", cfg.KnobScale)
			}
			if cfg.MarkerOffColor != ColorBlack {
				t.Errorf("MarkerOffColor = %+v, want black", cfg.MarkerOffColor)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"unknown key", `colour = [1, 1, 1]`, "decode config"},
		{"wrong type", `min = "low"`, "decode config"},
		{"short color", `marker_color = [1, 1]`, "marker_color"},
		{"negative channel", `font_color = [1, -1, 1]`, "font_color"},
		{"channel above 255", `knobimg_color = [300, 0, 0]`, "knobimg_color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Color
	}{
		{"unit rgb", []float64{0.5, 0.25, 1}, Color{R: 0.5, G: 0.25, B: 1, A: 1}},
		{"unit rgba", []float64{0, 0, 0, 0}, Color{}},
		{"byte rgb", []float64{255, 0, 51}, Color{R: 1, G: 0, B: 0.2, A: 1}},
		{"byte rgba", []float64{0, 0, 0, 255}, Color{A: 1}},
		{"one channel above 1 switches scale", []float64{2, 1, 1}, Color{R: 2.0 / 255, G: 1.0 / 255, B: 1.0 / 255, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if !approxEqual(got.R, tt.want.R) || !approxEqual(got.G, tt.want.G) ||
				!approxEqual(got.B, tt.want.B) || !approxEqual(got.A, tt.want.A) {
				t.Errorf("ParseColor(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

const testLayout = `
[[knob]]
name = "gain"
x = 10
y = 20
width = 120
height = 100
max = 10

[[knob]]
name = "pan"
x = 140
y = 20
width = 100
height = 100
min = -1
max = 1
step = 0.1
`

func TestLoadLayout(t *testing.T) {
	entries, err := LoadLayout(strings.NewReader(testLayout))
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	gain := entries[0]
	if gain.Name != "gain" || gain.Bounds != (Rect{X: 10, Y: 20, Width: 120, Height: 100}) {
		t.Errorf("entries[0] = %q %+v", gain.Name, gain.Bounds)
	}
	if gain.Config.Max != 10 || gain.Config.Step != 1 {
		t.Errorf("gain config max = %v, step = %v; want 10, 1", gain.Config.Max, gain.Config.Step)
	}
	if pan := entries[1].Config; pan.Min != -1 || pan.Step != 0.1 {
		t.Errorf("pan config = %+v", pan)
	}
}

func TestLoadLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key in entry", "[[knob]]\nname = \"a\"\nradius = 4\n"},
		{"bad color in entry", "[[knob]]\nname = \"a\"\nmarker_color = [1]\n"},
		{"top level table", "[knobs]\nname = \"a\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadLayout(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewPanelFromLayout(t *testing.T) {
	entries, err := LoadLayout(strings.NewReader(testLayout))
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	p := NewPanelFromLayout(entries, nil)

	pan := p.Knob("pan")
	if pan == nil || len(p.Knobs()) != 2 {
		t.Fatalf("panel knobs = %d, pan = %v", len(p.Knobs()), pan)
	}
	if pan.Bounds() != entries[1].Bounds {
		t.Errorf("pan bounds = %+v", pan.Bounds())
	}
	if g := p.Knob("gain").Controller().Geometry(); g.Radius != 50 || g.Center != (Vec2{X: 60, Y: 50}) {
		t.Errorf("gain geometry = %+v", g)
	}
}
