package knob

import "testing"

func TestPressFeedbackEases(t *testing.T) {
	f := NewPressFeedback(0.5)
	f.Press()
	if !f.Animating() {
		t.Fatal("Animating() = false after Press")
	}

	f.Update(f.Duration / 2)
	mid := f.Level()
	if mid <= 0 || mid >= 1 {
		t.Errorf("Level() halfway = %v, want strictly between 0 and 1", mid)
	}

	f.Update(f.Duration)
	if f.Level() != 1 || f.Animating() {
		t.Errorf("Level() = %v, Animating() = %v; want 1, false", f.Level(), f.Animating())
	}

	got := f.Tint(Color{R: 1, G: 0.5, B: 0.2, A: 0.8})
	want := Color{R: 0.5, G: 0.25, B: 0.1, A: 0.8}
	if !approxEqual(got.R, want.R) || !approxEqual(got.G, want.G) || !approxEqual(got.B, want.B) || got.A != want.A {
		t.Errorf("Tint() = %+v, want %+v", got, want)
	}

	f.Release()
	f.Update(f.Duration * 2)
	if f.Level() != 0 {
		t.Errorf("Level() after release = %v, want 0", f.Level())
	}
}

func TestPressFeedbackReleaseMidway(t *testing.T) {
	f := NewPressFeedback(1)
	f.Press()
	f.Update(f.Duration / 2)
	from := f.Level()

	f.Release()
	f.Update(f.Duration / 10)
	if got := f.Level(); got >= from {
		t.Errorf("Level() = %v after release from %v, want lower", got, from)
	}
}

func TestPressFeedbackDisabled(t *testing.T) {
	f := NewPressFeedback(0)
	f.Press()
	if f.Animating() {
		t.Error("Animating() = true with no dim")
	}
	c := Color{R: 0.3, G: 0.3, B: 0.3, A: 1}
	if got := f.Tint(c); got != c {
		t.Errorf("Tint() = %+v, want unchanged %+v", got, c)
	}
}

func TestPressFeedbackClampsDim(t *testing.T) {
	if got := NewPressFeedback(4).Dim; got != 1 {
		t.Errorf("Dim = %v, want 1", got)
	}
	if got := NewPressFeedback(-1).Dim; got != 0 {
		t.Errorf("Dim = %v, want 0", got)
	}
}
