package actuator

import (
	"image/color"
	"testing"
)

func TestStripBrightnessScaling(t *testing.T) {
	w := &fakeWriter{}
	s := NewStrip(w, 3, 150)
	for i := 0; i < s.Len(); i++ {
		s.SetPixelColor(i, color.RGBA{R: 255, G: 128, B: 0, A: 255})
	}
	if err := s.Show(); err != nil {
		t.Fatal(err)
	}
	got := w.frames[0][0]
	want := color.RGBA{R: 150, G: 75, B: 0, A: 255}
	if got != want {
		t.Fatalf("scaled colour %v, want %v", got, want)
	}
}

func TestStripFullBrightnessPassesThrough(t *testing.T) {
	w := &fakeWriter{}
	s := NewStrip(w, 1, 255)
	c := color.RGBA{R: 1, G: 200, B: 255}
	s.SetPixelColor(0, c)
	_ = s.Show()
	if w.frames[0][0] != c {
		t.Fatalf("got %v, want %v", w.frames[0][0], c)
	}
}

func TestStripIgnoresOutOfRangeAndClears(t *testing.T) {
	w := &fakeWriter{}
	s := NewStrip(w, 2, 255)
	s.SetPixelColor(-1, color.RGBA{R: 9})
	s.SetPixelColor(2, color.RGBA{R: 9})
	s.SetPixelColor(1, color.RGBA{R: 9})
	s.Clear()
	_ = s.Show()
	for i, c := range w.frames[0] {
		if c != (color.RGBA{}) {
			t.Fatalf("pixel %d = %v after Clear", i, c)
		}
	}
	if NewStrip(w, -3, 255).Len() != 0 {
		t.Fatal("negative length should produce an empty strip")
	}
}
