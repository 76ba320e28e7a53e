package actuator

import "image/color"

// ColorWriter pushes a full frame to an LED bus. Satisfied by
// tinygo.org/x/drivers/ws2812.Device.
type ColorWriter interface {
	WriteColors(buf []color.RGBA) error
}

// Strip buffers pixel colours and applies a global brightness on Show.
type Strip struct {
	w          ColorWriter
	buf        []color.RGBA
	out        []color.RGBA
	brightness uint8
}

// NewStrip returns a strip of n pixels. brightness 255 passes colours through.
func NewStrip(w ColorWriter, n int, brightness uint8) *Strip {
	if n < 0 {
		n = 0
	}
	return &Strip{
		w:          w,
		buf:        make([]color.RGBA, n),
		out:        make([]color.RGBA, n),
		brightness: brightness,
	}
}

func (s *Strip) Len() int { return len(s.buf) }

// SetPixelColor ignores indices outside the strip.
func (s *Strip) SetPixelColor(i int, c color.RGBA) {
	if i < 0 || i >= len(s.buf) {
		return
	}
	s.buf[i] = c
}

func (s *Strip) Clear() {
	for i := range s.buf {
		s.buf[i] = color.RGBA{}
	}
}

// Show latches the buffered frame onto the bus.
func (s *Strip) Show() error {
	for i, c := range s.buf {
		s.out[i] = color.RGBA{
			R: s.scale(c.R),
			G: s.scale(c.G),
			B: s.scale(c.B),
			A: c.A,
		}
	}
	return s.w.WriteColors(s.out)
}

func (s *Strip) scale(v uint8) uint8 {
	return uint8((uint16(v) * (uint16(s.brightness) + 1)) >> 8)
}
