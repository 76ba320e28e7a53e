package actuator

import "image/color"

// ServoOutput positions a hobby servo. Satisfied by tinygo.org/x/drivers/servo.Servo.
type ServoOutput interface {
	SetAngle(degrees int) error
}

// PulseOutput drives an ESC with a raw pulse width. Satisfied by
// tinygo.org/x/drivers/servo.Servo.
type PulseOutput interface {
	SetMicroseconds(us int16)
}

// PixelStrip is an addressable LED strip with a latch step.
type PixelStrip interface {
	Len() int
	SetPixelColor(i int, c color.RGBA)
	Clear()
	Show() error
}

// Outputs is the set of low-level drivers the actuators write to.
type Outputs struct {
	Rudder ServoOutput    // position channel
	Lift   PulseOutput    // single speed channel
	Thrust [2]PulseOutput // paired speed channel
	Lights PixelStrip     // indicator
}
