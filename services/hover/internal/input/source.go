package input

// SourceID is the opaque identity the transport issues at connect time.
type SourceID uint32

// Class is the device class reported by the transport.
type Class uint8

const (
	ClassGamepad Class = iota
	ClassMouse
	ClassKeyboard
	ClassBalanceBoard
)

func (c Class) String() string {
	switch c {
	case ClassGamepad:
		return "gamepad"
	case ClassMouse:
		return "mouse"
	case ClassKeyboard:
		return "keyboard"
	case ClassBalanceBoard:
		return "balance"
	default:
		return "unknown"
	}
}

// ParseClass maps a wire name onto a Class.
func ParseClass(s string) (Class, bool) {
	switch s {
	case "", "gamepad":
		return ClassGamepad, true
	case "mouse":
		return ClassMouse, true
	case "keyboard":
		return ClassKeyboard, true
	case "balance":
		return ClassBalanceBoard, true
	}
	return 0, false
}

// Button bits in Sample.Buttons.
const (
	ButtonA         uint16 = 1 << 0 // cross
	ButtonB         uint16 = 1 << 1 // circle
	ButtonX         uint16 = 1 << 2 // square
	ButtonY         uint16 = 1 << 3 // triangle
	ButtonShoulderL uint16 = 1 << 4 // L1
	ButtonShoulderR uint16 = 1 << 5
	ButtonTriggerL  uint16 = 1 << 6
	ButtonTriggerR  uint16 = 1 << 7
)

// Sample is one raw reading from a controller.
type Sample struct {
	AxisX   int    // left stick X, nominally -512..512
	Brake   int    // right analogue trigger, nominally 0..1023
	Buttons uint16 // Button* bits
}

// Has reports whether every bit in mask is set.
func (s Sample) Has(mask uint16) bool { return mask != 0 && s.Buttons&mask == mask }

// Source is a connected controller as seen by the transport.
type Source interface {
	ID() SourceID
	Class() Class
	Connected() bool
	// HasData reports a sample newer than the last transport poll.
	HasData() bool
	Sample() Sample
}
