package setups

import (
	"strconv"

	"hovercraft-go/errcode"
)

// Plan wires the craft's outputs and the coprocessor link to pins.
type Plan struct {
	Name   string
	Rudder int    // steering servo GPIO
	Lift   int    // single lift ESC GPIO
	Thrust [2]int // paired thrust ESC GPIOs
	Strip  StripPlan
	UART   UARTPlan
}

type StripPlan struct {
	Pin        int
	Pixels     int
	Brightness uint8 // global scale applied at latch time, 255 = full
}

type UARTPlan struct {
	ID   string // "uart0" or "uart1"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}

// Pins lists every GPIO the plan claims, outputs first.
func (p Plan) Pins() []int {
	return []int{p.Rudder, p.Lift, p.Thrust[0], p.Thrust[1], p.Strip.Pin, p.UART.TX, p.UART.RX}
}

// Validate checks pin ranges and that no pin is claimed twice.
func (p Plan) Validate() error {
	seen := make(map[int]bool, 8)
	for _, n := range p.Pins() {
		if n < 0 || n > 28 {
			return &errcode.E{C: errcode.InvalidParams, Op: p.Name, Msg: "pin " + strconv.Itoa(n) + " out of range"}
		}
		if seen[n] {
			return &errcode.E{C: errcode.InvalidParams, Op: p.Name, Msg: "pin " + strconv.Itoa(n) + " used twice"}
		}
		seen[n] = true
	}
	if p.Strip.Pixels <= 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: p.Name, Msg: "strip has no pixels"}
	}
	switch p.UART.ID {
	case "uart0", "uart1":
	default:
		return &errcode.E{C: errcode.InvalidParams, Op: p.Name, Msg: "unknown uart " + p.UART.ID}
	}
	return nil
}

// PicoHover is the breadboard build: outputs on the same GPIO numbers the
// ESP32 prototype used, Bluepad32 bridge on uart1.
var PicoHover = Plan{
	Name:   "pico_hover",
	Rudder: 21,
	Lift:   22,
	Thrust: [2]int{19, 2},
	Strip:  StripPlan{Pin: 16, Pixels: 3, Brightness: 150},
	UART:   UARTPlan{ID: "uart1", TX: 8, RX: 9, Baud: 115200},
}

// Selected is the plan the firmware boots with.
var Selected = PicoHover
