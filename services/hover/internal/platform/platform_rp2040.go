//go:build rp2040

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ws2812"

	"hovercraft-go/errcode"
	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/platform/setups"
)

// Open configures PWM slices for the servo and ESCs (50 Hz via the servo
// driver), the WS2812 data pin and the coprocessor UART.
func Open(p setups.Plan) (Board, error) {
	if err := p.Validate(); err != nil {
		return Board{}, err
	}

	rudder, err := newServo(p.Rudder)
	if err != nil {
		return Board{}, errcode.Wrap(errcode.DriverFault, "rudder", err)
	}
	lift, err := newServo(p.Lift)
	if err != nil {
		return Board{}, errcode.Wrap(errcode.DriverFault, "lift", err)
	}
	var thrust [2]actuator.PulseOutput
	for i, n := range p.Thrust {
		s, err := newServo(n)
		if err != nil {
			return Board{}, errcode.Wrap(errcode.DriverFault, "thrust", err)
		}
		thrust[i] = s
	}

	pin := machine.Pin(p.Strip.Pin)
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ws := ws2812.New(pin)

	var hw *uartx.UART
	switch p.UART.ID {
	case "uart0":
		hw = uartx.UART0
	default:
		hw = uartx.UART1
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: p.UART.Baud,
		TX:       machine.Pin(p.UART.TX),
		RX:       machine.Pin(p.UART.RX),
	}); err != nil {
		return Board{}, errcode.Wrap(errcode.DriverFault, p.UART.ID, err)
	}

	println("[platform]", p.Name, "up")
	return Board{
		Outputs: actuator.Outputs{
			Rudder: rudder,
			Lift:   lift,
			Thrust: thrust,
			Lights: actuator.NewStrip(&ws, p.Strip.Pixels, p.Strip.Brightness),
		},
		Port: hw,
	}, nil
}

// newServo binds a pin to its PWM slice. Pins sharing a slice share its
// 50 Hz period, which every output here uses anyway.
func newServo(n int) (*servo.Servo, error) {
	pin := machine.Pin(n)
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil, errcode.Unsupported
	}
	s, err := servo.New(pwmGroupBySlice(slice), pin)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func pwmGroupBySlice(slice uint8) servo.PWM {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
