//go:build !rp2040

package platform

import (
	"context"
	"image/color"
	"sync"

	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/platform/setups"
)

// HostServo records the last angle and pulse it was given.
type HostServo struct {
	mu      sync.Mutex
	Pin     int
	Angle   int
	PulseUs int16
	Writes  int
}

func (s *HostServo) SetAngle(deg int) error {
	s.mu.Lock()
	s.Angle = deg
	s.Writes++
	s.mu.Unlock()
	return nil
}

func (s *HostServo) SetMicroseconds(us int16) {
	s.mu.Lock()
	s.PulseUs = us
	s.Writes++
	s.mu.Unlock()
}

// HostLEDs keeps every frame written to the strip.
type HostLEDs struct {
	mu     sync.Mutex
	Pin    int
	Frames [][]color.RGBA
}

func (l *HostLEDs) WriteColors(buf []color.RGBA) error {
	l.mu.Lock()
	l.Frames = append(l.Frames, append([]color.RGBA(nil), buf...))
	l.mu.Unlock()
	return nil
}

// Last returns the most recent frame, or nil.
func (l *HostLEDs) Last() []color.RGBA {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Frames) == 0 {
		return nil
	}
	return l.Frames[len(l.Frames)-1]
}

// IdlePort never produces bytes; each read waits out its context.
type IdlePort struct{}

func (IdlePort) RecvSomeContext(ctx context.Context, _ []byte) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// Open returns recording outputs and an idle port so the firmware entry runs
// on a host.
func Open(p setups.Plan) (Board, error) {
	if err := p.Validate(); err != nil {
		return Board{}, err
	}
	leds := &HostLEDs{Pin: p.Strip.Pin}
	return Board{
		Outputs: actuator.Outputs{
			Rudder: &HostServo{Pin: p.Rudder},
			Lift:   &HostServo{Pin: p.Lift},
			Thrust: [2]actuator.PulseOutput{&HostServo{Pin: p.Thrust[0]}, &HostServo{Pin: p.Thrust[1]}},
			Lights: actuator.NewStrip(leds, p.Strip.Pixels, p.Strip.Brightness),
		},
		Port: IdlePort{},
	}, nil
}
