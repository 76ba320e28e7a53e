// Package actuator owns the commanded state of the craft's outputs and only
// touches hardware when a commanded value actually changes.
package actuator

import (
	"image/color"
	"time"

	"hovercraft-go/errcode"
	"hovercraft-go/types"
	"hovercraft-go/x/mathx"
	"hovercraft-go/x/timex"
)

// Config holds the fixed ranges of the outputs.
type Config struct {
	MinPulseUs     int16 // ESC idle pulse, also the calibration low point
	MaxPulseUs     int16 // ESC full pulse, also the calibration high point
	MaxDegrees     int
	NeutralDegrees int
	MaxPercent     int
	OnColor        color.RGBA
}

// DefaultConfig matches the ESC calibration range and a 180° servo.
func DefaultConfig() Config {
	return Config{
		MinPulseUs:     1000,
		MaxPulseUs:     2000,
		MaxDegrees:     180,
		NeutralDegrees: 90,
		MaxPercent:     100,
		OnColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Calibration is the ESC arming sequence: settle, hold at max, hold at min.
type Calibration struct {
	Settle time.Duration
	High   time.Duration
	Low    time.Duration
}

func DefaultCalibration() Calibration {
	return Calibration{Settle: time.Second, High: time.Second, Low: 2 * time.Second}
}

// Event is emitted after every hardware write.
type Event struct {
	Channel string
	Kind    types.Kind
	Payload any
}

// Emitter receives write notifications. It must not block.
type Emitter interface {
	Emit(ev Event) bool
}

// Counters track hardware traffic.
type Counters struct {
	Writes     uint32
	Suppressed uint32
	Faults     uint32
}

// State is a snapshot of the commanded values.
type State struct {
	Degrees     int
	Speed       int
	PairedSpeed int
	IndicatorOn bool
	Counters
}

// Actuators is the single owner of commanded output state.
// Not safe for concurrent use; the control loop is the only caller.
type Actuators struct {
	out Outputs
	cfg Config
	pub Emitter

	degrees     int
	speed       int
	pairedSpeed int
	indicatorOn bool

	cnt Counters
}

// New returns actuators at their neutral commanded values. Nothing is written
// to hardware until Init or a changing Set call. pub may be nil.
func New(out Outputs, cfg Config, pub Emitter) *Actuators {
	return &Actuators{
		out:     out,
		cfg:     cfg,
		pub:     pub,
		degrees: mathx.Clamp(cfg.NeutralDegrees, 0, cfg.MaxDegrees),
	}
}

// Init forces the neutral state onto the hardware once, regardless of the
// commanded values.
func (a *Actuators) Init() {
	a.writeAngle(a.degrees)
	a.writeSpeed(a.speed)
	a.writePairedSpeed(a.pairedSpeed)
	a.indicatorOn = false
	a.latchIndicator()
}

// Calibrate runs the ESC two-phase arming sequence on every speed output and
// leaves them at zero speed. tick provides the holds.
func (a *Actuators) Calibrate(tick timex.Tick, c Calibration) {
	timex.Hold(tick, c.Settle)
	a.pulseAll(a.cfg.MaxPulseUs)
	timex.Hold(tick, c.High)
	a.pulseAll(a.cfg.MinPulseUs)
	timex.Hold(tick, c.Low)
	a.speed, a.pairedSpeed = 0, 0
}

func (a *Actuators) pulseAll(us int16) {
	a.out.Lift.SetMicroseconds(us)
	a.out.Thrust[0].SetMicroseconds(us)
	a.out.Thrust[1].SetMicroseconds(us)
	a.cnt.Writes += 2 // per channel: lift, and thrust counted once for both outputs
}

// SetPosition clamps deg to the servo range and writes it if it changed.
// It reports whether a hardware write happened.
func (a *Actuators) SetPosition(deg int) bool {
	deg = mathx.Clamp(deg, 0, a.cfg.MaxDegrees)
	if deg == a.degrees {
		a.cnt.Suppressed++
		return false
	}
	a.degrees = deg
	a.writeAngle(deg)
	return true
}

// SetSpeed clamps pct to [0,MaxPercent] and writes the lift ESC if it changed.
func (a *Actuators) SetSpeed(pct int) bool {
	pct = mathx.Clamp(pct, 0, a.cfg.MaxPercent)
	if pct == a.speed {
		a.cnt.Suppressed++
		return false
	}
	a.speed = pct
	a.writeSpeed(pct)
	return true
}

// SetPairedSpeed clamps pct and writes both thrust ESCs together if it changed.
func (a *Actuators) SetPairedSpeed(pct int) bool {
	pct = mathx.Clamp(pct, 0, a.cfg.MaxPercent)
	if pct == a.pairedSpeed {
		a.cnt.Suppressed++
		return false
	}
	a.pairedSpeed = pct
	a.writePairedSpeed(pct)
	return true
}

// ToggleIndicator flips the lights and always latches the strip.
// It returns the new state.
func (a *Actuators) ToggleIndicator() bool {
	a.indicatorOn = !a.indicatorOn
	a.latchIndicator()
	if a.indicatorOn {
		println("[act] lights on")
	} else {
		println("[act] lights off")
	}
	return a.indicatorOn
}

// PulseFor maps a speed percentage onto the ESC pulse range.
func (a *Actuators) PulseFor(pct int) int16 {
	pct = mathx.Clamp(pct, 0, a.cfg.MaxPercent)
	return mathx.Map(int16(pct), 0, int16(a.cfg.MaxPercent), a.cfg.MinPulseUs, a.cfg.MaxPulseUs)
}

// State returns a copy of the commanded values and counters.
func (a *Actuators) State() State {
	return State{
		Degrees:     a.degrees,
		Speed:       a.speed,
		PairedSpeed: a.pairedSpeed,
		IndicatorOn: a.indicatorOn,
		Counters:    a.cnt,
	}
}

// --- hardware writes ---

func (a *Actuators) writeAngle(deg int) {
	a.cnt.Writes++
	if err := a.out.Rudder.SetAngle(deg); err != nil {
		a.fault("rudder", err)
	}
	a.emit(types.ChannelRudder, types.KindPosition, types.PositionValue{Degrees: deg, TS: timex.NowMs()})
}

func (a *Actuators) writeSpeed(pct int) {
	us := a.PulseFor(pct)
	a.cnt.Writes++
	a.out.Lift.SetMicroseconds(us)
	a.emit(types.ChannelLift, types.KindSpeed, types.SpeedValue{Percent: pct, PulseUs: us, TS: timex.NowMs()})
}

func (a *Actuators) writePairedSpeed(pct int) {
	us := a.PulseFor(pct)
	a.cnt.Writes++
	a.out.Thrust[0].SetMicroseconds(us)
	a.out.Thrust[1].SetMicroseconds(us)
	a.emit(types.ChannelThrust, types.KindSpeedPaired, types.SpeedValue{Percent: pct, PulseUs: us, Paired: true, TS: timex.NowMs()})
}

func (a *Actuators) latchIndicator() {
	s := a.out.Lights
	if a.indicatorOn {
		for i := 0; i < s.Len(); i++ {
			s.SetPixelColor(i, a.cfg.OnColor)
		}
	} else {
		s.Clear()
	}
	a.cnt.Writes++
	if err := s.Show(); err != nil {
		a.fault("lights", err)
	}
	a.emit(types.ChannelLights, types.KindIndicator, types.IndicatorValue{On: a.indicatorOn, TS: timex.NowMs()})
}

func (a *Actuators) fault(channel string, err error) {
	a.cnt.Faults++
	println("[act]", errcode.Wrap(errcode.DriverFault, channel, err).Error())
}

func (a *Actuators) emit(channel string, kind types.Kind, payload any) {
	if a.pub == nil {
		return
	}
	a.pub.Emit(Event{Channel: channel, Kind: kind, Payload: payload})
}
