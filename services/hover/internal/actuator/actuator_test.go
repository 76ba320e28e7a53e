package actuator

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"hovercraft-go/types"
)

// ---- fakes ----

type fakeServo struct {
	angles []int
	err    error
}

func (f *fakeServo) SetAngle(d int) error { f.angles = append(f.angles, d); return f.err }

type fakePulse struct{ us []int16 }

func (f *fakePulse) SetMicroseconds(us int16) { f.us = append(f.us, us) }

type fakeWriter struct {
	frames [][]color.RGBA
	err    error
}

func (f *fakeWriter) WriteColors(buf []color.RGBA) error {
	f.frames = append(f.frames, append([]color.RGBA(nil), buf...))
	return f.err
}

type recEmitter struct{ evs []Event }

func (r *recEmitter) Emit(ev Event) bool { r.evs = append(r.evs, ev); return true }

type rig struct {
	servo  *fakeServo
	lift   *fakePulse
	thrust [2]*fakePulse
	leds   *fakeWriter
	pub    *recEmitter
	a      *Actuators
}

func newRig() *rig {
	r := &rig{
		servo:  &fakeServo{},
		lift:   &fakePulse{},
		thrust: [2]*fakePulse{{}, {}},
		leds:   &fakeWriter{},
		pub:    &recEmitter{},
	}
	out := Outputs{
		Rudder: r.servo,
		Lift:   r.lift,
		Thrust: [2]PulseOutput{r.thrust[0], r.thrust[1]},
		Lights: NewStrip(r.leds, 3, 255),
	}
	r.a = New(out, DefaultConfig(), r.pub)
	return r
}

// ---- tests ----

func TestInitialStateIsNeutralWithoutWrites(t *testing.T) {
	r := newRig()
	st := r.a.State()
	if st.Degrees != 90 || st.Speed != 0 || st.PairedSpeed != 0 || st.IndicatorOn {
		t.Fatalf("unexpected initial state %+v", st)
	}
	if len(r.servo.angles)+len(r.lift.us)+len(r.leds.frames) != 0 {
		t.Fatal("New must not touch hardware")
	}
}

func TestInitForcesNeutralOntoHardware(t *testing.T) {
	r := newRig()
	r.a.Init()
	if len(r.servo.angles) != 1 || r.servo.angles[0] != 90 {
		t.Fatalf("servo writes %v, want [90]", r.servo.angles)
	}
	if len(r.lift.us) != 1 || r.lift.us[0] != 1000 {
		t.Fatalf("lift writes %v, want [1000]", r.lift.us)
	}
	for i, p := range r.thrust {
		if len(p.us) != 1 || p.us[0] != 1000 {
			t.Fatalf("thrust[%d] writes %v, want [1000]", i, p.us)
		}
	}
	if len(r.leds.frames) != 1 || r.leds.frames[0][0] != (color.RGBA{}) {
		t.Fatalf("strip frames %v, want one cleared frame", r.leds.frames)
	}
}

func TestSetPositionClampsAndSuppresses(t *testing.T) {
	r := newRig()
	cases := []struct {
		in      int
		wrote   bool
		degrees int
	}{
		{90, false, 90},  // already neutral
		{45, true, 45},   // change
		{45, false, 45},  // repeat suppressed
		{-30, true, 0},   // clamped low
		{-1, false, 0},   // clamps to the same value
		{500, true, 180}, // clamped high
		{181, false, 180},
	}
	for i, c := range cases {
		if got := r.a.SetPosition(c.in); got != c.wrote {
			t.Fatalf("case %d: SetPosition(%d) wrote=%v, want %v", i, c.in, got, c.wrote)
		}
		if d := r.a.State().Degrees; d != c.degrees {
			t.Fatalf("case %d: degrees=%d, want %d", i, d, c.degrees)
		}
	}
	want := []int{45, 0, 180}
	if len(r.servo.angles) != len(want) {
		t.Fatalf("servo writes %v, want %v", r.servo.angles, want)
	}
	for i := range want {
		if r.servo.angles[i] != want[i] {
			t.Fatalf("servo writes %v, want %v", r.servo.angles, want)
		}
	}
	st := r.a.State()
	if st.Writes != 3 || st.Suppressed != 4 {
		t.Fatalf("counters %+v, want 3 writes / 4 suppressed", st.Counters)
	}
}

func TestSetSpeedIdempotentAndPulseMapping(t *testing.T) {
	r := newRig()
	r.a.SetSpeed(50)
	r.a.SetSpeed(50)
	if len(r.lift.us) != 1 || r.lift.us[0] != 1500 {
		t.Fatalf("lift writes %v, want [1500]", r.lift.us)
	}
	r.a.SetSpeed(250)
	r.a.SetSpeed(-4)
	want := []int16{1500, 2000, 1000}
	for i := range want {
		if r.lift.us[i] != want[i] {
			t.Fatalf("lift writes %v, want %v", r.lift.us, want)
		}
	}
	if len(r.thrust[0].us) != 0 {
		t.Fatal("single speed channel leaked into the pair")
	}
}

func TestPairedSpeedDrivesBothOutputsTogether(t *testing.T) {
	r := newRig()
	r.a.SetPairedSpeed(20)
	r.a.SetPairedSpeed(20)
	r.a.SetPairedSpeed(80)
	for i, p := range r.thrust {
		if len(p.us) != 2 || p.us[0] != 1200 || p.us[1] != 1800 {
			t.Fatalf("thrust[%d] writes %v, want [1200 1800]", i, p.us)
		}
	}
	if len(r.lift.us) != 0 {
		t.Fatal("pair leaked into the single speed channel")
	}
}

func TestToggleIndicatorAlwaysLatches(t *testing.T) {
	r := newRig()
	if on := r.a.ToggleIndicator(); !on {
		t.Fatal("first toggle should turn on")
	}
	if on := r.a.ToggleIndicator(); on {
		t.Fatal("second toggle should turn off")
	}
	if len(r.leds.frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(r.leds.frames))
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i, c := range r.leds.frames[0] {
		if c != white {
			t.Fatalf("on frame pixel %d = %v", i, c)
		}
	}
	for i, c := range r.leds.frames[1] {
		if c != (color.RGBA{}) {
			t.Fatalf("off frame pixel %d = %v", i, c)
		}
	}
}

func TestCalibrateSequence(t *testing.T) {
	r := newRig()
	var holds []time.Duration
	tick := func(d time.Duration) bool { holds = append(holds, d); return true }

	r.a.SetSpeed(30)
	r.a.Calibrate(tick, DefaultCalibration())

	wantHolds := []time.Duration{time.Second, time.Second, 2 * time.Second}
	if len(holds) != 3 {
		t.Fatalf("holds %v, want %v", holds, wantHolds)
	}
	for i := range wantHolds {
		if holds[i] != wantHolds[i] {
			t.Fatalf("holds %v, want %v", holds, wantHolds)
		}
	}
	// lift: 30% write, then max, then min
	if got := r.lift.us; len(got) != 3 || got[1] != 2000 || got[2] != 1000 {
		t.Fatalf("lift writes %v", got)
	}
	for i, p := range r.thrust {
		if len(p.us) != 2 || p.us[0] != 2000 || p.us[1] != 1000 {
			t.Fatalf("thrust[%d] writes %v, want [2000 1000]", i, p.us)
		}
	}
	if st := r.a.State(); st.Speed != 0 || st.PairedSpeed != 0 {
		t.Fatalf("speeds after calibration %+v", st)
	}
	// one SetSpeed write, then lift and the thrust pair once per phase
	if st := r.a.State(); st.Writes != 5 {
		t.Fatalf("writes=%d, want 5 counted per channel", st.Writes)
	}
	// Commanded zero already matches the hardware: no extra write.
	if r.a.SetSpeed(0) {
		t.Fatal("SetSpeed(0) after calibration should be suppressed")
	}
}

func TestDriverFaultsAreCountedNotFatal(t *testing.T) {
	r := newRig()
	r.servo.err = errors.New("servo: out of range")
	r.leds.err = errors.New("ws2812: bus stuck")

	if !r.a.SetPosition(10) {
		t.Fatal("write should still be reported")
	}
	r.a.ToggleIndicator()
	st := r.a.State()
	if st.Faults != 2 {
		t.Fatalf("faults=%d, want 2", st.Faults)
	}
	if st.Degrees != 10 || !st.IndicatorOn {
		t.Fatalf("commanded state not updated on fault: %+v", st)
	}
}

func TestEmitsTelemetryPerWrite(t *testing.T) {
	r := newRig()
	r.a.SetPosition(0)
	r.a.SetPosition(0)
	r.a.SetPairedSpeed(50)
	r.a.ToggleIndicator()

	if len(r.pub.evs) != 3 {
		t.Fatalf("got %d events, want 3", len(r.pub.evs))
	}
	if ev := r.pub.evs[0]; ev.Channel != types.ChannelRudder || ev.Payload.(types.PositionValue).Degrees != 0 {
		t.Fatalf("unexpected rudder event %+v", ev)
	}
	sv := r.pub.evs[1].Payload.(types.SpeedValue)
	if !sv.Paired || sv.Percent != 50 || sv.PulseUs != 1500 {
		t.Fatalf("unexpected thrust payload %+v", sv)
	}
	if iv := r.pub.evs[2].Payload.(types.IndicatorValue); !iv.On {
		t.Fatalf("unexpected lights payload %+v", iv)
	}
}

func TestNilEmitterIsAllowed(t *testing.T) {
	out := Outputs{
		Rudder: &fakeServo{},
		Lift:   &fakePulse{},
		Thrust: [2]PulseOutput{&fakePulse{}, &fakePulse{}},
		Lights: NewStrip(&fakeWriter{}, 1, 255),
	}
	a := New(out, DefaultConfig(), nil)
	a.SetPosition(1)
	a.ToggleIndicator()
}
