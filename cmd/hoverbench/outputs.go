package main

import (
	"context"
	"image/color"

	"go.uber.org/zap"

	"hovercraft-go/bus"
	"hovercraft-go/services/hover"
	"hovercraft-go/types"
)

// loggedServo stands in for a PWM output and logs what it is told.
type loggedServo struct {
	log *zap.Logger
}

func (s loggedServo) SetAngle(deg int) error {
	s.log.Info("write", zap.Int("degrees", deg))
	return nil
}

func (s loggedServo) SetMicroseconds(us int16) {
	s.log.Info("write", zap.Int16("pulse_us", us))
}

type loggedLEDs struct {
	log *zap.Logger
}

func (l loggedLEDs) WriteColors(buf []color.RGBA) error {
	lit := 0
	for _, c := range buf {
		if c.R|c.G|c.B != 0 {
			lit++
		}
	}
	l.log.Info("write", zap.Int("pixels", len(buf)), zap.Int("lit", lit))
	return nil
}

func (b *bench) outputs() hover.Outputs {
	return hover.Outputs{
		Rudder: loggedServo{log: b.log.Named(types.ChannelRudder)},
		Lift:   loggedServo{log: b.log.Named(types.ChannelLift)},
		Thrust: [2]hover.PulseOutput{
			loggedServo{log: b.log.Named(types.ChannelThrust + "0")},
			loggedServo{log: b.log.Named(types.ChannelThrust + "1")},
		},
		Lights: hover.NewStrip(loggedLEDs{log: b.log.Named(types.ChannelLights)}, b.pixels, 255),
	}
}

// watchInputs logs registry events until ctx is done.
func (b *bench) watchInputs(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(hover.TopicInput)
	go func() {
		defer conn.Unsubscribe(sub)
		log := b.log.Named("input")
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-sub.Channel():
				ev, ok := m.Payload.(types.InputEvent)
				if !ok {
					continue
				}
				log.Info(string(ev.Kind),
					zap.Uint32("source", ev.Source),
					zap.Int("slot", ev.Slot),
					zap.String("error", ev.Error))
			}
		}
	}()
}

func logStats(log *zap.Logger, st types.Stats, s hover.State) {
	log.Info("final",
		zap.Uint64("cycles", st.Cycles),
		zap.Int("slots", st.Registered),
		zap.Uint32("rejected", st.Rejected),
		zap.Uint32("bad_frames", st.BadFrames),
		zap.Uint32("writes", st.Writes),
		zap.Uint32("suppressed", st.Suppressed),
		zap.Uint32("faults", st.Faults),
		zap.Int("degrees", s.Degrees),
		zap.Int("speed", s.Speed),
		zap.Int("paired_speed", s.PairedSpeed),
		zap.Bool("lights", s.IndicatorOn))
}
