// Package hover is the craft's control loop: it polls the coprocessor link,
// maps every active gamepad onto the actuators and publishes what it did.
package hover

import (
	"context"

	"hovercraft-go/bus"
	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/input"
	"hovercraft-go/services/hover/internal/link"
	"hovercraft-go/services/hover/internal/mapper"
	"hovercraft-go/types"
	"hovercraft-go/x/timex"
)

// Service owns all loop state. Every method must be called from the loop's
// goroutine; link callbacks fire from inside Step.
type Service struct {
	cfg  Config
	conn *bus.Connection

	link *link.Link
	reg  *input.Registry
	mapr *mapper.Mapper
	act  *actuator.Actuators

	cycles uint64
	active int
}

// New builds the loop over out, fed by lines from the coprocessor.
// conn may be nil, in which case nothing is published.
func New(cfg Config, out Outputs, lines <-chan string, conn *bus.Connection) *Service {
	s := &Service{cfg: cfg, conn: conn}
	var pub actuator.Emitter
	if conn != nil {
		pub = capPublisher{conn: conn}
	}
	s.act = actuator.New(out, cfg.Actuator, pub)
	s.reg = input.NewRegistry(cfg.Capacity)
	s.mapr = mapper.New(cfg.Profile, s.act, s.reg.Cap())
	s.link = link.New(lines, link.Handlers{
		OnConnect:    s.onConnect,
		OnDisconnect: s.onDisconnect,
	})
	return s
}

// Boot arms the ESCs and puts every output at its neutral state.
func (s *Service) Boot(tick timex.Tick) {
	println("[hover] calibrating ESCs")
	s.act.Calibrate(tick, s.cfg.Calibration)
	s.act.Init()
	println("[hover] ready")
}

// Step runs one cycle without pausing: poll the link, then map each active
// gamepad in slot order. With several gamepads the last one wins.
func (s *Service) Step() {
	s.link.Poll()
	s.active = 0
	for slot, src := range s.reg.Active() {
		if src.Class() != input.ClassGamepad {
			continue
		}
		s.mapr.Apply(slot, src.Sample())
		s.active++
	}
	s.cycles++
	if n := s.cfg.StatsEvery; n > 0 && s.cycles%uint64(n) == 0 {
		s.publishStats()
	}
}

// Run steps, pausing Period between cycles, until ctx is done or tick
// reports stop.
func (s *Service) Run(ctx context.Context, tick timex.Tick) {
	for ctx.Err() == nil {
		s.Step()
		if !tick(s.cfg.Period) {
			return
		}
	}
}

// Stats snapshots loop, registry, link and actuator counters.
func (s *Service) Stats() types.Stats {
	st := s.act.State()
	return types.Stats{
		Cycles:      s.cycles,
		Active:      s.active,
		Registered:  s.reg.Len(),
		Rejected:    s.reg.Stats().Rejected,
		BadFrames:   s.link.Stats().BadFrames,
		Writes:      st.Writes,
		Suppressed:  st.Suppressed,
		Faults:      st.Faults,
		IndicatorOn: st.IndicatorOn,
		TS:          timex.NowMs(),
	}
}

// State returns the commanded actuator values.
func (s *Service) State() State { return s.act.State() }

func (s *Service) onConnect(src input.Source) {
	_, known := s.reg.Lookup(src.ID())
	slot, err := s.reg.OnConnect(src)
	if err != nil {
		println("[registry] source", uint32(src.ID()), "connected, but no empty slot")
		s.publishInput(types.InputRejected, src.ID(), slot, err)
		return
	}
	if !known {
		s.mapr.Forget(slot)
	}
	println("[registry] source", uint32(src.ID()), "("+src.Class().String()+") connected, slot", int(slot))
	s.publishInput(types.InputConnected, src.ID(), slot, nil)
}

func (s *Service) onDisconnect(id input.SourceID) {
	slot, ok := s.reg.OnDisconnect(id)
	if !ok {
		println("[registry] source", uint32(id), "disconnected, but not in any slot")
		return
	}
	s.mapr.Forget(slot)
	println("[registry] source", uint32(id), "disconnected from slot", int(slot))
	s.publishInput(types.InputDisconnected, id, slot, nil)
}

func (s *Service) publishInput(k types.InputEventKind, id input.SourceID, slot input.Slot, err error) {
	if s.conn == nil {
		return
	}
	ev := types.InputEvent{Kind: k, Source: uint32(id), Slot: int(slot), TS: timex.NowMs()}
	if err != nil {
		ev.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(inputTopic(k), ev, false))
}

func (s *Service) publishStats() {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(TopicStats, s.Stats(), true))
}
