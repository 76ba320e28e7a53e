package heartbeat

import (
	"context"
	"strconv"
	"time"

	"hovercraft-go/bus"
	"hovercraft-go/types"
)

var topicStats = bus.T("hover", "stats")

// TopicConfig carries a Config; publish it retained so a later start picks it up.
var TopicConfig = bus.T("config", "heartbeat")

// Config is the payload accepted on TopicConfig.
type Config struct {
	Interval time.Duration
}

type Service struct {
	Interval time.Duration     // zero means one second
	Out      func(line string) // defaults to println
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	statsSub := conn.Subscribe(topicStats)
	defer conn.Unsubscribe(statsSub)
	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	iv := s.Interval
	if iv <= 0 {
		iv = time.Second
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	var last types.Stats
	seen := false

	// loop until context is cancelled, respond to tick, stats and config changes
	for {
		select {
		case <-ctx.Done():
			s.out("[hb] heartbeat service stopping")
			return
		case t := <-tick.C:
			s.out(Line(t, last, seen))
		case msg := <-statsSub.Channel():
			if st, ok := msg.Payload.(types.Stats); ok {
				last, seen = st, true
			}
		case msg := <-cfgSub.Channel():
			if c, ok := msg.Payload.(Config); ok && c.Interval > 0 {
				tick.Reset(c.Interval)
				s.out("[hb] interval set to " + c.Interval.String())
			}
		}
	}
}

// Line formats one heartbeat. Without stats it is just the time.
func Line(t time.Time, st types.Stats, seen bool) string {
	s := "[hb] " + t.Format("15:04:05") + " Heartbeat"
	if !seen {
		return s
	}
	s += " cycles=" + strconv.FormatUint(st.Cycles, 10) +
		" active=" + strconv.Itoa(st.Active) +
		" slots=" + strconv.Itoa(st.Registered) +
		" writes=" + strconv.FormatUint(uint64(st.Writes), 10) +
		" faults=" + strconv.FormatUint(uint64(st.Faults), 10)
	if st.IndicatorOn {
		s += " lights=on"
	}
	return s
}

func (s *Service) out(line string) {
	if s.Out != nil {
		s.Out(line)
		return
	}
	println(line)
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
