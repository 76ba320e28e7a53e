// Package link is the transport to the Bluetooth coprocessor. Connection
// events and samples arrive as text lines; Poll applies them on the caller's
// goroutine so registry and mapper state is only touched by the control loop.
package link

import (
	"hovercraft-go/errcode"
	"hovercraft-go/services/hover/internal/input"
)

// Handlers receive connection changes from Poll.
type Handlers struct {
	OnConnect    func(src input.Source)
	OnDisconnect func(id input.SourceID)
}

// Stats counts link traffic.
type Stats struct {
	Lines     uint32
	BadFrames uint32
	Unknown   uint32 // samples or disconnects for ids never connected
}

type Link struct {
	lines <-chan string
	h     Handlers
	ctrls map[input.SourceID]*Controller
	stats Stats
}

// New returns a link fed by lines (typically Reader.Lines()).
func New(lines <-chan string, h Handlers) *Link {
	return &Link{
		lines: lines,
		h:     h,
		ctrls: make(map[input.SourceID]*Controller),
	}
}

// Poll clears every controller's fresh flag, then applies the lines queued
// since the last poll without blocking. At most one queue's worth of lines is
// applied per call.
func (l *Link) Poll() {
	for _, c := range l.ctrls {
		c.fresh = false
	}
	if l.lines == nil {
		return
	}
	n := cap(l.lines)
	if n < 1 {
		n = 1
	}
	for ; n > 0; n-- {
		select {
		case s, ok := <-l.lines:
			if !ok {
				l.lines = nil
				return
			}
			_ = l.Handle(s)
		default:
			return
		}
	}
}

// Handle applies a single line. Errors are counted and returned for logging;
// they never change existing state.
func (l *Link) Handle(line string) error {
	l.stats.Lines++
	f, err := ParseFrame(line)
	if err != nil {
		l.stats.BadFrames++
		return err
	}
	switch f.Op {
	case OpConnect:
		c := l.ctrls[f.ID]
		if c == nil {
			c = &Controller{id: f.ID}
			l.ctrls[f.ID] = c
		}
		c.class = f.Class
		c.connected = true
		if l.h.OnConnect != nil {
			l.h.OnConnect(c)
		}
	case OpDisconnect:
		c := l.ctrls[f.ID]
		if c == nil {
			l.stats.Unknown++
			return errcode.UnknownSource
		}
		c.connected = false
		c.fresh = false
		delete(l.ctrls, f.ID)
		if l.h.OnDisconnect != nil {
			l.h.OnDisconnect(f.ID)
		}
	case OpSample:
		c := l.ctrls[f.ID]
		if c == nil {
			l.stats.Unknown++
			return errcode.UnknownSource
		}
		c.s = f.Sample
		c.fresh = true
	}
	return nil
}

// Controller returns the live controller for id, if connected.
func (l *Link) Controller(id input.SourceID) (*Controller, bool) {
	c, ok := l.ctrls[id]
	return c, ok
}

func (l *Link) Stats() Stats { return l.stats }
