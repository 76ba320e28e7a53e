// Package mapper turns one controller sample into actuator commands.
package mapper

import "hovercraft-go/services/hover/internal/input"

// Actuator is the command surface the mapper drives.
type Actuator interface {
	SetPosition(deg int) bool
	SetSpeed(pct int) bool
	SetPairedSpeed(pct int) bool
	ToggleIndicator() bool
}

// Mapper holds the per-slot edge state. Not safe for concurrent use.
type Mapper struct {
	p     Profile
	act   Actuator
	edges []bool // previous toggle-button state, per slot
}

// New returns a mapper sized for slots registry slots.
func New(p Profile, act Actuator, slots int) *Mapper {
	if slots < 0 {
		slots = 0
	}
	return &Mapper{p: p, act: act, edges: make([]bool, slots)}
}

// Evaluate runs the rules for one source pass and returns the resolved
// command. It updates the slot's edge state but does not touch the actuators.
func (m *Mapper) Evaluate(slot input.Slot, s input.Sample) Command {
	var c Command
	for _, r := range Rules {
		r.Apply(m, slot, s, &c)
	}
	return c
}

// Apply evaluates a sample and issues the command, channel by channel.
func (m *Mapper) Apply(slot input.Slot, s input.Sample) Command {
	c := m.Evaluate(slot, s)
	if c.SetPosition {
		m.act.SetPosition(c.Position)
	}
	if c.SetSpeed {
		m.act.SetSpeed(c.Speed)
	}
	if c.SetPaired {
		m.act.SetPairedSpeed(c.Paired)
	}
	if c.Toggle {
		m.act.ToggleIndicator()
	}
	return c
}

// Forget clears a slot's edge state, for a source leaving or joining it.
func (m *Mapper) Forget(slot input.Slot) {
	if slot >= 0 && int(slot) < len(m.edges) {
		m.edges[slot] = false
	}
}

func (m *Mapper) Profile() Profile { return m.p }

func (m *Mapper) prev(slot input.Slot) bool {
	if slot < 0 || int(slot) >= len(m.edges) {
		return false
	}
	return m.edges[slot]
}

func (m *Mapper) setPrev(slot input.Slot, v bool) {
	if slot < 0 {
		return
	}
	for int(slot) >= len(m.edges) {
		m.edges = append(m.edges, false)
	}
	m.edges[slot] = v
}
