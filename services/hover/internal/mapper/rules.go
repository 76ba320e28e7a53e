package mapper

import (
	"hovercraft-go/services/hover/internal/input"
	"hovercraft-go/x/mathx"
)

// Command is what one source asks of the actuators in one pass.
// Channels with a false Set* flag are left untouched.
type Command struct {
	Position    int
	SetPosition bool

	Speed    int
	SetSpeed bool

	Paired    int
	SetPaired bool

	Toggle bool
}

// Rule contributes to a Command. Rules run in Rules order and a later rule
// overwrites what an earlier one set for the same channel.
type Rule struct {
	Name  string
	Apply func(m *Mapper, slot input.Slot, s input.Sample, c *Command)
}

// Rules is the fixed evaluation order. stop runs last so it always wins
// over throttle and paired-presets.
var Rules = []Rule{
	{Name: "position", Apply: rulePosition},
	{Name: "throttle", Apply: ruleThrottle},
	{Name: "paired-presets", Apply: rulePresets},
	{Name: "indicator", Apply: ruleIndicator},
	{Name: "stop", Apply: ruleStop},
}

func rulePosition(m *Mapper, _ input.Slot, s input.Sample, c *Command) {
	c.Position, c.SetPosition = PositionFor(&m.p, s.AxisX), true
}

func ruleThrottle(m *Mapper, _ input.Slot, s input.Sample, c *Command) {
	c.Speed, c.SetSpeed = ThrottleFor(&m.p, s.Brake), true
}

func rulePresets(m *Mapper, _ input.Slot, s input.Sample, c *Command) {
	for _, pr := range m.p.Presets {
		if s.Has(pr.Button) {
			c.Paired, c.SetPaired = pr.Percent, true
		}
	}
}

func ruleIndicator(m *Mapper, slot input.Slot, s input.Sample, c *Command) {
	cur := s.Has(m.p.ToggleButton)
	if cur && !m.prev(slot) {
		c.Toggle = true
	}
	m.setPrev(slot, cur)
}

func ruleStop(m *Mapper, _ input.Slot, s input.Sample, c *Command) {
	if !s.Has(m.p.StopButton) {
		return
	}
	c.Speed, c.SetSpeed = 0, true
	c.Paired, c.SetPaired = 0, true
}

// PositionFor maps a stick value to a rudder angle with a centre deadzone and
// one linear segment per side.
func PositionFor(p *Profile, x int) int {
	switch {
	case x <= p.DeadzoneLow:
		return mathx.Map(x, p.AxisMin, p.DeadzoneLow, 0, p.Neutral)
	case x >= p.DeadzoneHigh:
		return mathx.Map(x, p.DeadzoneHigh, p.AxisMax, p.Neutral, p.MaxDegrees)
	default:
		return p.Neutral
	}
}

// ThrottleFor maps a trigger value to a lift percentage.
func ThrottleFor(p *Profile, t int) int {
	if t <= p.TriggerThreshold {
		return 0
	}
	return mathx.Map(t, 0, p.TriggerMax, 0, p.MaxPercent)
}
