package mapper

import "hovercraft-go/services/hover/internal/input"

// Preset binds a button to a fixed paired-speed value.
type Preset struct {
	Button  uint16
	Percent int
}

// Profile is the fixed control mapping. There is no runtime configuration;
// DefaultProfile is what the craft flies with.
type Profile struct {
	// Stick → rudder. Values in (DeadzoneLow, DeadzoneHigh) map to Neutral.
	AxisMin      int
	AxisMax      int
	DeadzoneLow  int
	DeadzoneHigh int
	Neutral      int
	MaxDegrees   int

	// Trigger → lift. Values <= TriggerThreshold are "not pressed".
	TriggerMax       int
	TriggerThreshold int
	MaxPercent       int

	// Buttons → thrust presets, evaluated in order; a later match overrides.
	Presets []Preset

	ToggleButton uint16 // lights, rising edge
	StopButton   uint16 // lift and thrust to zero
}

func DefaultProfile() Profile {
	return Profile{
		AxisMin:      -511,
		AxisMax:      512,
		DeadzoneLow:  -25,
		DeadzoneHigh: 25,
		Neutral:      90,
		MaxDegrees:   180,

		TriggerMax:       1023,
		TriggerThreshold: 10,
		MaxPercent:       100,

		Presets: []Preset{
			{Button: input.ButtonA, Percent: 20},
			{Button: input.ButtonX, Percent: 50},
			{Button: input.ButtonB, Percent: 80},
		},

		ToggleButton: input.ButtonY,
		StopButton:   input.ButtonShoulderL,
	}
}
