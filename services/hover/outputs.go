package hover

import (
	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/link"
)

// Collaborator contracts, re-exported for callers outside this tree.
type (
	Outputs     = actuator.Outputs
	ServoOutput = actuator.ServoOutput
	PulseOutput = actuator.PulseOutput
	PixelStrip  = actuator.PixelStrip
	ColorWriter = actuator.ColorWriter
	Port        = link.Port
	State       = actuator.State
)

// NewStrip wraps an LED bus writer as a buffered strip with global brightness.
func NewStrip(w ColorWriter, pixels int, brightness uint8) PixelStrip {
	return actuator.NewStrip(w, pixels, brightness)
}
