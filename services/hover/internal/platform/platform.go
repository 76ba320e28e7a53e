// Package platform brings up the board described by a setups.Plan and hands
// back the craft's outputs and the coprocessor byte stream.
package platform

import (
	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/link"
)

// Board is what the control loop needs from the hardware.
type Board struct {
	Outputs actuator.Outputs
	Port    link.Port
}
