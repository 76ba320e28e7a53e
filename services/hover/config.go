package hover

import (
	"time"

	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/services/hover/internal/input"
	"hovercraft-go/services/hover/internal/link"
	"hovercraft-go/services/hover/internal/mapper"
)

// Config holds the fixed parameters of the control loop.
type Config struct {
	Period      time.Duration // pause between cycles
	Capacity    int           // registry slots
	StatsEvery  int           // cycles between hover/stats publications, 0 disables
	Profile     mapper.Profile
	Actuator    actuator.Config
	Calibration actuator.Calibration
	Reader      link.ReaderCfg
}

func DefaultConfig() Config {
	return Config{
		Period:      50 * time.Millisecond,
		Capacity:    input.DefaultCapacity,
		StatsEvery:  20,
		Profile:     mapper.DefaultProfile(),
		Actuator:    actuator.DefaultConfig(),
		Calibration: actuator.DefaultCalibration(),
		Reader:      link.ReaderCfg{MaxLine: 64, Queue: 32},
	}
}
