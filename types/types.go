package types

// ---- Actuator channels ----

// Kind is the value domain of an actuator channel.
type Kind string

const (
	KindPosition    Kind = "position"     // degrees, 0..180
	KindSpeed       Kind = "speed"        // percent, 0..100
	KindSpeedPaired Kind = "speed_paired" // percent, one value on two outputs
	KindIndicator   Kind = "indicator"    // on/off
)

// Channel names used in telemetry topics.
const (
	ChannelRudder = "rudder"
	ChannelLift   = "lift"
	ChannelThrust = "thrust"
	ChannelLights = "lights"
)

// PositionValue is the commanded angle of a position channel (retained).
type PositionValue struct {
	Degrees int   `json:"degrees"`
	TS      int64 `json:"ts_ms"`
}

// SpeedValue is the commanded speed of a speed channel and the pulse width
// that was written for it (retained).
type SpeedValue struct {
	Percent int   `json:"percent"`
	PulseUs int16 `json:"pulse_us"`
	Paired  bool  `json:"paired,omitempty"`
	TS      int64 `json:"ts_ms"`
}

// IndicatorValue is the latched state of the indicator strip (retained).
type IndicatorValue struct {
	On bool  `json:"on"`
	TS int64 `json:"ts_ms"`
}

// ---- Input side ----

// InputEventKind labels registry activity.
type InputEventKind string

const (
	InputConnected    InputEventKind = "connected"
	InputDisconnected InputEventKind = "disconnected"
	InputRejected     InputEventKind = "rejected"
)

// InputEvent reports a connect/disconnect outcome for one source.
type InputEvent struct {
	Kind   InputEventKind `json:"kind"`
	Source uint32         `json:"source"`
	Slot   int            `json:"slot"` // -1 when not registered
	Error  string         `json:"error,omitempty"`
	TS     int64          `json:"ts_ms"`
}

// ---- Service state (retained) ----

// Stats is a periodic snapshot of the control loop counters.
type Stats struct {
	Cycles      uint64 `json:"cycles"`
	Active      int    `json:"active"`      // sources mapped in the last cycle
	Registered  int    `json:"registered"`  // occupied slots
	Rejected    uint32 `json:"rejected"`    // connects refused for lack of a slot
	BadFrames   uint32 `json:"bad_frames"`  // link lines dropped
	Writes      uint32 `json:"writes"`      // hardware writes issued
	Suppressed  uint32 `json:"suppressed"`  // writes skipped as redundant
	Faults      uint32 `json:"faults"`      // driver errors
	IndicatorOn bool   `json:"indicator_on"`
	TS          int64  `json:"ts_ms"`
}
