package hover

import (
	"hovercraft-go/bus"
	"hovercraft-go/services/hover/internal/actuator"
	"hovercraft-go/types"
)

// Topics published by the service.
var (
	TopicStats = bus.T("hover", "stats")
	TopicCap   = bus.T("hover", "cap", "+", "value")
	TopicInput = bus.T("hover", "input", "+")
)

func capTopic(channel string) bus.Topic { return bus.T("hover", "cap", channel, "value") }

func inputTopic(k types.InputEventKind) bus.Topic { return bus.T("hover", "input", string(k)) }

// capPublisher republishes actuator writes as retained values.
type capPublisher struct{ conn *bus.Connection }

func (p capPublisher) Emit(ev actuator.Event) bool {
	p.conn.Publish(p.conn.NewMessage(capTopic(ev.Channel), ev.Payload, true))
	return true
}
