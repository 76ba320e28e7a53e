package main

import (
	"context"
	"time"

	"hovercraft-go/bus"
	"hovercraft-go/services/heartbeat"
	"hovercraft-go/services/hover"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.Background()
	b := bus.NewBus(4)

	hb := &heartbeat.Service{}
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("[main] heartbeat:", err.Error())
	}

	// Never returns on hardware.
	if err := hover.Run(ctx, b.NewConnection("hover"), hover.DefaultConfig()); err != nil {
		println("[main] hover stopped:", err.Error())
	}
	for {
		time.Sleep(time.Hour)
	}
}
