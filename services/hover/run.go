package hover

import (
	"context"

	"hovercraft-go/bus"
	"hovercraft-go/services/hover/internal/link"
	"hovercraft-go/services/hover/internal/platform"
	"hovercraft-go/services/hover/internal/platform/setups"
	"hovercraft-go/x/timex"
)

// Run brings up the selected board and runs the control loop until ctx is
// done.
func Run(ctx context.Context, conn *bus.Connection, cfg Config) error {
	b, err := platform.Open(setups.Selected)
	if err != nil {
		println("[hover] platform:", err.Error())
		return err
	}
	return Serve(ctx, conn, cfg, b.Outputs, b.Port)
}

// Serve starts the link reader on port, arms the outputs and runs the loop
// with a sleeping tick. It returns ctx's error.
func Serve(ctx context.Context, conn *bus.Connection, cfg Config, out Outputs, port Port) error {
	r := link.NewReader(port, cfg.Reader)
	go func() {
		if err := r.Run(ctx); err != nil && ctx.Err() == nil {
			println("[link] reader stopped:", err.Error())
		}
	}()

	s := New(cfg, out, r.Lines(), conn)
	tick := timex.SleepTick(ctx)
	s.Boot(tick)
	s.Run(ctx, tick)
	return ctx.Err()
}
