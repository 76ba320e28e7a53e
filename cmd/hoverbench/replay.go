package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hovercraft-go/bus"
	"hovercraft-go/services/hover"
	"hovercraft-go/types"
)

func NewReplay(b *bench) *cobra.Command {
	perCycle := 1
	cmd := &cobra.Command{
		Use:   "replay <capture>",
		Short: "Replay a recorded link capture",
		Long:  `Feeds a recorded coprocessor capture through the control loop, a fixed number of lines per cycle, without real-time pauses.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			st, s, err := b.replay(cmd.Context(), f, perCycle)
			if err != nil {
				return err
			}
			logStats(b.log, st, s)
			return nil
		},
	}
	cmd.Flags().IntVar(&perCycle, "lines-per-cycle", perCycle, "capture lines applied per control cycle")
	return cmd
}

// replay runs one cycle per perCycle lines read from r. Calibration holds
// are skipped.
func (b *bench) replay(ctx context.Context, r io.Reader, perCycle int) (types.Stats, hover.State, error) {
	if perCycle < 1 {
		return types.Stats{}, hover.State{}, fmt.Errorf("lines-per-cycle must be at least 1, got %d", perCycle)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn := bus.NewBus(16).NewConnection("bench")
	b.watchInputs(ctx, conn)

	lines := make(chan string, perCycle)
	svc := hover.New(b.cfg, b.outputs(), lines, conn)
	svc.Boot(func(time.Duration) bool { return true })

	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return svc.Stats(), svc.State(), err
		}
		b.log.Debug("line", zap.String("text", sc.Text()))
		lines <- sc.Text()
		if n++; n == perCycle {
			svc.Step()
			n = 0
		}
	}
	if n > 0 {
		svc.Step()
	}
	return svc.Stats(), svc.State(), sc.Err()
}
