package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hovercraft-go/bus"
	"hovercraft-go/services/heartbeat"
	"hovercraft-go/services/hover"
)

func NewSerial(b *bench) *cobra.Command {
	var (
		port   string
		baud   int
		listen string
		beat   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Run live against the coprocessor",
		Long:  `Opens the coprocessor's UART through a USB-serial adapter and runs the control loop in real time until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
			if err != nil {
				return err
			}
			defer p.Close()
			b.log.Info("link open", zap.String("port", port), zap.Int("baud", baud))

			bs := bus.NewBus(16)
			group, ctx := errgroup.WithContext(cmd.Context())
			b.watchInputs(ctx, bs.NewConnection("bench"))
			if err := b.startHeartbeat(ctx, bs, beat); err != nil {
				return err
			}
			group.Go(func() error {
				return hover.Serve(ctx, bs.NewConnection("hover"), b.cfg, b.outputs(), serialPort{p: p})
			})
			if listen != "" {
				f := newFeed(b.log.Named("feed"))
				srv := &http.Server{Addr: listen, Handler: f}
				group.Go(func() error { return f.pump(ctx, bs.NewConnection("feed")) })
				group.Go(func() error {
					b.log.Info("telemetry feed", zap.String("addr", listen))
					if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				group.Go(func() error {
					<-ctx.Done()
					return srv.Close()
				})
			}
			err = group.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&port, "port", "/dev/ttyUSB0", "serial device")
	cmd.Flags().IntVar(&baud, "baud", 115200, "baud rate")
	cmd.Flags().StringVar(&listen, "listen", "", "serve hover/# telemetry over websocket on this address")
	cmd.Flags().DurationVar(&beat, "heartbeat", 0, "heartbeat interval, 0 keeps the default")
	cmd.Flags().DurationVar(&b.cfg.Period, "period", b.cfg.Period, "control cycle period")
	return cmd
}

// startHeartbeat runs the heartbeat into the bench log. A non-zero every is
// handed to it as a retained config message.
func (b *bench) startHeartbeat(ctx context.Context, bs *bus.Bus, every time.Duration) error {
	if every > 0 {
		c := bs.NewConnection("bench-config")
		c.Publish(c.NewMessage(heartbeat.TopicConfig, heartbeat.Config{Interval: every}, true))
	}
	log := b.log.Named("heartbeat")
	hb := &heartbeat.Service{Out: func(line string) { log.Info(line) }}
	return hb.Start(ctx, bs.NewConnection("heartbeat"))
}

// serialPort adapts a serial.Port to the link's context-bounded reads.
// A read that times out with no data retries until ctx expires.
type serialPort struct {
	p serial.Port
}

const maxSerialWait = 100 * time.Millisecond

func (s serialPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		wait := maxSerialWait
		if dl, ok := ctx.Deadline(); ok {
			if d := time.Until(dl); d < wait {
				wait = d
			}
		}
		if wait <= 0 {
			return 0, context.DeadlineExceeded
		}
		if err := s.p.SetReadTimeout(wait); err != nil {
			return 0, err
		}
		n, err := s.p.Read(buf)
		if n > 0 || err != nil {
			return n, err
		}
	}
}
