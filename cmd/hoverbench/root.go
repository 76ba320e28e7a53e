package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hovercraft-go/services/hover"
)

type bench struct {
	log    *zap.Logger
	cfg    hover.Config
	pixels int
	debug  bool
}

func NewRootCmd() *cobra.Command {
	b := &bench{cfg: hover.DefaultConfig(), pixels: 3}
	root := &cobra.Command{
		Use:          "hoverbench",
		Short:        "Hovercraft control loop bench",
		Long:         `Runs the hovercraft mapping core on a workstation and logs every output write.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().IntVar(&b.cfg.Capacity, "slots", b.cfg.Capacity, "controller slots")
	root.PersistentFlags().IntVar(&b.pixels, "pixels", b.pixels, "indicator strip length")
	root.PersistentFlags().BoolVar(&b.debug, "debug", false, "log every link line")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if b.log != nil {
			return nil
		}
		lc := zap.NewDevelopmentConfig()
		lc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		lc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if !b.debug {
			lc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		log, err := lc.Build()
		if err != nil {
			return err
		}
		b.log = log
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = b.log.Sync()
	}
	root.AddCommand(NewReplay(b))
	root.AddCommand(NewSerial(b))
	return root
}
