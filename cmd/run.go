package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"rfidosc/controller"
	"rfidosc/indicator"
	"rfidosc/reader"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the tag reader and send notifications",
	Long: `Poll the tag reader and send an OSC message for every tag read.
Registered tags play fade-in, sweep and fade-out on the ring; unknown tags
send the error message and fade out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry, err := cfg.Registry()
		if err != nil {
			return errors.Wrap(err, "loading tags")
		}
		dispatcher, notifier, err := newDispatcher(cfg)
		if err != nil {
			return err
		}
		defer notifier.Close()

		ind, err := indicator.New(cfg.Indicator)
		if err != nil {
			return errors.Wrap(err, "init indicator")
		}
		defer func() {
			ind.Shutdown()
			if err := ind.Release(); err != nil {
				log.Printf("Release indicator: %v", err)
			}
		}()

		rd, err := reader.New(cfg.Reader)
		if err != nil {
			return errors.Wrap(err, "init reader")
		}
		defer rd.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Waiting for RFID/NFC card...")
		c := controller.New(rd, registry, dispatcher, ind, cfg.Poll)
		if err := c.Run(ctx); err != nil {
			return errors.Wrap(err, "polling")
		}

		fmt.Println("Shutting down...")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}
