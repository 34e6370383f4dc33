package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"rfidosc/notify"
)

// Fader test client defaults.
const (
	FaderHost    = "192.168.2.23"
	FaderAddress = "/1/fader5"
)

// faderCmd represents the fader command
var faderCmd = &cobra.Command{
	Use:   "fader",
	Short: "Send random fader values",
	Long:  `Send N random values in [0, 1) to an OSC fader address, one per interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		n, _ := flags.GetInt("count")
		address, _ := flags.GetString("address")
		interval, _ := flags.GetDuration("interval")

		host := oscHost
		if host == "" {
			host = FaderHost
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		f := &Fader{
			Client:   notify.NewOSC(host, oscPort),
			Address:  address,
			Count:    n,
			Interval: interval,
			Value:    rand.Float32,
		}
		return errors.Wrap(f.Run(ctx, func(v float32) { fmt.Println(v) }), "sending fader values")
	},
}

func init() {
	faderCmd.Flags().IntP("count", "n", 10, "number of values to send")
	faderCmd.Flags().String("address", FaderAddress, "OSC address")
	faderCmd.Flags().Duration("interval", time.Second, "pause between values")
	RootCmd.AddCommand(faderCmd)
}

// Fader sends Count values from Value to Address.
type Fader struct {
	Client   *notify.OSC
	Address  string
	Count    int
	Interval time.Duration
	Value    func() float32
}

// Run sends the values, calling sent after each one, and sleeps Interval
// after every value. It stops early if ctx is cancelled.
func (f *Fader) Run(ctx context.Context, sent func(float32)) error {
	for i := 0; i < f.Count; i++ {
		v := f.Value()
		if err := f.Client.Send(notify.Message{Address: f.Address, Value: v}); err != nil {
			return err
		}
		if sent != nil {
			sent(v)
		}

		t := time.NewTimer(f.Interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
	return nil
}
