package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"

	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rfidosc/notify"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print OSC messages received on a UDP port",
	Long:  `Print every OSC message received, for checking what the controller sends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bind, _ := cmd.Flags().GetString("bind")
		port := oscPort
		if port == 0 {
			port = notify.DefaultOSCPort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		conn, err := net.ListenPacket("udp", net.JoinHostPort(bind, strconv.Itoa(port)))
		if err != nil {
			return errors.Wrap(err, "listening")
		}
		fmt.Printf("Listening for OSC messages on %s (UDP)...\n", conn.LocalAddr())

		return errors.Wrap(Listen(ctx, conn, func(m *osc.Message) {
			fmt.Printf("Received OSC message: %s %v\n", m.Address, m.Arguments)
		}), "serving")
	},
}

func init() {
	listenCmd.Flags().String("bind", "0.0.0.0", "listen address")
	RootCmd.AddCommand(listenCmd)
}

// Listen serves OSC on conn, calling handle for every message, until ctx
// is cancelled. conn is closed on return.
func Listen(ctx context.Context, conn net.PacketConn, handle func(*osc.Message)) error {
	dispatcher := osc.NewStandardDispatcher()
	if err := dispatcher.AddMsgHandler("*", handle); err != nil {
		conn.Close()
		return errors.Wrap(err, "adding handler")
	}
	server := &osc.Server{Dispatcher: dispatcher}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		err := server.Serve(conn)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-done:
		}
		return conn.Close()
	})
	return g.Wait()
}
