package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"rfidosc/config"
	"rfidosc/feedback"
	"rfidosc/notify"
)

// Version is set by main from the build.
var Version = "dev"

var (
	cfgFile string
	oscHost string
	oscPort int
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rfidosc",
	Short: "RFID tags to OSC notifications with LED ring feedback",
	Long: `rfidosc reads NFC tags, sends an OSC message for each recognised tag
and plays feedback on an LED ring.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "cfg", config.DefaultPath, "config file")
	RootCmd.PersistentFlags().StringVar(&oscHost, "host", "", "OSC listener host (overrides config)")
	RootCmd.PersistentFlags().IntVar(&oscPort, "port", 0, "OSC listener port (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	RootCmd.Version = Version
	return RootCmd.Execute()
}

// loadConfig reads --cfg and applies the flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, errors.Wrap(err, "loading config")
	}
	if oscHost != "" {
		cfg.Notify.OSC.Host = oscHost
	}
	if oscPort != 0 {
		cfg.Notify.OSC.Port = oscPort
	}
	return cfg, nil
}

// newDispatcher builds the notifier and dispatch table from cfg.
func newDispatcher(cfg config.Config) (*feedback.Dispatcher, notify.Notifier, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, nil, errors.Wrap(err, "building dispatch table")
	}
	n, err := notify.New(cfg.Notify, cfg.ClientID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating notifier")
	}
	if cfg.Notify.OSC.Host != "" {
		fmt.Printf("Sending OSC to %s\n", cfg.Notify.OSC.Addr())
	}
	return feedback.NewDispatcher(table, n), n, nil
}
