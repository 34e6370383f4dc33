package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"rfidosc/controller"
	"rfidosc/indicator"
	"rfidosc/tags"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <tag id | uid>",
	Short: "Act as if a tag was read",
	Long: `Run one read through matching, dispatch and (with --feedback) the
indicator, without a reader. The argument is a registered tag id or a UID
in hex; an unregistered UID sends the error message.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := cfg.Registry()
		if err != nil {
			return errors.Wrap(err, "loading tags")
		}

		uid, err := argUID(registry, args[0])
		if err != nil {
			return err
		}

		dispatcher, notifier, err := newDispatcher(cfg)
		if err != nil {
			return err
		}
		defer notifier.Close()

		var ind indicator.Indicator = &indicator.Noop{}
		if fb, _ := cmd.Flags().GetBool("feedback"); fb {
			if ind, err = indicator.New(cfg.Indicator); err != nil {
				return errors.Wrap(err, "init indicator")
			}
			defer ind.Release()
		}

		c := controller.New(nil, registry, dispatcher, ind, cfg.Poll)
		return errors.Wrap(c.HandleUID(uid), "sending")
	},
}

func init() {
	sendCmd.Flags().Bool("feedback", false, "also play the indicator feedback")
	RootCmd.AddCommand(sendCmd)
}

// argUID resolves a tag id to its UID, or parses arg as a UID.
func argUID(registry *tags.Registry, arg string) (tags.UID, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if rec, ok := registry.Lookup(id); ok {
			return rec.UID, nil
		}
	}
	uid, err := tags.ParseUID(arg)
	if err != nil {
		return nil, errors.Errorf("%q is neither a registered tag id nor a uid", arg)
	}
	return uid, nil
}
