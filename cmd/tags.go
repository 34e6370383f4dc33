package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"rfidosc/feedback"
	"rfidosc/tags"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List registered tags and the message each one sends",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := cfg.Registry()
		if err != nil {
			return errors.Wrap(err, "loading tags")
		}
		table, err := cfg.Table()
		if err != nil {
			return errors.Wrap(err, "building dispatch table")
		}

		if export, _ := cmd.Flags().GetString("export"); export != "" {
			if err := tags.WriteFile(export, registry); err != nil {
				return errors.Wrap(err, "exporting tags")
			}
			fmt.Printf("Wrote %d tags to %s\n", registry.Len(), export)
			return nil
		}
		return printTags(os.Stdout, registry, table)
	},
}

func init() {
	tagsCmd.Flags().String("export", "", "write the registry to a tag file instead of listing it")
	RootCmd.AddCommand(tagsCmd)
}

func printTags(w io.Writer, registry *tags.Registry, table *feedback.Table) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUID\tLABEL\tMESSAGE\tNOTE")
	for _, rec := range registry.Records() {
		msg, note := "-", ""
		if route, ok := table.Resolve(rec.ID); ok {
			msg, note = route.Message.String(), route.Note
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", rec.ID, rec.UID.Hex(), rec.Label, msg, note)
	}
	fmt.Fprintf(tw, "*\t-\tunknown\t%s\t\n", table.Unknown())
	return tw.Flush()
}
