package commands

import (
	"time"

	"routerscrape/cmd/routerscrape/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var logTail int

func init() {
	logCmd.Flags().IntVarP(&logTail, "tail", "n", 0, "Only print the last n entries.")
	addJSONFlag(logCmd)
	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log [--tail <n>] [--json]",
	Short: "Prints the entries of the router's system log.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := globals.Get(cmd.Context()).Client.SystemLog(cmd.Context())
		if err != nil {
			return err
		}
		if logTail > 0 && logTail < len(entries) {
			entries = entries[len(entries)-logTail:]
		}
		if asJSON {
			return printJSON(entries)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Time", "Message"})
		for _, entry := range entries {
			t.AppendRow(table.Row{entry.Timestamp.Format(time.DateTime), entry.Message})
		}
		t.Render()
		return nil
	},
}
