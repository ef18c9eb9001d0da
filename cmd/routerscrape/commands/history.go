package commands

import (
	"fmt"
	"sort"
	"time"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/router"
	"routerscrape/internal/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historySince     time.Duration
	historyInterface string
	historyCounter   string
	historyLimit     int
)

func init() {
	addJSONFlag(historyCmd)
	historyCmd.PersistentFlags().DurationVar(&historySince, "since", 24*time.Hour, "How far back to read.")

	historySeriesCmd.Flags().StringVarP(&historyInterface, "interface", "i", "", "Interface of the counter (Ethernet, ADSL or WLAN).")
	historySeriesCmd.Flags().StringVar(&historyCounter, "counter", "", `Counter label, e.g. "Rx Frames Count".`)
	historySeriesCmd.MarkFlagRequired("interface")
	historySeriesCmd.MarkFlagRequired("counter")
	addJSONFlag(historySeriesCmd)

	historyLogCmd.Flags().IntVarP(&historyLimit, "limit", "n", 100, "Print at most n entries.")
	addJSONFlag(historyLogCmd)

	historyCmd.AddCommand(historySeriesCmd, historyLogCmd)
	rootCmd.AddCommand(historyCmd)
}

func withHistory(cmd *cobra.Command, fn func(history snapshot.History) error) error {
	store, closeStore, err := openStore(cmd.Context(), globals.Get(cmd.Context()))
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(snapshot.NewHistory(store))
}

var historyCmd = &cobra.Command{
	Use:   "history [--json]",
	Short: "Prints the newest stored counters of every interface.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(history snapshot.History) error {
			latest, err := history.Latest(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(latest)
			}

			t := newTable()
			t.AppendHeader(table.Row{"Interface", "Stored", "Counter", "Value"})
			for _, l := range latest {
				labels := make([]string, 0, len(l.Counters))
				for label := range l.Counters {
					labels = append(labels, label)
				}
				sort.Strings(labels)
				for _, label := range labels {
					t.AppendRow(table.Row{l.Interface, l.Time.Format(time.DateTime), label, l.Counters[label]})
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		})
	},
}

var historySeriesCmd = &cobra.Command{
	Use:   "series --interface <name> --counter <label> [--since <duration>] [--json]",
	Short: "Prints one counter's stored values and its rate between snapshots.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		iface, err := router.ParseInterface(historyInterface)
		if err != nil {
			return err
		}
		since := time.Now().Add(-historySince)

		return withHistory(cmd, func(history snapshot.History) error {
			series, err := history.Series(cmd.Context(), iface, historyCounter, since)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(series)
			}

			t := newTable()
			t.AppendHeader(table.Row{"Time", historyCounter, "Per second"})
			for _, p := range series {
				rate := ""
				if p.Rate != nil {
					rate = fmt.Sprintf("%.2f", *p.Rate)
				}
				t.AppendRow(table.Row{p.Time.Format(time.DateTime), p.Value, rate})
			}
			t.Render()
			return nil
		})
	},
}

var historyLogCmd = &cobra.Command{
	Use:   "log [--since <duration>] [--limit <n>] [--json]",
	Short: "Prints the system log entries stored by earlier snapshots.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		since := time.Now().Add(-historySince)

		return withHistory(cmd, func(history snapshot.History) error {
			entries, err := history.Log(cmd.Context(), since, historyLimit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(entries)
			}

			t := newTable()
			t.AppendHeader(table.Row{"Time", "Message"})
			for _, entry := range entries {
				t.AppendRow(table.Row{entry.Time.Format(time.DateTime), entry.Message})
			}
			t.Render()
			return nil
		})
	},
}
