package commands

import (
	"sort"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/router"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsInterface string

func init() {
	statsCmd.Flags().StringVarP(&statsInterface, "interface", "i", "", "Only read this interface (Ethernet, ADSL or WLAN).")
	addJSONFlag(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [--interface <name>] [--json]",
	Short: "Prints the traffic counters of the statistics pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := globals.Get(cmd.Context()).Client

		if statsInterface != "" {
			iface, err := router.ParseInterface(statsInterface)
			if err != nil {
				return err
			}
			stats, err := client.Statistics(cmd.Context(), iface)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(stats)
			}
			renderStatistics(map[router.Interface]router.Statistics{iface: stats})
			return nil
		}

		all, err := client.AllStatistics(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(all)
		}
		renderStatistics(all)
		return nil
	},
}

func renderStatistics(all map[router.Interface]router.Statistics) {
	t := newTable()
	t.AppendHeader(table.Row{"Interface", "Counter", "Value"})
	for _, iface := range router.Interfaces {
		stats, ok := all[iface]
		if !ok {
			continue
		}
		labels := make([]string, 0, len(stats))
		for label := range stats {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			t.AppendRow(table.Row{iface, label, stats[label]})
		}
		t.AppendSeparator()
	}
	t.Render()
}
