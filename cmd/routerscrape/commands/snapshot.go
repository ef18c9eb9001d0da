package commands

import (
	"context"
	"fmt"
	"log/slog"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/snapshot"
	"routerscrape/lib/snapshotstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	addJSONFlag(snapshotCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// openStore opens and migrates the configured store. close releases the
// database.
func openStore(ctx context.Context, g *globals.Value) (snapshotstore.Store, func() error, error) {
	database, err := g.Config.Store.OpenDB()
	if err != nil {
		return snapshotstore.Store{}, nil, fmt.Errorf("open store: %w", err)
	}
	store := snapshotstore.NewStore(database)
	err = store.Migrate(ctx)
	if err != nil {
		database.Close()
		return snapshotstore.Store{}, nil, fmt.Errorf("migrate store: %w", err)
	}
	return store, database.Close, nil
}

func openSnapshot(ctx context.Context, g *globals.Value) (snapshot.Snapshot, func() error, error) {
	store, closeStore, err := openStore(ctx, g)
	if err != nil {
		return snapshot.Snapshot{}, nil, err
	}
	return snapshot.NewSnapshot(g.Client, store, g.Tel), closeStore, nil
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [--json]",
	Short: "Stores the current counters, ADSL line readings and new log entries.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, closeStore, err := openSnapshot(cmd.Context(), globals.Get(cmd.Context()))
		if err != nil {
			return err
		}
		defer closeStore()

		result, err := snap.MakeSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		slog.Debug("snapshot stored", "time", result.Time, "new_log_entries", result.NewEntries)
		if asJSON {
			return printJSON(result)
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"Time", result.Time},
			{"Interfaces", result.Interfaces},
			{"ADSL line stored", result.LineStored},
			{"New log entries", result.NewEntries},
		})
		t.Render()
		return nil
	},
}
