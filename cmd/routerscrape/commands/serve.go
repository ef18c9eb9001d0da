package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/chrono"
	"routerscrape/internal/exporter"
	libtelemetry "routerscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	serveListen  string
	serveTimeout time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to serve metrics on, overrides metrics.listen.")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 10*time.Second, "Time limit for reading the pages on one scrape.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--listen <addr>]",
	Short: "Serves the router pages as Prometheus metrics, re-reading them on each scrape.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		listen := g.Config.Metrics.Listen
		if serveListen != "" {
			listen = serveListen
		}

		if g.Config.Snapshot.Schedule != "" {
			retention, err := g.Config.Snapshot.RetentionPeriod()
			if err != nil {
				return err
			}
			snap, closeStore, err := openSnapshot(ctx, g)
			if err != nil {
				return err
			}
			defer closeStore()

			clock, err := chrono.NewStandardImpl(g.Config.Timezone)
			if err != nil {
				return err
			}
			cron := chrono.NewStandardCron(clock, g.Tel)
			defer cron.Stop()
			err = cron.Cron(g.Config.Snapshot.Schedule, func() {
				result, err := snap.MakeSnapshot(ctx)
				if err != nil {
					slog.Error("scheduled snapshot failed", "err", err)
					return
				}
				slog.Info("scheduled snapshot stored", "new_log_entries", result.NewEntries)

				err = snap.Prune(ctx, retention)
				if err != nil {
					slog.Error("pruning snapshots failed", "err", err)
				}
			})
			if err != nil {
				return err
			}
		}

		libtelemetry.InstrumentPerfStats(ctx, 30*time.Second)

		mux := http.NewServeMux()
		mux.Handle("GET "+g.Config.Metrics.Path, exporter.Handler(g.Client, serveTimeout, g.Tel))
		server := &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		slog.Info("serving metrics", "listen", listen, "path", g.Config.Metrics.Path)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}
