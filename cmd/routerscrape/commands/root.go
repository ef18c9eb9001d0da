package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/chrono"
	"routerscrape/internal/config"
	"routerscrape/internal/router"
	"routerscrape/internal/telemetry"
	libtelemetry "routerscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pagesDir   string
	debug      bool
	asJSON     bool
)

var (
	logCloser io.Closer
	otel      libtelemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:          "routerscrape",
	Short:        "routerscrape reads saved ADSL router status pages into typed records.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if pagesDir != "" {
			cfg.PagesDir = pagesDir
		}

		logCloser = libtelemetry.InitSlog(libtelemetry.SlogOptions{
			Debug:   debug || cfg.Log.Debug,
			LogFile: cfg.Log.File,
		})
		otel, err = libtelemetry.SetupFromEnv(cmd.Context(), "routerscrape")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		clock, err := chrono.NewStandardImpl(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		tel := telemetry.SlogAPI{Logger: slog.Default()}
		client := router.NewClient(cfg.PageSource(), cfg.Layout, clock, tel)

		slog.Debug("loaded config", "pages_dir", cfg.PagesDir, "layout", cfg.Layout.Version)
		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config: cfg,
			Client: client,
			Tel:    tel,
		}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to config.json5, searched upwards from the cwd when empty.")
	flags.StringVar(&pagesDir, "pages", "", "Directory of saved router pages, overrides pages_dir.")
	flags.BoolVarP(&debug, "debug", "v", false, "Enable debug logging.")
}

// addJSONFlag registers --json on commands that print records.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table.")
}

// shutdown flushes telemetry and closes the log file opened by the
// pre-run, whether or not the command succeeded.
func shutdown() error {
	var errs []error
	if otel.TracerProvider != nil || otel.MeterProvider != nil {
		errs = append(errs, otel.Shutdown(context.Background()))
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
	}
	otel = libtelemetry.Telemetry{}
	logCloser = nil
	return errors.Join(errs...)
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, shutdown())
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
