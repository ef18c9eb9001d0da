package telemetry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitSlogLogFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logFile := filepath.Join(t.TempDir(), "routerscrape.log")
	closer := InitSlog(SlogOptions{Debug: true, LogFile: logFile})
	slog.Debug("snapshot stored", "entries", 3)
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"snapshot stored"`)
	require.Contains(t, string(contents), `"entries":3`)
}
