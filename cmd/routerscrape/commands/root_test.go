package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"routerscrape/internal/pagesource"

	"github.com/stretchr/testify/require"
)

func TestExecuteShutsDownAfterFailingCommand(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		pages_dir: "missing",
		log: { file: "routerscrape.log" },
	}`), 0644))

	err := execute(context.Background(), []string{"--config", path, "log"})
	require.ErrorIs(t, err, pagesource.ErrPageNotFound)

	require.Nil(t, logCloser)
	require.Nil(t, otel.TracerProvider)

	contents, err := os.ReadFile(filepath.Join(dir, "routerscrape.log"))
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"broken component"`)
}

func TestSnapshotThenHistory(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	pages, err := filepath.Abs(filepath.Join("..", "..", "..", "internal", "pagesource", "testdata"))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		pages_dir: "`+filepath.ToSlash(pages)+`",
		store: { file: "history.db" },
	}`), 0644))

	ctx := context.Background()
	for _, args := range [][]string{
		{"--config", path, "snapshot"},
		{"--config", path, "snapshot"},
		{"--config", path, "history"},
		{"--config", path, "history", "series", "--interface", "wlan", "--counter", "Rx Frames Count"},
		{"--config", path, "history", "log", "--since", "876000h"},
	} {
		require.NoError(t, execute(ctx, args), args)
	}
	require.FileExists(t, filepath.Join(dir, "history.db"))
}
