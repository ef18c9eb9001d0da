package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"routerscrape/internal/router"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{
		pages_dir: "pages",
		timezone: "Europe/Rome",
		layout: {
			version: "v1-it",
			labels: { subnet_mask: "Netmask" },
		},
		store: { file: "history.db" },
		snapshot: { schedule: "*/15 * * * *", retention: "168h" },
	}`), 0644))

	config, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "pages"), config.PagesDir)
	require.Equal(t, filepath.Join(dir, "history.db"), config.Store.File)
	require.Equal(t, "Europe/Rome", config.Timezone)
	require.Equal(t, "*/15 * * * *", config.Snapshot.Schedule)
	retention, err := config.Snapshot.RetentionPeriod()
	require.NoError(t, err)
	require.Equal(t, 7*24*time.Hour, retention)

	expected := router.DefaultLayout()
	expected.Version = "v1-it"
	expected.Labels.SubnetMask = "Netmask"
	require.Equal(t, expected, config.Layout)

	require.Equal(t, ":9469", config.Metrics.Listen)
	require.Equal(t, "/metrics", config.Metrics.Path)
	require.Equal(t, `table[bordercolor="#CCCCCC"]`, config.Selectors.StatisticsTable)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRemoteStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{
		store: { url: "libsql://router.example.turso.io", auth_token: "secret" },
		log: { file: "/var/log/routerscrape.log" },
	}`), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "routerscrape.db", config.Store.File)
	require.Equal(t, "libsql://router.example.turso.io", config.Store.Url)
	require.Equal(t, "/var/log/routerscrape.log", config.Log.File)
	require.Equal(t, dir, config.PagesDir)

	retention, err := config.Snapshot.RetentionPeriod()
	require.NoError(t, err)
	require.Equal(t, 30*24*time.Hour, retention)
}

func TestLoadBadRetention(t *testing.T) {
	testCases := []string{"a month", "-1h"}
	for _, retention := range testCases {
		t.Run(retention, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(`{ snapshot: { retention: "`+retention+`" } }`), 0644))
			_, err := Load(path)
			require.ErrorContains(t, err, "snapshot retention")
		})
	}
}
