package exporter

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"routerscrape/internal/extract"
	"routerscrape/internal/router"
	"routerscrape/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	stats   map[router.Interface]router.Statistics
	info    router.DeviceInfo
	entries []extract.LogEntry
	err     error
}

func (f fakeReader) AllStatistics(ctx context.Context) (map[router.Interface]router.Statistics, error) {
	return f.stats, f.err
}

func (f fakeReader) DeviceInfo(ctx context.Context) (router.DeviceInfo, error) {
	return f.info, f.err
}

func (f fakeReader) SystemLog(ctx context.Context) ([]extract.LogEntry, error) {
	return f.entries, f.err
}

func testReader() fakeReader {
	return fakeReader{
		stats: map[router.Interface]router.Statistics{
			router.WLAN: {
				"Rx Frames Count": 987002,
				"Tx Frames Count": 1204331,
				"Rx Errors Count": 3,
				"Tx Errors Count": 0,
				"Rx Drops Count":  1001,
				"Tx Drops Count":  12,
				"Collisions":      7,
			},
		},
		info: router.DeviceInfo{
			Wireless: router.WirelessSection{ClientsNumber: 3},
			ADSL: router.ADSLSection{
				LineState:  "Showtime",
				Modulation: "G.992.5",
				AnnexMode:  "ANNEX_A",
				Line: router.LineMetrics{
					SNRMargin: extract.Triple{Low: extract.FloatNumber(12.5), High: extract.FloatNumber(34), Unit: "dB"},
					DataRate:  extract.Triple{Low: extract.IntNumber(18302), High: extract.IntNumber(1061), Unit: "kbps"},
					CRC:       []int64{17, 4},
				},
			},
		},
		entries: []extract.LogEntry{
			{Timestamp: time.Date(2026, time.October, 16, 8, 14, 2, 0, time.UTC), Message: "DHCP server started"},
		},
	}
}

func TestCollector(t *testing.T) {
	c := newCollector(testReader(), time.Second, &telemetry.Recorder{})

	expected := `
# HELP routerscrape_interface_frames_total Frames counted per interface.
# TYPE routerscrape_interface_frames_total counter
routerscrape_interface_frames_total{direction="rx",interface="WLAN"} 987002
routerscrape_interface_frames_total{direction="tx",interface="WLAN"} 1.204331e+06
# HELP routerscrape_interface_counter_total Statistics counters without a dedicated metric, by label.
# TYPE routerscrape_interface_counter_total counter
routerscrape_interface_counter_total{counter="Collisions",interface="WLAN"} 7
# HELP routerscrape_adsl_crc_errors_total ADSL CRC error counts.
# TYPE routerscrape_adsl_crc_errors_total counter
routerscrape_adsl_crc_errors_total{direction="downstream"} 17
routerscrape_adsl_crc_errors_total{direction="upstream"} 4
# HELP routerscrape_adsl_showtime 1 when the ADSL line is in showtime.
# TYPE routerscrape_adsl_showtime gauge
routerscrape_adsl_showtime{annex="ANNEX_A",modulation="G.992.5"} 1
# HELP routerscrape_wireless_clients Associated wireless clients as reported by the router.
# TYPE routerscrape_wireless_clients gauge
routerscrape_wireless_clients 3
# HELP routerscrape_syslog_entries Entries currently held in the router's system log.
# TYPE routerscrape_syslog_entries gauge
routerscrape_syslog_entries 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"routerscrape_interface_frames_total",
		"routerscrape_interface_counter_total",
		"routerscrape_adsl_crc_errors_total",
		"routerscrape_adsl_showtime",
		"routerscrape_wireless_clients",
		"routerscrape_syslog_entries",
	)
	require.NoError(t, err)

	// 3 interface kinds x 2 directions + the fallback counter
	require.Equal(t, 7, testutil.CollectAndCount(c,
		"routerscrape_interface_frames_total",
		"routerscrape_interface_errors_total",
		"routerscrape_interface_drops_total",
		"routerscrape_interface_counter_total",
	))
	require.Equal(t, 10, testutil.CollectAndCount(c, "routerscrape_adsl_line"))
}

func TestCollectorFailedPages(t *testing.T) {
	tel := &telemetry.Recorder{}
	c := newCollector(fakeReader{err: errors.New("page dump not found")}, time.Second, tel)

	expected := `
# HELP routerscrape_scrape_success 1 when the page was read and assembled.
# TYPE routerscrape_scrape_success gauge
routerscrape_scrape_success{page="device_info"} 0
routerscrape_scrape_success{page="statistics"} 0
routerscrape_scrape_success{page="system_log"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), "routerscrape_scrape_success")
	require.NoError(t, err)
	require.Equal(t, 0, testutil.CollectAndCount(c, "routerscrape_wireless_clients"))
	require.NotEmpty(t, tel.Reports("warning"))
}

func TestHandler(t *testing.T) {
	server := httptest.NewServer(Handler(testReader(), time.Second, &telemetry.Recorder{}))
	defer server.Close()

	res, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	body := new(strings.Builder)
	_, err = io.Copy(body, res.Body)
	require.NoError(t, err)
	require.Contains(t, body.String(), `routerscrape_adsl_line{direction="downstream",metric="snr_margin",unit="dB"} 12.5`)
	require.Contains(t, body.String(), `routerscrape_scrape_success{page="statistics"} 1`)
}
