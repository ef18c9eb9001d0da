package router

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"routerscrape/internal/chrono"
	"routerscrape/internal/extract"
	"routerscrape/internal/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	grids map[Page][][]string
	texts map[Page]string
}

var errNoPage = errors.New("no such page")

func (f fakeSource) Grid(ctx context.Context, page Page) ([][]string, error) {
	grid, ok := f.grids[page]
	if !ok {
		return nil, errNoPage
	}
	return grid, nil
}

func (f fakeSource) Text(ctx context.Context, page Page) (string, error) {
	text, ok := f.texts[page]
	if !ok {
		return "", errNoPage
	}
	return text, nil
}

func statisticsGrid(rx, tx int) [][]string {
	return [][]string{
		{"Transmit", "Count", "Receive", "Count"},
		{"Tx Frames Count", "1,000", "Rx Frames Count", "2,000"},
		{"Tx Errors Count", "0", "Rx Errors Count", "0"},
		{"Tx Drops Count", strings.Repeat("1", tx), "Rx Drops Count", strings.Repeat("2", rx)},
	}
}

func deviceInfoText(t *testing.T) string {
	contents, err := os.ReadFile("testdata/device_info.txt")
	require.NoError(t, err)
	return string(contents)
}

func newTestClient(t *testing.T, source Source) (Client, *telemetry.Recorder) {
	tel := &telemetry.Recorder{}
	at := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	return NewClient(source, DefaultLayout(), chrono.FixedImpl{At: at}, tel), tel
}

func TestParseInterface(t *testing.T) {
	testCases := []struct {
		name     string
		expected Interface
		fails    bool
	}{
		{name: "WLAN", expected: WLAN},
		{name: "ethernet", expected: Ethernet},
		{name: " adsl", expected: ADSL},
		{name: "vdsl", fails: true},
	}

	for _, test := range testCases {
		iface, err := ParseInterface(test.name)
		if test.fails {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, iface)
	}
	require.Equal(t, Page("statistics_wlan"), StatisticsPage(WLAN))
}

func TestAssembleStatistics(t *testing.T) {
	stats, err := AssembleStatistics(statisticsGrid(1, 1), DefaultLayout())
	require.NoError(t, err)
	require.Equal(t, Statistics{
		"Tx Frames Count": 1000,
		"Rx Frames Count": 2000,
		"Tx Errors Count": 0,
		"Rx Errors Count": 0,
		"Tx Drops Count":  1,
		"Rx Drops Count":  2,
	}, stats)
}

func TestAssembleStatisticsMissingCounter(t *testing.T) {
	grid := statisticsGrid(1, 1)[:3]
	_, err := AssembleStatistics(grid, DefaultLayout())
	require.ErrorIs(t, err, extract.ErrMissingField)
	require.ErrorContains(t, err, "Drops Count")
}

func TestAssembleStatisticsHeaderAsData(t *testing.T) {
	layout := DefaultLayout()
	layout.KeepStatisticsHeader = true
	_, err := AssembleStatistics(statisticsGrid(1, 1), layout)
	require.ErrorIs(t, err, extract.ErrMalformedNumber)
}

func TestAssembleDeviceInfo(t *testing.T) {
	info, err := AssembleDeviceInfo(deviceInfoText(t), DefaultLayout())
	require.NoError(t, err)

	require.Equal(t, "00:1E:E3:4F:5A:10", info.Device.MACAddress)
	require.Equal(t, 3, info.Wireless.ClientsNumber)
	require.Equal(t, [][]string{
		{"1", "AC:37:43:01:02:03"},
		{"2", "F0:99:BF:11:22:33"},
	}, info.Wireless.Clients)
	require.Len(t, info.WAN, 2)
	require.Equal(t, "T14.F7_11.0", info.ADSL.HwVer)
	require.Equal(t, extract.KindFloat, info.ADSL.Line.SNRMargin.Low.Kind)
	require.Equal(t, extract.KindInt, info.ADSL.Line.DataRate.High.Kind)

	serialized, err := json.Marshal(info)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(serialized, &keys))
	require.Len(t, keys, 5)
	for _, key := range []string{"Device Information", "LAN", "Wireless", "WAN", "ADSL"} {
		require.Contains(t, keys, key)
	}
	require.Contains(t, string(keys["ADSL"]), `"SNR Margin":[12.5,34.0,"dB"]`)
	require.Contains(t, string(keys["ADSL"]), `"CRC":[17,4]`)

	again, err := AssembleDeviceInfo(deviceInfoText(t), DefaultLayout())
	require.NoError(t, err)
	require.Equal(t, info, again)
}

func TestAssembleDeviceInfoErrors(t *testing.T) {
	text := deviceInfoText(t)

	testCases := []struct {
		name     string
		text     string
		expected error
	}{
		{
			name:     "missing label",
			text:     strings.Replace(text, "Subnet Mask:", "Netmask:", 1),
			expected: extract.ErrMissingField,
		},
		{
			name:     "missing client count",
			text:     strings.Replace(text, "Wireless Clients number is 3", "Clients: 3", 1),
			expected: extract.ErrMissingField,
		},
		{
			name:     "malformed triple",
			text:     strings.Replace(text, "SNR Margin:\t12.5\t34.0\tdB", "SNR Margin:\tn/a", 1),
			expected: extract.ErrMalformedNumber,
		},
		{
			name:     "missing client table",
			text:     strings.Replace(text, "ID\tMAC\n", "", 1),
			expected: extract.ErrSectionNotFound,
		},
	}

	for _, test := range testCases {
		_, err := AssembleDeviceInfo(test.text, DefaultLayout())
		require.ErrorIs(t, err, test.expected, test.name)
	}
}

func TestAssembleDeviceInfoRelabeled(t *testing.T) {
	layout := DefaultLayout()
	layout.Labels.SubnetMask = "Netmask"
	text := strings.Replace(deviceInfoText(t), "Subnet Mask:", "Netmask:", 1)

	info, err := AssembleDeviceInfo(text, layout)
	require.NoError(t, err)
	require.Equal(t, "255.255.255.0", info.LAN.SubnetMask)
}

func TestClientStatistics(t *testing.T) {
	source := fakeSource{grids: map[Page][][]string{
		StatisticsPage(Ethernet): statisticsGrid(1, 1),
		StatisticsPage(ADSL):     statisticsGrid(2, 2),
		StatisticsPage(WLAN):     statisticsGrid(3, 3),
	}}
	client, tel := newTestClient(t, source)

	wlan, err := client.Statistics(context.Background(), WLAN)
	require.NoError(t, err)
	require.Equal(t, int64(222), wlan["Rx Drops Count"])

	all, err := client.AllStatistics(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, int64(22), all[ADSL]["Rx Drops Count"])
	require.Empty(t, tel.Reports("broken"))
}

func TestClientStatisticsBroken(t *testing.T) {
	source := fakeSource{grids: map[Page][][]string{
		StatisticsPage(Ethernet): statisticsGrid(1, 1)[:2],
	}}
	client, tel := newTestClient(t, source)

	_, err := client.AllStatistics(context.Background())
	require.ErrorIs(t, err, extract.ErrMissingField)

	broken := tel.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "router: client.statistics", broken[0].ID)

	_, err = client.Statistics(context.Background(), WLAN)
	require.ErrorIs(t, err, errNoPage)
}

func TestClientDeviceInfo(t *testing.T) {
	source := fakeSource{texts: map[Page]string{
		PageDeviceInfo: deviceInfoText(t),
	}}
	client, tel := newTestClient(t, source)

	info, err := client.DeviceInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "192.168.1.1", info.LAN.IPAddress)

	warnings := tel.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "router: client.device-info", warnings[0].ID)
	require.Equal(t, []any{"wireless client count does not match client table", 3, 2}, warnings[0].Params)
}

func TestClientSystemLog(t *testing.T) {
	source := fakeSource{texts: map[Page]string{
		PageSystemLog: "10/16/2026 08:14:02> Wireless: station associated\n10/16/2026 08:15:00> DHCP lease renewed\n",
	}}
	client, tel := newTestClient(t, source)

	entries, err := client.SystemLog(context.Background())
	require.NoError(t, err)
	require.Equal(t, []extract.LogEntry{
		{Timestamp: time.Date(2026, time.October, 16, 8, 14, 2, 0, time.UTC), Message: "Wireless: station associated"},
		{Timestamp: time.Date(2026, time.October, 16, 8, 15, 0, 0, time.UTC), Message: "DHCP lease renewed"},
	}, entries)

	counts := tel.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, int64(2), counts[0].Count)
}

func TestClientSystemLogMalformed(t *testing.T) {
	source := fakeSource{texts: map[Page]string{
		PageSystemLog: "10/16/2026 08:14:02> ok\nnot a log line\n",
	}}
	client, tel := newTestClient(t, source)

	_, err := client.SystemLog(context.Background())
	require.ErrorIs(t, err, extract.ErrMalformedTimestamp)
	require.Len(t, tel.Reports("broken"), 1)
}
