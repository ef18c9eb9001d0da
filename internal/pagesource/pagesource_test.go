package pagesource

import (
	"context"
	"testing"
	"time"

	"routerscrape/internal/extract"
	"routerscrape/internal/router"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testDir() Dir {
	return NewDir("testdata", nil, DefaultSelectors())
}

func TestGrid(t *testing.T) {
	grid, err := testDir().Grid(context.Background(), router.StatisticsPage(router.WLAN))
	require.NoError(t, err)

	expected := [][]string{
		{"Transmit", "Count", "Receive", "Count"},
		{"Tx Frames Count", "1,204,331", "Rx Frames Count", "987,002"},
		{"Tx Errors Count", "0", "Rx Errors Count", "3"},
		{"Tx Drops Count", "12", "Rx Drops Count", "1,001"},
	}
	if diff := cmp.Diff(expected, grid); diff != "" {
		t.Fatal(diff)
	}
}

func TestGridErrors(t *testing.T) {
	testCases := []struct {
		page     router.Page
		expected error
	}{
		{page: router.StatisticsPage(router.ADSL), expected: ErrNoTable},
		{page: router.Page("status_missing"), expected: ErrPageNotFound},
	}

	for _, test := range testCases {
		_, err := testDir().Grid(context.Background(), test.page)
		require.ErrorIs(t, err, test.expected, test.page)
	}
}

func TestFileOverrides(t *testing.T) {
	dir := NewDir("testdata", map[string]string{
		string(router.PageDeviceInfo): "device_info_plain.txt",
	}, DefaultSelectors())

	text, err := dir.Text(context.Background(), router.PageDeviceInfo)
	require.NoError(t, err)
	require.Equal(t, "Firmware Version: 3.10.2\nWireless Clients number is 0\n", text)
}

func TestSystemLogText(t *testing.T) {
	text, err := testDir().Text(context.Background(), router.PageSystemLog)
	require.NoError(t, err)

	entries, err := extract.ParseLogLines(text, extract.LogTimestampLayout, time.UTC)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "DHCP server started", entries[0].Message)
	require.Equal(t, time.Date(2026, time.October, 16, 8, 14, 2, 0, time.UTC), entries[2].Timestamp)
}

func TestDeviceInfoEndToEnd(t *testing.T) {
	text, err := testDir().Text(context.Background(), router.PageDeviceInfo)
	require.NoError(t, err)

	info, err := router.AssembleDeviceInfo(text, router.DefaultLayout())
	require.NoError(t, err)

	expected := router.DeviceInfo{
		Device: router.DeviceSection{
			FirmwareVersion: "3.10.2.175_TE",
			MACAddress:      "00:1E:E3:4F:5A:10",
		},
		LAN: router.LANSection{
			IPAddress:  "192.168.1.1",
			SubnetMask: "255.255.255.0",
			DHCPServer: "Enabled",
		},
		Wireless: router.WirelessSection{
			ClientsNumber: 3,
			Clients: [][]string{
				{"1", "AC:37:43:01:02:03"},
				{"2", "F0:99:BF:11:22:33"},
				{"3", "3C:2E:FF:AA:BB:CC"},
			},
		},
		WAN: [][]string{
			{"PVC", "VPI/VCI", "Encapsulation", "Address", "Status"},
			{"0", "8/35", "PPPoE LLC", "81.12.44.7", "Up"},
		},
		ADSL: router.ADSLSection{
			FwVer:      "3.20.34.0_TC3086",
			HwVer:      "T14.F7_11.0",
			LineState:  "Showtime",
			Modulation: "ITU G.992.5(ADSL2PLUS)",
			AnnexMode:  "ANNEX_A",
			Line: router.LineMetrics{
				SNRMargin:       extract.Triple{Low: extract.FloatNumber(12.5), High: extract.FloatNumber(34), Unit: "dB"},
				LineAttenuation: extract.Triple{Low: extract.FloatNumber(21), High: extract.FloatNumber(12.4), Unit: "dB"},
				DataRate:        extract.Triple{Low: extract.IntNumber(18302), High: extract.IntNumber(1061), Unit: "kbps"},
				MaxRate:         extract.Triple{Low: extract.IntNumber(20164), High: extract.IntNumber(1188), Unit: "kbps"},
				Power:           extract.Triple{Low: extract.FloatNumber(19.9), High: extract.FloatNumber(12.3), Unit: "dbm"},
				CRC:             []int64{17, 4},
			},
		},
	}
	if diff := cmp.Diff(expected, info); diff != "" {
		t.Fatal(diff)
	}
}
