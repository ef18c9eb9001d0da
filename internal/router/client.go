// Package router assembles the typed records of the router's status pages
// from the raw text handed over by a Source.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"routerscrape/internal/assert"
	"routerscrape/internal/chrono"
	"routerscrape/internal/extract"
	"routerscrape/internal/telemetry"
	"routerscrape/lib/textutil"
)

const (
	report_client_statistics  = "client.statistics"
	report_client_device_info = "client.device-info"
	report_client_system_log  = "client.system-log"
)

// Interface is one of the interfaces the statistics page can show.
type Interface string

const (
	Ethernet Interface = "Ethernet"
	ADSL     Interface = "ADSL"
	WLAN     Interface = "WLAN"
)

var Interfaces = []Interface{Ethernet, ADSL, WLAN}

// ParseInterface accepts any casing/spacing of an interface name.
func ParseInterface(name string) (Interface, error) {
	names := make([]string, len(Interfaces))
	for i, iface := range Interfaces {
		names[i] = string(iface)
	}
	match, ok := textutil.MatchName(name, names)
	if !ok {
		return "", fmt.Errorf("unknown interface %q, expected one of %s", name, strings.Join(names, ", "))
	}
	return Interface(match), nil
}

// Page identifies one status page of the router.
type Page string

const (
	PageDeviceInfo Page = "device_info"
	PageSystemLog  Page = "system_log"
)

// StatisticsPage is the statistics page with iface selected.
func StatisticsPage(iface Interface) Page {
	return Page("statistics_" + strings.ToLower(string(iface)))
}

// Source hands over already retrieved page content.
type Source interface {
	// Grid returns the cell text of the page's data table.
	Grid(ctx context.Context, page Page) ([][]string, error)
	// Text returns the page's visible text, or the raw value of its
	// textarea for the system log.
	Text(ctx context.Context, page Page) (string, error)
}

// Client reads router pages from a Source and assembles them.
type Client struct {
	source Source
	layout Layout
	time   chrono.API
	tel    telemetry.API
}

func NewClient(source Source, layout Layout, time chrono.API, tel telemetry.API) Client {
	assert.NotNil("source", source)
	assert.NotNil("time", time)
	assert.NotNil("tel", tel)

	return Client{
		source: source,
		layout: layout,
		time:   time,
		tel:    telemetry.NewScopedAPI("router", tel),
	}
}

func (c Client) Layout() Layout {
	return c.layout
}

func (c Client) Statistics(ctx context.Context, iface Interface) (Statistics, error) {
	page := StatisticsPage(iface)
	grid, err := c.source.Grid(ctx, page)
	if err != nil {
		c.tel.ReportBroken(report_client_statistics, fmt.Errorf("read page: %w", err), page)
		return nil, err
	}
	stats, err := AssembleStatistics(grid, c.layout)
	if err != nil {
		c.tel.ReportBroken(report_client_statistics, err, page, c.layout.Version)
		return nil, fmt.Errorf("%s statistics: %w", iface, err)
	}
	return stats, nil
}

// AllStatistics reads the statistics of every interface, failing on the
// first one that does not assemble.
func (c Client) AllStatistics(ctx context.Context) (map[Interface]Statistics, error) {
	out := make(map[Interface]Statistics, len(Interfaces))
	for _, iface := range Interfaces {
		stats, err := c.Statistics(ctx, iface)
		if err != nil {
			return nil, err
		}
		out[iface] = stats
	}
	return out, nil
}

func (c Client) DeviceInfo(ctx context.Context) (DeviceInfo, error) {
	text, err := c.source.Text(ctx, PageDeviceInfo)
	if err != nil {
		c.tel.ReportBroken(report_client_device_info, fmt.Errorf("read page: %w", err))
		return DeviceInfo{}, err
	}
	info, err := AssembleDeviceInfo(text, c.layout)
	if err != nil {
		c.tel.ReportBroken(report_client_device_info, err, c.layout.Version)
		return DeviceInfo{}, fmt.Errorf("device info: %w", err)
	}
	if info.Wireless.ClientsNumber != len(info.Wireless.Clients) {
		c.tel.ReportWarning(
			report_client_device_info,
			"wireless client count does not match client table",
			info.Wireless.ClientsNumber,
			len(info.Wireless.Clients),
		)
	}
	return info, nil
}

func (c Client) SystemLog(ctx context.Context) ([]extract.LogEntry, error) {
	text, err := c.source.Text(ctx, PageSystemLog)
	if err != nil {
		c.tel.ReportBroken(report_client_system_log, fmt.Errorf("read page: %w", err))
		return nil, err
	}
	entries, err := AssembleSystemLog(text, c.layout, c.time.Location())
	if err != nil {
		c.tel.ReportBroken(report_client_system_log, err)
		return nil, fmt.Errorf("system log: %w", err)
	}
	c.tel.ReportCount(report_client_system_log, int64(len(entries)))
	return entries, nil
}

// Now is the client's clock, used to stamp snapshots.
func (c Client) Now() time.Time {
	return c.time.Now()
}
