// Package exporter serves the router's pages as Prometheus metrics.
package exporter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"routerscrape/internal/extract"
	"routerscrape/internal/router"
	"routerscrape/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reader is the part of router.Client the collector reads on each scrape.
type Reader interface {
	AllStatistics(ctx context.Context) (map[router.Interface]router.Statistics, error)
	DeviceInfo(ctx context.Context) (router.DeviceInfo, error)
	SystemLog(ctx context.Context) ([]extract.LogEntry, error)
}

// collector implements prometheus.Collector, reading the router pages on
// each scrape.
type collector struct {
	reader  Reader
	timeout time.Duration
	tel     telemetry.API

	// Interface counters
	ifaceFramesTotal  *prometheus.Desc
	ifaceErrorsTotal  *prometheus.Desc
	ifaceDropsTotal   *prometheus.Desc
	ifaceCounterTotal *prometheus.Desc

	// ADSL line
	lineMetric      *prometheus.Desc
	lineCRCTotal    *prometheus.Desc
	lineShowtime    *prometheus.Desc
	wirelessClients *prometheus.Desc

	syslogEntries  *prometheus.Desc
	scrapeSuccess  *prometheus.Desc
	scrapeDuration *prometheus.Desc
}

func newCollector(reader Reader, timeout time.Duration, tel telemetry.API) *collector {
	return &collector{
		reader:  reader,
		timeout: timeout,
		tel:     telemetry.NewScopedAPI("exporter", tel),

		ifaceFramesTotal: prometheus.NewDesc(
			"routerscrape_interface_frames_total",
			"Frames counted per interface.",
			[]string{"interface", "direction"}, nil,
		),
		ifaceErrorsTotal: prometheus.NewDesc(
			"routerscrape_interface_errors_total",
			"Errored frames per interface.",
			[]string{"interface", "direction"}, nil,
		),
		ifaceDropsTotal: prometheus.NewDesc(
			"routerscrape_interface_drops_total",
			"Dropped frames per interface.",
			[]string{"interface", "direction"}, nil,
		),
		ifaceCounterTotal: prometheus.NewDesc(
			"routerscrape_interface_counter_total",
			"Statistics counters without a dedicated metric, by label.",
			[]string{"interface", "counter"}, nil,
		),
		lineMetric: prometheus.NewDesc(
			"routerscrape_adsl_line",
			"ADSL line readings of the device info page.",
			[]string{"metric", "direction", "unit"}, nil,
		),
		lineCRCTotal: prometheus.NewDesc(
			"routerscrape_adsl_crc_errors_total",
			"ADSL CRC error counts.",
			[]string{"direction"}, nil,
		),
		lineShowtime: prometheus.NewDesc(
			"routerscrape_adsl_showtime",
			"1 when the ADSL line is in showtime.",
			[]string{"modulation", "annex"}, nil,
		),
		wirelessClients: prometheus.NewDesc(
			"routerscrape_wireless_clients",
			"Associated wireless clients as reported by the router.",
			nil, nil,
		),
		syslogEntries: prometheus.NewDesc(
			"routerscrape_syslog_entries",
			"Entries currently held in the router's system log.",
			nil, nil,
		),
		scrapeSuccess: prometheus.NewDesc(
			"routerscrape_scrape_success",
			"1 when the page was read and assembled.",
			[]string{"page"}, nil,
		),
		scrapeDuration: prometheus.NewDesc(
			"routerscrape_scrape_duration_seconds",
			"Time spent reading all pages.",
			nil, nil,
		),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ifaceFramesTotal
	ch <- c.ifaceErrorsTotal
	ch <- c.ifaceDropsTotal
	ch <- c.ifaceCounterTotal
	ch <- c.lineMetric
	ch <- c.lineCRCTotal
	ch <- c.lineShowtime
	ch <- c.wirelessClients
	ch <- c.syslogEntries
	ch <- c.scrapeSuccess
	ch <- c.scrapeDuration
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	start := time.Now()

	c.collectStatistics(ctx, ch)
	c.collectDeviceInfo(ctx, ch)
	c.collectSystemLog(ctx, ch)

	ch <- prometheus.MustNewConstMetric(c.scrapeDuration, prometheus.GaugeValue,
		time.Since(start).Seconds())
}

func (c *collector) success(ch chan<- prometheus.Metric, page string, err error) bool {
	value := 1.0
	if err != nil {
		value = 0
		c.tel.ReportWarning("collector.collect", page, err)
	}
	ch <- prometheus.MustNewConstMetric(c.scrapeSuccess, prometheus.GaugeValue, value, page)
	return err == nil
}

// splitCounter turns "Rx Frames Count" into ("rx", "frames").
func splitCounter(label string) (direction, kind string, ok bool) {
	fields := strings.Fields(strings.ToLower(label))
	if len(fields) < 2 || (fields[0] != "rx" && fields[0] != "tx") {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func (c *collector) counterDesc(kind string) *prometheus.Desc {
	switch kind {
	case "frames":
		return c.ifaceFramesTotal
	case "errors":
		return c.ifaceErrorsTotal
	case "drops":
		return c.ifaceDropsTotal
	}
	return nil
}

func (c *collector) collectStatistics(ctx context.Context, ch chan<- prometheus.Metric) {
	all, err := c.reader.AllStatistics(ctx)
	if !c.success(ch, "statistics", err) {
		return
	}

	for iface, stats := range all {
		for label, value := range stats {
			direction, kind, ok := splitCounter(label)
			desc := c.counterDesc(kind)
			if !ok || desc == nil {
				ch <- prometheus.MustNewConstMetric(c.ifaceCounterTotal, prometheus.CounterValue,
					float64(value), string(iface), label)
				continue
			}
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue,
				float64(value), string(iface), direction)
		}
	}
}

var directions = []string{"downstream", "upstream"}

func direction(i int) string {
	if i < len(directions) {
		return directions[i]
	}
	return strconv.Itoa(i)
}

func (c *collector) collectDeviceInfo(ctx context.Context, ch chan<- prometheus.Metric) {
	info, err := c.reader.DeviceInfo(ctx)
	if !c.success(ch, "device_info", err) {
		return
	}

	line := info.ADSL.Line
	readings := []struct {
		metric string
		triple extract.Triple
	}{
		{"snr_margin", line.SNRMargin},
		{"line_attenuation", line.LineAttenuation},
		{"data_rate", line.DataRate},
		{"max_rate", line.MaxRate},
		{"power", line.Power},
	}
	for _, r := range readings {
		ch <- prometheus.MustNewConstMetric(c.lineMetric, prometheus.GaugeValue,
			r.triple.Low.Float64(), r.metric, direction(0), r.triple.Unit)
		ch <- prometheus.MustNewConstMetric(c.lineMetric, prometheus.GaugeValue,
			r.triple.High.Float64(), r.metric, direction(1), r.triple.Unit)
	}
	for i, count := range line.CRC {
		ch <- prometheus.MustNewConstMetric(c.lineCRCTotal, prometheus.CounterValue,
			float64(count), direction(i))
	}

	showtime := 0.0
	if strings.EqualFold(info.ADSL.LineState, "showtime") {
		showtime = 1
	}
	ch <- prometheus.MustNewConstMetric(c.lineShowtime, prometheus.GaugeValue,
		showtime, info.ADSL.Modulation, info.ADSL.AnnexMode)
	ch <- prometheus.MustNewConstMetric(c.wirelessClients, prometheus.GaugeValue,
		float64(info.Wireless.ClientsNumber))
}

func (c *collector) collectSystemLog(ctx context.Context, ch chan<- prometheus.Metric) {
	entries, err := c.reader.SystemLog(ctx)
	if !c.success(ch, "system_log", err) {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.syslogEntries, prometheus.GaugeValue, float64(len(entries)))
}

// Handler serves the router metrics on an isolated registry.
func Handler(reader Reader, timeout time.Duration, tel telemetry.API) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(newCollector(reader, timeout, tel))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
