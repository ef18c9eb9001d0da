// Package snapshot copies what the router currently shows into the
// snapshot store.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"routerscrape/internal/assert"
	"routerscrape/internal/extract"
	"routerscrape/internal/router"
	"routerscrape/internal/telemetry"
	"routerscrape/lib/snapshotstore"
)

const (
	report_store_push    = "store.push"
	report_store_prune   = "store.prune"
	report_make_snapshot = "snapshot.make-snapshot"
)

// Reader is the part of router.Client a snapshot reads.
type Reader interface {
	AllStatistics(ctx context.Context) (map[router.Interface]router.Statistics, error)
	DeviceInfo(ctx context.Context) (router.DeviceInfo, error)
	SystemLog(ctx context.Context) ([]extract.LogEntry, error)
	Now() time.Time
}

type Snapshot struct {
	reader Reader
	store  snapshotstore.Store
	tel    telemetry.API
}

func NewSnapshot(reader Reader, store snapshotstore.Store, tel telemetry.API) Snapshot {
	assert.NotNil("reader", reader)
	assert.NotNil("tel", tel)

	return Snapshot{
		reader: reader,
		store:  store,
		tel:    telemetry.NewScopedAPI("snapshot", tel),
	}
}

type Result struct {
	Time       time.Time `json:"time"`
	Interfaces int       `json:"interfaces"`
	LineStored bool      `json:"line_stored"`
	NewEntries int       `json:"new_log_entries"`
}

// lineReadings flattens the ADSL line metrics into one reading per
// direction.
func lineReadings(line router.LineMetrics) []snapshotstore.LineReading {
	triples := []struct {
		metric string
		triple extract.Triple
	}{
		{"SNR Margin", line.SNRMargin},
		{"Line Attenuation", line.LineAttenuation},
		{"Data Rate", line.DataRate},
		{"Max Rate", line.MaxRate},
		{"POWER", line.Power},
	}
	readings := make([]snapshotstore.LineReading, 0, len(triples)*2+len(line.CRC))
	for _, t := range triples {
		readings = append(readings,
			snapshotstore.LineReading{Metric: t.metric, Direction: "downstream", Value: t.triple.Low.Float64(), Unit: t.triple.Unit},
			snapshotstore.LineReading{Metric: t.metric, Direction: "upstream", Value: t.triple.High.Float64(), Unit: t.triple.Unit},
		)
	}
	for i, count := range line.CRC {
		direction := fmt.Sprint(i)
		switch i {
		case 0:
			direction = "downstream"
		case 1:
			direction = "upstream"
		}
		readings = append(readings, snapshotstore.LineReading{
			Metric:    "CRC",
			Direction: direction,
			Value:     float64(count),
		})
	}
	return readings
}

// MakeSnapshot stores the counters, the ADSL line readings and the log
// entries not stored yet. The statistics pages are required, a device info
// or system log page that does not assemble is reported and skipped.
func (s Snapshot) MakeSnapshot(ctx context.Context) (Result, error) {
	result := Result{Time: s.reader.Now()}

	all, err := s.reader.AllStatistics(ctx)
	if err != nil {
		s.tel.ReportBroken(report_make_snapshot, err)
		return Result{}, err
	}
	req := snapshotstore.PushRequest{
		Time:       result.Time,
		Statistics: make(map[string]map[string]int64, len(all)),
	}
	for iface, stats := range all {
		req.Statistics[string(iface)] = stats
	}
	result.Interfaces = len(all)

	var skipped []error
	info, err := s.reader.DeviceInfo(ctx)
	if err == nil {
		req.Line = lineReadings(info.ADSL.Line)
		result.LineStored = true
	} else {
		skipped = append(skipped, err)
	}

	err = s.store.Push(ctx, req)
	if err != nil {
		s.tel.ReportBroken(report_store_push, err, "Push", result.Time)
		return Result{}, err
	}

	entries, err := s.reader.SystemLog(ctx)
	if err == nil {
		stored := make([]snapshotstore.LogEntry, len(entries))
		for i, e := range entries {
			stored[i] = snapshotstore.LogEntry{Time: e.Timestamp, Message: e.Message}
		}
		result.NewEntries, err = s.store.PushLog(ctx, stored)
		if err != nil {
			s.tel.ReportBroken(report_store_push, err, "PushLog", len(stored))
			return Result{}, err
		}
	} else {
		skipped = append(skipped, err)
	}

	if len(skipped) > 0 {
		s.tel.ReportWarning(report_make_snapshot, "partial snapshot", errors.Join(skipped...))
	}
	s.tel.ReportCount("snapshot.new-log-entries", int64(result.NewEntries))
	return result, nil
}

// Prune deletes the counter and line snapshots older than retention. A
// retention of zero keeps everything.
func (s Snapshot) Prune(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		return nil
	}
	before := s.reader.Now().Add(-retention)
	err := s.store.Prune(ctx, before)
	if err != nil {
		s.tel.ReportBroken(report_store_prune, err, before)
		return err
	}
	return nil
}
