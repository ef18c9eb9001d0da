package snapshot

import (
	"context"
	"time"

	"routerscrape/internal/router"
	"routerscrape/lib/snapshotstore"
)

// History reads back what earlier snapshots stored.
type History struct {
	store snapshotstore.Store
}

func NewHistory(store snapshotstore.Store) History {
	return History{store: store}
}

type InterfaceCounters struct {
	Interface router.Interface `json:"interface"`
	Time      time.Time        `json:"time"`
	Counters  map[string]int64 `json:"counters"`
}

// Latest returns the newest stored counters of every interface that has
// any, in interface order.
func (h History) Latest(ctx context.Context) ([]InterfaceCounters, error) {
	var out []InterfaceCounters
	for _, iface := range router.Interfaces {
		at, counters, err := h.store.LatestStatistics(ctx, string(iface))
		if err != nil {
			return nil, err
		}
		if at.IsZero() {
			continue
		}
		out = append(out, InterfaceCounters{Interface: iface, Time: at, Counters: counters})
	}
	return out, nil
}

type SeriesPoint struct {
	Time  time.Time `json:"time"`
	Value int64     `json:"value"`
	// Rate is the per-second change since the previous point, nil on the
	// first point.
	Rate *float64 `json:"rate"`
}

// Series returns one counter's stored values since the given time with the
// rate between consecutive snapshots.
func (h History) Series(ctx context.Context, iface router.Interface, counter string, since time.Time) ([]SeriesPoint, error) {
	points, err := h.store.CounterSeries(ctx, string(iface), counter, since)
	if err != nil {
		return nil, err
	}
	out := make([]SeriesPoint, len(points))
	for i, p := range points {
		out[i] = SeriesPoint{Time: p.Time, Value: p.Value}
		if i == 0 {
			continue
		}
		if rates := snapshotstore.Rates(points[i-1 : i+1]); len(rates) == 1 {
			out[i].Rate = &rates[0]
		}
	}
	return out, nil
}

// Log returns up to limit stored log entries at or after since.
func (h History) Log(ctx context.Context, since time.Time, limit int) ([]snapshotstore.LogEntry, error) {
	return h.store.Log(ctx, since, limit)
}
