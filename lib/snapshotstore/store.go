package snapshotstore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"sort"
	"time"

	"routerscrape/lib/snapshotstore/db"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config picks the database: a local sqlite file, or a remote libsql
// server when Url is set.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		dsn, err := url.Parse(config.Url)
		if err != nil {
			return nil, fmt.Errorf("store url: %w", err)
		}
		if config.AuthToken != "" {
			query := dsn.Query()
			query.Set("authToken", config.AuthToken)
			dsn.RawQuery = query.Encode()
		}
		return sql.Open("libsql", dsn.String())
	}

	if config.File == "" {
		return nil, fmt.Errorf("a store file or url was not specified")
	}
	if config.File != ":memory:" {
		f, err := os.OpenFile(config.File, os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	database, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time
	database.SetMaxOpenConns(1)
	if config.File != ":memory:" {
		_, err = database.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Migrate creates the tables that do not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

type LineReading struct {
	Metric    string
	Direction string
	Value     float64
	Unit      string
}

type PushRequest struct {
	Time time.Time
	// Statistics maps interface -> counter -> value.
	Statistics map[string]map[string]int64
	Line       []LineReading
}

// Push stores one snapshot of counters and line readings atomically.
func (s Store) Push(ctx context.Context, req PushRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	at := req.Time.Unix()
	for iface, counters := range req.Statistics {
		for counter, value := range counters {
			err := txqry.CreateStatisticsSnapshot(ctx, db.CreateStatisticsSnapshotParams{
				Time:      at,
				Interface: iface,
				Counter:   counter,
				Value:     value,
			})
			if err != nil {
				return err
			}
		}
	}
	for _, reading := range req.Line {
		err := txqry.CreateLineSnapshot(ctx, db.CreateLineSnapshotParams{
			Time:      at,
			Metric:    reading.Metric,
			Direction: reading.Direction,
			Value:     reading.Value,
			Unit:      reading.Unit,
		})
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// PushLog stores log entries not stored yet and returns how many were new.
// entries is one read of the router's log buffer: an entry is identified by
// its timestamp, its message and how many identical entries precede it in
// entries, so repeats within one second are all kept.
func (s Store) PushLog(ctx context.Context, entries []LogEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	type entryKey struct {
		time    int64
		message string
	}
	seen := make(map[entryKey]int64, len(entries))

	inserted := 0
	for _, entry := range entries {
		key := entryKey{time: entry.Time.Unix(), message: entry.Message}
		n, err := txqry.CreateLogEntry(ctx, db.CreateLogEntryParams{
			Time:    key.time,
			Message: key.message,
			Ordinal: seen[key],
		})
		seen[key]++
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}
	return inserted, tx.Commit()
}

// Log returns up to limit stored entries at or after since, oldest first.
func (s Store) Log(ctx context.Context, since time.Time, limit int) ([]LogEntry, error) {
	rows, err := s.qry.GetLogEntries(ctx, db.GetLogEntriesParams{
		After: since.Unix(),
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}
	entries := make([]LogEntry, len(rows))
	for i, r := range rows {
		entries[i] = LogEntry{
			Time:    time.Unix(r.Time, 0),
			Message: r.Message,
		}
	}
	return entries, nil
}

// LatestStatistics returns the counters of the newest snapshot of iface. The
// time is zero when nothing was stored for it.
func (s Store) LatestStatistics(ctx context.Context, iface string) (time.Time, map[string]int64, error) {
	rows, err := s.qry.GetLatestStatistics(ctx, iface)
	if err != nil {
		return time.Time{}, nil, err
	}
	if len(rows) == 0 {
		return time.Time{}, nil, nil
	}
	counters := make(map[string]int64, len(rows))
	for _, r := range rows {
		counters[r.Counter] = r.Value
	}
	return time.Unix(rows[0].Time, 0), counters, nil
}

type Point struct {
	Time  time.Time
	Value int64
}

// CounterSeries returns the stored values of one counter since the given
// time, oldest first.
func (s Store) CounterSeries(ctx context.Context, iface, counter string, since time.Time) ([]Point, error) {
	rows, err := s.qry.GetCounterSeries(ctx, db.GetCounterSeriesParams{
		Interface: iface,
		Counter:   counter,
		After:     since.Unix(),
	})
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{Time: time.Unix(r.Time, 0), Value: r.Value}
	}
	return points, nil
}

// Rates turns a cumulative counter series into per-second rates between
// consecutive points. A counter that went backwards (router reboot) starts
// over from its new value.
func Rates(points []Point) []float64 {
	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var rates []float64
	for i := 1; i < len(sorted); i++ {
		elapsed := sorted[i].Time.Sub(sorted[i-1].Time).Seconds()
		if elapsed <= 0 {
			continue
		}
		delta := sorted[i].Value - sorted[i-1].Value
		if delta < 0 {
			delta = sorted[i].Value
		}
		rates = append(rates, float64(delta)/elapsed)
	}
	return rates
}

// Prune deletes counter and line snapshots older than before. Log entries
// are kept.
func (s Store) Prune(ctx context.Context, before time.Time) error {
	return s.qry.DeleteSnapshotsBefore(ctx, before.Unix())
}
