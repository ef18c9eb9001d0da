package db

import (
	"context"
)

const createStatisticsSnapshot = `insert into statistics_snapshot(time, interface, counter, value)
values (?, ?, ?, ?)`

type CreateStatisticsSnapshotParams struct {
	Time      int64
	Interface string
	Counter   string
	Value     int64
}

func (q *Queries) CreateStatisticsSnapshot(ctx context.Context, arg CreateStatisticsSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, createStatisticsSnapshot,
		arg.Time,
		arg.Interface,
		arg.Counter,
		arg.Value,
	)
	return err
}

const createLineSnapshot = `insert into line_snapshot(time, metric, direction, value, unit)
values (?, ?, ?, ?, ?)`

type CreateLineSnapshotParams struct {
	Time      int64
	Metric    string
	Direction string
	Value     float64
	Unit      string
}

func (q *Queries) CreateLineSnapshot(ctx context.Context, arg CreateLineSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, createLineSnapshot,
		arg.Time,
		arg.Metric,
		arg.Direction,
		arg.Value,
		arg.Unit,
	)
	return err
}

const createLogEntry = `insert into log_entry(time, message, ordinal) values (?, ?, ?)
on conflict (time, message, ordinal) do nothing`

type CreateLogEntryParams struct {
	Time    int64
	Message string
	Ordinal int64
}

// CreateLogEntry returns the number of inserted rows, 0 when the entry was
// already stored.
func (q *Queries) CreateLogEntry(ctx context.Context, arg CreateLogEntryParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createLogEntry, arg.Time, arg.Message, arg.Ordinal)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getLatestStatistics = `select time, counter, value from statistics_snapshot
where interface = ?1 and time = (
    select max(time) from statistics_snapshot where interface = ?1
)
order by counter`

type GetLatestStatisticsRow struct {
	Time    int64
	Counter string
	Value   int64
}

func (q *Queries) GetLatestStatistics(ctx context.Context, iface string) ([]GetLatestStatisticsRow, error) {
	rows, err := q.db.QueryContext(ctx, getLatestStatistics, iface)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetLatestStatisticsRow
	for rows.Next() {
		var i GetLatestStatisticsRow
		if err := rows.Scan(&i.Time, &i.Counter, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCounterSeries = `select time, value from statistics_snapshot
where interface = ? and counter = ? and time >= ?
order by time`

type GetCounterSeriesParams struct {
	Interface string
	Counter   string
	After     int64
}

type GetCounterSeriesRow struct {
	Time  int64
	Value int64
}

func (q *Queries) GetCounterSeries(ctx context.Context, arg GetCounterSeriesParams) ([]GetCounterSeriesRow, error) {
	rows, err := q.db.QueryContext(ctx, getCounterSeries, arg.Interface, arg.Counter, arg.After)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetCounterSeriesRow
	for rows.Next() {
		var i GetCounterSeriesRow
		if err := rows.Scan(&i.Time, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getLogEntries = `select time, message from log_entry
where time >= ?
order by time, id
limit ?`

type GetLogEntriesParams struct {
	After int64
	Limit int64
}

type GetLogEntriesRow struct {
	Time    int64
	Message string
}

func (q *Queries) GetLogEntries(ctx context.Context, arg GetLogEntriesParams) ([]GetLogEntriesRow, error) {
	rows, err := q.db.QueryContext(ctx, getLogEntries, arg.After, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetLogEntriesRow
	for rows.Next() {
		var i GetLogEntriesRow
		if err := rows.Scan(&i.Time, &i.Message); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteStatisticsBefore = `delete from statistics_snapshot where time < ?`

const deleteLineBefore = `delete from line_snapshot where time < ?`

func (q *Queries) DeleteSnapshotsBefore(ctx context.Context, before int64) error {
	_, err := q.db.ExecContext(ctx, deleteStatisticsBefore, before)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, deleteLineBefore, before)
	return err
}
