package extract

import (
	"fmt"
	"strings"
)

// ColumnPair names a label column and the column holding its count. Both
// indices are 1-based, matching td:nth-child.
type ColumnPair struct {
	Key   int `json:"key"`
	Value int `json:"value"`
}

// StatisticsColumns reads a table laid out as two (label, count) groups per
// row.
var StatisticsColumns = []ColumnPair{{Key: 1, Value: 2}, {Key: 3, Value: 4}}

// ExtractColumns reads every data row of grid through pairs into one flat
// label -> count mapping. Rows are visited in order and pairs in the given
// order within each row, later writes win on a repeated label.
func ExtractColumns(grid [][]string, pairs []ColumnPair, skipHeader bool) (map[string]int64, error) {
	rows := grid
	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	result := make(map[string]int64, len(rows)*len(pairs))
	for i, row := range rows {
		rowNum := i + 1
		if !skipHeader {
			rowNum = i
		}
		for _, p := range pairs {
			key, err := cell(row, rowNum, p.Key)
			if err != nil {
				return nil, err
			}
			raw, err := cell(row, rowNum, p.Value)
			if err != nil {
				return nil, err
			}
			value, err := ParseCount(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", rowNum, p.Value, err)
			}
			result[key] = value
		}
	}
	return result, nil
}

func cell(row []string, rowNum, col int) (string, error) {
	if col < 1 || col > len(row) {
		return "", fmt.Errorf(
			"%w: row %d has %d columns, want column %d",
			ErrMissingColumn, rowNum, len(row), col,
		)
	}
	return strings.TrimSpace(row[col-1]), nil
}
