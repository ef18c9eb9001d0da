package router

import (
	"fmt"

	"routerscrape/internal/extract"
)

// Statistics maps a counter label such as "Rx Frames Count" to its value.
type Statistics map[string]int64

// AssembleStatistics reads a statistics table grid. Every label of
// layout.StatisticsLabels must be present.
func AssembleStatistics(grid [][]string, layout Layout) (Statistics, error) {
	counts, err := extract.ExtractColumns(grid, layout.StatisticsColumns, !layout.KeepStatisticsHeader)
	if err != nil {
		return nil, err
	}
	for _, label := range layout.StatisticsLabels {
		if _, ok := counts[label]; !ok {
			return nil, fmt.Errorf("%w: statistics counter %q", extract.ErrMissingField, label)
		}
	}
	return Statistics(counts), nil
}
