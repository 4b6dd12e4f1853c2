package app

import (
	"strconv"
	"strings"

	"mandiprices/domain/record"

	"github.com/montanaflynn/stats"
)

// ColumnSummary describes one column of an exported table
type ColumnSummary struct {
	Name     string  `json:"name"`
	Filled   int     `json:"filled"`
	Distinct int     `json:"distinct"`
	Numeric  bool    `json:"numeric"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Mean     float64 `json:"mean,omitempty"`
	Median   float64 `json:"median,omitempty"`
}

// SummaryService profiles tables, mainly the price columns
type SummaryService struct{}

// NewSummaryService creates a summary service
func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Summarize returns one summary per column, in column order. A column is
// numeric when it has at least one non-empty cell and every non-empty cell
// parses as a number.
func (s *SummaryService) Summarize(table *record.Table) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(table.Columns))
	for _, name := range table.Columns {
		summaries = append(summaries, s.summarizeColumn(name, table.Column(name)))
	}
	return summaries
}

func (s *SummaryService) summarizeColumn(name string, cells []string) ColumnSummary {
	summary := ColumnSummary{Name: name}
	distinct := make(map[string]struct{})
	values := make(stats.Float64Data, 0, len(cells))
	numeric := true

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		summary.Filled++
		distinct[cell] = struct{}{}
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			numeric = false
			continue
		}
		values = append(values, v)
	}
	summary.Distinct = len(distinct)

	if !numeric || len(values) == 0 {
		return summary
	}

	summary.Numeric = true
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	summary.Mean, _ = stats.Mean(values)
	summary.Median, _ = stats.Median(values)
	return summary
}
