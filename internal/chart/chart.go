// Package chart renders expense breakdowns as PNG pie charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"expenses/internal/report"
	"expenses/internal/services/metrics"
)

const (
	width  = 1400
	height = 800

	// labelThreshold is the smallest slice share, in percent, that gets a label
	labelThreshold = 3.0
)

// ErrNoExpenses is returned when there is nothing to draw
var ErrNoExpenses = errors.New("no expenses to chart")

// Renderer writes pie charts into a directory
type Renderer struct {
	dir string
}

// New creates a Renderer writing into dir
func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// FileName returns the chart file name for a month, or for the whole run
// when month is empty
func FileName(month string) string {
	if month == "" {
		return "expense_breakdown.png"
	}
	return "expense_breakdown_" + month + ".png"
}

// Title returns the chart title for a month
func Title(month string) string {
	if month == "" {
		return "Expense Breakdown by Category"
	}
	return "Expense Breakdown by Category - " + month
}

// Render draws the summary and returns the path of the written file
func (r *Renderer) Render(summary metrics.Summary, month string) (string, error) {
	if len(summary.Rows) == 0 || summary.Total <= 0 {
		return "", ErrNoExpenses
	}

	values := make([]chart.Value, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		values = append(values, chart.Value{
			Value: row.Amount,
			Label: sliceLabel(row),
		})
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("%s (Total: €%.2f)", Title(month), summary.Total),
		Width:  width,
		Height: height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("error rendering chart: %w", err)
	}

	path := filepath.Join(r.dir, FileName(month))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing chart: %w", err)
	}
	return path, nil
}

// sliceLabel is empty for slices too small to label legibly
func sliceLabel(row metrics.SummaryRow) string {
	if row.Percent < labelThreshold {
		return ""
	}
	return fmt.Sprintf("%s €%d (%.1f%%)", report.DisplayName(row.Category), int(row.Amount), row.Percent)
}
