// Package analysis runs the aggregate, monthly and audit reports over a
// folder of bank statements.
package analysis

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"expenses/internal/models"
	"expenses/internal/report"
	"expenses/internal/services/classifier"
	"expenses/internal/services/dataloader"
	"expenses/internal/services/metrics"
	"expenses/internal/services/periods"
)

// Loader supplies the expense transactions of a run
type Loader interface {
	LoadData() (*dataloader.LoadResult, error)
}

// ChartSink renders a summary and returns where it was written
type ChartSink interface {
	Render(summary metrics.Summary, month string) (string, error)
}

// Analyzer wires loading, classification, aggregation and output together
type Analyzer struct {
	loader  Loader
	rules   *classifier.Rules
	metrics *metrics.Service
	charts  ChartSink
	out     io.Writer
	log     zerolog.Logger
}

// MonthResult is the outcome of one month (or of the whole run when Month
// is empty)
type MonthResult struct {
	Month         string
	Totals        map[string]float64
	Summary       metrics.Summary
	Uncategorized *models.TransactionSet
	Chart         string
}

// New creates an Analyzer. charts may be nil to skip chart rendering.
func New(loader Loader, rules *classifier.Rules, charts ChartSink, out io.Writer, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		loader:  loader,
		rules:   rules,
		metrics: metrics.New(),
		charts:  charts,
		out:     out,
		log:     log,
	}
}

// RunAggregate analyzes the whole history as a single period
func (a *Analyzer) RunAggregate() (*MonthResult, error) {
	ts, err := a.load()
	if err != nil {
		return nil, err
	}

	res := a.analyze(ts, "")
	if len(res.Totals) == 0 {
		fmt.Fprintln(a.out, "No expenses found")
	} else {
		report.PrintSummary(a.out, res.Summary, "")
	}
	report.PrintUncategorized(a.out, res.Uncategorized, "")
	return res, nil
}

// RunMonthly adjusts end-of-month payments, groups by month and reports
// each month in chronological order. An unparsable date aborts the run
// before anything is printed.
func (a *Analyzer) RunMonthly() ([]MonthResult, error) {
	ts, err := a.load()
	if err != nil {
		return nil, err
	}

	moved, err := periods.AdjustDates(ts, a.rules)
	if err != nil {
		return nil, err
	}
	groups, err := ts.GroupByMonth()
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("months", len(groups)).Int("adjusted", moved).Msg("grouped transactions by month")

	months := models.SortedKeys(groups)
	results := make([]MonthResult, 0, len(months))
	for _, month := range months {
		report.PrintMonthHeader(a.out, month, groups[month].Len())

		res := a.analyze(groups[month], month)
		if len(res.Totals) == 0 {
			report.PrintNoExpenses(a.out, month)
		} else {
			report.PrintSummary(a.out, res.Summary, month)
		}
		report.PrintUncategorized(a.out, res.Uncategorized, month)
		results = append(results, *res)
	}
	return results, nil
}

// RunAudit prints every category with its transactions for checking the
// keyword rules
func (a *Analyzer) RunAudit() ([]metrics.AuditRow, error) {
	ts, err := a.load()
	if err != nil {
		return nil, err
	}

	res := a.rules.Categorize(ts)
	rows := a.metrics.Audit(res)
	report.PrintAudit(a.out, rows, res.Uncategorized)
	return rows, nil
}

func (a *Analyzer) load() (*models.TransactionSet, error) {
	result, err := a.loader.LoadData()
	if err != nil {
		return nil, fmt.Errorf("error loading statements: %w", err)
	}
	if skipped := result.Skipped(); len(skipped) > 0 {
		a.log.Warn().Int("files", len(skipped)).Msg("some statements were skipped")
	}
	return result.Transactions, nil
}

// analyze categorizes one period, computes its summary and renders its chart
func (a *Analyzer) analyze(ts *models.TransactionSet, month string) *MonthResult {
	categorized := a.rules.Categorize(ts)
	totals := a.metrics.CategoryTotals(categorized.Categories)

	res := &MonthResult{
		Month:         month,
		Totals:        totals,
		Summary:       a.metrics.Summarize(totals),
		Uncategorized: categorized.Uncategorized,
	}

	log := a.log.With().Str("month", month).Logger()
	log.Debug().
		Int("categories", len(totals)).
		Int("uncategorized", categorized.Uncategorized.Len()).
		Msg("categorized transactions")

	if a.charts == nil || len(totals) == 0 {
		return res
	}
	path, err := a.charts.Render(res.Summary, month)
	if err != nil {
		log.Warn().Err(err).Msg("could not render chart")
		return res
	}
	res.Chart = path
	log.Info().Str("file", path).Msg("chart saved")
	return res
}
