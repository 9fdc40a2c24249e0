package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"expenses/internal/models"
	"expenses/internal/services/classifier"
)

// Service provides expense aggregation
type Service struct{}

// New creates a new metrics service
func New() *Service {
	return &Service{}
}

// SummaryRow is one category line of a summary
type SummaryRow struct {
	Category string
	Amount   float64
	Percent  float64
}

// Summary is a set of category totals ordered by amount, largest first
type Summary struct {
	Rows  []SummaryRow
	Total float64
}

// AuditRow lists a category's expenses with their exact total magnitude
type AuditRow struct {
	Category     string
	Total        decimal.Decimal
	Transactions []models.Transaction
}

// CategoryTotals sums the strictly negative amounts of each category and
// reports the magnitude. Categories without expenses are omitted.
func (s *Service) CategoryTotals(categories map[string]*models.TransactionSet) map[string]float64 {
	totals := make(map[string]float64)
	for name, ts := range categories {
		total := ts.SumExpenses()
		if total.IsNegative() {
			totals[name] = total.Abs().InexactFloat64()
		}
	}
	return totals
}

// Summarize orders totals by amount (ties by name) and adds percentages of
// the overall total
func (s *Service) Summarize(totals map[string]float64) Summary {
	var summary Summary
	for name, amount := range totals {
		summary.Rows = append(summary.Rows, SummaryRow{Category: name, Amount: amount})
		summary.Total += amount
	}

	sort.Slice(summary.Rows, func(i, j int) bool {
		if summary.Rows[i].Amount != summary.Rows[j].Amount {
			return summary.Rows[i].Amount > summary.Rows[j].Amount
		}
		return summary.Rows[i].Category < summary.Rows[j].Category
	})

	for i := range summary.Rows {
		summary.Rows[i].Percent = s.PercentOf(summary.Rows[i].Amount, summary.Total)
	}
	return summary
}

// Audit lists every category's expenses sorted by category name
func (s *Service) Audit(res *classifier.Result) []AuditRow {
	names := models.SortedKeys(res.Categories)
	rows := make([]AuditRow, 0, len(names))
	for _, name := range names {
		expenses := res.Categories[name].Expenses()
		rows = append(rows, AuditRow{
			Category:     name,
			Total:        expenses.SumExpenses().Abs(),
			Transactions: expenses.Transactions,
		})
	}
	return rows
}

// PercentOf returns part as a percentage of total, or 0 for an empty total
func (s *Service) PercentOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
