package metrics

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"expenses/internal/models"
	"expenses/internal/services/classifier"
)

func set(amounts ...string) *models.TransactionSet {
	ts := &models.TransactionSet{}
	for _, a := range amounts {
		ts.Add(models.Transaction{Date: "01.03.24", Amount: decimal.RequireFromString(a)})
	}
	return ts
}

func TestCategoryTotals(t *testing.T) {
	totals := New().CategoryTotals(map[string]*models.TransactionSet{
		"X":          set("-10.00", "-5.00", "3.00"),
		"refunds":    set("4.00", "1.00"),
		"groceries":  set("-23.50"),
		"empty":      set(),
		"zero_spend": set("0"),
	})

	if len(totals) != 2 {
		t.Fatalf("totals = %v, want only X and groceries", totals)
	}
	if totals["X"] != 15.00 {
		t.Errorf("X = %v, want 15.00", totals["X"])
	}
	if totals["groceries"] != 23.50 {
		t.Errorf("groceries = %v, want 23.50", totals["groceries"])
	}
	if _, ok := totals["refunds"]; ok {
		t.Error("positive-only category should be absent")
	}
}

func TestCategoryTotalsExactSum(t *testing.T) {
	totals := New().CategoryTotals(map[string]*models.TransactionSet{
		"small": set("-0.1", "-0.2"),
	})
	if totals["small"] != 0.3 {
		t.Errorf("small = %v, want 0.3", totals["small"])
	}
}

func TestSummarize(t *testing.T) {
	s := New()
	summary := s.Summarize(map[string]float64{
		"transport": 15,
		"groceries": 25,
		"shopping":  10,
		"bank_fees": 10,
	})

	if summary.Total != 60 {
		t.Errorf("Total = %v, want 60", summary.Total)
	}

	order := []string{"groceries", "transport", "bank_fees", "shopping"}
	for i, name := range order {
		if summary.Rows[i].Category != name {
			t.Errorf("Rows[%d] = %q, want %q", i, summary.Rows[i].Category, name)
		}
	}

	var pct float64
	for _, row := range summary.Rows {
		pct += row.Percent
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("percentages sum to %v", pct)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := New().Summarize(nil)
	if len(summary.Rows) != 0 || summary.Total != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestPercentOf(t *testing.T) {
	s := New()
	if got := s.PercentOf(25, 100); got != 25 {
		t.Errorf("PercentOf(25, 100) = %v", got)
	}
	if got := s.PercentOf(5, 0); got != 0 {
		t.Errorf("PercentOf(5, 0) = %v, want 0", got)
	}
}

func TestAudit(t *testing.T) {
	res := &classifier.Result{
		Categories: map[string]*models.TransactionSet{
			"transport": set("-15.00"),
			"groceries": set("-23.50", "-1.25", "2.00"),
		},
		Uncategorized: set("-3"),
	}

	rows := New().Audit(res)
	if len(rows) != 2 || rows[0].Category != "groceries" || rows[1].Category != "transport" {
		t.Fatalf("rows = %+v", rows)
	}
	if !rows[0].Total.Equal(decimal.RequireFromString("24.75")) {
		t.Errorf("groceries total = %s, want 24.75", rows[0].Total)
	}
	if len(rows[0].Transactions) != 2 {
		t.Errorf("groceries lists %d transactions, want 2 expenses", len(rows[0].Transactions))
	}
}
