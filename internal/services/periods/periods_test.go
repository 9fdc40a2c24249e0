package periods

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"expenses/internal/models"
	"expenses/internal/services/classifier"
)

func tx(date, beneficiary string) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: "Dauerauftrag",
		Beneficiary: beneficiary,
		Amount:      decimal.RequireFromString("-800"),
	}
}

func TestAdjustDate(t *testing.T) {
	rules := classifier.DefaultRules()

	tests := []struct {
		name        string
		date        string
		beneficiary string
		expected    string
		changed     bool
	}{
		{"early march moves to february", "05.03.24", "Sev Petten", "25.02.24", true},
		{"january wraps to december", "03.01.24", "SEV PETTEN", "25.12.23", true},
		{"first day", "01.06.24", "sev petten", "25.05.24", true},
		{"seventh day is still early", "07.06.24", "sev petten", "25.05.24", true},
		{"eighth day stays", "08.06.24", "sev petten", "08.06.24", false},
		{"mid month stays", "15.03.24", "Sev Petten", "15.03.24", false},
		{"no keyword stays", "02.03.24", "Landlord GmbH", "02.03.24", false},
		{"unpadded date", "5.3.24", "Sev Petten", "25.02.24", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tx(tt.date, tt.beneficiary)
			changed, err := AdjustDate(&tr, rules)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if tr.Date != tt.expected {
				t.Errorf("date = %q, want %q", tr.Date, tt.expected)
			}
		})
	}
}

func TestAdjustDateInvalidDate(t *testing.T) {
	rules := classifier.DefaultRules()

	bad := tx("2024-03-05", "Sev Petten")
	_, err := AdjustDate(&bad, rules)
	if !errors.Is(err, models.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
	var dateErr *models.InvalidDateError
	if !errors.As(err, &dateErr) || dateErr.Transaction.Beneficiary != "Sev Petten" {
		t.Errorf("error should identify the transaction, got %v", err)
	}

	// without a keyword the date is not inspected
	other := tx("garbage", "Someone")
	if _, err := AdjustDate(&other, rules); err != nil {
		t.Errorf("unexpected error for non-matching transaction: %v", err)
	}
}

func TestGroupByMonth(t *testing.T) {
	rules := classifier.DefaultRules()
	ts := models.NewTransactionSet([]models.Transaction{
		tx("01.03.24", "REWE"),
		tx("28.03.24", "Lidl"),
		tx("31.12.23", "Aldi"),
		tx("04.01.24", "Sev Petten"),
	})

	groups, err := GroupByMonth(ts, rules)
	if err != nil {
		t.Fatalf("GroupByMonth failed: %v", err)
	}

	if groups["2024-03"].Len() != 2 {
		t.Errorf("2024-03 = %d, want 2", groups["2024-03"].Len())
	}
	if groups["2023-12"].Len() != 2 {
		t.Errorf("2023-12 = %d, want 2 (one adjusted)", groups["2023-12"].Len())
	}
	if _, ok := groups["2024-01"]; ok {
		t.Error("adjusted payment should not leave a 2024-01 bucket")
	}

	keys := models.SortedKeys(groups)
	if len(keys) != 2 || keys[0] != "2023-12" || keys[1] != "2024-03" {
		t.Errorf("keys = %v", keys)
	}

	// adjustment is applied in place
	if ts.Transactions[3].Date != "25.12.23" {
		t.Errorf("date not adjusted in place: %q", ts.Transactions[3].Date)
	}
}

func TestGroupByMonthInvalidDate(t *testing.T) {
	ts := models.NewTransactionSet([]models.Transaction{
		tx("01.03.24", "REWE"),
		tx("03/02/2024", "Uber"),
	})

	if _, err := GroupByMonth(ts, classifier.DefaultRules()); !errors.Is(err, models.ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}
