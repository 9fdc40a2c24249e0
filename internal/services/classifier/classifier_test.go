package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"expenses/internal/models"
)

func expense(description, beneficiary, kind string) models.Transaction {
	return models.Transaction{
		Date:            "01.03.24",
		Description:     description,
		Beneficiary:     beneficiary,
		TransactionType: kind,
		Amount:          decimal.RequireFromString("-10"),
	}
}

func TestClassifyDefaultRules(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		tx       models.Transaction
		expected string
	}{
		{"grocery in description", expense("REWE Markt", "", ""), "groceries"},
		{"transport", expense("UBER TRIP", "", ""), "transport"},
		{"match in beneficiary", expense("Rechnung 4711", "Vattenfall Europe", ""), "rent_and_utilities"},
		{"match in transaction type", expense("Abschluss", "", "Entgeltabschluss"), "bank_fees"},
		{"case insensitive", expense("NETFLIX.COM", "", ""), "entertainment"},
		{"umlaut keyword", expense("DÖNER KEBAB", "", ""), "eating_out"},
		{"first category wins on tie", expense("Club Bar Mitte", "", ""), "eating_out"},
		{"substring over-match is kept", expense("Barbershop Neukölln", "", ""), "eating_out"},
		{"end of month payee", expense("Miete April", "Sev Petten", "Dauerauftrag"), "rent_and_utilities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rules.Classify(&tt.tx)
			if !ok {
				t.Fatalf("Classify(%q) found no category, want %q", tt.tx.SearchText(), tt.expected)
			}
			if got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.tx.SearchText(), got, tt.expected)
			}
		})
	}
}

func TestClassifyUncategorized(t *testing.T) {
	tx := expense("Überweisung", "Max Mustermann", "SEPA")
	if got, ok := DefaultRules().Classify(&tx); ok {
		t.Errorf("expected uncategorized, got %q", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	rules := DefaultRules()
	tx := expense("Lidl sagt danke", "Bar Centrale", "Kartenzahlung")

	first, _ := rules.Classify(&tx)
	for i := 0; i < 50; i++ {
		if got, _ := rules.Classify(&tx); got != first {
			t.Fatalf("run %d: got %q, first run gave %q", i, got, first)
		}
	}
	if first != "groceries" {
		t.Errorf("got %q, want groceries (declared before eating_out)", first)
	}
}

func TestCategoryOrderDecidesTies(t *testing.T) {
	a, _ := NewRules([]Category{
		{Name: "first", Keywords: []string{"shared"}},
		{Name: "second", Keywords: []string{"shared"}},
	}, nil)
	b, _ := NewRules([]Category{
		{Name: "second", Keywords: []string{"shared"}},
		{Name: "first", Keywords: []string{"shared"}},
	}, nil)

	tx := expense("a shared thing", "", "")
	if got, _ := a.Classify(&tx); got != "first" {
		t.Errorf("a.Classify = %q, want first", got)
	}
	if got, _ := b.Classify(&tx); got != "second" {
		t.Errorf("b.Classify = %q, want second", got)
	}
}

func TestCategorize(t *testing.T) {
	ts := models.NewTransactionSet([]models.Transaction{
		expense("REWE Markt", "", ""),
		expense("Lidl", "", ""),
		expense("UBER TRIP", "", ""),
		expense("Unknown merchant", "", ""),
	})

	res := DefaultRules().Categorize(ts)

	if res.Categories["groceries"].Len() != 2 {
		t.Errorf("groceries = %d, want 2", res.Categories["groceries"].Len())
	}
	if res.Categories["transport"].Len() != 1 {
		t.Errorf("transport = %d, want 1", res.Categories["transport"].Len())
	}
	if res.Uncategorized.Len() != 1 {
		t.Errorf("uncategorized = %d, want 1", res.Uncategorized.Len())
	}
	if res.Len() != ts.Len() {
		t.Errorf("result holds %d transactions, input had %d", res.Len(), ts.Len())
	}
	if _, ok := res.Categories["shopping"]; ok {
		t.Error("empty categories should not appear")
	}
}

func TestIsEndOfMonth(t *testing.T) {
	rules := DefaultRules()

	tx := expense("Miete", "SEV PETTEN GmbH", "")
	if !rules.IsEndOfMonth(&tx) {
		t.Error("expected end-of-month keyword match")
	}
	tx = expense("Miete", "Other landlord", "")
	if rules.IsEndOfMonth(&tx) {
		t.Error("unexpected end-of-month match")
	}
}

func TestNewRulesValidation(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
	}{
		{"missing name", []Category{{Name: " ", Keywords: []string{"x"}}}},
		{"duplicate name", []Category{{Name: "a", Keywords: []string{"x"}}, {Name: "a", Keywords: []string{"y"}}}},
		{"no keywords", []Category{{Name: "a", Keywords: []string{" ", ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRules(tt.categories, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRulesAreImmutable(t *testing.T) {
	input := []Category{{Name: "groceries", Keywords: []string{"REWE"}}}
	rules, err := NewRules(input, []string{"Sev Petten"})
	if err != nil {
		t.Fatalf("NewRules failed: %v", err)
	}

	input[0].Keywords[0] = "changed"
	cats := rules.Categories()
	cats[0].Keywords[0] = "changed too"
	eom := rules.EndOfMonthKeywords()
	eom[0] = "changed"

	tx := expense("rewe", "sev petten", "")
	if got, _ := rules.Classify(&tx); got != "groceries" {
		t.Errorf("rules changed through caller slices, got %q", got)
	}
	if !rules.IsEndOfMonth(&tx) {
		t.Error("end-of-month keywords changed through caller slice")
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `end_of_month:
  - Sev Petten
categories:
  - name: groceries
    keywords: [REWE, lidl]
  - name: transport
    keywords:
      - uber
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}

	cats := rules.Categories()
	if len(cats) != 2 || cats[0].Name != "groceries" || cats[1].Name != "transport" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if cats[0].Keywords[0] != "rewe" {
		t.Errorf("keywords should be lowercased, got %q", cats[0].Keywords[0])
	}
	if eom := rules.EndOfMonthKeywords(); len(eom) != 1 || eom[0] != "sev petten" {
		t.Errorf("end of month = %v", eom)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("end_of_month: [x]\n"), 0644)
	if _, err := LoadRules(empty); err == nil {
		t.Error("expected error for rules without categories")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("categories: [name: {\n"), 0644)
	if _, err := LoadRules(broken); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
