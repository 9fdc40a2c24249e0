// Package testutil provides statement fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CAMTHeader is the header line of a CAMT V8 export
const CAMTHeader = `"Auftragskonto";"Buchungstag";"Valutadatum";"Buchungstext";"Verwendungszweck";"Beguenstigter/Zahlungspflichtiger";"Kontonummer/IBAN";"BIC (SWIFT-Code)";"Betrag";"Waehrung";"Info"`

// DebitCreditHeader is the header line of a debit/credit export
const DebitCreditHeader = "Booking date;Value date;Transaction Type;Beneficiary / Originator;Payment Details;IBAN;BIC;Customer Reference;Debit;Credit;Currency"

// debitCreditPreamble precedes the header in debit/credit exports
var debitCreditPreamble = []string{
	"Transactions Current Account (DE00 1234 5678 0000 0000 00)",
	"Customer number: 1234567",
	"01/01/2024 - 03/31/2024",
	"",
}

// CAMTRow is one line of a CAMT export
type CAMTRow struct {
	Date         string
	BookingText  string
	Purpose      string
	Counterparty string
	Amount       string
	Currency     string
}

// DebitCreditRow is one line of a debit/credit export
type DebitCreditRow struct {
	BookingDate string
	Type        string
	Beneficiary string
	Details     string
	Debit       string
	Credit      string
	Currency    string
}

// CAMTStatement renders rows as a CAMT export
func CAMTStatement(rows ...CAMTRow) string {
	lines := []string{CAMTHeader}
	for _, r := range rows {
		fields := []string{"DE00123456780000000000", r.Date, r.Date, r.BookingText, r.Purpose, r.Counterparty, "DE99000000000000000000", "TESTDEFFXXX", r.Amount, r.Currency, "Umsatz gebucht"}
		lines = append(lines, quoteAll(fields))
	}
	return strings.Join(lines, "\n") + "\n"
}

// DebitCreditStatement renders rows as a debit/credit export including its
// preamble lines
func DebitCreditStatement(rows ...DebitCreditRow) string {
	lines := append([]string{}, debitCreditPreamble...)
	lines = append(lines, DebitCreditHeader)
	for _, r := range rows {
		fields := []string{r.BookingDate, r.BookingDate, r.Type, r.Beneficiary, r.Details, "", "", "", r.Debit, r.Credit, r.Currency}
		lines = append(lines, strings.Join(fields, ";"))
	}
	lines = append(lines, "Account balance;;;;;;;;;;EUR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// WriteStatement writes content into dir/name and returns the path
func WriteStatement(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write statement %s: %v", name, err)
	}
	return path
}

func quoteAll(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ";")
}
