package dataloader

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expenses/internal/models"
)

// Row maps header names to the values of one statement line
type Row map[string]string

// CAMT export columns
const (
	camtPurposeColumn     = "Verwendungszweck"
	camtCounterpartColumn = "Beguenstigter/Zahlungspflichtiger"
	camtAmountColumn      = "Betrag"
	camtCurrencyColumn    = "Waehrung"
	camtBookingTextColumn = "Buchungstext"
)

// Debit/Credit export columns
const (
	dcDetailsColumn     = "Payment Details"
	dcBeneficiaryColumn = "Beneficiary / Originator"
	dcDebitColumn       = "Debit"
	dcCreditColumn      = "Credit"
	dcCurrencyColumn    = "Currency"
)

const debitCreditDateLayout = "1/2/2006"

// NormalizeRow maps a row of the given format onto a Transaction.
// It returns false for FormatUnknown.
func NormalizeRow(format models.Format, row Row) (models.Transaction, bool) {
	var t models.Transaction
	switch format {
	case models.FormatCAMT:
		t = normalizeCAMT(row)
	case models.FormatDebitCredit:
		t = normalizeDebitCredit(row)
	default:
		return models.Transaction{}, false
	}

	t.ID = uuid.NewString()
	t.Format = format
	t.RawRow = row
	return t, true
}

func normalizeCAMT(row Row) models.Transaction {
	return models.Transaction{
		Date:            row[camtDateColumn],
		Description:     row[camtPurposeColumn],
		Beneficiary:     row[camtCounterpartColumn],
		Amount:          ParseAmount(row[camtAmountColumn]),
		Currency:        currency(row, camtCurrencyColumn),
		TransactionType: row[camtBookingTextColumn],
	}
}

func normalizeDebitCredit(row Row) models.Transaction {
	return models.Transaction{
		Date:            ConvertDebitCreditDate(row[debitCreditDateColumn]),
		Description:     row[dcDetailsColumn],
		Beneficiary:     row[dcBeneficiaryColumn],
		Amount:          debitCreditAmount(row),
		Currency:        currency(row, dcCurrencyColumn),
		TransactionType: row[debitCreditTypeColumn],
	}
}

// debitCreditAmount takes the debit column when filled (already negative in
// the export), otherwise the credit column
func debitCreditAmount(row Row) decimal.Decimal {
	if debit := strings.TrimSpace(row[dcDebitColumn]); debit != "" {
		return ParseAmount(debit)
	}
	if credit := strings.TrimSpace(row[dcCreditColumn]); credit != "" {
		return ParseAmount(credit)
	}
	return decimal.Zero
}

// ConvertDebitCreditDate rewrites "MM/DD/YYYY" as "DD.MM.YY". Values that do
// not parse are returned unchanged.
func ConvertDebitCreditDate(s string) string {
	if s == "" {
		return ""
	}
	d, err := time.Parse(debitCreditDateLayout, s)
	if err != nil {
		return s
	}
	return d.Format(models.DateLayout)
}

func currency(row Row, column string) string {
	if v := row[column]; v != "" {
		return v
	}
	return models.DefaultCurrency
}
