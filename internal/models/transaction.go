package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Format identifies which bank export layout a transaction was read from
type Format string

const (
	FormatUnknown     Format = ""
	FormatCAMT        Format = "camt"
	FormatDebitCredit Format = "debit_credit"
)

// String returns a human readable name for the format
func (f Format) String() string {
	switch f {
	case FormatCAMT:
		return "CAMT"
	case FormatDebitCredit:
		return "Debit/Credit"
	default:
		return "unknown"
	}
}

const (
	// DateLayout is the canonical day.month.two-digit-year form of Transaction.Date
	DateLayout = "02.01.06"

	// dateParseLayout accepts unpadded day and month as well
	dateParseLayout = "2.1.06"

	// MonthLayout is the format of monthly bucket keys ("2024-03")
	MonthLayout = "2006-01"

	// DefaultCurrency is used when a statement row carries no currency
	DefaultCurrency = "EUR"
)

// ErrInvalidDate is reported when a transaction date is not in DateLayout form
var ErrInvalidDate = errors.New("invalid transaction date")

// InvalidDateError identifies the transaction whose date could not be parsed
type InvalidDateError struct {
	Transaction Transaction
	Err         error
}

func (e *InvalidDateError) Error() string {
	t := e.Transaction
	return fmt.Sprintf("no valid date found in transaction (date=%q beneficiary=%q description=%q amount=%s file=%s)",
		t.Date, t.Beneficiary, t.Description, t.Amount.String(), t.SourceFile)
}

// Is reports whether target is ErrInvalidDate
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// Transaction represents a single normalized statement row
type Transaction struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Beneficiary     string          `json:"beneficiary"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	TransactionType string          `json:"transaction_type"`
	SourceFile      string          `json:"source_file"`
	Format          Format          `json:"format"`

	// RawRow keeps the statement header -> value mapping of the source line
	RawRow map[string]string `json:"raw_row,omitempty"`
}

// SearchText is the lowercase text that keyword rules are matched against
func (t *Transaction) SearchText() string {
	return strings.ToLower(t.Description) + " " +
		strings.ToLower(t.Beneficiary) + " " +
		strings.ToLower(t.TransactionType)
}

// IsExpense reports whether the transaction is an outflow
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// AbsAmount returns the magnitude of the amount
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// ParseDate parses Date in DateLayout form
func (t *Transaction) ParseDate() (time.Time, error) {
	d, err := ParseDate(t.Date)
	if err != nil {
		return time.Time{}, &InvalidDateError{Transaction: *t, Err: err}
	}
	return d, nil
}

// SetDate stores d in DateLayout form
func (t *Transaction) SetDate(d time.Time) {
	t.Date = d.Format(DateLayout)
}

// MonthKey returns the "YYYY-MM" bucket the transaction belongs to
func (t *Transaction) MonthKey() (string, error) {
	d, err := t.ParseDate()
	if err != nil {
		return "", err
	}
	return d.Format(MonthLayout), nil
}

// ParseDate parses a day.month.two-digit-year date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateParseLayout, s)
}

// TransactionSet wraps a slice with grouping/aggregation methods
type TransactionSet struct {
	Transactions []Transaction
}

// NewTransactionSet creates a new TransactionSet from a slice
func NewTransactionSet(transactions []Transaction) *TransactionSet {
	return &TransactionSet{Transactions: transactions}
}

// Len returns the number of transactions
func (ts *TransactionSet) Len() int {
	return len(ts.Transactions)
}

// Add appends a transaction
func (ts *TransactionSet) Add(t Transaction) {
	ts.Transactions = append(ts.Transactions, t)
}

// Expenses returns only transactions with a negative amount
func (ts *TransactionSet) Expenses() *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.IsExpense() {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// SumExpenses returns the sum of all strictly negative amounts
func (ts *TransactionSet) SumExpenses() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range ts.Transactions {
		if t.IsExpense() {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// GroupByMonth buckets transactions by their "YYYY-MM" key.
// A transaction whose date does not parse aborts the grouping.
func (ts *TransactionSet) GroupByMonth() (map[string]*TransactionSet, error) {
	result := make(map[string]*TransactionSet)
	for _, t := range ts.Transactions {
		month, err := t.MonthKey()
		if err != nil {
			return nil, err
		}
		if result[month] == nil {
			result[month] = &TransactionSet{}
		}
		result[month].Transactions = append(result[month].Transactions, t)
	}
	return result, nil
}

// SortedKeys returns the keys of a grouping in ascending order
func SortedKeys(groups map[string]*TransactionSet) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
