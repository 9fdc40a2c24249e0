// Package periods moves end-of-month payments into the month they belong to
// and buckets transactions by calendar month.
package periods

import (
	"time"

	"expenses/internal/models"
	"expenses/internal/services/classifier"
)

const (
	// lastEarlyDay is the last day of a month on which an end-of-month
	// payment is still counted for the previous month
	lastEarlyDay = 7

	// adjustedDay is the day such payments are moved to
	adjustedDay = 25
)

// AdjustDate moves a transaction matching an end-of-month keyword and posted
// on day 1-7 to the 25th of the previous month. It reports whether the date
// changed. A matching transaction with an unparsable date is an error.
func AdjustDate(t *models.Transaction, rules *classifier.Rules) (bool, error) {
	if !rules.IsEndOfMonth(t) {
		return false, nil
	}

	d, err := t.ParseDate()
	if err != nil {
		return false, err
	}
	if d.Day() > lastEarlyDay {
		return false, nil
	}

	// month 0 normalizes to December of the previous year
	t.SetDate(time.Date(d.Year(), d.Month()-1, adjustedDay, 0, 0, 0, 0, time.UTC))
	return true, nil
}

// AdjustDates applies AdjustDate to every transaction in place and returns
// how many were moved
func AdjustDates(ts *models.TransactionSet, rules *classifier.Rules) (int, error) {
	moved := 0
	for i := range ts.Transactions {
		changed, err := AdjustDate(&ts.Transactions[i], rules)
		if err != nil {
			return moved, err
		}
		if changed {
			moved++
		}
	}
	return moved, nil
}

// GroupByMonth adjusts end-of-month dates and then buckets the set by
// "YYYY-MM". Any unparsable date aborts the grouping.
func GroupByMonth(ts *models.TransactionSet, rules *classifier.Rules) (map[string]*models.TransactionSet, error) {
	if _, err := AdjustDates(ts, rules); err != nil {
		return nil, err
	}
	return ts.GroupByMonth()
}
