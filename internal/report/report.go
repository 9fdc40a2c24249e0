// Package report prints expense summaries and transaction listings as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"expenses/internal/models"
	"expenses/internal/services/metrics"
)

var (
	heading = color.New(color.Bold)
	warning = color.New(color.FgYellow)
)

// DisplayName turns a category key like "rent_and_utilities" into "Rent And Utilities"
func DisplayName(category string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(category, "_", " "))
}

// PrintMonthHeader starts the block of one month in monthly mode
func PrintMonthHeader(w io.Writer, month string, count int) {
	rule(w, "=", 60)
	heading.Fprintf(w, "Processing %s\n", month)
	rule(w, "=", 60)
	fmt.Fprintf(w, "Transactions for %s: %d\n", month, count)
}

// PrintSummary prints category totals, largest first, with a total line
func PrintSummary(w io.Writer, summary metrics.Summary, month string) {
	name := "EXPENSE SUMMARY BY CATEGORY"
	if month != "" {
		name += " - " + month
	}

	fmt.Fprintln(w)
	rule(w, "=", 50)
	heading.Fprintln(w, name)
	rule(w, "=", 50)

	for _, row := range summary.Rows {
		fmt.Fprintf(w, "%-20s: €%8.2f (%5.1f%%)\n", DisplayName(row.Category), row.Amount, row.Percent)
	}

	rule(w, "-", 50)
	fmt.Fprintf(w, "%-20s: €%8.2f\n", "Total Expenses", summary.Total)
}

// PrintNoExpenses is printed for a month without categorized expenses
func PrintNoExpenses(w io.Writer, month string) {
	warning.Fprintf(w, "No expenses found for %s\n", month)
}

// PrintUncategorized lists expenses that matched no category. With a month
// set nothing is printed for an empty list.
func PrintUncategorized(w io.Writer, ts *models.TransactionSet, month string) {
	expenses := ts.Expenses()
	width := 80
	name := "UNCATEGORIZED TRANSACTIONS"
	if month != "" {
		if expenses.Len() == 0 {
			return
		}
		width = 50
		name += " - " + month
	} else if expenses.Len() == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "All transactions were successfully categorized!")
		return
	}

	fmt.Fprintln(w)
	rule(w, "=", width)
	heading.Fprintln(w, name)
	rule(w, "=", width)
	fmt.Fprintln(w, "These transactions couldn't be confidently categorized:")
	fmt.Fprintln(w)

	for _, t := range expenses.Transactions {
		fmt.Fprintf(w, "Date: %s\n", t.Date)
		fmt.Fprintf(w, "Amount: €%s\n", t.Amount.StringFixed(2))
		fmt.Fprintf(w, "Description: %s\n", t.Description)
		fmt.Fprintf(w, "Beneficiary: %s\n", t.Beneficiary)
		fmt.Fprintf(w, "Type: %s\n", t.TransactionType)
		rule(w, "-", width)
	}
}

// PrintAudit lists every category with its transactions, then the
// uncategorized ones
func PrintAudit(w io.Writer, rows []metrics.AuditRow, uncategorized *models.TransactionSet) {
	fmt.Fprintln(w)
	rule(w, "=", 80)
	heading.Fprintln(w, "CATEGORY AUDIT")
	rule(w, "=", 80)

	for _, row := range rows {
		fmt.Fprintln(w)
		heading.Fprintf(w, "%s:\n", strings.ToUpper(strings.ReplaceAll(row.Category, "_", " ")))
		auditBlock(w, row.Total.StringFixed(2), row.Transactions)
	}

	expenses := uncategorized.Expenses()
	if expenses.Len() == 0 {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "UNCATEGORIZED:")
	auditBlock(w, expenses.SumExpenses().Abs().StringFixed(2), expenses.Transactions)
}

func auditBlock(w io.Writer, total string, transactions []models.Transaction) {
	rule(w, "-", 40)
	fmt.Fprintf(w, "Total: €%s (%d transactions)\n", total, len(transactions))
	fmt.Fprintln(w)
	for _, t := range transactions {
		fmt.Fprintf(w, "  %s | €%7s | %-30s | %s\n",
			t.Date, t.AbsAmount().StringFixed(2), truncate(t.Beneficiary, 30), truncate(t.Description, 40))
	}
}

func rule(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
