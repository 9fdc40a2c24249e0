package classifier

import (
	"strings"

	"expenses/internal/models"
)

// Result is a transaction set split by category
type Result struct {
	Categories    map[string]*models.TransactionSet
	Uncategorized *models.TransactionSet
}

// Len returns the number of transactions across all buckets
func (res *Result) Len() int {
	n := res.Uncategorized.Len()
	for _, ts := range res.Categories {
		n += ts.Len()
	}
	return n
}

// Classify returns the first category, in declared order, with a keyword
// contained in the transaction text. Matching is plain substring search.
func (r *Rules) Classify(t *models.Transaction) (string, bool) {
	text := t.SearchText()
	for _, c := range r.categories {
		if containsAny(text, c.Keywords) {
			return c.Name, true
		}
	}
	return "", false
}

// IsEndOfMonth reports whether the transaction matches an end-of-month keyword
func (r *Rules) IsEndOfMonth(t *models.Transaction) bool {
	return containsAny(t.SearchText(), r.endOfMonth)
}

// Categorize assigns every transaction to one category or to Uncategorized
func (r *Rules) Categorize(ts *models.TransactionSet) *Result {
	res := &Result{
		Categories:    make(map[string]*models.TransactionSet),
		Uncategorized: &models.TransactionSet{},
	}

	for _, t := range ts.Transactions {
		name, ok := r.Classify(&t)
		if !ok {
			res.Uncategorized.Add(t)
			continue
		}
		if res.Categories[name] == nil {
			res.Categories[name] = &models.TransactionSet{}
		}
		res.Categories[name].Add(t)
	}
	return res
}

// containsAny checks if text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
