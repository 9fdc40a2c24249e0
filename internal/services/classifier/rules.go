package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a named bucket and the keywords that select it
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Rules is the immutable keyword configuration used for classification and
// end-of-month date correction. Category order decides ties.
type Rules struct {
	categories []Category
	endOfMonth []string
}

// rulesFile is the YAML layout accepted by LoadRules
type rulesFile struct {
	EndOfMonth []string   `yaml:"end_of_month"`
	Categories []Category `yaml:"categories"`
}

// NewRules validates and copies the given tables. Keywords are lowercased.
func NewRules(categories []Category, endOfMonth []string) (*Rules, error) {
	r := &Rules{}
	seen := make(map[string]bool)

	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		keywords := lowerAll(c.Keywords)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", name)
		}
		r.categories = append(r.categories, Category{Name: name, Keywords: keywords})
	}

	r.endOfMonth = lowerAll(endOfMonth)
	return r, nil
}

// LoadRules reads a rule table from a YAML file
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing rules %s: %w", path, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("rules %s define no categories", path)
	}
	return NewRules(f.Categories, f.EndOfMonth)
}

// Categories returns a copy of the category table in declared order
func (r *Rules) Categories() []Category {
	out := make([]Category, len(r.categories))
	for i, c := range r.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// EndOfMonthKeywords returns a copy of the end-of-month keywords
func (r *Rules) EndOfMonthKeywords() []string {
	return append([]string(nil), r.endOfMonth...)
}

// lowerAll lowercases and trims keywords, dropping empty ones
func lowerAll(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
