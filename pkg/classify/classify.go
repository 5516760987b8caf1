// Package classify maps free-text descriptions of legal situations to legal
// categories by keyword membership, with a one-hop expansion over a static
// category-relation table. It is a coarse recall filter meant to narrow
// which statutes to fetch, not a legal judgment.
package classify

import (
	"sort"
	"strings"
)

// Category is a coarse legal category tag.
type Category string

const (
	CategoryAdministrative Category = "administrative"
	CategoryCivil          Category = "civil"
	CategoryCriminal       Category = "criminal"
	CategoryConstitutional Category = "constitutional"
	CategoryEmployment     Category = "employment"
	CategoryDiscrimination Category = "discrimination"
)

// CategorySet is a set of category tags. Order-irrelevant, no duplicates.
type CategorySet map[Category]bool

// Slice returns the categories in sorted order, for stable output.
func (categorySet CategorySet) Slice() []Category {
	categories := make([]Category, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})
	return categories
}

// Strings returns the sorted categories as plain strings.
func (categorySet CategorySet) Strings() []string {
	categories := categorySet.Slice()
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}
	return names
}

// Tables bundles the static classification data: per-category keyword
// lists, the category-relation table for one-hop expansion, and the mapping
// from category to the BWB identifier of its representative law. Tables are
// injected at construction so tests and deployments can substitute
// alternate data; a Classifier never mutates them.
type Tables struct {
	// Keywords lists, per category, the Dutch terms whose presence in a
	// situation text selects that category. Lists intentionally overlap
	// across categories ("contract" is both civil and employment).
	Keywords map[Category][]string `yaml:"keywords"`

	// Relations maps a category to the related categories added by one
	// application of Expand. One level deep, no transitive closure.
	Relations map[Category][]Category `yaml:"relations"`

	// Laws maps each category to the BWB identifier of its representative
	// law.
	Laws map[Category]string `yaml:"laws"`
}

// Classifier performs keyword classification over a fixed table set.
type Classifier struct {
	tables Tables
}

// NewClassifier creates a Classifier over the given tables. Passing the
// zero Tables value yields a classifier that matches nothing; use
// DefaultTables for the standard data.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Classify returns the set of categories whose keyword list has at least
// one case-insensitive substring match in the text. Re-running on the same
// text yields the same set.
func (classifier *Classifier) Classify(text string) CategorySet {
	matched := CategorySet{}
	lowered := strings.ToLower(text)

	for category, keywords := range classifier.tables.Keywords {
		for _, keyword := range keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				matched[category] = true
				break
			}
		}
	}

	return matched
}

// Expand returns the union of the input set and the directly related
// categories of each member: one application of the relation table, one
// hop only. The input set is not modified.
func (classifier *Classifier) Expand(categories CategorySet) CategorySet {
	expanded := CategorySet{}
	for category := range categories {
		expanded[category] = true
	}

	for category := range categories {
		for _, related := range classifier.tables.Relations[category] {
			expanded[related] = true
		}
	}

	return expanded
}

// LawFor returns the BWB identifier of the representative law for a
// category, if the tables map one.
func (classifier *Classifier) LawFor(category Category) (string, bool) {
	bwbID, exists := classifier.tables.Laws[category]
	return bwbID, exists
}

// Categories returns the categories known to the keyword tables, sorted.
func (classifier *Classifier) Categories() []Category {
	known := CategorySet{}
	for category := range classifier.tables.Keywords {
		known[category] = true
	}
	return known.Slice()
}
