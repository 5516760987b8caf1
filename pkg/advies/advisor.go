// Package advies turns a free-text description of a legal situation into
// structured advice: the relevant legal categories, the statutes that cover
// them, boilerplate guidance, and references to the underlying laws.
package advies

import (
	"log/slog"

	"github.com/coolbeans/wetwijzer/pkg/classify"
	"github.com/coolbeans/wetwijzer/pkg/wetten"
)

// LawParser resolves a BWB identifier to a normalized law. Satisfied by
// *wetten.WettenClient; the interface allows injection of mock parsers for
// testing.
type LawParser interface {
	ParseLaw(bwbID string) *wetten.Law
}

// Reference is one citation of a law backing the advice.
type Reference struct {
	Name       string `json:"name"`
	Citation   string `json:"citation"`
	BWBID      string `json:"bwb_id"`
	Domain     string `json:"domain"`
	EntryForce string `json:"entry_force"`
	Authority  string `json:"authority"`
}

// Analysis is the caller-facing result of analyzing one situation.
type Analysis struct {
	Situation          string      `json:"situation"`
	RelevantCategories []string    `json:"relevant_categories"`
	RelevantLaws       []string    `json:"relevant_laws"`
	Advice             string      `json:"advice"`
	References         []Reference `json:"references"`
}

// Advisor correlates classifier output with fetched laws to assemble
// advice. Each analysis is independent; the advisor keeps no cross-call
// state beyond whatever cache the injected parser carries.
type Advisor struct {
	parser     LawParser
	classifier *classify.Classifier
	logger     *slog.Logger
}

// NewAdvisor creates an Advisor. A nil classifier gets the default tables;
// a nil logger falls back to slog.Default().
func NewAdvisor(parser LawParser, classifier *classify.Classifier, logger *slog.Logger) *Advisor {
	if classifier == nil {
		classifier = classify.NewClassifier(classify.DefaultTables())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Advisor{
		parser:     parser,
		classifier: classifier,
		logger:     logger,
	}
}

// Analyze classifies the situation, expands the categories one hop, parses
// the representative law of each category, and assembles the advice text.
// A law that cannot be fetched degrades to its fallback metadata inside the
// parser; Analyze itself never fails.
func (advisor *Advisor) Analyze(situation string) *Analysis {
	categories := advisor.classifier.Classify(situation)
	expanded := advisor.classifier.Expand(categories)
	advisor.logger.Info("situation classified",
		"categories", categories.Strings(),
		"expanded", expanded.Strings())

	var laws []*wetten.Law
	for _, category := range expanded.Slice() {
		bwbID, mapped := advisor.classifier.LawFor(category)
		if !mapped {
			continue
		}
		laws = append(laws, advisor.parser.ParseLaw(bwbID))
	}

	lawNames := make([]string, 0, len(laws))
	references := make([]Reference, 0, len(laws))
	for _, law := range laws {
		lawNames = append(lawNames, law.Metadata.Name)
		references = append(references, Reference{
			Name:       law.Metadata.Name,
			Citation:   law.Metadata.CitationTitle,
			BWBID:      law.Metadata.BWBID,
			Domain:     string(law.Metadata.Domain),
			EntryForce: law.Metadata.EntryIntoForce,
			Authority:  law.Metadata.Authority,
		})
	}

	return &Analysis{
		Situation:          situation,
		RelevantCategories: expanded.Strings(),
		RelevantLaws:       lawNames,
		Advice:             buildAdvice(expanded, laws),
		References:         references,
	}
}
