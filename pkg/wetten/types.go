// Package wetten provides a connector to wetten.overheid.nl, the Dutch
// government legislation repository: fetching laws by BWB identifier,
// normalizing legislation pages into a structured document model, and
// searching the site for candidate laws.
package wetten

import (
	"time"
)

// LawStatus indicates whether a law is currently in force.
type LawStatus string

const (
	StatusInForce  LawStatus = "In force"
	StatusRepealed LawStatus = "Repealed"
	StatusFuture   LawStatus = "Future"
)

// LegalDomain classifies a law into one of the fixed legal categories.
type LegalDomain string

const (
	DomainCivil          LegalDomain = "Civil Law"
	DomainCriminal       LegalDomain = "Criminal Law"
	DomainConstitutional LegalDomain = "Constitutional Law"
	DomainAdministrative LegalDomain = "Administrative Law"
	DomainTax            LegalDomain = "Tax Law"
	DomainEmployment     LegalDomain = "Employment Law"
	DomainEqualTreatment LegalDomain = "Equal Treatment Law"
	DomainOther          LegalDomain = "Other"
	DomainUnknown        LegalDomain = "Unknown"
)

// UnknownDate is the sentinel for an entry-into-force date that could not
// be determined from the page or the known-law table.
const UnknownDate = "Unknown"

// Metadata holds the identifying fields of a law. After normalization every
// field is populated: missing data is filled with a documented default,
// never left empty, so downstream consumers never handle partial metadata.
type Metadata struct {
	// Name is the full name of the law (e.g. "Algemene wet bestuursrecht").
	Name string `json:"name_of_law"`

	// CitationTitle is the short citation form (e.g. "Awb").
	CitationTitle string `json:"citation_title"`

	// BWBID is the externally issued identification number (e.g. "BWBR0005537").
	BWBID string `json:"identification_number"`

	// Domain is the legal domain inferred from the title or the known-law table.
	Domain LegalDomain `json:"legal_domain"`

	// Authority is the regulatory authority responsible for the law.
	Authority string `json:"regulatory_authority"`

	// EntryIntoForce is the date of entry into force in ISO form (YYYY-MM-DD),
	// or UnknownDate when it could not be determined.
	EntryIntoForce string `json:"date_of_entry_into_force"`

	// Version labels the retrieved consolidation of the law.
	Version string `json:"version"`

	// Status indicates whether the law is in force, repealed, or future.
	Status LawStatus `json:"status"`
}

// HierarchicalPosition describes free-text relationships of a law to higher
// and neighbouring legal orders. Empty string means "not determined", not
// "no relationship exists".
type HierarchicalPosition struct {
	RelationToConstitution string `json:"relationship_to_constitution,omitempty"`
	RelationToEULaw        string `json:"relationship_to_eu_law,omitempty"`
	RelationToTreaties     string `json:"relationship_to_international_treaties,omitempty"`
	NationalPosition       string `json:"position_within_national_legislation,omitempty"`
}

// Paragraph is a numbered subdivision (lid) of an article.
type Paragraph struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Article is a single provision of a law. Number may contain letters or
// sub-numbers (e.g. "6a", "7:610"). All string fields are non-nil; absent
// sub-elements leave the field empty.
type Article struct {
	Number     string      `json:"number"`
	Title      string      `json:"title"`
	Text       string      `json:"text"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Chapter is a hoofdstuk grouping articles.
type Chapter struct {
	Number   string    `json:"number"`
	Title    string    `json:"title"`
	Articles []Article `json:"articles"`
}

// Section is an afdeling grouping articles.
type Section struct {
	Number   string    `json:"number"`
	Title    string    `json:"title"`
	Articles []Article `json:"articles"`
}

// Content is the structural tree of a law. The three slices are always
// present (possibly empty, never nil) so iteration code never nil-checks.
// Articles holds the flat article sequence for documents without chapter
// structure; Chapters and Sections additionally carry their own articles.
type Content struct {
	Articles []Article `json:"articles"`
	Chapters []Chapter `json:"chapters"`
	Sections []Section `json:"sections"`
}

// NewContent returns an empty content tree with all sequences initialized.
func NewContent() Content {
	return Content{
		Articles: []Article{},
		Chapters: []Chapter{},
		Sections: []Section{},
	}
}

// Law is the normalized representation of one piece of legislation,
// identified uniquely by Metadata.BWBID. Constructed once per
// fetch-and-normalize cycle and not mutated afterwards.
type Law struct {
	Metadata Metadata             `json:"metadata"`
	Position HierarchicalPosition `json:"hierarchical_position"`
	Content  Content              `json:"content"`
}

// SearchResult is one candidate law returned by a search.
type SearchResult struct {
	Title string `json:"title"`
	BWBID string `json:"bwb_id"`
	URL   string `json:"url"`
}

// DefaultRequestInterval is the default minimum interval between HTTP
// requests to wetten.overheid.nl.
const DefaultRequestInterval = 1 * time.Second
