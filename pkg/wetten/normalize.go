package wetten

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Normalizer turns raw legislation page markup into a Law. Legislation
// markup is not guaranteed stable, so every metadata field runs through a
// layered fallback chain: primary selector, alternate selectors, regex scan
// of the raw markup, the known-law table, and finally a generic default.
// Normalize never fails; a page that yields nothing produces a Law built
// from fallbacks alone.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil logger falls back to
// slog.Default().
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

var (
	geldendVanPattern = regexp.MustCompile(`Geldend van (\d{2}-\d{2}-\d{4})`)
	citationPattern   = regexp.MustCompile(`\(([^)]+)\)`)
	ministryPattern   = regexp.MustCompile(`Minister(?:ie)? van [A-Za-z, \-]+`)
	euRelationPattern = regexp.MustCompile(`(?:Europese richtlijn|EU-verordening)[^<.]*`)
)

// Normalize parses markup into a Law for the given (canonical) BWB
// identifier. Markup that cannot be parsed at all degrades to the known-law
// table or generic defaults; a malformed fragment inside one field never
// aborts extraction of the rest.
func (normalizer *Normalizer) Normalize(markup string, bwbID string) *Law {
	canonicalID, _ := CanonicalBWBID(bwbID)

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil || strings.TrimSpace(markup) == "" {
		if err != nil {
			normalizer.logger.Warn("markup parse failed, using fallback metadata",
				"bwb_id", canonicalID, "error", err)
		}
		return &Law{
			Metadata: defaultMetadata(canonicalID),
			Content:  NewContent(),
		}
	}

	law := &Law{
		Metadata: normalizer.extractMetadata(root, markup, canonicalID),
		Position: normalizer.extractPosition(root, markup, canonicalID),
		Content:  normalizer.extractContent(root, canonicalID),
	}
	return law
}

// extractMetadata runs the per-field fallback chains. Fields are
// independent: the order of extraction does not affect the result.
func (normalizer *Normalizer) extractMetadata(root *html.Node, markup string, bwbID string) Metadata {
	fallback := defaultMetadata(bwbID)

	name := normalizer.extractField(bwbID, "name", func() string {
		return firstText(root,
			byTagClass("h1", "wet-titel"),
			byTagClass("h1", "wet-title"),
			byTagClass("h1", "titel"),
			byTag("h1"))
	})
	if name == "" {
		name = fallback.Name
	}

	citation := normalizer.extractField(bwbID, "citation", func() string {
		citationText := firstText(root, byClass("wet-citatie"))
		if match := citationPattern.FindStringSubmatch(citationText); match != nil {
			return match[1]
		}
		return citationText
	})
	if citation == "" {
		if known, exists := LookupKnownLaw(bwbID); exists {
			citation = known.CitationTitle
		} else {
			citation = name
		}
	}

	dateText := normalizer.extractField(bwbID, "entry_date", func() string {
		if text := firstText(root, byClass("wet-inwerkingtreding")); text != "" {
			return text
		}
		if match := geldendVanPattern.FindStringSubmatch(markup); match != nil {
			return match[1]
		}
		return ""
	})
	entryDate := resolveEntryDate(dateText, bwbID)

	authority := normalizer.extractField(bwbID, "authority", func() string {
		if text := firstText(root, byClass("wet-beheerder")); text != "" {
			return text
		}
		return strings.TrimSpace(ministryPattern.FindString(markup))
	})
	if authority == "" {
		authority = fallback.Authority
	}

	status := normalizer.extractField(bwbID, "status", func() string {
		return statusText(root)
	})

	domain := InferLegalDomain(name)
	if domain == DomainUnknown {
		domain = fallback.Domain
	}

	version := entryDate
	if version == UnknownDate {
		version = "1.0"
	}

	return Metadata{
		Name:           name,
		CitationTitle:  citation,
		BWBID:          bwbID,
		Domain:         domain,
		Authority:      authority,
		EntryIntoForce: entryDate,
		Version:        version,
		Status:         parseStatus(status),
	}
}

// statusText finds the value of the "Status" definition-list entry, if the
// page carries one.
func statusText(root *html.Node) string {
	statusLabel := findFirst(root, func(n *html.Node) bool {
		return n.Data == "dt" && strings.Contains(nodeText(n), "Status")
	})
	if statusLabel == nil {
		return ""
	}
	for sibling := statusLabel.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type == html.ElementNode && sibling.Data == "dd" {
			return nodeText(sibling)
		}
	}
	return ""
}

// parseStatus maps the Dutch status string to a LawStatus. In force is the
// default when the page says nothing.
func parseStatus(text string) LawStatus {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "vervallen"):
		return StatusRepealed
	case strings.Contains(lowered, "toekomstig"):
		return StatusFuture
	default:
		return StatusInForce
	}
}

// domainStem pairs a Dutch legal-terminology stem with its domain.
type domainStem struct {
	stem   string
	domain LegalDomain
}

// domainStems is the fixed ordered stem list for domain inference; first
// match against the lowercased title wins. Equal-treatment stems precede
// the administrative ones because "algemene wet" alone would otherwise
// claim the Algemene wet gelijke behandeling.
var domainStems = []domainStem{
	{"strafrecht", DomainCriminal},
	{"strafvordering", DomainCriminal},
	{"strafbaar", DomainCriminal},
	{"misdrijf", DomainCriminal},
	{"burgerlijk", DomainCivil},
	{"vermogen", DomainCivil},
	{"verbintenis", DomainCivil},
	{"civiel", DomainCivil},
	{"grondwet", DomainConstitutional},
	{"constitut", DomainConstitutional},
	{"belasting", DomainTax},
	{"fiscaal", DomainTax},
	{"arbeid", DomainEmployment},
	{"loon", DomainEmployment},
	{"gelijke behandeling", DomainEqualTreatment},
	{"discriminatie", DomainEqualTreatment},
	{"bestuursrecht", DomainAdministrative},
	{"bestuurs", DomainAdministrative},
	{"algemene wet", DomainAdministrative},
}

// InferLegalDomain infers the legal domain from a law title by substring
// matching the fixed stem list against the lowercased title. No match
// yields DomainUnknown, the canonical no-match default.
func InferLegalDomain(title string) LegalDomain {
	lowered := strings.ToLower(title)
	for _, candidate := range domainStems {
		if strings.Contains(lowered, candidate.stem) {
			return candidate.domain
		}
	}
	return DomainUnknown
}

// extractPosition pulls the hierarchical-position relations the page
// exposes. Only the EU relation is currently derivable from the markup;
// the other three stay undetermined.
func (normalizer *Normalizer) extractPosition(root *html.Node, markup string, bwbID string) HierarchicalPosition {
	euRelation := normalizer.extractField(bwbID, "eu_relation", func() string {
		euNode := findFirst(root, func(n *html.Node) bool {
			text := nodeText(n)
			return (strings.Contains(text, "Europese richtlijn") || strings.Contains(text, "EU-verordening")) &&
				n.FirstChild != nil && n.FirstChild.Type == html.TextNode
		})
		if euNode != nil {
			return nodeText(euNode)
		}
		return strings.TrimSpace(euRelationPattern.FindString(markup))
	})

	return HierarchicalPosition{
		RelationToEULaw: euRelation,
	}
}

// extractContent walks the markup for article, chapter, and section
// containers independently. Chapters and sections re-scan for their
// contained articles. A malformed container leaves its defaults and the
// rest of the document still parses.
func (normalizer *Normalizer) extractContent(root *html.Node, bwbID string) Content {
	content := NewContent()

	normalizer.extractStep(bwbID, "articles", func() {
		for _, node := range findAll(root, byClass("wet-artikel")) {
			content.Articles = append(content.Articles, extractArticle(node))
		}
	})

	normalizer.extractStep(bwbID, "chapters", func() {
		for _, node := range findAll(root, byClass("wet-hoofdstuk")) {
			chapter := Chapter{
				Number:   childText(node, "hoofdstuk-nummer"),
				Title:    childText(node, "hoofdstuk-titel"),
				Articles: []Article{},
			}
			for _, articleNode := range findAll(node, byClass("wet-artikel")) {
				chapter.Articles = append(chapter.Articles, extractArticle(articleNode))
			}
			content.Chapters = append(content.Chapters, chapter)
		}
	})

	normalizer.extractStep(bwbID, "sections", func() {
		for _, node := range findAll(root, byClass("wet-afdeling")) {
			section := Section{
				Number:   childText(node, "afdeling-nummer"),
				Title:    childText(node, "afdeling-titel"),
				Articles: []Article{},
			}
			for _, articleNode := range findAll(node, byClass("wet-artikel")) {
				section.Articles = append(section.Articles, extractArticle(articleNode))
			}
			content.Sections = append(content.Sections, section)
		}
	})

	return content
}

// extractArticle pulls the number/title/text sub-fields of one article
// container. Absent sub-elements leave empty strings.
func extractArticle(node *html.Node) Article {
	article := Article{
		Number:     childText(node, "artikel-nummer"),
		Title:      childText(node, "artikel-titel"),
		Text:       childText(node, "artikel-tekst"),
		Paragraphs: []Paragraph{},
	}

	for _, paragraphNode := range findAll(node, byClass("artikel-lid")) {
		article.Paragraphs = append(article.Paragraphs, Paragraph{
			Number: childText(paragraphNode, "lid-nummer"),
			Text:   childText(paragraphNode, "lid-tekst"),
		})
	}

	return article
}

// extractField runs one field's extraction, converting a panic into a
// logged warning and an empty result so the field keeps its default.
func (normalizer *Normalizer) extractField(bwbID string, field string, extract func() string) (value string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			normalizer.logger.Warn("field extraction failed",
				"bwb_id", bwbID, "field", field, "panic", recovered)
			value = ""
		}
	}()
	return strings.TrimSpace(extract())
}

// extractStep runs one content-extraction pass with the same panic
// absorption as extractField.
func (normalizer *Normalizer) extractStep(bwbID string, step string, extract func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			normalizer.logger.Warn("content extraction failed",
				"bwb_id", bwbID, "step", step, "panic", recovered)
		}
	}()
	extract()
}
