package advies

import (
	"fmt"
	"strings"

	"github.com/coolbeans/wetwijzer/pkg/classify"
	"github.com/coolbeans/wetwijzer/pkg/wetten"
)

const noLawAdvice = "Geen relevante wetgeving gevonden voor deze situatie."

// maxCitedArticles caps the number of articles quoted per law.
const maxCitedArticles = 3

// buildAdvice assembles the Dutch advice text: one intro line per law,
// then category-specific guidance with up to three matching articles from
// the law that covers the category. Discrimination takes precedence over
// the other category blocks; workplace discrimination additionally pulls
// in the employment guidance.
func buildAdvice(categories classify.CategorySet, laws []*wetten.Law) string {
	if len(laws) == 0 {
		return noLawAdvice
	}

	var parts []string
	for _, law := range laws {
		parts = append(parts, fmt.Sprintf(
			"De %s (%s) is relevant voor uw situatie. Deze wet is van kracht sinds %s en wordt beheerd door %s.",
			law.Metadata.Name, law.Metadata.CitationTitle,
			law.Metadata.EntryIntoForce, law.Metadata.Authority))
	}

	switch {
	case categories[classify.CategoryDiscrimination]:
		parts = appendArticleBlock(parts, laws, wetten.DomainEqualTreatment,
			"Relevante artikelen uit de Algemene wet gelijke behandeling:",
			[]string{"discriminatie", "gelijke behandeling"})
		parts = append(parts,
			"\nBij discriminatie heeft u verschillende rechtsmiddelen tot uw beschikking:\n"+
				"1. U kunt een klacht indienen bij het College voor de Rechten van de Mens\n"+
				"2. U kunt contact opnemen met een antidiscriminatiebureau in uw regio\n"+
				"3. U kunt juridische bijstand zoeken via het Juridisch Loket of een advocaat\n"+
				"4. In geval van strafbare discriminatie kunt u aangifte doen bij de politie")
		if categories[classify.CategoryEmployment] {
			parts = appendArticleBlock(parts, laws, wetten.DomainEmployment,
				"Relevante artikelen uit de Wet op de arbeidsovereenkomst:",
				[]string{"discriminatie", "gelijke behandeling", "arbeidsvoorwaarden"})
			parts = append(parts,
				"\nSpecifiek voor discriminatie op het werk:\n"+
					"1. Meld de situatie eerst bij uw leidinggevende of HR-afdeling\n"+
					"2. Neem contact op met de vertrouwenspersoon binnen uw organisatie\n"+
					"3. Schakel uw ondernemingsraad in als die er is\n"+
					"4. Overweeg contact met een vakbond voor juridische ondersteuning")
		}
	case categories[classify.CategoryEmployment]:
		parts = appendArticleBlock(parts, laws, wetten.DomainEmployment,
			"Relevante artikelen uit de Wet op de arbeidsovereenkomst:",
			[]string{"arbeidsovereenkomst", "ontslag", "salaris"})
		parts = append(parts,
			"\nBij arbeidsrechtelijke kwesties:\n"+
				"1. Controleer uw arbeidsovereenkomst en de CAO\n"+
				"2. Neem contact op met uw vakbond of een arbeidsrechtadvocaat\n"+
				"3. Het Juridisch Loket kan u informeren over uw rechten\n"+
				"4. Bewaar alle relevante documenten en correspondentie")
	case categories[classify.CategoryAdministrative]:
		parts = appendArticleBlock(parts, laws, wetten.DomainAdministrative,
			"Relevante artikelen uit de Algemene wet bestuursrecht:",
			[]string{"bezwaar", "beroep", "besluit"})
		parts = append(parts,
			"\nVoor procedures met de overheid:\n"+
				"1. Let op de bezwaartermijn (meestal 6 weken)\n"+
				"2. Verzamel alle relevante documenten\n"+
				"3. Overweeg juridische bijstand via het Juridisch Loket\n"+
				"4. U kunt vaak gratis advies krijgen bij uw gemeente")
	case categories[classify.CategoryCivil]:
		parts = appendArticleBlock(parts, laws, wetten.DomainCivil,
			"Relevante artikelen uit het Burgerlijk Wetboek:",
			[]string{"contract", "huur", "koop"})
		parts = append(parts,
			"\nBij civielrechtelijke geschillen:\n"+
				"1. Verzamel alle relevante documenten en correspondentie\n"+
				"2. Probeer eerst in overleg tot een oplossing te komen\n"+
				"3. Overweeg mediation als alternatief voor een rechtszaak\n"+
				"4. Zoek tijdig juridische bijstand als een oplossing uitblijft")
	}

	return strings.Join(parts, "\n\n")
}

// appendArticleBlock appends a heading plus the first few articles of the
// law in the given domain whose text mentions any of the keywords. If no
// such law or article exists, parts is returned unchanged.
func appendArticleBlock(parts []string, laws []*wetten.Law, domain wetten.LegalDomain, heading string, keywords []string) []string {
	law := lawByDomain(laws, domain)
	if law == nil {
		return parts
	}
	articles := matchingArticles(law.Content.Articles, keywords)
	if len(articles) == 0 {
		return parts
	}
	parts = append(parts, "\n"+heading)
	for _, article := range articles {
		parts = append(parts, fmt.Sprintf("- Artikel %s: %s", article.Number, article.Title))
	}
	return parts
}

func lawByDomain(laws []*wetten.Law, domain wetten.LegalDomain) *wetten.Law {
	for _, law := range laws {
		if law.Metadata.Domain == domain {
			return law
		}
	}
	return nil
}

func matchingArticles(articles []wetten.Article, keywords []string) []wetten.Article {
	var matched []wetten.Article
	for _, article := range articles {
		text := strings.ToLower(article.Text)
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				matched = append(matched, article)
				break
			}
		}
		if len(matched) == maxCitedArticles {
			break
		}
	}
	return matched
}
