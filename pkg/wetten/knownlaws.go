package wetten

// KnownLaw holds curated metadata for a major codified law, used as a
// parsing fallback when live extraction yields nothing.
type KnownLaw struct {
	Name           string
	CitationTitle  string
	Domain         LegalDomain
	Authority      string
	EntryIntoForce string
}

// KnownLaws maps BWB identifiers of major codified laws to known-correct
// metadata. The table serves two roles: last-but-one step of the metadata
// fallback chain, and the target set for category-to-law resolution (one
// identifier per legal category).
var KnownLaws = map[string]KnownLaw{
	"BWBR0005537": {
		Name:           "Algemene wet bestuursrecht",
		CitationTitle:  "Awb",
		Domain:         DomainAdministrative,
		Authority:      "Ministerie van Justitie en Veiligheid",
		EntryIntoForce: "1994-01-01",
	},
	"BWBR0005291": {
		Name:           "Burgerlijk Wetboek",
		CitationTitle:  "BW",
		Domain:         DomainCivil,
		Authority:      "Ministerie van Justitie en Veiligheid",
		EntryIntoForce: "1992-01-01",
	},
	"BWBR0001854": {
		Name:           "Wetboek van Strafrecht",
		CitationTitle:  "Sr",
		Domain:         DomainCriminal,
		Authority:      "Ministerie van Justitie en Veiligheid",
		EntryIntoForce: "1886-09-01",
	},
	"BWBR0001840": {
		Name:           "Grondwet",
		CitationTitle:  "Gw",
		Domain:         DomainConstitutional,
		Authority:      "Ministerie van Binnenlandse Zaken en Koninkrijksrelaties",
		EntryIntoForce: "1815-03-24",
	},
	"BWBR0009405": {
		Name:           "Wet op de arbeidsovereenkomst",
		CitationTitle:  "BW7",
		Domain:         DomainEmployment,
		Authority:      "Ministerie van Sociale Zaken en Werkgelegenheid",
		EntryIntoForce: "1907-07-13",
	},
	"BWBR0006502": {
		Name:           "Algemene wet gelijke behandeling",
		CitationTitle:  "AWGB",
		Domain:         DomainEqualTreatment,
		Authority:      "Ministerie van Binnenlandse Zaken en Koninkrijksrelaties",
		EntryIntoForce: "1994-09-01",
	},
}

// LookupKnownLaw returns the curated metadata for a BWB identifier, if the
// identifier belongs to the known-law table.
func LookupKnownLaw(bwbID string) (KnownLaw, bool) {
	known, exists := KnownLaws[bwbID]
	return known, exists
}

// defaultMetadata builds the metadata a law falls back to when live
// extraction produced nothing usable. Known laws get their curated entry;
// everything else gets generic defaults with Domain Unknown.
func defaultMetadata(bwbID string) Metadata {
	if known, exists := KnownLaws[bwbID]; exists {
		return Metadata{
			Name:           known.Name,
			CitationTitle:  known.CitationTitle,
			BWBID:          bwbID,
			Domain:         known.Domain,
			Authority:      known.Authority,
			EntryIntoForce: known.EntryIntoForce,
			Version:        "1.0",
			Status:         StatusInForce,
		}
	}

	return Metadata{
		Name:           "Unknown Law",
		CitationTitle:  "Unknown",
		BWBID:          bwbID,
		Domain:         DomainUnknown,
		Authority:      "Unknown",
		EntryIntoForce: UnknownDate,
		Version:        "1.0",
		Status:         StatusInForce,
	}
}
