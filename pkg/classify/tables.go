package classify

// DefaultTables returns the standard classification data: Dutch keyword
// lists per category, the category-relation table, and the representative
// law for each category. Callers get a fresh copy each time; the returned
// tables are safe to adapt before constructing a Classifier.
func DefaultTables() Tables {
	return Tables{
		Keywords: map[Category][]string{
			CategoryAdministrative: {
				"bestuur", "gemeente", "overheid", "vergunning", "besluit",
				"boete", "parkeren", "aanvragen", "procedure", "bezwaar",
				"toestemming", "handhaving",
			},
			CategoryCivil: {
				"contract", "schade", "eigendom", "huur", "koop",
				"verhuur", "verkoop", "aansprakelijk", "schulden", "betaling",
				"overeenkomst", "verbintenis", "wanprestatie",
			},
			CategoryCriminal: {
				"strafbaar", "overtreding", "boete", "politie",
				"misdrijf", "strafrecht", "veroordeling", "gevangenis",
				"aangifte", "delict", "straf",
			},
			CategoryConstitutional: {
				"recht", "grondrecht", "discriminatie", "vrijheid",
				"mensenrechten", "grondwet", "gelijke behandeling",
				"fundamenteel", "constitutioneel",
			},
			CategoryEmployment: {
				"werk", "baas", "werknemer", "salaris", "contract",
				"ontslag", "arbeid", "werkgever", "loon", "cao",
				"dienstverband", "arbeidsvoorwaarden", "werktijden",
			},
			CategoryDiscrimination: {
				"discriminatie", "gelijke behandeling", "ras", "geslacht",
				"leeftijd", "handicap", "afkomst", "religie", "seksuele oriëntatie",
				"ongelijke behandeling", "uitsluiting", "vooroordelen", "intimidatie",
				"pesten", "ongelijkheid", "gediscrimineerd",
			},
		},
		Relations: map[Category][]Category{
			CategoryDiscrimination: {CategoryEmployment, CategoryConstitutional},
			CategoryEmployment:     {CategoryCivil, CategoryDiscrimination},
			CategoryAdministrative: {CategoryConstitutional},
		},
		Laws: map[Category]string{
			CategoryAdministrative: "BWBR0005537", // Algemene wet bestuursrecht
			CategoryCivil:          "BWBR0005291", // Burgerlijk Wetboek
			CategoryCriminal:       "BWBR0001854", // Wetboek van Strafrecht
			CategoryConstitutional: "BWBR0001840", // Grondwet
			CategoryEmployment:     "BWBR0009405", // Wet op de arbeidsovereenkomst
			CategoryDiscrimination: "BWBR0006502", // Algemene wet gelijke behandeling
		},
	}
}
