package votes

// Policy holds the keyword sets driving the societal classification.
// Include terms signal societal topics; Exclude terms signal topics that are
// never societal regardless of inclusion matches. The policy is an explicit
// value so alternative keyword sets can be evaluated side by side.
type Policy struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// DefaultPolicy returns the curated keyword sets of the underlying study.
// The terms are German because the dataset's reference titles are the German
// short and official titles.
func DefaultPolicy() Policy {
	return Policy{
		Include: []string{
			// Soziales & Wohlfahrt
			"gesellschaft", "sozial", "sozialhilfe", "fürsorge",
			"mieterschutz", "mietrecht", "mieter",
			"sozialversicherung", "pflegefinanzierung", "pflegeversicherung",
			// Familie & Generationen
			"alters", "rentenalters", "familienzulagen", "elternurlaub",
			"eltern", "elternschaft", "familie", "familienpolitik",
			"generationen", "jugend", "jugendschutz", "kinder", "ehe",
			// Gesundheit & Pflege
			"gesundheit", "krankenversicherung", "gesundheitswesen",
			"spitalfinanzierung", "mutterschaftsversicherung", "mutterschaftsurlaub",
			// Gleichstellung & Rechte
			"frau", "gleichstellung", "menschenrechte", "bürgerrechte",
			"zivilstand", "religion", "kultur",
			// Integration & Migration
			"migration", "ausländer", "asylgesetz", "migrationsfragen",
			"einbürgerung", "integrationsgesetz", "sprachförderung",
			// Bildung
			"bildung", "schulgesetz",
			// Partizipation & Arbeitswelt
			"volksrechte", "zusammenleben", "arbeitnehmende",
			"hinterlassenenversicherung", "betreuungsgutschriften",
		},
		Exclude: []string{
			// Steuern & Finanzen
			"finanzordnung", "mehrwertsteuer", "besteuerung",
			"steuerharmonisierung", "mwst", "gewinnsteuer", "einkommensteuer",
			"bundesfinanzen", "bundeshaushalt",
			// Verkehr & Infrastruktur
			"nationalstrassen", "strassenbau", "verkehrsinfrastruktur",
			"strassentransit", "bahnverkehr", "verkehr", "ausbau",
			// Energie & Telekommunikation
			"energiepolitik", "elektrizitätsversorgung", "stromversorgung",
			"telekommunikation",
			// Wirtschaft & Handel
			"wirtschaftsartikel", "wirtschaftspolitik", "finanzmarkt",
			"zollgesetz", "gewinn", "aktiengesellschaften", "import",
			"export", "zölle", "bankengesetz",
			// Militär
			"militärgesetz", "militärdienst", "militärorganisation",
			// Landwirtschaft & Subventionen
			"landwirtschaftsgesetz", "agrarpolitik", "landwirtschaftspolitik",
			"subventionierung",
		},
	}
}

// Merge overlays non-empty override fields on the receiver and returns the
// result. An override replaces its list wholesale; partial files override
// only the parts they define.
func (p Policy) Merge(override Policy) Policy {
	merged := p.Clone()
	if len(override.Include) > 0 {
		merged.Include = cloneStrings(override.Include)
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = cloneStrings(override.Exclude)
	}
	return merged
}

// Clone returns a deep copy so callers can mutate safely.
func (p Policy) Clone() Policy {
	return Policy{
		Include: cloneStrings(p.Include),
		Exclude: cloneStrings(p.Exclude),
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
