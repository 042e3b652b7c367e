package votes

import (
	"fmt"
	"sort"
)

// Canton is the two-letter lowercase code of one of the 26 Swiss cantons.
type Canton string

// AllCantons lists the closed set of canton codes in the conventional
// federal order. The set is fixed; data referencing any other code is a
// configuration error, never coerced.
var AllCantons = []Canton{
	"zh", "be", "lu", "ur", "sz", "ow", "nw", "gl", "zg",
	"fr", "so", "bs", "bl", "sh", "ar", "ai", "sg", "gr",
	"ag", "tg", "ti", "vd", "vs", "ne", "ge", "ju",
}

var cantonNames = map[Canton]string{
	"zh": "Zürich", "be": "Bern", "lu": "Luzern", "ur": "Uri", "sz": "Schwyz",
	"ow": "Obwalden", "nw": "Nidwalden", "gl": "Glarus", "zg": "Zug",
	"fr": "Fribourg", "so": "Solothurn", "bs": "Basel-Stadt",
	"bl": "Basel-Landschaft", "sh": "Schaffhausen", "ar": "Appenzell Ausserrhoden",
	"ai": "Appenzell Innerrhoden", "sg": "St. Gallen", "gr": "Graubünden",
	"ag": "Aargau", "tg": "Thurgau", "ti": "Ticino", "vd": "Vaud",
	"vs": "Valais", "ne": "Neuchâtel", "ge": "Genève", "ju": "Jura",
}

// IsCanton reports whether code belongs to the fixed 26-member set.
func IsCanton(code string) bool {
	_, ok := cantonNames[Canton(code)]
	return ok
}

// Name returns the display name of the canton, or the code itself when the
// code is unknown.
func (c Canton) Name() string {
	if name, ok := cantonNames[c]; ok {
		return name
	}
	return string(c)
}

// ErrUnknownCanton is wrapped by errors reporting a code outside the fixed set.
var ErrUnknownCanton = fmt.Errorf("unknown canton code")

// CantonGroup is a named, statically configured subset of cantons used for
// regional breakdowns. Membership is configuration, not inferred from data.
type CantonGroup struct {
	Name    string   `yaml:"name"`
	Members []Canton `yaml:"members"`
}

// LanguageRegions partitions the cantons by dominant language. Bilingual
// cantons are assigned to their majority language (be and gr to German,
// fr and vs to French).
func LanguageRegions() []CantonGroup {
	return []CantonGroup{
		{Name: "Deutschschweiz", Members: []Canton{
			"zh", "be", "lu", "ur", "sz", "ow", "nw", "gl", "zg", "so",
			"bs", "bl", "sh", "ar", "ai", "sg", "gr", "ag", "tg",
		}},
		{Name: "Romandie", Members: []Canton{"fr", "vd", "vs", "ne", "ge", "ju"}},
		{Name: "Svizzera italiana", Members: []Canton{"ti"}},
	}
}

// UrbanRural splits the cantons into those dominated by a major agglomeration
// and the rest. The assignment follows the federal statistics typology of the
// study this tool reproduces and is deliberately static.
func UrbanRural() []CantonGroup {
	return []CantonGroup{
		{Name: "urban", Members: []Canton{"zh", "be", "lu", "zg", "bs", "bl", "ag", "ti", "vd", "ge"}},
		{Name: "rural", Members: []Canton{
			"ur", "sz", "ow", "nw", "gl", "fr", "so", "sh", "ar", "ai",
			"sg", "gr", "tg", "vs", "ne", "ju",
		}},
	}
}

// sortedCantons returns the canton codes in ascending code order, the tie
// break order used by the liberality ranking.
func sortedCantons() []Canton {
	out := make([]Canton, len(AllCantons))
	copy(out, AllCantons)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
