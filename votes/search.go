package votes

import (
	"sort"
	"strings"
)

// SearchTitles returns every referendum whose short or official title
// contains the query, case-insensitive, ordered by date ascending. Re-votes
// sharing a title all appear, distinguished by date. An empty result is not
// an error; a search that misses simply returns nothing.
func SearchTitles(rows []Referendum, query string) []Referendum {
	folded := foldText(query)
	if folded == "" {
		return nil
	}
	var out []Referendum
	for _, rec := range rows {
		if strings.Contains(foldText(rec.TitleShort), folded) ||
			strings.Contains(foldText(rec.TitleOfficial), folded) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
