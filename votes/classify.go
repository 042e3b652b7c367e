package votes

import "strings"

// Classifier applies a keyword policy to referendum titles. It is a pure
// function of its policy: the same titles always produce the same result.
type Classifier struct {
	include []keyword
	exclude []keyword
}

// keyword keeps the raw term for reporting next to its folded form used for
// containment checks.
type keyword struct {
	raw    string
	folded string
}

// NewClassifier compiles the policy once so classification is a plain
// substring scan per referendum.
func NewClassifier(policy Policy) *Classifier {
	return &Classifier{
		include: compileKeywords(policy.Include),
		exclude: compileKeywords(policy.Exclude),
	}
}

func compileKeywords(terms []string) []keyword {
	out := make([]keyword, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		folded := foldText(term)
		if folded == "" {
			continue
		}
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, keyword{raw: term, folded: folded})
	}
	return out
}

// Classify labels a referendum from its combined short and official title.
// Any exclusion match forces a non-societal result regardless of inclusion
// matches; a referendum matching neither set is not societal. Empty titles
// yield a non-societal result with empty match lists.
func (c *Classifier) Classify(titleShort, titleOfficial string) Classification {
	text := foldText(titleShort + " " + titleOfficial)
	if text == "" {
		return Classification{}
	}
	var result Classification
	for _, kw := range c.exclude {
		if strings.Contains(text, kw.folded) {
			result.Excluded = append(result.Excluded, kw.raw)
		}
	}
	for _, kw := range c.include {
		if strings.Contains(text, kw.folded) {
			result.Matched = append(result.Matched, kw.raw)
		}
	}
	result.Societal = len(result.Excluded) == 0 && len(result.Matched) > 0
	return result
}

// ClassifyAll labels every referendum in the table, producing a fresh slice.
func (c *Classifier) ClassifyAll(rows []Referendum) []Classified {
	out := make([]Classified, len(rows))
	for i, row := range rows {
		out[i] = Classified{
			Referendum:     row,
			Classification: c.Classify(row.TitleShort, row.TitleOfficial),
		}
	}
	return out
}
