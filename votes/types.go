package votes

import "time"

// Referendum represents a single nationwide ballot item. Per-canton values
// are kept behind pointers so a missing result stays distinguishable from 0%.
type Referendum struct {
	ID            string              `json:"id"`
	Date          time.Time           `json:"date"`
	TitleShort    string              `json:"titleShort"`
	TitleOfficial string              `json:"titleOfficial"`
	VoteType      string              `json:"voteType,omitempty"`
	Yes           *float64            `json:"yes,omitempty"`
	Cantons       map[Canton]*float64 `json:"cantons,omitempty"`
}

// Year returns the calendar year of the vote, or 0 when the date is unset.
func (r Referendum) Year() int {
	if r.Date.IsZero() {
		return 0
	}
	return r.Date.Year()
}

// Classification is the derived societal/non-societal label for a referendum
// together with the keywords that produced it. When Excluded is non-empty,
// Societal is always false.
type Classification struct {
	Societal bool     `json:"societal"`
	Matched  []string `json:"matched,omitempty"`
	Excluded []string `json:"excluded,omitempty"`
}

// Classified pairs a referendum with its classification result.
type Classified struct {
	Referendum
	Classification
}

// LiberalityScore is the mean yes-percentage of a canton across societal
// referenda. Score is nil when no qualifying value contributed; a nil score
// is never reported as zero.
type LiberalityScore struct {
	Canton Canton   `json:"canton"`
	Score  *float64 `json:"score"`
	Count  int      `json:"count"`
}

// RowIssue records a single malformed field encountered while loading,
// identified by row and column so the offending source line can be found.
type RowIssue struct {
	RowID  string
	Column string
	Value  string
	Reason string
}

// LoadReport summarizes data-integrity problems of one load. Malformed rows
// are excluded from the aggregations they would corrupt but stay in the
// table where their valid fields allow; the report keeps that visible.
type LoadReport struct {
	Rows        int
	BadDates    int
	BadPercents int
	MissingYes  int
	Issues      []RowIssue
}

func (r *LoadReport) addIssue(rowID, column, value, reason string) {
	r.Issues = append(r.Issues, RowIssue{RowID: rowID, Column: column, Value: value, Reason: reason})
}
