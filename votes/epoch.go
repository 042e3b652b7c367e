package votes

import "fmt"

// Epoch is a closed-open year interval with a label. Start is inclusive,
// End exclusive.
type Epoch struct {
	Label string `yaml:"label"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Contains reports whether the year falls in the epoch.
func (e Epoch) Contains(year int) bool {
	return year >= e.Start && year < e.End
}

// Dataset bounds: the first federal referendum row is from 1893, the last
// from 2025.
const (
	MinYear = 1893
	MaxYear = 2025
)

// DefaultEpochs returns the five fixed historical periods of the study.
// Together they cover 1893-2025 without gaps or overlap.
func DefaultEpochs() []Epoch {
	return []Epoch{
		{Label: "1893-1919", Start: 1893, End: 1920},
		{Label: "1920-1949", Start: 1920, End: 1950},
		{Label: "1950-1979", Start: 1950, End: 1980},
		{Label: "1980-2009", Start: 1980, End: 2010},
		{Label: "2010-2025", Start: 2010, End: 2026},
	}
}

// EpochFor returns the epoch containing the year. The second return value is
// false for years outside every epoch, such as unparsable dates mapped to 0.
func EpochFor(epochs []Epoch, year int) (Epoch, bool) {
	for _, e := range epochs {
		if e.Contains(year) {
			return e, true
		}
	}
	return Epoch{}, false
}

// ValidateEpochs checks that the epochs are contiguous, non-overlapping and
// cover the full dataset range. Custom epoch configurations must satisfy the
// same exhaustiveness the defaults do.
func ValidateEpochs(epochs []Epoch) error {
	if len(epochs) == 0 {
		return fmt.Errorf("no epochs configured")
	}
	if epochs[0].Start > MinYear {
		return fmt.Errorf("epochs start at %d, dataset begins %d", epochs[0].Start, MinYear)
	}
	for i, e := range epochs {
		if e.End <= e.Start {
			return fmt.Errorf("epoch %q: end %d not after start %d", e.Label, e.End, e.Start)
		}
		if i > 0 && e.Start != epochs[i-1].End {
			return fmt.Errorf("epoch %q starts at %d, previous ends at %d", e.Label, e.Start, epochs[i-1].End)
		}
	}
	if last := epochs[len(epochs)-1]; last.End <= MaxYear {
		return fmt.Errorf("epochs end at %d, dataset runs through %d", last.End, MaxYear)
	}
	return nil
}
