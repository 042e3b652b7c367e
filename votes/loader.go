package votes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Column candidates for auto-detecting the dataset layout. The published
// dataset uses the legacy spellings; exports written by this tool use the
// first entry of each list.
var (
	idColumns       = []string{"id", "anr"}
	dateColumns     = []string{"date", "datum"}
	shortColumns    = []string{"titel_kurz_d", "title_short"}
	officialColumns = []string{"titel_off_d", "title_official"}
	typeColumns     = []string{"rechtsform", "vote_type"}
	yesColumns      = []string{"yesperc", "volkja-proz"}
)

// Suffixes marking per-canton yes-percentage columns.
var cantonSuffixes = []string{"-yesperc", "-japroz"}

var dateLayouts = []string{"02.01.2006", "2006-01-02"}

// LoadReferenda reads the semicolon-delimited referendum table. Malformed
// fields never abort the load: the affected value is treated as missing and
// recorded in the report, so callers can surface skipped-row counts per run.
// A per-canton column whose prefix is not one of the 26 codes is a
// configuration error and fails the load with the offending column named.
func LoadReferenda(path string) ([]Referendum, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("empty dataset")
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	layout, err := resolveLayout(header)
	if err != nil {
		return nil, nil, err
	}

	report := &LoadReport{}
	out := make([]Referendum, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := parseRow(row, layout, report)
		report.Rows++
		out = append(out, rec)
	}
	return out, report, nil
}

// tableLayout maps record fields to column indices; -1 means absent.
type tableLayout struct {
	id, date, short, official, voteType, yes int
	cantons                                  map[Canton]int
}

func resolveLayout(header []string) (tableLayout, error) {
	layout := tableLayout{
		id:       findColumn(header, idColumns),
		date:     findColumn(header, dateColumns),
		short:    findColumn(header, shortColumns),
		official: findColumn(header, officialColumns),
		voteType: findColumn(header, typeColumns),
		yes:      findColumn(header, yesColumns),
		cantons:  make(map[Canton]int),
	}
	if layout.id < 0 {
		return layout, errors.New("dataset is missing an id column")
	}
	if layout.date < 0 {
		return layout, errors.New("dataset is missing a date column")
	}
	if layout.short < 0 && layout.official < 0 {
		return layout, errors.New("dataset is missing a title column")
	}
	for i, col := range header {
		code, ok := cantonColumn(col)
		if !ok {
			continue
		}
		if !IsCanton(code) {
			return layout, fmt.Errorf("column %q: %w: %q", col, ErrUnknownCanton, code)
		}
		layout.cantons[Canton(code)] = i
	}
	return layout, nil
}

// cantonColumn extracts the canton prefix from a per-canton column name.
func cantonColumn(name string) (string, bool) {
	for _, suffix := range cantonSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix), true
		}
	}
	return "", false
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func parseRow(row []string, layout tableLayout, report *LoadReport) Referendum {
	rec := Referendum{
		ID:            cell(row, layout.id),
		TitleShort:    cell(row, layout.short),
		TitleOfficial: cell(row, layout.official),
		VoteType:      cell(row, layout.voteType),
		Cantons:       make(map[Canton]*float64, len(layout.cantons)),
	}

	if raw := cell(row, layout.date); raw != "" {
		date, err := parseDate(raw)
		switch {
		case err != nil:
			report.BadDates++
			report.addIssue(rec.ID, "date", raw, "unparsable date")
		case date.Year() < MinYear || date.Year() > MaxYear:
			// Kept for canton statistics, excluded from epoch bucketing.
			rec.Date = date
			report.BadDates++
			report.addIssue(rec.ID, "date", raw, "year outside dataset range")
		default:
			rec.Date = date
		}
	} else {
		report.BadDates++
		report.addIssue(rec.ID, "date", "", "missing date")
	}

	if raw := cell(row, layout.yes); raw != "" {
		if v, ok := parsePercent(raw); ok {
			rec.Yes = &v
		} else {
			report.BadPercents++
			report.addIssue(rec.ID, "yesperc", raw, "not a percentage in [0,100]")
		}
	} else {
		report.MissingYes++
	}

	for canton, idx := range layout.cantons {
		raw := cell(row, idx)
		if raw == "" {
			rec.Cantons[canton] = nil
			continue
		}
		if v, ok := parsePercent(raw); ok {
			rec.Cantons[canton] = &v
		} else {
			rec.Cantons[canton] = nil
			report.BadPercents++
			report.addIssue(rec.ID, string(canton)+"-yesperc", raw, "not a percentage in [0,100]")
		}
	}
	return rec
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// parsePercent accepts dot or comma decimals and enforces the [0,100] range.
func parsePercent(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}
