package votes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Exported tables are write-once-per-run artifacts, not append logs. Writes
// go through a temp file and rename so a crashed run never leaves a partial
// table behind.

const keywordSeparator = "|"

// WriteClassifiedCSV writes the referendum table with its classification
// columns attached. Reloading the file with ReadClassifiedCSV yields the
// same labels; classification is deterministic, so the export doubles as a
// cache between pipelines.
func WriteClassifiedCSV(path string, rows []Classified) error {
	header := []string{"id", "date", "titel_kurz_d", "titel_off_d", "rechtsform", "yesperc"}
	for _, canton := range AllCantons {
		header = append(header, string(canton)+"-yesperc")
	}
	header = append(header, "societal", "matched", "excluded")

	records := make([][]string, 0, len(rows))
	for _, rec := range rows {
		record := []string{
			rec.ID,
			formatDate(rec),
			rec.TitleShort,
			rec.TitleOfficial,
			rec.VoteType,
			formatPercent(rec.Yes),
		}
		for _, canton := range AllCantons {
			record = append(record, formatPercent(rec.Cantons[canton]))
		}
		record = append(record,
			strconv.FormatBool(rec.Societal),
			JoinKeywords(rec.Matched),
			JoinKeywords(rec.Excluded),
		)
		records = append(records, record)
	}
	return writeCSV(path, header, records)
}

// ReadClassifiedCSV loads a table written by WriteClassifiedCSV.
func ReadClassifiedCSV(path string) ([]Classified, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open classified table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(raw) == 0 {
		return nil, errors.New("empty classified table")
	}

	header := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		header[i] = cleanCell(cell)
	}
	layout, err := resolveLayout(header)
	if err != nil {
		return nil, err
	}
	societalCol := findColumn(header, []string{"societal"})
	matchedCol := findColumn(header, []string{"matched"})
	excludedCol := findColumn(header, []string{"excluded"})
	if societalCol < 0 {
		return nil, errors.New("classified table is missing the societal column")
	}

	report := &LoadReport{}
	out := make([]Classified, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rec := Classified{Referendum: parseRow(row, layout, report)}
		rec.Societal = strings.EqualFold(cell(row, societalCol), "true")
		rec.Matched = SplitKeywords(cell(row, matchedCol))
		rec.Excluded = SplitKeywords(cell(row, excludedCol))
		out = append(out, rec)
	}
	return out, nil
}

// WriteRankingCSV writes the liberality ranking. Cantons without a score
// keep an empty score cell; they are listed after all scored cantons.
func WriteRankingCSV(path string, ranking []LiberalityScore) error {
	header := []string{"rank", "canton", "name", "score", "count"}
	records := make([][]string, 0, len(ranking))
	for i, entry := range ranking {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			string(entry.Canton),
			entry.Canton.Name(),
			formatPercent(entry.Score),
			strconv.Itoa(entry.Count),
		})
	}
	return writeCSV(path, header, records)
}

// WriteDetailCSV writes the long-format analysis table: one row per
// referendum and canton, enriched with the epoch label and the canton's
// static group memberships. Cantons without a value keep an empty cell.
func WriteDetailCSV(path string, rows []Classified, epochs []Epoch) error {
	header := []string{"id", "date", "titel_kurz_d", "societal", "epoch", "canton", "region", "area", "yesperc"}
	regions := LanguageRegions()
	areas := UrbanRural()

	records := make([][]string, 0, len(rows)*len(AllCantons))
	for _, rec := range rows {
		label := ""
		if !rec.Date.IsZero() {
			if epoch, ok := EpochFor(epochs, rec.Year()); ok {
				label = epoch.Label
			}
		}
		for _, canton := range AllCantons {
			records = append(records, []string{
				rec.ID,
				formatDate(rec),
				rec.TitleShort,
				strconv.FormatBool(rec.Societal),
				label,
				string(canton),
				groupNameFor(regions, canton),
				groupNameFor(areas, canton),
				formatPercent(rec.Cantons[canton]),
			})
		}
	}
	return writeCSV(path, header, records)
}

func groupNameFor(groups []CantonGroup, c Canton) string {
	for _, group := range groups {
		for _, member := range group.Members {
			if member == c {
				return group.Name
			}
		}
	}
	return ""
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	writer := csv.NewWriter(f)
	writer.Comma = ';'
	writeErr := writer.Write(header)
	for _, record := range records {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(record)
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}
	if err := f.Close(); writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("write export: %w", writeErr)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

func formatDate(rec Classified) string {
	if rec.Date.IsZero() {
		return ""
	}
	return rec.Date.Format("2006-01-02")
}

func formatPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// JoinKeywords packs keyword lists into a single cell. Separator and escape
// characters inside a keyword are backslash-escaped so any policy term
// survives the round trip.
func JoinKeywords(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	escaped := make([]string, len(terms))
	for i, term := range terms {
		term = strings.ReplaceAll(term, `\`, `\\`)
		escaped[i] = strings.ReplaceAll(term, keywordSeparator, `\`+keywordSeparator)
	}
	return strings.Join(escaped, keywordSeparator)
}

// SplitKeywords reverses JoinKeywords.
func SplitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	var sb strings.Builder
	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case string(r) == keywordSeparator:
			out = append(out, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	out = append(out, sb.String())
	return out
}
