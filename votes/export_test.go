package votes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedRoundTrip(t *testing.T) {
	classifier := NewClassifier(DefaultPolicy())
	rows := []Referendum{
		{
			ID:         "101",
			Date:       time.Date(1994, time.December, 4, 0, 0, 0, 0, time.UTC),
			TitleShort: "Bundesgesetz über die Krankenversicherung",
			Yes:        ptr(51.8),
			Cantons:    map[Canton]*float64{"zh": ptr(54.3), "be": nil},
		},
		{
			ID:         "102",
			Date:       time.Date(1984, time.February, 26, 0, 0, 0, 0, time.UTC),
			TitleShort: "Nationalstrassenabgabe",
			Yes:        ptr(60.0),
			Cantons:    map[Canton]*float64{},
		},
		{
			ID: "103",
			// No date, no title: still exported and reloaded.
		},
	}
	classified := classifier.ClassifyAll(rows)

	path := filepath.Join(t.TempDir(), "classified.csv")
	require.NoError(t, WriteClassifiedCSV(path, classified))

	reloaded, err := ReadClassifiedCSV(path)
	require.NoError(t, err)
	require.Len(t, reloaded, len(classified))

	for i, rec := range reloaded {
		assert.Equal(t, classified[i].ID, rec.ID)
		assert.Equal(t, classified[i].Societal, rec.Societal, "row %s", rec.ID)
		assert.Equal(t, classified[i].Matched, rec.Matched, "row %s", rec.ID)
		assert.Equal(t, classified[i].Excluded, rec.Excluded, "row %s", rec.ID)
	}

	assert.True(t, reloaded[0].Societal)
	assert.False(t, reloaded[1].Societal)
	require.NotNil(t, reloaded[0].Yes)
	assert.InDelta(t, 51.8, *reloaded[0].Yes, 1e-9)
	require.NotNil(t, reloaded[0].Cantons["zh"])
	assert.Nil(t, reloaded[0].Cantons["be"])
	assert.True(t, reloaded[2].Date.IsZero())
}

func TestWriteRankingCSV(t *testing.T) {
	ranking := []LiberalityScore{
		{Canton: "ge", Score: ptr(58.41), Count: 120},
		{Canton: "ai", Score: nil, Count: 0},
	}

	path := filepath.Join(t.TempDir(), "ranking.csv")
	require.NoError(t, WriteRankingCSV(path, ranking))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank;canton;name;score;count", lines[0])
	assert.Equal(t, "1;ge;Genève;58.41;120", lines[1])
	// Nil score exports as an empty cell, never zero.
	assert.Equal(t, "2;ai;Appenzell Innerrhoden;;0", lines[2])
}

func TestWriteDetailCSV(t *testing.T) {
	classifier := NewClassifier(DefaultPolicy())
	rows := classifier.ClassifyAll([]Referendum{
		{
			ID:         "1",
			Date:       time.Date(1959, time.February, 1, 0, 0, 0, 0, time.UTC),
			TitleShort: "Frauenstimmrecht",
			Yes:        ptr(33.1),
			Cantons:    map[Canton]*float64{"ge": ptr(60.5)},
		},
	})

	path := filepath.Join(t.TempDir(), "detail.csv")
	require.NoError(t, WriteDetailCSV(path, rows, DefaultEpochs()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per canton.
	require.Len(t, lines, 1+26)
	assert.Equal(t, "id;date;titel_kurz_d;societal;epoch;canton;region;area;yesperc", lines[0])
	assert.Contains(t, string(data), "1;1959-02-01;Frauenstimmrecht;true;1950-1979;ge;Romandie;urban;60.5")
	// Cantons without a value keep an empty last cell.
	assert.Contains(t, string(data), ";1950-1979;ju;Romandie;rural;")
}

func TestKeywordSeparatorSurvivesRoundTrip(t *testing.T) {
	t.Run("join and split are inverse", func(t *testing.T) {
		cases := [][]string{
			{"ehe"},
			{"ehe", "frau"},
			{"kranken|versicherung"},
			{`back\slash`, "pipe|term", "plain"},
		}
		for _, terms := range cases {
			assert.Equal(t, terms, SplitKeywords(JoinKeywords(terms)))
		}
		assert.Nil(t, SplitKeywords(""))
	})

	t.Run("classified table round trip", func(t *testing.T) {
		rows := []Classified{{
			Referendum: Referendum{ID: "1", TitleShort: "Titel"},
			Classification: Classification{
				Societal: true,
				Matched:  []string{"kranken|versicherung", "frau"},
			},
		}}

		path := filepath.Join(t.TempDir(), "classified.csv")
		require.NoError(t, WriteClassifiedCSV(path, rows))

		reloaded, err := ReadClassifiedCSV(path)
		require.NoError(t, err)
		require.Len(t, reloaded, 1)
		assert.Equal(t, rows[0].Matched, reloaded[0].Matched)
	})
}

func TestWriteCSVLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, writeCSV(path, []string{"a"}, [][]string{{"1"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}
