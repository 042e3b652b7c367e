package votes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReferenda(t *testing.T) {
	path := writeDataset(t, ""+
		"anr;datum;titel_kurz_d;titel_off_d;rechtsform;volkja-proz;zh-japroz;be-japroz\n"+
		"1;07.02.1971;Frauenstimmrecht;Bundesbeschluss über das Frauenstimmrecht;1;65.7;66.9;64.7\n"+
		"2;04.03.2001;Krankenversicherung;Bundesgesetz;3;;50,2;\n")

	rows, report, err := LoadReferenda(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, report.Rows)

	first := rows[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 1971, first.Year())
	assert.Equal(t, "Frauenstimmrecht", first.TitleShort)
	require.NotNil(t, first.Yes)
	assert.InDelta(t, 65.7, *first.Yes, 1e-9)
	require.NotNil(t, first.Cantons["zh"])
	assert.InDelta(t, 66.9, *first.Cantons["zh"], 1e-9)

	second := rows[1]
	assert.Nil(t, second.Yes, "empty nationwide yes stays missing")
	assert.Equal(t, 1, report.MissingYes)
	require.NotNil(t, second.Cantons["zh"], "comma decimals parse")
	assert.InDelta(t, 50.2, *second.Cantons["zh"], 1e-9)
	assert.Nil(t, second.Cantons["be"])
}

func TestLoadReferendaModernColumnNames(t *testing.T) {
	path := writeDataset(t, ""+
		"id;date;titel_kurz_d;yesperc;ge-yesperc\n"+
		"9;1999-04-18;Bundesverfassung;59.2;55\n")

	rows, _, err := LoadReferenda(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1999, rows[0].Year())
	require.NotNil(t, rows[0].Cantons["ge"])
	assert.InDelta(t, 55.0, *rows[0].Cantons["ge"], 1e-9)
}

func TestLoadReferendaMalformedRowsReported(t *testing.T) {
	path := writeDataset(t, ""+
		"anr;datum;titel_kurz_d;volkja-proz;zh-japroz\n"+
		"1;not-a-date;Titel A;55.0;60\n"+
		"2;01.01.1880;Titel B;40.0;30\n"+
		"3;03.03.1993;Titel C;135.0;abc\n")

	rows, report, err := LoadReferenda(path)
	require.NoError(t, err, "malformed rows are reported, not fatal")
	require.Len(t, rows, 3)

	assert.Equal(t, 2, report.BadDates, "unparsable and out-of-range dates")
	assert.Equal(t, 2, report.BadPercents, "out-of-range yes and non-numeric canton value")
	require.NotEmpty(t, report.Issues)

	// The unparsable date leaves the row dateless but keeps its values.
	assert.True(t, rows[0].Date.IsZero())
	require.NotNil(t, rows[0].Cantons["zh"])

	// The out-of-range date is kept for canton statistics.
	assert.Equal(t, 1880, rows[1].Year())

	// Out-of-range percentage becomes missing, never clamped.
	assert.Nil(t, rows[2].Yes)
	assert.Nil(t, rows[2].Cantons["zh"])

	for _, issue := range report.Issues {
		assert.NotEmpty(t, issue.RowID)
		assert.NotEmpty(t, issue.Reason)
	}
}

func TestLoadReferendaUnknownCantonColumn(t *testing.T) {
	path := writeDataset(t, ""+
		"anr;datum;titel_kurz_d;volkja-proz;xx-japroz\n"+
		"1;07.02.1971;Titel;55.0;60\n")

	_, _, err := LoadReferenda(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCanton)
	assert.Contains(t, err.Error(), "xx")
}

func TestLoadReferendaMissingRequiredColumn(t *testing.T) {
	t.Run("no date column", func(t *testing.T) {
		path := writeDataset(t, "anr;titel_kurz_d\n1;Titel\n")
		_, _, err := LoadReferenda(path)
		assert.Error(t, err)
	})

	t.Run("no title column", func(t *testing.T) {
		path := writeDataset(t, "anr;datum\n1;07.02.1971\n")
		_, _, err := LoadReferenda(path)
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeDataset(t, "")
		_, _, err := LoadReferenda(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadReferenda(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "", NormalizeText("   "))
	assert.Equal(t, "a b", NormalizeText(" a \t b "))
	assert.Equal(t, "einbürgerung", foldText("EINBÜRGERUNG"))
	assert.Equal(t, "assurance-maladie", foldText(" Assurance-Maladie "))
}
