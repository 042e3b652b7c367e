package votes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refOn(id, title string, year int) Referendum {
	return Referendum{
		ID:         id,
		TitleShort: title,
		Date:       time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSearchTitles(t *testing.T) {
	table := []Referendum{
		refOn("3", "Mutterschaftsversicherung", 1999),
		refOn("1", "Mutterschaftsversicherung", 1984),
		refOn("2", "Nationalstrassenabgabe", 1990),
		refOn("4", "Assurance maternité", 1987),
	}

	t.Run("re-votes ordered by date", func(t *testing.T) {
		matches := SearchTitles(table, "mutterschaft")
		require.Len(t, matches, 2)
		assert.Equal(t, "1", matches[0].ID)
		assert.Equal(t, "3", matches[1].ID)
	})

	t.Run("case-insensitive with accents", func(t *testing.T) {
		matches := SearchTitles(table, "MATERNITÉ")
		require.Len(t, matches, 1)
		assert.Equal(t, "4", matches[0].ID)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		assert.Empty(t, SearchTitles(table, "does not exist"))
	})

	t.Run("blank query matches nothing", func(t *testing.T) {
		assert.Empty(t, SearchTitles(table, "   "))
	})

	t.Run("official title searched too", func(t *testing.T) {
		withOfficial := []Referendum{{
			ID:            "5",
			TitleOfficial: "Bundesgesetz über die Krankenversicherung",
		}}
		matches := SearchTitles(withOfficial, "krankenversicherung")
		assert.Len(t, matches, 1)
	})
}
