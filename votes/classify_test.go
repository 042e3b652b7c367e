package votes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKrankenversicherung(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	result := c.Classify("Bundesgesetz über die Krankenversicherung", "")

	assert.True(t, result.Societal)
	assert.Contains(t, result.Matched, "krankenversicherung")
	assert.Empty(t, result.Excluded)
}

func TestClassifyExclusionDominates(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	t.Run("exclusion without inclusion", func(t *testing.T) {
		result := c.Classify("Nationalstrassenabgabe", "")
		assert.False(t, result.Societal)
		assert.Contains(t, result.Excluded, "nationalstrassen")
	})

	t.Run("exclusion beats inclusion", func(t *testing.T) {
		// Contains both a societal term and an excluding one.
		result := c.Classify("Krankenversicherung und Mehrwertsteuer", "")
		assert.False(t, result.Societal)
		assert.Contains(t, result.Matched, "krankenversicherung")
		assert.Contains(t, result.Excluded, "mehrwertsteuer")
	})
}

func TestClassifyEmptyTitle(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	for _, title := range []string{"", "   ", "\t\n"} {
		result := c.Classify(title, "")
		assert.False(t, result.Societal)
		assert.Empty(t, result.Matched)
		assert.Empty(t, result.Excluded)
	}
}

func TestClassifyNoMatchDefaultsFalse(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	result := c.Classify("Bundesbeschluss betreffend das Forstwesen", "")

	assert.False(t, result.Societal)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Excluded)
}

func TestClassifyCaseAndAccents(t *testing.T) {
	c := NewClassifier(Policy{Include: []string{"Einbürgerung"}})

	t.Run("uppercase title", func(t *testing.T) {
		result := c.Classify("ERLEICHTERTE EINBÜRGERUNG", "")
		assert.True(t, result.Societal)
	})

	t.Run("official title only", func(t *testing.T) {
		result := c.Classify("", "Volksinitiative zur Einbürgerung")
		assert.True(t, result.Societal)
	})

	t.Run("french title does not panic", func(t *testing.T) {
		result := c.Classify("Assurance-maladie fédérale", "Arrêté fédéral")
		assert.False(t, result.Societal)
	})
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(DefaultPolicy())

	first := c.Classify("Gleichstellung von Frau und Mann", "")
	second := c.Classify("Gleichstellung von Frau und Mann", "")

	assert.Equal(t, first, second)
	assert.True(t, first.Societal)
}

func TestClassifyAll(t *testing.T) {
	c := NewClassifier(DefaultPolicy())
	rows := []Referendum{
		{ID: "1", TitleShort: "Krankenversicherung"},
		{ID: "2", TitleShort: "Nationalstrassenabgabe"},
	}

	classified := c.ClassifyAll(rows)

	require.Len(t, classified, 2)
	assert.True(t, classified[0].Societal)
	assert.False(t, classified[1].Societal)
	assert.Equal(t, "1", classified[0].ID)
}

func TestCompileKeywordsDeduplicates(t *testing.T) {
	c := NewClassifier(Policy{Include: []string{"Ehe", "ehe", "  ", "EHE"}})

	result := c.Classify("Ehe für alle", "")

	assert.True(t, result.Societal)
	assert.Len(t, result.Matched, 1)
}
