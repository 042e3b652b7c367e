package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor(t *testing.T) {
	t.Run("endpoints clamp", func(t *testing.T) {
		assert.Equal(t, rejectColor, colorFor(0))
		assert.Equal(t, rejectColor, colorFor(-5))
		assert.Equal(t, acceptColor, colorFor(100))
		assert.Equal(t, acceptColor, colorFor(130))
	})

	t.Run("midpoint is neutral", func(t *testing.T) {
		assert.Equal(t, neutralColor, colorFor(50))
	})

	t.Run("below midpoint shades red", func(t *testing.T) {
		c := colorFor(25)
		assert.Greater(t, c.R, c.G)
	})

	t.Run("above midpoint shades green", func(t *testing.T) {
		c := colorFor(75)
		assert.Greater(t, c.G, c.R)
	})
}

func TestSvgColor(t *testing.T) {
	assert.Equal(t, "#d3d3d3", svgColor(noDataColor))
	assert.Equal(t, "#ca2b2b", svgColor(rejectColor))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "Löhne &amp; Renten &lt;50%&gt;", escapeXML(`Löhne & Renten <50%>`))
}
