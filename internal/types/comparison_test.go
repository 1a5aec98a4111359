package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparisonResult_BestUsesServiceDesignation(t *testing.T) {
	c := &ComparisonResult{
		Results: []ComparisonEntry{
			{Filename: "B", MatchScore: 91},
			{Filename: "A", MatchScore: 70},
		},
		BestMatch: &ComparisonEntry{Filename: "B", MatchScore: 91},
	}

	best, ok := c.Best()
	assert.True(t, ok)
	assert.Equal(t, "B", best.Filename)
}

func TestComparisonResult_BestTieGoesToLowestIndex(t *testing.T) {
	c := &ComparisonResult{
		Results: []ComparisonEntry{
			{Filename: "A", MatchScore: 60},
			{Filename: "B", MatchScore: 88},
			{Filename: "C", MatchScore: 88},
		},
	}

	best, ok := c.Best()
	assert.True(t, ok)
	assert.Equal(t, "B", best.Filename)
	// Order is untouched.
	assert.Equal(t, "A", c.Results[0].Filename)
}

func TestComparisonResult_BestEmpty(t *testing.T) {
	var nilResult *ComparisonResult
	_, ok := nilResult.Best()
	assert.False(t, ok)

	_, ok = (&ComparisonResult{}).Best()
	assert.False(t, ok)
}
