package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	t.Run("empty collection carries no terms", func(t *testing.T) {
		idx := NewIndex(nil)
		assert.Equal(t, 0, idx.Docs())
		assert.Equal(t, 0, idx.Terms())
		assert.Empty(t, idx.Score("anything"))
	})

	t.Run("statistics over a small collection", func(t *testing.T) {
		idx := NewIndex([]string{
			"csrf token validation",
			"csrf forgery protection",
			"image lazy loading",
		})

		assert.Equal(t, 3, idx.Docs())
		assert.InDelta(t, 3.0, idx.AvgDocLen(), 1e-9)

		// df counts distinct documents, not occurrences.
		assert.Equal(t, 2, idx.DocFreq("csrf"))
		assert.Equal(t, 1, idx.DocFreq("token"))
		assert.Equal(t, 0, idx.DocFreq("absent"))
	})

	t.Run("repeated term in one document counts once for df", func(t *testing.T) {
		idx := NewIndex([]string{"cache cache cache", "other words here"})
		assert.Equal(t, 1, idx.DocFreq("cache"))
	})

	t.Run("index term set equals the distinct terms of the collection", func(t *testing.T) {
		idx := NewIndex([]string{"alpha beta", "beta gamma"})
		assert.Equal(t, 3, idx.Terms())
		assert.Positive(t, idx.IDF("alpha"))
		assert.Positive(t, idx.IDF("beta"))
		assert.Zero(t, idx.IDF("delta"))
	})
}

func TestIDFNonNegative(t *testing.T) {
	// The smoothed IDF must stay non-negative even for terms present
	// in every document (df = N).
	idx := NewIndex([]string{
		"common term here",
		"common term there",
		"common term everywhere",
	})
	assert.Equal(t, 3, idx.DocFreq("common"))
	assert.GreaterOrEqual(t, idx.IDF("common"), 0.0)

	for _, term := range []string{"common", "term", "here", "there", "everywhere"} {
		assert.GreaterOrEqual(t, idx.IDF(term), 0.0, term)
	}
}

func TestScoreSingleDocument(t *testing.T) {
	idx := NewIndex([]string{"unique token appears once"})

	require.Equal(t, 1, idx.Docs())
	assert.InDelta(t, 4.0, idx.AvgDocLen(), 1e-9)

	// With one document, len(d)/avgdl = 1, so for tf = 1 the whole
	// term weight collapses to idf(t): (k1+1)/(1 + k1·(1-b+b)) = 1.
	ranked := idx.Score("unique")
	require.Len(t, ranked, 1)
	assert.InDelta(t, idx.IDF("unique"), ranked[0].Score, 1e-12)

	expected := math.Log((1-1+0.5)/(1+0.5) + 1)
	assert.InDelta(t, expected, ranked[0].Score, 1e-12)
}

func TestScoreRanking(t *testing.T) {
	idx := NewIndex([]string{
		"image lazy loading for performance",
		"csrf token validation for forms",
		"csrf csrf double submit cookie pattern",
	})

	t.Run("descending score order", func(t *testing.T) {
		ranked := idx.Score("csrf token")
		require.Len(t, ranked, 3)
		for i := 0; i < len(ranked)-1; i++ {
			assert.GreaterOrEqual(t, ranked[i].Score, ranked[i+1].Score)
		}
		// Both csrf documents outrank the unrelated one.
		assert.Equal(t, 0.0, ranked[2].Score)
		assert.Equal(t, 0, ranked[2].Doc)
	})

	t.Run("query terms absent from the index score zero", func(t *testing.T) {
		ranked := idx.Score("kubernetes helm chart")
		for _, ds := range ranked {
			assert.Zero(t, ds.Score)
		}
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		for _, ds := range idx.Score("") {
			assert.Zero(t, ds.Score)
		}
	})

	t.Run("repeated query terms accumulate", func(t *testing.T) {
		once := idx.Score("token")[0].Score
		twice := idx.Score("token token")[0].Score
		assert.InDelta(t, 2*once, twice, 1e-12)
	})
}

func TestScoreTiesKeepCollectionOrder(t *testing.T) {
	// Identical documents score identically; the stable sort must
	// keep their original order.
	idx := NewIndex([]string{
		"duplicate entry",
		"duplicate entry",
		"duplicate entry",
	})

	ranked := idx.Score("duplicate")
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{ranked[0].Doc, ranked[1].Doc, ranked[2].Doc})
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
}

func TestScoreLengthNormalization(t *testing.T) {
	// Same tf, but the shorter document ranks higher.
	idx := NewIndex([]string{
		"needle surrounded by many many other unrelated filler words here",
		"needle alone here",
	})

	ranked := idx.Score("needle")
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Doc)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestScoreDocumentsWithNoTokens(t *testing.T) {
	// Documents whose text tokenizes to nothing still participate
	// without dividing by zero elsewhere.
	idx := NewIndex([]string{"", "real content here", "!!"})
	ranked := idx.Score("content")
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Doc)
	assert.Positive(t, ranked[0].Score)
	for _, ds := range ranked[1:] {
		assert.Zero(t, ds.Score)
		assert.False(t, math.IsNaN(ds.Score))
	}
}
