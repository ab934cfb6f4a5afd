package search

import (
	"math"
	"sort"
)

// BM25 parameters. k1 saturates term frequency, b scales document
// length normalization. Fixed design constants, not tunable per call.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Index holds the BM25 statistics of one document collection: document
// count, per-document term frequencies and lengths, average document
// length, and per-term document and inverse document frequencies. An
// Index is built fresh per search call and never persisted or shared.
type Index struct {
	k1 float64
	b  float64

	n         int
	termFreqs []map[string]int
	docLens   []int
	avgdl     float64
	docFreqs  map[string]int
	idf       map[string]float64
}

// NewIndex tokenizes the documents and computes the collection
// statistics. An empty collection produces an index with no terms;
// every score against it is zero.
func NewIndex(documents []string) *Index {
	idx := &Index{
		k1:       DefaultK1,
		b:        DefaultB,
		docFreqs: make(map[string]int),
		idf:      make(map[string]float64),
	}
	idx.fit(documents)
	return idx
}

func (idx *Index) fit(documents []string) {
	idx.n = len(documents)
	if idx.n == 0 {
		return
	}

	idx.termFreqs = make([]map[string]int, idx.n)
	idx.docLens = make([]int, idx.n)

	total := 0
	for i, doc := range documents {
		terms := Tokenize(doc)
		freqs := make(map[string]int, len(terms))
		for _, term := range terms {
			freqs[term]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(terms)
		total += len(terms)

		// Document frequency counts distinct documents, so iterate
		// the deduplicated term set, not the token stream.
		for term := range freqs {
			idx.docFreqs[term]++
		}
	}
	idx.avgdl = float64(total) / float64(idx.n)

	// idf(t) = ln((N - df + 0.5) / (df + 0.5) + 1), the smoothed form
	// that stays non-negative for every df in [0, N].
	for term, df := range idx.docFreqs {
		fdf := float64(df)
		idx.idf[term] = math.Log((float64(idx.n)-fdf+0.5)/(fdf+0.5) + 1)
	}
}

// Docs returns the number of indexed documents.
func (idx *Index) Docs() int {
	return idx.n
}

// Terms returns the number of distinct terms in the index.
func (idx *Index) Terms() int {
	return len(idx.idf)
}

// AvgDocLen returns the mean token count across the collection.
func (idx *Index) AvgDocLen() float64 {
	return idx.avgdl
}

// IDF returns the inverse document frequency of a term, or 0 for
// terms absent from the collection.
func (idx *Index) IDF(term string) float64 {
	return idx.idf[term]
}

// DocFreq returns the number of distinct documents containing a term.
func (idx *Index) DocFreq(term string) int {
	return idx.docFreqs[term]
}

// DocScore pairs a document's position in the indexed collection with
// its relevance score against a query.
type DocScore struct {
	Doc   int
	Score float64
}

// Score ranks every indexed document against the query and returns the
// full list in descending score order. Query terms absent from the
// index contribute nothing. The sort is stable: documents with equal
// scores keep their original collection order.
func (idx *Index) Score(query string) []DocScore {
	queryTerms := Tokenize(query)

	scores := make([]DocScore, idx.n)
	for i := 0; i < idx.n; i++ {
		var score float64
		docLen := float64(idx.docLens[i])
		for _, term := range queryTerms {
			termIDF, ok := idx.idf[term]
			if !ok {
				continue
			}
			tf := float64(idx.termFreqs[i][term])
			numerator := tf * (idx.k1 + 1)
			denominator := tf + idx.k1*(1-idx.b+idx.b*docLen/idx.avgdl)
			score += termIDF * numerator / denominator
		}
		scores[i] = DocScore{Doc: i, Score: score}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score > scores[b].Score
	})
	return scores
}
