package retriever

import (
	"sort"

	"marketbrief/internal/adapter/analyzer"
	"marketbrief/internal/domain"
)

// OverlapRanker scores documents by keyword overlap with the query: the
// number of distinct lowercase words the two share. It is the
// zero-infrastructure baseline for an ephemeral per-request corpus of short
// articles; no index is built and nothing is learned between calls.
type OverlapRanker struct{}

func NewOverlapRanker() *OverlapRanker {
	return &OverlapRanker{}
}

// Retrieve returns the top-k documents for the query, ordered by score
// descending. Ties keep their original corpus order. Zero-score documents
// are dropped, but when nothing at all overlaps the first k corpus documents
// come back in original order with score 0 so a non-empty corpus never
// yields an empty result.
func (r *OverlapRanker) Retrieve(corpus domain.Corpus, query string, k int) []domain.ScoredResult {
	if corpus.Empty() || k <= 0 {
		return nil
	}

	queryWords := analyzer.WordSet(query)

	scored := make([]domain.ScoredResult, 0, corpus.Len())
	for _, text := range corpus.Docs {
		scored = append(scored, domain.ScoredResult{
			Text:  text,
			Score: analyzer.Overlap(queryWords, analyzer.WordSet(text)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	matched := scored[:0:0]
	for _, s := range scored {
		if s.Score > 0 {
			matched = append(matched, s)
		}
	}

	if len(matched) == 0 {
		n := corpus.Len()
		if n > k {
			n = k
		}
		fallback := make([]domain.ScoredResult, 0, n)
		for _, text := range corpus.Docs[:n] {
			fallback = append(fallback, domain.ScoredResult{Text: text})
		}
		return fallback
	}

	if len(matched) > k {
		matched = matched[:k]
	}
	return matched
}
