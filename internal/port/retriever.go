package port

import "marketbrief/internal/domain"

// Retriever defines the interface for ranking corpus documents against a query.
type Retriever interface {
	// Retrieve scores every document in the corpus and returns the top-k
	// results. It never fails: an empty corpus yields an empty slice.
	Retrieve(corpus domain.Corpus, query string, k int) []domain.ScoredResult
}
