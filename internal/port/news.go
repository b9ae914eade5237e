package port

import (
	"context"

	"marketbrief/internal/domain"
)

// NewsFetcher retrieves raw article records from a set of URLs. URLs that
// cannot be fetched or parsed are skipped, not surfaced as errors.
type NewsFetcher interface {
	Fetch(ctx context.Context, urls []string) []domain.Article
}
