package port

import (
	"context"

	"marketbrief/internal/domain"
)

// MarketData fetches price history and earnings for ticker symbols.
type MarketData interface {
	// History returns the recent price series per symbol. Symbols that fail
	// to resolve are absent from the map; the returned error aggregates the
	// per-symbol failures while the map still carries partial results.
	History(ctx context.Context, symbols []string) (map[string]domain.Series, error)

	// Earnings returns reported quarters for one symbol, oldest first.
	Earnings(ctx context.Context, symbol string) ([]domain.EarningsRow, error)
}
