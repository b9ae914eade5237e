package usecase

import "marketbrief/internal/domain"

// PortfolioWeights assigns descending weights to the queried symbols:
// 15% for the first, 2 points less for each following one, floored at 5%.
func PortfolioWeights(symbols []string) map[string]float64 {
	weights := make(map[string]float64, len(symbols))
	for i, s := range symbols {
		w := 0.15 - float64(i)*0.02
		if w < 0.05 {
			w = 0.05
		}
		weights[s] = w
	}
	return weights
}

// ComputeExposure derives per-symbol positions from weights and price
// history. A symbol without a closing price gets PriceKnown=false; the
// position value still reflects the portfolio weight, but no price is ever
// fabricated for it.
func ComputeExposure(symbols []string, weights map[string]float64, aum float64, history map[string]domain.Series) []domain.Position {
	positions := make([]domain.Position, 0, len(symbols))
	for _, s := range symbols {
		w := weights[s]
		pos := domain.Position{
			Symbol: s,
			Weight: w,
			Value:  w * aum,
		}
		if series, ok := history[s]; ok {
			if price, ok := series.LastClose(); ok {
				pos.Price = price
				pos.PriceKnown = true
			}
		}
		positions = append(positions, pos)
	}
	return positions
}
