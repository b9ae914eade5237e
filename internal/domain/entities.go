package domain

import "time"

// Article is a raw news record as produced by a fetcher. Upstream sources
// disagree about where the body lives: some fill Text, others Content or
// Summary. The docstore adapter normalizes this.
type Article struct {
	Title       string    `json:"title,omitempty"`
	Text        string    `json:"text,omitempty"`
	Content     string    `json:"content,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Corpus is the request-scoped sequence of indexed document texts available
// for retrieval. It is built fresh per logical request and passed by value;
// there is no shared mutable corpus state.
type Corpus struct {
	Docs []string
}

func (c Corpus) Len() int { return len(c.Docs) }

func (c Corpus) Empty() bool { return len(c.Docs) == 0 }

// ScoredResult is one retrieval hit. Score is the number of distinct
// lowercase words shared between the query and the document.
type ScoredResult struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Bar is one day of OHLCV price data.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is the price history for one symbol.
type Series struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// LastClose returns the most recent closing price, if any.
func (s Series) LastClose() (float64, bool) {
	if len(s.Bars) == 0 {
		return 0, false
	}
	return s.Bars[len(s.Bars)-1].Close, true
}

// EarningsRow is one reported quarter.
type EarningsRow struct {
	Quarter  string  `json:"quarter"`
	Estimate float64 `json:"estimate"`
	Actual   float64 `json:"actual"`
}

// Position is the portfolio exposure for one symbol. PriceKnown is false when
// no closing price could be determined; Price is zero in that case, never a
// substitute figure.
type Position struct {
	Symbol     string  `json:"symbol"`
	Weight     float64 `json:"weight"`
	Value      float64 `json:"value"`
	Price      float64 `json:"price"`
	PriceKnown bool    `json:"price_known"`
}

// BriefInput is everything a brief writer needs to produce the narrative.
type BriefInput struct {
	Query    string
	Symbols  []string
	Context  []ScoredResult
	Exposure []Position
	Earnings map[string][]EarningsRow
}
