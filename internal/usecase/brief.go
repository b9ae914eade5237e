package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"marketbrief/internal/adapter/docstore"
	"marketbrief/internal/domain"
	"marketbrief/internal/port"
	"marketbrief/internal/symbols"
)

// BriefUseCase runs the full pipeline for one request: resolve symbols,
// fetch market data and news, build a fresh corpus, rank context against
// the query, compute exposure and earnings, and write the narrative.
type BriefUseCase struct {
	market   port.MarketData
	news     port.NewsFetcher
	ranker   port.Retriever
	writer   port.BriefWriter
	fallback port.BriefWriter
	log      *logrus.Entry
	topK     int
	aum      float64
}

func NewBriefUseCase(
	market port.MarketData,
	news port.NewsFetcher,
	ranker port.Retriever,
	writer port.BriefWriter,
	fallback port.BriefWriter,
	topK int,
	aum float64,
	log *logrus.Entry,
) *BriefUseCase {
	if topK <= 0 {
		topK = 3
	}
	return &BriefUseCase{
		market:   market,
		news:     news,
		ranker:   ranker,
		writer:   writer,
		fallback: fallback,
		log:      log,
		topK:     topK,
		aum:      aum,
	}
}

// Request identifies one brief to produce. Symbols, when empty, are
// extracted from the query text. TopK, when positive, overrides the
// configured result count.
type Request struct {
	Query   string
	Symbols []string
	TopK    int
}

// ContextResult is the retrieval half of the pipeline, exposed separately
// for the /retrieve endpoint and the query CLI command.
type ContextResult struct {
	Query      string
	Symbols    []string
	MarketData map[string]domain.Series
	Context    []domain.ScoredResult
}

// Result is a finished brief.
type Result struct {
	Query    string
	Symbols  []string
	Summary  string
	Context  []domain.ScoredResult
	Exposure []domain.Position
	Earnings map[string][]domain.EarningsRow
}

func (u *BriefUseCase) resolveSymbols(req Request) []string {
	if len(req.Symbols) > 0 {
		return req.Symbols
	}
	return symbols.FromQuery(req.Query)
}

// RetrieveContext fetches market data and news for the request and ranks
// the news against the query. Upstream failures degrade to fallback
// articles; the retrieval core itself never fails.
func (u *BriefUseCase) RetrieveContext(ctx context.Context, req Request) (*ContextResult, error) {
	syms := u.resolveSymbols(req)
	log := u.log.WithField("symbols", syms)

	history, err := u.market.History(ctx, syms)
	if err != nil {
		log.WithError(err).Warn("partial market data")
	}
	if len(history) == 0 && err != nil {
		return nil, fmt.Errorf("failed to fetch market data: %w", err)
	}

	articles := u.news.Fetch(ctx, symbols.NewsURLs(syms))
	if len(articles) == 0 {
		log.Info("news fetch returned nothing, using fallback articles")
		articles = fallbackArticles(syms)
	}

	topK := u.topK
	if req.TopK > 0 {
		topK = req.TopK
	}

	corpus := docstore.NewCorpus(articles)
	ranked := u.ranker.Retrieve(corpus, req.Query, topK)
	if len(ranked) == 0 {
		ranked = fallbackContext(syms)
	}

	return &ContextResult{
		Query:      req.Query,
		Symbols:    syms,
		MarketData: history,
		Context:    ranked,
	}, nil
}

// Run produces a complete brief.
func (u *BriefUseCase) Run(ctx context.Context, req Request) (*Result, error) {
	retrieved, err := u.RetrieveContext(ctx, req)
	if err != nil {
		return nil, err
	}
	syms := retrieved.Symbols

	weights := PortfolioWeights(syms)
	exposure := ComputeExposure(syms, weights, u.aum, retrieved.MarketData)

	earnings := make(map[string][]domain.EarningsRow, len(syms))
	for _, s := range syms {
		rows, err := u.market.Earnings(ctx, s)
		if err != nil {
			u.log.WithError(err).WithField("symbol", s).Warn("earnings unavailable")
			continue
		}
		earnings[s] = rows
	}

	input := domain.BriefInput{
		Query:    req.Query,
		Symbols:  syms,
		Context:  retrieved.Context,
		Exposure: exposure,
		Earnings: earnings,
	}

	summary, err := u.writer.Write(ctx, input)
	if err != nil {
		u.log.WithError(err).Warn("brief writer failed, falling back to template")
		summary, err = u.fallback.Write(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to write brief: %w", err)
		}
	}

	return &Result{
		Query:    req.Query,
		Symbols:  syms,
		Summary:  summary,
		Context:  retrieved.Context,
		Exposure: exposure,
		Earnings: earnings,
	}, nil
}

// fallbackArticles stands in when every news fetch failed, so the corpus is
// never empty for a non-empty symbol list.
func fallbackArticles(syms []string) []domain.Article {
	articles := make([]domain.Article, 0, len(syms))
	for _, s := range syms {
		name := symbols.CompanyName(s)
		articles = append(articles, domain.Article{
			Title: name + " News",
			Text:  name + " continues to be a key player in the technology market.",
		})
	}
	return articles
}

// fallbackContext stands in when retrieval produced nothing, which can only
// happen if every article was dropped as empty.
func fallbackContext(syms []string) []domain.ScoredResult {
	out := make([]domain.ScoredResult, 0, len(syms))
	for _, s := range syms {
		out = append(out, domain.ScoredResult{
			Text: symbols.CompanyName(s) + " continues to be a key player in the technology market.",
		})
	}
	return out
}
