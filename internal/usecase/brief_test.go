package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketbrief/internal/adapter/retriever"
	"marketbrief/internal/domain"
)

type fakeMarket struct {
	history     map[string]domain.Series
	historyErr  error
	earnings    map[string][]domain.EarningsRow
	earningsErr error
}

func (f *fakeMarket) History(_ context.Context, symbols []string) (map[string]domain.Series, error) {
	out := make(map[string]domain.Series)
	for _, s := range symbols {
		if series, ok := f.history[s]; ok {
			out[s] = series
		}
	}
	return out, f.historyErr
}

func (f *fakeMarket) Earnings(_ context.Context, symbol string) ([]domain.EarningsRow, error) {
	if f.earningsErr != nil {
		return nil, f.earningsErr
	}
	return f.earnings[symbol], nil
}

type fakeNews struct {
	articles []domain.Article
}

func (f *fakeNews) Fetch(_ context.Context, _ []string) []domain.Article {
	return f.articles
}

type fakeWriter struct {
	out string
	err error
}

func (f *fakeWriter) Write(_ context.Context, _ domain.BriefInput) (string, error) {
	return f.out, f.err
}

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(log)
}

func newUseCase(market *fakeMarket, news *fakeNews, writer, fallback *fakeWriter) *BriefUseCase {
	return NewBriefUseCase(
		market, news, retriever.NewOverlapRanker(),
		writer, fallback,
		3, 1_000_000, testLogger(),
	)
}

func TestRetrieveContextRanksNews(t *testing.T) {
	market := &fakeMarket{history: map[string]domain.Series{
		"TSLA": {Symbol: "TSLA", Bars: []domain.Bar{{Close: 200}}},
	}}
	news := &fakeNews{articles: []domain.Article{
		{Text: "Samsung memory chip update"},
		{Text: "Tesla reports record deliveries"},
	}}

	uc := newUseCase(market, news, &fakeWriter{out: "ok"}, &fakeWriter{out: "fallback"})

	res, err := uc.RetrieveContext(context.Background(), Request{Query: "Tesla deliveries", Symbols: []string{"TSLA"}})
	require.NoError(t, err)

	require.NotEmpty(t, res.Context)
	assert.Equal(t, "Tesla reports record deliveries", res.Context[0].Text)
	assert.Equal(t, 2, res.Context[0].Score)
	assert.Contains(t, res.MarketData, "TSLA")
}

func TestRetrieveContextExtractsSymbolsFromQuery(t *testing.T) {
	market := &fakeMarket{history: map[string]domain.Series{}}
	news := &fakeNews{}

	uc := newUseCase(market, news, &fakeWriter{out: "ok"}, &fakeWriter{out: "fallback"})

	res, err := uc.RetrieveContext(context.Background(), Request{Query: "how is tesla doing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TSLA"}, res.Symbols)
}

func TestRetrieveContextFallbackArticles(t *testing.T) {
	market := &fakeMarket{history: map[string]domain.Series{}}
	news := &fakeNews{} // nothing fetched

	uc := newUseCase(market, news, &fakeWriter{out: "ok"}, &fakeWriter{out: "fallback"})

	res, err := uc.RetrieveContext(context.Background(), Request{Query: "zzz", Symbols: []string{"TSM"}})
	require.NoError(t, err)

	require.Len(t, res.Context, 1)
	assert.Contains(t, res.Context[0].Text, "Taiwan Semiconductor")
	assert.Zero(t, res.Context[0].Score)
}

func TestRetrieveContextTotalMarketFailure(t *testing.T) {
	market := &fakeMarket{historyErr: errors.New("upstream down")}
	news := &fakeNews{}

	uc := newUseCase(market, news, &fakeWriter{out: "ok"}, &fakeWriter{out: "fallback"})

	_, err := uc.RetrieveContext(context.Background(), Request{Query: "q", Symbols: []string{"TSM"}})
	assert.Error(t, err)
}

func TestRunProducesBrief(t *testing.T) {
	market := &fakeMarket{
		history: map[string]domain.Series{
			"TSM": {Symbol: "TSM", Bars: []domain.Bar{{Close: 112.34}}},
		},
		earnings: map[string][]domain.EarningsRow{
			"TSM": {{Quarter: "4Q2024", Actual: 2.1, Estimate: 1.95}},
		},
	}
	news := &fakeNews{articles: []domain.Article{
		{Title: "TSMC Earnings", Text: "TSMC reported record revenue"},
	}}

	uc := newUseCase(market, news, &fakeWriter{out: "the brief"}, &fakeWriter{out: "fallback"})

	res, err := uc.Run(context.Background(), Request{Query: "TSMC revenue", Symbols: []string{"TSM"}})
	require.NoError(t, err)

	assert.Equal(t, "the brief", res.Summary)
	require.Len(t, res.Exposure, 1)
	assert.True(t, res.Exposure[0].PriceKnown)
	assert.Equal(t, 112.34, res.Exposure[0].Price)
	assert.Len(t, res.Earnings["TSM"], 1)
}

func TestRunWriterFailureFallsBack(t *testing.T) {
	market := &fakeMarket{history: map[string]domain.Series{
		"TSM": {Symbol: "TSM", Bars: []domain.Bar{{Close: 1}}},
	}}
	news := &fakeNews{articles: []domain.Article{{Text: "TSM news item"}}}

	uc := newUseCase(market, news,
		&fakeWriter{err: errors.New("model down")},
		&fakeWriter{out: "template brief"},
	)

	res, err := uc.Run(context.Background(), Request{Query: "TSM", Symbols: []string{"TSM"}})
	require.NoError(t, err)
	assert.Equal(t, "template brief", res.Summary)
}

func TestRunEarningsFailureIsUnavailableNotFabricated(t *testing.T) {
	market := &fakeMarket{
		history:     map[string]domain.Series{"TSM": {Symbol: "TSM", Bars: []domain.Bar{{Close: 1}}}},
		earningsErr: errors.New("no earnings"),
	}
	news := &fakeNews{articles: []domain.Article{{Text: "TSM news"}}}

	uc := newUseCase(market, news, &fakeWriter{out: "ok"}, &fakeWriter{out: "fallback"})

	res, err := uc.Run(context.Background(), Request{Query: "TSM", Symbols: []string{"TSM"}})
	require.NoError(t, err)
	_, present := res.Earnings["TSM"]
	assert.False(t, present, "failed earnings lookups must stay absent, not fabricated")
}
