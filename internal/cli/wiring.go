package cli

import (
	"fmt"

	"marketbrief/config"
	"marketbrief/internal/adapter/language"
	"marketbrief/internal/adapter/marketdata"
	"marketbrief/internal/adapter/news"
	"marketbrief/internal/adapter/retriever"
	"marketbrief/internal/port"
	"marketbrief/internal/usecase"
)

// app bundles the wired pipeline for a CLI command.
type app struct {
	cfg    *config.Config
	market port.MarketData
	uc     *usecase.BriefUseCase
	close  func() error
}

// buildApp wires adapters per the loaded config. The returned close func
// releases the quote cache.
func buildApp() (*app, error) {
	closer := func() error { return nil }

	var market port.MarketData = marketdata.NewYahooClient(
		cfg.Market.Range, cfg.Market.Interval, cfg.Market.Timeout.Std(), log)

	if err := config.EnsureStateDir(rootDir); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	cache, err := marketdata.NewBoltCache(cfg.QuoteCachePath(rootDir), cfg.Market.CacheTTL.Std())
	if err != nil {
		log.WithError(err).Warn("quote cache unavailable, fetching uncached")
	} else {
		market = marketdata.NewCachedProvider(market, cache, log)
		closer = cache.Close
	}

	fetcher := news.NewFetcher(
		cfg.News.Timeout.Std(), cfg.News.UserAgent,
		cfg.News.CacheSize, cfg.News.CacheTTL.Std(), log)

	template := language.NewTemplateWriter()
	var writer port.BriefWriter = template
	if cfg.Brief.Writer == "chat" {
		chat, err := language.NewChatWriter(cfg.Brief.APIKeyEnv, cfg.Brief.Model, cfg.Brief.BaseURL)
		if err != nil {
			log.WithError(err).Warn("chat writer unavailable, using template writer")
		} else {
			writer = chat
		}
	}

	uc := usecase.NewBriefUseCase(
		market, fetcher, retriever.NewOverlapRanker(),
		writer, template,
		cfg.Retrieve.TopK, cfg.Market.AUM, log,
	)

	return &app{
		cfg:    cfg,
		market: market,
		uc:     uc,
		close:  closer,
	}, nil
}
