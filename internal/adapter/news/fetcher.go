package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"marketbrief/internal/domain"
)

// Fetcher downloads news pages and extracts title and body text. A URL that
// fails to download or parse is skipped; the caller decides what to do with
// a thin result set.
type Fetcher struct {
	client    *http.Client
	cache     *articleCache
	userAgent string
	log       *logrus.Entry
}

func NewFetcher(timeout time.Duration, userAgent string, cacheSize int, cacheTTL time.Duration, log *logrus.Entry) *Fetcher {
	if userAgent == "" {
		userAgent = "marketbrief/1.0"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:     newArticleCache(cacheSize, cacheTTL),
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch downloads each URL and returns the articles that could be extracted.
func (f *Fetcher) Fetch(ctx context.Context, urls []string) []domain.Article {
	articles := make([]domain.Article, 0, len(urls))
	for _, u := range urls {
		if article, ok := f.cache.get(u); ok {
			articles = append(articles, article)
			continue
		}

		article, err := f.fetchOne(ctx, u)
		if err != nil {
			f.log.WithError(err).WithField("url", u).Warn("skipping article")
			continue
		}
		f.cache.put(u, article)
		articles = append(articles, article)
	}
	return articles
}

func (f *Fetcher) fetchOne(ctx context.Context, u string) (domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Article{}, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Article{}, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	title, text, err := extract(resp.Body)
	if err != nil {
		return domain.Article{}, fmt.Errorf("parsing error: %w", err)
	}

	return domain.Article{
		Title:       title,
		Text:        text,
		URL:         u,
		PublishedAt: time.Now().UTC(),
	}, nil
}

// extract walks the HTML token stream collecting visible text, ignoring
// script and style content.
func extract(body io.Reader) (title, text string, err error) {
	tokenizer := html.NewTokenizer(body)
	var builder strings.Builder
	inScript, inStyle, inTitle := false, false, false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.TrimSpace(title), squeeze(builder.String()), nil
			}
			return "", "", tokenizer.Err()

		case html.StartTagToken:
			switch token := tokenizer.Token(); token.Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			case "title":
				inTitle = true
			}

		case html.EndTagToken:
			switch token := tokenizer.Token(); token.Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			case "title":
				inTitle = false
			}

		case html.TextToken:
			if inScript || inStyle {
				continue
			}
			content := tokenizer.Token().Data
			if inTitle {
				title += content
				continue
			}
			builder.WriteString(content)
			builder.WriteString(" ")
		}
	}
}

// squeeze collapses runs of whitespace into single spaces.
func squeeze(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
