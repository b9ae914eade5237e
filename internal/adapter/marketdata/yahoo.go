package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"marketbrief/internal/domain"
)

// YahooClient fetches OHLCV history and quarterly earnings from the Yahoo
// Finance JSON endpoints.
type YahooClient struct {
	baseURL   string
	rangeSpec string
	interval  string
	client    *http.Client
	log       *logrus.Entry
}

const defaultBaseURL = "https://query1.finance.yahoo.com"

func NewYahooClient(rangeSpec, interval string, timeout time.Duration, log *logrus.Entry) *YahooClient {
	if rangeSpec == "" {
		rangeSpec = "1mo"
	}
	if interval == "" {
		interval = "1d"
	}
	return &YahooClient{
		baseURL:   defaultBaseURL,
		rangeSpec: rangeSpec,
		interval:  interval,
		client:    &http.Client{Timeout: timeout},
		log:       log,
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *YahooClient) WithBaseURL(base string) *YahooClient {
	c.baseURL = base
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Earnings struct {
				EarningsChart struct {
					Quarterly []struct {
						Date     string `json:"date"`
						Actual   raw    `json:"actual"`
						Estimate raw    `json:"estimate"`
					} `json:"quarterly"`
				} `json:"earningsChart"`
			} `json:"earnings"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type raw struct {
	Raw float64 `json:"raw"`
}

// History fetches the price series for each symbol. Failures are collected
// per symbol; the map still carries whatever succeeded.
func (c *YahooClient) History(ctx context.Context, symbols []string) (map[string]domain.Series, error) {
	out := make(map[string]domain.Series, len(symbols))
	var errs *multierror.Error

	for _, symbol := range symbols {
		series, err := c.fetchChart(ctx, symbol)
		if err != nil {
			c.log.WithError(err).WithField("symbol", symbol).Warn("market data fetch failed")
			errs = multierror.Append(errs, fmt.Errorf("history %s: %w", symbol, err))
			continue
		}
		out[symbol] = series
	}

	return out, errs.ErrorOrNil()
}

func (c *YahooClient) fetchChart(ctx context.Context, symbol string) (domain.Series, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), c.rangeSpec, c.interval)

	var parsed chartResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return domain.Series{}, err
	}
	if parsed.Chart.Error != nil {
		return domain.Series{}, fmt.Errorf("chart error: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return domain.Series{}, fmt.Errorf("no chart data for %s", symbol)
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := domain.Series{Symbol: symbol}
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		bar := domain.Bar{Date: time.Unix(ts, 0).UTC(), Close: quote.Close[i]}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		series.Bars = append(series.Bars, bar)
	}

	return series, nil
}

// Earnings fetches reported quarters for one symbol, oldest first.
func (c *YahooClient) Earnings(ctx context.Context, symbol string) ([]domain.EarningsRow, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=earnings",
		c.baseURL, url.PathEscape(symbol))

	var parsed quoteSummaryResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no earnings data for %s", symbol)
	}

	quarterly := parsed.QuoteSummary.Result[0].Earnings.EarningsChart.Quarterly
	rows := make([]domain.EarningsRow, 0, len(quarterly))
	for _, q := range quarterly {
		rows = append(rows, domain.EarningsRow{
			Quarter:  q.Date,
			Estimate: q.Estimate.Raw,
			Actual:   q.Actual.Raw,
		})
	}
	return rows, nil
}

func (c *YahooClient) getJSON(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "marketbrief/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
