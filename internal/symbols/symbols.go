package symbols

import (
	"regexp"
	"strings"
)

// Defaults are used when a query names no recognizable company or ticker.
var Defaults = []string{"TSM", "005930.KS"}

type mapping struct {
	Name   string
	Ticker string
}

// Company-name aliases recognized in free-text queries. Longer aliases first
// so "samsung electronics" resolves before "samsung" would shadow it.
var mappings = []mapping{
	{"taiwan semiconductor", "TSM"},
	{"samsung electronics", "005930.KS"},
	{"advanced micro devices", "AMD"},
	{"tsmc", "TSM"},
	{"samsung", "005930.KS"},
	{"apple", "AAPL"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"microsoft", "MSFT"},
	{"amazon", "AMZN"},
	{"meta", "META"},
	{"facebook", "META"},
	{"netflix", "NFLX"},
	{"nvidia", "NVDA"},
	{"tesla", "TSLA"},
	{"intel", "INTC"},
	{"amd", "AMD"},
	{"qualcomm", "QCOM"},
}

var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// FromQuery extracts ticker symbols from a free-text query: uppercase tokens
// that look like tickers plus known company-name aliases, deduplicated in
// first-seen order. Falls back to Defaults when nothing matches.
func FromQuery(query string) []string {
	var found []string
	found = append(found, tickerPattern.FindAllString(query, -1)...)

	lower := strings.ToLower(query)
	for _, m := range mappings {
		if strings.Contains(lower, m.Name) {
			found = append(found, m.Ticker)
		}
	}

	seen := make(map[string]struct{}, len(found))
	unique := found[:0:0]
	for _, s := range found {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}

	if len(unique) == 0 {
		return append([]string(nil), Defaults...)
	}
	return unique
}

// Parse splits an explicit comma-separated symbol list, trimming whitespace.
func Parse(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CompanyName returns a display name for a ticker, or the ticker itself when
// unknown.
func CompanyName(ticker string) string {
	for _, m := range mappings {
		if m.Ticker == ticker {
			return titleCase(m.Name)
		}
	}
	return ticker
}

func titleCase(name string) string {
	parts := strings.Fields(name)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// NewsURLs derives Yahoo Finance news pages for the first two symbols.
func NewsURLs(syms []string) []string {
	if len(syms) > 2 {
		syms = syms[:2]
	}
	urls := make([]string, 0, len(syms))
	for _, s := range syms {
		urls = append(urls, "https://finance.yahoo.com/quote/"+s+"/news/")
	}
	return urls
}
