package symbols

import (
	"reflect"
	"testing"
)

func TestFromQueryDirectTickers(t *testing.T) {
	got := FromQuery("what is our exposure in AAPL and MSFT today")
	want := []string{"AAPL", "MSFT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromQuery() = %v, want %v", got, want)
	}
}

func TestFromQueryCompanyNames(t *testing.T) {
	got := FromQuery("how is samsung electronics doing against tsmc")
	if !reflect.DeepEqual(got, []string{"005930.KS", "TSM"}) {
		t.Errorf("FromQuery() = %v", got)
	}
}

func TestFromQueryDeduplicates(t *testing.T) {
	got := FromQuery("TSLA and tesla outlook")
	if !reflect.DeepEqual(got, []string{"TSLA"}) {
		t.Errorf("expected single TSLA, got %v", got)
	}
}

func TestFromQueryDefaults(t *testing.T) {
	got := FromQuery("what's our risk exposure in technology stocks?")
	if !reflect.DeepEqual(got, Defaults) {
		t.Errorf("expected defaults, got %v", got)
	}
}

func TestParse(t *testing.T) {
	got := Parse(" TSM, 005930.KS ,,AAPL ")
	want := []string{"TSM", "005930.KS", "AAPL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestCompanyName(t *testing.T) {
	if got := CompanyName("TSM"); got != "Taiwan Semiconductor" {
		t.Errorf("CompanyName(TSM) = %q", got)
	}
	if got := CompanyName("ZZZZ"); got != "ZZZZ" {
		t.Errorf("unknown ticker should round-trip, got %q", got)
	}
}

func TestNewsURLsLimitsToTwoSymbols(t *testing.T) {
	got := NewsURLs([]string{"TSM", "AAPL", "MSFT"})
	want := []string{
		"https://finance.yahoo.com/quote/TSM/news/",
		"https://finance.yahoo.com/quote/AAPL/news/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewsURLs() = %v, want %v", got, want)
	}
}
