package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"lookback/internal/domain"
	"lookback/internal/util"

	"lookback/pkg/lookback"
)

// Compile-time interface check.
var _ Provider = (*YahooProvider)(nil)

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
	limiter *util.RateLimiter
}

// NewYahooProvider creates a Yahoo Finance provider. The optional proxyURL
// routes requests through an HTTP proxy.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
		// Yahoo throttles anonymous clients aggressively.
		limiter: util.NewRateLimiter(120),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooNumber is Yahoo's {raw, fmt} wrapper around numeric fields.
type yahooNumber struct {
	Raw float64 `json:"raw"`
}

// yahooSummary is the response structure from the Yahoo quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string      `json:"longName"`
				MarketCap yahooNumber `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE       *yahooNumber `json:"trailingPE"`
				DividendYield    yahooNumber  `json:"dividendYield"`
				FiftyTwoWeekHigh yahooNumber  `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  yahooNumber  `json:"fiftyTwoWeekLow"`
				AverageVolume    yahooNumber  `json:"averageVolume"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// DailyBars fetches daily bars for [start, end] from the Yahoo chart API.
// Null bars (holidays etc.) are skipped; results are sorted by time.
func (p *YahooProvider) DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		p.BaseURL, url.PathEscape(strings.ToUpper(symbol)), start.Unix(), end.Unix())

	body, err := p.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]domain.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, domain.Bar{
			Symbol:    strings.ToUpper(symbol),
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      o,
			High:      h,
			Low:       l,
			Close:     c,
			Volume:    int64(toFloat(quote.Volume[i])),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	return bars, nil
}

// CompanyInfo fetches company metadata from the Yahoo quoteSummary API.
// Missing fields come back zero-valued ("N/A" for strings), matching the
// info endpoint contract.
func (p *YahooProvider) CompanyInfo(ctx context.Context, symbol string) (*lookback.StockInfo, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,price,summaryDetail",
		p.BaseURL, url.PathEscape(strings.ToUpper(symbol)))

	body, err := p.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no info for %s", symbol)
	}

	r := summary.QuoteSummary.Result[0]
	info := &lookback.StockInfo{
		Name:             orNA(r.Price.LongName),
		Sector:           orNA(r.AssetProfile.Sector),
		Industry:         orNA(r.AssetProfile.Industry),
		MarketCap:        r.Price.MarketCap.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,
		AvgVolume:        int64(r.SummaryDetail.AverageVolume.Raw),
	}
	if pe := r.SummaryDetail.TrailingPE; pe != nil {
		info.PERatio = lookback.Ratio{Value: pe.Raw, Valid: true}
	}
	return info, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (p *YahooProvider) fetch(ctx context.Context, u string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
