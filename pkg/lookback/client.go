package lookback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a Go client for the lookback-server API. It issues plain
// one-shot requests: no retries, no caching, a single request timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API served at baseURL,
// e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Entries retrieves the recorded (symbol, purchase date) pairs, newest first.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.get(ctx, "/api/entries", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StockInfo retrieves company metadata for a symbol.
func (c *Client) StockInfo(ctx context.Context, symbol string) (*StockInfo, error) {
	info := &StockInfo{}
	path := "/api/stock-info/" + url.PathEscape(symbol)
	if err := c.get(ctx, path, info); err != nil {
		return nil, err
	}
	return info, nil
}

// ChartData retrieves the chart payload for a symbol and purchase date.
func (c *Client) ChartData(ctx context.Context, symbol, purchaseDate string) (*ChartData, error) {
	body, err := json.Marshal(ChartDataRequest{Symbol: symbol, PurchaseDate: purchaseDate})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chart-data", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	data := &ChartData{}
	if err := c.do(req, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ChartView pairs the two responses of a combined fetch.
type ChartView struct {
	Chart *ChartData
	Info  *StockInfo
}

// FetchChartView issues the chart-data and stock-info requests concurrently
// and joins them. Both must succeed; any failure fails the whole fetch.
func (c *Client) FetchChartView(ctx context.Context, symbol, purchaseDate string) (*ChartView, error) {
	type chartResult struct {
		data *ChartData
		err  error
	}
	chartCh := make(chan chartResult, 1)
	go func() {
		data, err := c.ChartData(ctx, symbol, purchaseDate)
		chartCh <- chartResult{data: data, err: err}
	}()

	info, infoErr := c.StockInfo(ctx, symbol)
	chart := <-chartCh

	if chart.err != nil {
		return nil, chart.err
	}
	if infoErr != nil {
		return nil, infoErr
	}
	return &ChartView{Chart: chart.data, Info: info}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do executes a request and decodes the JSON response into out. Non-2xx
// responses are surfaced with the server's error message when one is present.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
