package lookback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRatioJSON(t *testing.T) {
	b, err := json.Marshal(Ratio{Value: 35.12, Valid: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "35.12" {
		t.Errorf("valid ratio = %s, want 35.12", b)
	}

	b, _ = json.Marshal(Ratio{})
	if string(b) != `"N/A"` {
		t.Errorf("invalid ratio = %s, want \"N/A\"", b)
	}

	var r Ratio
	if err := json.Unmarshal([]byte(`"N/A"`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Valid {
		t.Error("N/A unmarshaled as valid")
	}
	if err := json.Unmarshal([]byte("12.5"), &r); err != nil {
		t.Fatal(err)
	}
	if !r.Valid || r.Value != 12.5 {
		t.Errorf("ratio = %+v, want {12.5 true}", r)
	}
	if err := json.Unmarshal([]byte(`"bogus"`), &r); err == nil {
		t.Error("unmarshal accepted a non-numeric string")
	}
}

func TestClientEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/entries" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Entry{{Symbol: "AAPL", Date: "2024-01-15"}})
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Symbol != "AAPL" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestClientChartData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chart-data" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req ChartDataRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Symbol != "AAPL" || req.PurchaseDate != "2024-01-15" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(ChartData{
			Candlestick:       []CandlePoint{{Time: 1000, Open: 1, High: 2, Low: 1, Close: 2}},
			Volume:            []VolumePoint{{Time: 1000, Value: 10, Color: "rgba(38, 166, 154, 0.5)"}},
			PurchaseTimestamp: 1000,
		})
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL).ChartData(context.Background(), "AAPL", "2024-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Candlestick) != 1 || data.PurchaseTimestamp != 1000 {
		t.Errorf("chart data = %+v", data)
	}
}

func TestClientServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "no chart data for FAKE"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ChartData(context.Background(), "FAKE", "2024-01-15")
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "no chart data for FAKE"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
}

func TestFetchChartViewJoins(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/api/chart-data":
			json.NewEncoder(w).Encode(ChartData{PurchaseTimestamp: 42})
		case "/api/stock-info/AAPL":
			json.NewEncoder(w).Encode(StockInfo{Name: "Apple Inc."})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	view, err := NewClient(srv.URL).FetchChartView(context.Background(), "AAPL", "2024-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if view.Chart.PurchaseTimestamp != 42 || view.Info.Name != "Apple Inc." {
		t.Errorf("view = %+v / %+v", view.Chart, view.Info)
	}
}

func TestFetchChartViewFailsWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/chart-data" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "no chart data for FAKE"})
			return
		}
		json.NewEncoder(w).Encode(StockInfo{Name: "Fake Corp"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchChartView(context.Background(), "FAKE", "2024-01-15")
	if err == nil {
		t.Fatal("expected the joined fetch to fail")
	}
}
