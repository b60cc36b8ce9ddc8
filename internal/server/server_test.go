package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/davichuder/volatility-explorer/internal/collector"
	"github.com/davichuder/volatility-explorer/internal/recorder"
	"github.com/davichuder/volatility-explorer/internal/session"
)

type figureEnvelope struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
	Figure  *struct {
		Data []struct {
			Name  string `json:"name"`
			YAxis string `json:"yaxis"`
		} `json:"data"`
	} `json:"figure"`
}

func newTestClient(t *testing.T, fetcher collector.Fetcher) (*http.Client, string, func()) {
	t.Helper()
	srv := New(fetcher, session.NewStore(time.Hour), recorder.NewNoopRecorder(), Defaults{
		Ticker:       "SPY",
		Window:       21,
		LookbackDays: 365,
	})
	ts := httptest.NewServer(srv.Handler())
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}, ts.URL, ts.Close
}

func postJSON(t *testing.T, client *http.Client, url, body string, out interface{}) {
	t.Helper()
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestServer_LoadCalculateFlow(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Points: collector.PointsFromCloses(
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			[]float64{100, 102, 101, 105, 103, 108, 107, 110},
		),
	}
	client, base, done := newTestClient(t, fetcher)
	defer done()

	var load struct {
		Message          string `json:"message"`
		CalculateEnabled bool   `json:"calculate_enabled"`
		Points           int    `json:"points"`
	}
	postJSON(t, client, base+"/api/load", `{"ticker":"SPY","start":"2024-01-01","end":"2024-06-01"}`, &load)
	if !load.CalculateEnabled {
		t.Fatalf("expected calculate enabled, message: %s", load.Message)
	}
	if load.Points != 8 {
		t.Errorf("expected 8 points, got %d", load.Points)
	}

	// Same load again rides the session cache: no second fetch.
	postJSON(t, client, base+"/api/load", `{"ticker":"SPY","start":"2024-01-01","end":"2024-06-01"}`, &load)
	if fetcher.Calls != 1 {
		t.Errorf("redundant load must not refetch, got %d calls", fetcher.Calls)
	}

	var calc figureEnvelope
	postJSON(t, client, base+"/api/calculate", `{"window":"3"}`, &calc)
	if !calc.Updated || calc.Figure == nil {
		t.Fatalf("expected an updated figure, message: %s", calc.Message)
	}
	if len(calc.Figure.Data) != 20 {
		t.Errorf("expected 20 traces, got %d", len(calc.Figure.Data))
	}

	// Redundant calculate leaves the prior figure alone.
	var calc2 figureEnvelope
	postJSON(t, client, base+"/api/calculate", `{"window":"3"}`, &calc2)
	if calc2.Updated || calc2.Figure != nil {
		t.Error("redundant calculate should not resend a figure")
	}
}

func TestServer_NumericWindowAccepted(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Points: collector.PointsFromCloses(
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			[]float64{100, 102, 101, 105, 103},
		),
	}
	client, base, done := newTestClient(t, fetcher)
	defer done()

	var load struct {
		CalculateEnabled bool `json:"calculate_enabled"`
	}
	postJSON(t, client, base+"/api/load", `{"ticker":"SPY","start":"2024-01-01","end":"2024-06-01"}`, &load)

	var calc figureEnvelope
	postJSON(t, client, base+"/api/calculate", `{"window":3}`, &calc)
	if !calc.Updated {
		t.Errorf("a numeric JSON window should be accepted, message: %s", calc.Message)
	}
}

func TestServer_InvalidWindowMessages(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Points: collector.PointsFromCloses(
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			[]float64{100, 102, 101, 105, 103},
		),
	}
	client, base, done := newTestClient(t, fetcher)
	defer done()

	var load struct{}
	postJSON(t, client, base+"/api/load", `{"ticker":"SPY","start":"2024-01-01","end":"2024-06-01"}`, &load)

	for _, body := range []string{`{"window":"abc"}`, `{"window":0}`, `{}`} {
		var calc figureEnvelope
		postJSON(t, client, base+"/api/calculate", body, &calc)
		if calc.Updated || calc.Figure != nil {
			t.Errorf("body %s: expected no figure", body)
		}
		if calc.Message == "" {
			t.Errorf("body %s: expected a descriptive message", body)
		}
	}
}

func TestServer_NoDataDisablesCalculate(t *testing.T) {
	client, base, done := newTestClient(t, &collector.MockFetcher{})
	defer done()

	var load struct {
		Message          string `json:"message"`
		CalculateEnabled bool   `json:"calculate_enabled"`
	}
	postJSON(t, client, base+"/api/load", `{"ticker":"ZZZZINVALID","start":"2024-01-01","end":"2024-06-01"}`, &load)
	if load.CalculateEnabled {
		t.Error("calculate must stay disabled when the provider has no data")
	}
	if load.Message == "" {
		t.Error("expected a descriptive message")
	}
}

func TestServer_IndexAndHealth(t *testing.T) {
	client, base, done := newTestClient(t, &collector.MockFetcher{})
	defer done()

	resp, err := client.Get(base + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Volatility Explorer") {
		t.Error("index page should serve the dashboard")
	}

	resp, err = client.Get(base + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status %d", resp.StatusCode)
	}
}

func TestServer_SessionsAreIndependent(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Points: collector.PointsFromCloses(
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			[]float64{100, 102, 101, 105, 103},
		),
	}
	clientA, base, done := newTestClient(t, fetcher)
	defer done()

	var load struct {
		CalculateEnabled bool `json:"calculate_enabled"`
	}
	postJSON(t, clientA, base+"/api/load", `{"ticker":"SPY","start":"2024-01-01","end":"2024-06-01"}`, &load)

	// A second browser without the cookie has no loaded series.
	jar, _ := cookiejar.New(nil)
	clientB := &http.Client{Jar: jar}
	var calc figureEnvelope
	postJSON(t, clientB, base+"/api/calculate", `{"window":"3"}`, &calc)
	if calc.Updated || calc.Figure != nil {
		t.Error("a fresh session must not see another session's data")
	}
}
