package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/finsight-hq/vantage-fetcher/pkg/httpclient"
)

func testClient(apiKey, baseURL string, opts ...Option) *Client {
	opts = append([]Option{
		WithBaseURL(baseURL),
		WithHTTPClient(httpclient.NewRestyClient(2 * time.Second)),
	}, opts...)
	return New(apiKey, opts...)
}

func TestIncomeStatementSendsExactQueryParams(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := testClient("TESTKEY", srv.URL)
	if _, err := client.IncomeStatement(context.Background(), "HON"); err != nil {
		t.Fatalf("IncomeStatement: %v", err)
	}

	if len(query) != 3 {
		t.Fatalf("expected exactly 3 query params, got %d: %v", len(query), query)
	}
	if got := query.Get("function"); got != "INCOME_STATEMENT" {
		t.Fatalf("function = %q", got)
	}
	if got := query.Get("symbol"); got != "HON" {
		t.Fatalf("symbol = %q", got)
	}
	if got := query.Get("apikey"); got != "TESTKEY" {
		t.Fatalf("apikey = %q", got)
	}
}

func TestIncomeStatementReturnsBodyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol": "HON", "annualReports": []}`))
	}))
	defer srv.Close()

	client := testClient("TESTKEY", srv.URL)
	got, err := client.IncomeStatement(context.Background(), "HON")
	if err != nil {
		t.Fatalf("IncomeStatement: %v", err)
	}

	want := map[string]any{"symbol": "HON", "annualReports": []any{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payload = %#v, want %#v", got, want)
	}
}

func TestIncomeStatementReturnsRemoteErrorPayloadAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Error Message": "Invalid API call"}`))
	}))
	defer srv.Close()

	client := testClient("BADKEY", srv.URL)
	got, err := client.IncomeStatement(context.Background(), "HON")
	if err != nil {
		t.Fatalf("remote error payload must not fail the call, got %v", err)
	}

	want := map[string]any{"Error Message": "Invalid API call"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payload = %#v, want %#v", got, want)
	}
}

func TestIncomeStatementIgnoresHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"Note": "please slow down"}`))
	}))
	defer srv.Close()

	client := testClient("TESTKEY", srv.URL)
	got, err := client.IncomeStatement(context.Background(), "HON")
	if err != nil {
		t.Fatalf("non-2xx body must still decode, got %v", err)
	}
	if got["Note"] != "please slow down" {
		t.Fatalf("payload = %#v", got)
	}
}

func TestIncomeStatementPropagatesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer srv.Close()

	client := testClient("TESTKEY", srv.URL)
	if _, err := client.IncomeStatement(context.Background(), "HON"); err == nil {
		t.Fatalf("expected decode error for non-JSON body")
	}
}

func TestIncomeStatementPropagatesConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := srv.URL
	srv.Close()

	client := testClient("TESTKEY", target)
	if _, err := client.IncomeStatement(context.Background(), "HON"); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}

func TestInputValidationOffByDefault(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// Without the option even an empty symbol goes out on the wire.
	client := testClient("TESTKEY", srv.URL)
	if _, err := client.IncomeStatement(context.Background(), ""); err != nil {
		t.Fatalf("IncomeStatement: %v", err)
	}
	if _, ok := query["symbol"]; !ok {
		t.Fatalf("symbol param missing: %v", query)
	}
}

func TestInputValidationRejectsBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cases := []struct {
		name   string
		apiKey string
		symbol string
	}{
		{name: "empty symbol", apiKey: "TESTKEY", symbol: ""},
		{name: "empty key", apiKey: "", symbol: "HON"},
		{name: "implausible ticker", apiKey: "TESTKEY", symbol: "not a ticker!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := testClient(tc.apiKey, srv.URL, WithInputValidation())
			if _, err := client.IncomeStatement(context.Background(), tc.symbol); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
	if called {
		t.Fatalf("validation failures must not reach the network")
	}
}

func TestInputValidationAllowsSuffixedTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := testClient("TESTKEY", srv.URL, WithInputValidation())
	for _, symbol := range []string{"HON", "BRK.B", "RY.TO"} {
		if _, err := client.IncomeStatement(context.Background(), symbol); err != nil {
			t.Fatalf("symbol %q rejected: %v", symbol, err)
		}
	}
}
