package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/finsight-hq/vantage-fetcher/pkg/httpclient"
)

const (
	// DefaultBaseURL is the AlphaVantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"

	// FunctionIncomeStatement selects the income-statement report.
	FunctionIncomeStatement = "INCOME_STATEMENT"

	defaultTimeout = 30 * time.Second
)

// symbolPattern covers exchange tickers including class/exchange suffixes (BRK.B, RY.TO).
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,12}$`)

// Client queries the AlphaVantage API. The credential is fixed at construction;
// each call is an independent request/response round trip with no shared state,
// so a Client is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	http     httpclient.Client
	validate bool
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the query endpoint. Used by tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *Client) { c.http = client }
}

// WithInputValidation enables client-side checks of the API key and symbol
// before any network call. Off by default: inputs pass through unchecked and
// the remote service is the authority on what they mean.
func WithInputValidation() Option {
	return func(c *Client) { c.validate = true }
}

// New builds a Client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(defaultTimeout)
	}
	return c
}

// IncomeStatement fetches the income-statement report for symbol and returns
// the decoded response body verbatim. The payload shape is owned by the remote
// service; remote-reported errors (invalid key, rate-limit notes) are returned
// as data, not inspected. Transport and decode failures propagate to the caller.
func (c *Client) IncomeStatement(ctx context.Context, symbol string) (map[string]any, error) {
	return c.query(ctx, FunctionIncomeStatement, symbol)
}

func (c *Client) query(ctx context.Context, function, symbol string) (map[string]any, error) {
	if c.validate {
		if err := c.checkInputs(symbol); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	resp, err := c.http.Get(ctx, c.baseURL, params, nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s request for %q: %w", function, symbol, err)
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode alphavantage %s response for %q: %w", function, symbol, err)
	}
	return data, nil
}

// checkInputs applies the opt-in client-side validation.
func (c *Client) checkInputs(symbol string) error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("api key is empty")
	}
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("symbol is empty")
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("symbol %q is not a plausible ticker", symbol)
	}
	return nil
}
