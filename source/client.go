// Package source implements the client for the remote daily-history
// service. One batched request returns the full available history for
// every requested instrument, grouped per instrument.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"benchlens/market"
)

// DefaultBaseURL is the production history endpoint.
const DefaultBaseURL = "https://api.marketdata.app"

// RangeMax asks the service for the full available history.
const RangeMax = "max"

// Client is a history-service API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL;
// the token may be empty for anonymous access.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HistoryRequest holds the parameters of a batched history download.
type HistoryRequest struct {
	Symbols  []string // required, deduplicated by the caller
	Range    string   // e.g. "max" (default)
	Adjusted bool     // adjusted-close semantics
}

// historyResponse mirrors the service's JSON layout: per instrument,
// parallel arrays indexed by trading day. Null entries mark missing
// observations.
type historyResponse struct {
	History map[string]struct {
		Timestamps []int64    `json:"timestamps"`
		Open       []*float64 `json:"open"`
		High       []*float64 `json:"high"`
		Low        []*float64 `json:"low"`
		Close      []*float64 `json:"close"`
		Volume     []*float64 `json:"volume"`
	} `json:"history"`
}

// History downloads daily history for every requested symbol in one
// call. The request is batched: symbols are sent as a single
// space-joined list and the response is grouped by instrument.
func (c *Client) History(ctx context.Context, req HistoryRequest) (*market.RawHistory, error) {
	if len(req.Symbols) == 0 {
		return nil, fmt.Errorf("source: at least one symbol is required")
	}
	if req.Range == "" {
		req.Range = RangeMax
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(req.Symbols, " "))
	params.Set("range", req.Range)
	if req.Adjusted {
		params.Set("adjusted", "true")
	}

	u := fmt.Sprintf("%s/v1/history?%s", c.baseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("source: fetch history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: history request failed: %d %s", resp.StatusCode, string(body))
	}

	var decoded historyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("source: decode response: %w", err)
	}

	return toRawHistory(decoded), nil
}

func toRawHistory(resp historyResponse) *market.RawHistory {
	h := market.NewRawHistory()
	for ticker, s := range resp.History {
		fields := map[market.Field][]*float64{
			market.Open:   s.Open,
			market.High:   s.High,
			market.Low:    s.Low,
			market.Close:  s.Close,
			market.Volume: s.Volume,
		}
		for i, ts := range s.Timestamps {
			date := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
			for field, vals := range fields {
				v := math.NaN()
				if i < len(vals) && vals[i] != nil {
					v = *vals[i]
				}
				h.Add(ticker, field, market.Point{Date: date, Value: v})
			}
		}
	}
	return h
}
