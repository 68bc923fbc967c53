// Package sanity is a minimal client for the Sanity content API, covering
// the two operations this service needs: GROQ queries and create mutations.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/taha12-ok/comforty-order-service/internal/config"
)

// ErrUnauthorized reports a missing or rejected API token. It must stay
// distinguishable from transport errors so callers never mistake a
// credential problem for a flaky network.
var ErrUnauthorized = errors.New("sanity: unauthorized")

type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	apiVersion string
	token      string
}

func New(cfg config.Sanity) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID),
		dataset:    cfg.Dataset,
		apiVersion: cfg.APIVersion,
		token:      cfg.Token,
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query with the given params and returns the raw result.
// A query with no match returns the JSON literal null, not an error.
func (c *Client) Query(ctx context.Context, groq string, params map[string]string) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", groq)
	for key, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query param %s: %w", key, err)
		}
		values.Set("$"+key, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.apiVersion, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build query request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var res queryResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return res.Result, nil
}

type mutateRequest struct {
	Mutations []mutation `json:"mutations"`
}

type mutation struct {
	Create any `json:"create"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Create submits a single create mutation and returns the new document id.
// Every call creates a new document: the API does not deduplicate on any
// field of the payload.
func (c *Client) Create(ctx context.Context, doc any) (string, error) {
	payload, err := json.Marshal(mutateRequest{Mutations: []mutation{{Create: doc}}})
	if err != nil {
		return "", fmt.Errorf("failed to encode mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v%s/data/mutate/%s?returnIds=true", c.baseURL, c.apiVersion, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var res mutateResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("failed to decode mutate response: %w", err)
	}
	if len(res.Results) == 0 {
		return "", fmt.Errorf("mutation %s returned no results", res.TransactionID)
	}
	return res.Results[0].ID, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sanity response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, body)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("sanity responded %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
