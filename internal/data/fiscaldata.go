// Package data talks to the external statistical collaborators: realized
// revenue totals, nominal GDP, and the filers-above-threshold query behind
// the precise tax estimator. The scoring core only ever sees the normalized
// numbers; any failure here degrades upstream to calibrated constants.
package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fiscal-score/internal/model"
)

// Client fetches statistical data over HTTP.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewClient creates a statistical-data client. If baseURL is empty, defaults
// to the public fiscal-data service.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.fiscaldata.treasury.gov"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Logger: slog.Default(),
	}
}

// FiscalDataError represents an error from the statistical-data service.
type FiscalDataError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *FiscalDataError) Error() string {
	return e.Message
}

// TotalIndividualIncomeTax returns realized individual income-tax receipts
// for a fiscal year, $B.
func (c *Client) TotalIndividualIncomeTax(year int) (float64, error) {
	var obs model.RevenueObservation
	if err := c.get("/v1/revenue/individual", year, nil, &obs); err != nil {
		return 0, err
	}
	return obs.AmountBillions, nil
}

// NominalGDP returns nominal GDP for a calendar year, $B.
func (c *Client) NominalGDP(year int) (float64, error) {
	var obs model.GDPObservation
	if err := c.get("/v1/gdp/nominal", year, nil, &obs); err != nil {
		return 0, err
	}
	return obs.AmountBillions, nil
}

// FilersAboveThreshold returns filer count, average AGI, average taxable
// income, and total liability for filers above an income threshold.
func (c *Client) FilersAboveThreshold(threshold float64, year int) (*model.FilerSummary, error) {
	extra := url.Values{"threshold": []string{strconv.FormatFloat(threshold, 'f', -1, 64)}}
	var out model.FilerSummary
	if err := c.get("/v1/filers/above-threshold", year, extra, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get issues one request, with an env-gated cache in front of it.
func (c *Client) get(path string, year int, extra url.Values, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	if cache := GetCache(); cache != nil {
		if raw, found := cache.Get(u.String()); found {
			c.Logger.Debug("fiscaldata cache hit", "path", path, "year", year)
			return json.Unmarshal(raw, out)
		}
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Warn("fiscaldata request failed", "path", path, "year", year, "err", err)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("fiscaldata response",
		"path", path, "year", year,
		"status", resp.StatusCode, "duration", time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusNotFound:
		return &FiscalDataError{
			StatusCode: resp.StatusCode,
			Code:       "SERIES_NOT_AVAILABLE",
			Message:    fmt.Sprintf("no data for %s year %d", path, year),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return &FiscalDataError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &FiscalDataError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "invalid API key or insufficient permissions",
		}
	default:
		return &FiscalDataError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if cache := GetCache(); cache != nil {
		cache.Set(u.String(), raw)
	}
	return json.Unmarshal(raw, out)
}
