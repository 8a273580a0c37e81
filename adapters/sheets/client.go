// Package sheets talks to the spreadsheet web app that stores questionnaire
// responses: GET returns the sheet as a JSON array of rows, POST appends one.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"kuesioner/domain/core"
	"kuesioner/domain/survey"
	"kuesioner/internal"
	"kuesioner/ports"
)

const (
	// TimestampField is added to every submission
	TimestampField = "timestamp"

	maxBodyBytes    = 10 << 20 // 10MB
	maxReasonLength = 200
)

// Client reads and appends rows on the response sheet
type Client struct {
	config     *Config
	httpClient *http.Client
	clock      core.Clock
	logger     *internal.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithClock sets the clock used for submission timestamps
func WithClock(clock core.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *internal.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the configured endpoint
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheet configuration: %w", err)
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		clock:  core.SystemClock,
		logger: internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchTable retrieves the current sheet. It never returns an error: failures are
// described by the result so callers can fall back to an empty table.
func (c *Client) FetchTable(ctx context.Context) ports.FetchResult {
	startTime := time.Now()

	req, err := c.buildRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return ports.FetchFailed(ports.FailureTransport, 0, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("[Sheets] GET %s failed: %v", c.config.EndpointURL, err)
		return ports.FetchFailed(ports.FailureTransport, 0, err.Error())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
	if err != nil {
		return ports.FetchFailed(ports.FailureTransport, resp.StatusCode, fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("[Sheets] GET %s returned status %d", c.config.EndpointURL, resp.StatusCode)
		return ports.FetchFailed(ports.FailureStatus, resp.StatusCode, truncate(string(body)))
	}

	table, failure := c.parseTable(body)
	if failure != nil {
		c.logger.Warn("[Sheets] Unusable response from %s: %s", c.config.EndpointURL, failure)
		failure.StatusCode = resp.StatusCode
		return ports.FetchResult{Failure: failure}
	}

	c.logger.Debug("[Sheets] Fetched %d rows in %s", len(table), time.Since(startTime))

	return ports.FetchResult{
		Table: table,
		Metadata: ports.FetchMetadata{
			URL:          c.config.EndpointURL,
			StatusCode:   resp.StatusCode,
			ContentType:  resp.Header.Get("Content-Type"),
			Rows:         len(table),
			ResponseTime: time.Since(startTime),
			FetchedAt:    c.clock(),
		},
	}
}

// Submit posts one submission as a JSON object with a timestamp field added.
// Any status below 400 counts as accepted; the web app answers POSTs with a redirect.
func (c *Client) Submit(ctx context.Context, submission ports.Submission) ports.SubmitResult {
	payload := make(map[string]string, len(submission)+1)
	for key, value := range submission {
		payload[key] = value
	}
	payload[TimestampField] = core.ISOTimestamp(c.clock())

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SubmitResult{Reason: fmt.Sprintf("failed to encode submission: %v", err)}
	}

	req, err := c.buildRequest(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		return ports.SubmitResult{Reason: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("[Sheets] Submit error: %v", err)
		return ports.SubmitResult{Reason: err.Error()}
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("[Sheets] Failed to read submit response (status %d): %v", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Error("[Sheets] Submit rejected with status %d", resp.StatusCode)
		return ports.SubmitResult{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("sheet returned status %d: %s", resp.StatusCode, truncate(string(respBody))),
		}
	}

	c.logger.Info("[Sheets] Submission accepted (%d fields)", len(submission))
	return ports.SubmitResult{Success: true, StatusCode: resp.StatusCode}
}

// buildRequest creates a request against the endpoint with configured headers
func (c *Client) buildRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.EndpointURL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// parseTable extracts an array of arrays from the body. Cells are stringified:
// numbers and booleans keep their JSON text, null becomes "".
func (c *Client) parseTable(body []byte) (survey.RawTable, *ports.FetchFailure) {
	if !gjson.ValidBytes(body) {
		return nil, &ports.FetchFailure{Kind: ports.FailureDecode, Message: "response is not valid JSON"}
	}

	data := gjson.ParseBytes(body)
	if c.config.DataPath != "" {
		data = gjson.GetBytes(body, c.config.DataPath)
		if !data.Exists() {
			return nil, &ports.FetchFailure{
				Kind:    ports.FailureShape,
				Message: fmt.Sprintf("data path '%s' not found in response", c.config.DataPath),
			}
		}
	}

	if !data.IsArray() {
		return nil, &ports.FetchFailure{Kind: ports.FailureShape, Message: "table is not a JSON array"}
	}

	table := survey.RawTable{}
	var failure *ports.FetchFailure
	data.ForEach(func(index, row gjson.Result) bool {
		if !row.IsArray() {
			failure = &ports.FetchFailure{
				Kind:    ports.FailureShape,
				Message: fmt.Sprintf("row %d is not a JSON array", len(table)),
			}
			return false
		}

		cells := []string{}
		row.ForEach(func(_, cell gjson.Result) bool {
			cells = append(cells, cell.String())
			return true
		})
		table = append(table, cells)
		return true
	})

	if failure != nil {
		return nil, failure
	}
	return table, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxReasonLength {
		return s
	}
	return s[:maxReasonLength] + "..."
}
