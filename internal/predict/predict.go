// Package predict is the client for the remote risk prediction endpoint.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPath is the prediction route relative to the base URL.
const DefaultPath = "/predict"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Recommendation is one personalised suggestion in a prediction result.
type Recommendation struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Result is the prediction payload. Fields the service omits stay zero.
type Result struct {
	RiskPercentage  float64          `json:"risk_percentage"`
	RiskCategory    string           `json:"risk_category"`
	RiskColor       string           `json:"risk_color"`
	Prediction      int              `json:"prediction"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Response is a decoded endpoint response. Raw keeps the body verbatim.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Result is populated from the top-level fields, and from a nested
	// "result" object when the service sends one.
	Result Result `json:"-"`

	Status int             `json:"-"`
	Raw    json.RawMessage `json:"-"`
}

// Decode parses a response body as sent by the prediction service.
func Decode(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var flat Result
	if err := json.Unmarshal(body, &flat); err == nil {
		resp.Result = flat
	}

	var nested struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && len(nested.Result) > 0 && nested.Result[0] == '{' {
		_ = json.Unmarshal(nested.Result, &resp.Result)
	}

	resp.Raw = append(json.RawMessage(nil), body...)
	return &resp, nil
}

// Submitter sends serialized answers for prediction.
type Submitter interface {
	Predict(ctx context.Context, answers map[string]string) (*Response, error)
}

// TransportError wraps network failures and unreadable responses.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("predict: %s (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("predict: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client posts answers to the prediction endpoint.
type Client struct {
	baseURL string
	path    string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPath overrides DefaultPath.
func WithPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			c.path = p
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    DefaultPath,
		http:    &http.Client{},
		logger:  logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the full endpoint URL.
func (c *Client) URL() string {
	return c.baseURL + c.path
}

// Predict POSTs answers as a JSON object. Any response with a JSON body is
// decoded and returned regardless of status; the service reports failures
// with success=false. Transport and decode failures return *TransportError.
func (c *Client) Predict(ctx context.Context, answers map[string]string) (*Response, error) {
	body, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encoding answers: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "building request", Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := c.logger.With("request_id", reqID, "url", c.URL())
	log.Debug("submitting answers", "fields", len(answers))

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		log.Error("prediction request failed", "error", err)
		return nil, &TransportError{Op: "sending request", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		log.Error("reading prediction response", "status", res.StatusCode, "error", err)
		return nil, &TransportError{Op: "reading response", Status: res.StatusCode, Err: err}
	}

	resp, err := Decode(data)
	if err != nil {
		log.Error("decoding prediction response", "status", res.StatusCode, "error", err)
		return nil, &TransportError{Op: "decoding response", Status: res.StatusCode, Err: err}
	}
	resp.Status = res.StatusCode

	log.Info("prediction response",
		"status", res.StatusCode,
		"success", resp.Success,
		"duration", time.Since(start),
	)
	return resp, nil
}
