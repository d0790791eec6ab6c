package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Prediction string `json:"prediction"`
	Error      string `json:"error"`
}

type Client struct {
	url    *url.URL
	http   *http.Client
	logger *zap.Logger
}

func New(url *url.URL, timeout time.Duration, headers map[string]string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create http client
	client := &http.Client{
		Timeout: timeout,
		Transport: HeaderMiddleware{
			Headers: headers,
			Proxied: http.DefaultTransport,
		},
	}

	return &Client{
		url:    url,
		http:   client,
		logger: logger.Named("api"),
	}
}

// URL of the prediction endpoint
func (c *Client) URL() string {
	return c.url.JoinPath("predict").String()
}

// Predict sends text to the prediction endpoint.
// Every failure is one of *ApplicationError, *TransportError or *NetworkError.
func (c *Client) Predict(ctx context.Context, requestID string, text string) (string, error) {
	log := c.logger.With(zap.String("request_id", requestID))

	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("could not encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	log.Debug("sending prediction request", zap.String("url", req.URL.String()), zap.Int("length", len(text)))

	res, err := c.http.Do(req)
	if err != nil {
		log.Warn("prediction request failed", zap.Error(err))
		return "", &NetworkError{Err: err}
	}
	defer res.Body.Close()

	log = log.With(zap.Int("status", res.StatusCode), zap.Duration("took", time.Since(start)))

	// Body is ignored outside the success range
	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warn("prediction endpoint returned an error status")
		return "", &TransportError{StatusCode: res.StatusCode}
	}

	var pr predictResponse
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		log.Warn("could not decode prediction response", zap.Error(err))
		return "", &NetworkError{Err: fmt.Errorf("could not decode response: %w", err)}
	}

	// Error field takes precedence over a prediction
	if pr.Error != "" {
		log.Debug("prediction endpoint reported an error", zap.String("error", pr.Error))
		return "", &ApplicationError{Message: pr.Error}
	}

	log.Debug("prediction received", zap.String("prediction", pr.Prediction))
	return pr.Prediction, nil
}

// Health pings the endpoint's health route
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url.JoinPath("health").String(), http.NoBody)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &TransportError{StatusCode: res.StatusCode}
	}

	return nil
}

type HeaderMiddleware struct {
	Headers map[string]string
	Proxied http.RoundTripper
}

func (hm HeaderMiddleware) RoundTrip(req *http.Request) (res *http.Response, e error) {
	for k, v := range hm.Headers {
		req.Header.Add(k, v)
	}

	return hm.Proxied.RoundTrip(req)
}
