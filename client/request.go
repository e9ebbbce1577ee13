package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// doRequest sends one request through the pipeline: ensure a credential,
// build the URL, serialize the body, dispatch with the configured timeout
// and classify the response. It performs exactly one attempt; callers that
// want retries wrap the client so error semantics stay predictable.
//
// A 2xx response returns the raw body (possibly empty, which is a valid
// success for operations like delete). Anything else returns a taxonomy
// error.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, params map[string]string) ([]byte, error) {
	credential, err := c.auth.EnsureCredential(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := c.registryURL + path
	if len(params) > 0 {
		u, err := url.Parse(reqURL)
		if err != nil {
			return nil, &A2AError{Message: "invalid request URL", Err: err}
		}
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		reqURL = u.String()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, &A2AError{Message: "failed to marshal request body", Err: err}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, &A2AError{Message: "failed to create request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("url", reqURL),
		zap.String("request_id", requestID))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		c.logger.Error("request failed",
			zap.String("method", method),
			zap.String("url", reqURL),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &A2AError{Message: "request failed", Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.observe(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &A2AError{Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request completed",
			zap.String("method", method),
			zap.Int("status_code", resp.StatusCode),
			zap.String("request_id", requestID))
		return respBody, nil
	}

	c.logger.Debug("request rejected",
		zap.String("method", method),
		zap.Int("status_code", resp.StatusCode),
		zap.String("request_id", requestID))
	return nil, errorFromResponse(resp.StatusCode, respBody)
}

// decodeResponse unmarshals a 2xx body into out, wrapping decode failures
// as base errors.
func decodeResponse(body []byte, out interface{}, what string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &A2AError{Message: "failed to decode " + what + " response", Err: err}
	}
	return nil
}
