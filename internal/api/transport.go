package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dms-go/internal/dms"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// request describes one round trip.
type request struct {
	op          string // operation name, used in errors and logs
	fallback    string // message when the server does not supply one
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

// do sends req and returns the response for a 2xx status. The caller must
// close the body. Any other status becomes a *dms.RemoteError.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.op, err)
	}
	requestID := c.ids.New()
	httpReq.Header.Set("X-Request-ID", requestID)
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	c.logger.Debug("api request", "op", req.op, "method", req.method, "path", req.path, "request_id", requestID)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("api request failed", "op", req.op, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%s: %w: %w", req.op, dms.ErrTransport, err)
	}
	c.logger.Debug("api response", "op", req.op, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, remoteError(req, resp)
	}
	return resp, nil
}

// doJSON sends payload (when non-nil) as JSON and decodes a 2xx response into out.
func (c *Client) doJSON(ctx context.Context, req request, payload, out any) error {
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", req.op, err)
		}
		req.body = bytes.NewReader(body)
		req.contentType = "application/json"
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w: %w", req.op, dms.ErrTransport, err)
	}
	return nil
}

// remoteError builds the error for a non-2xx response from its JSON "error"
// field, falling back to the operation's default message.
func remoteError(req request, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		msg = strings.TrimSpace(body.Error)
	}
	if msg == "" {
		msg = req.fallback
	}
	return &dms.RemoteError{Op: req.op, Status: resp.StatusCode, Message: msg}
}
