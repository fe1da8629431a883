// Package client calls the identification service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/util"
	"plant-id/api/internal/vision/types"
)

// maxResponseSize bounds the response body read into memory.
const maxResponseSize = 10 << 20

var ErrMissingImage = errors.New("no image provided")

// IdentificationError is any failure after the request was attempted.
// Detail carries the raw response body when there was one.
type IdentificationError struct {
	Status  int
	Message string
	Detail  string
	err     error
}

func (e *IdentificationError) Error() string {
	if e.Status == 0 {
		return "identification failed: " + e.Message
	}
	return fmt.Sprintf("identification failed (status %d): %s", e.Status, e.Message)
}

func (e *IdentificationError) Unwrap() error {
	return e.err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

// WithTimeout bounds each call. The default is no timeout. It applies to a
// copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Identify posts payload to /api/identify. An empty payload returns
// ErrMissingImage without any network call; every other failure is an
// *IdentificationError.
func (c *Client) Identify(ctx context.Context, payload string) (*types.Identification, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrMissingImage
	}

	body, err := json.Marshal(types.IdentifyRequest{Image: payload})
	if err != nil {
		return nil, err
	}
	status, raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/identify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if e := errorFromBody(status, raw); e != nil {
		return nil, e
	}

	out, err := types.DecodeIdentification(raw)
	if err != nil {
		return nil, &IdentificationError{
			Status:  status,
			Message: "invalid identification result: " + err.Error(),
			Detail:  util.Truncate(string(raw), 1024),
			err:     err,
		}
	}
	return out, nil
}

// Plants lists catalogue entries whose regions match location.
func (c *Client) Plants(ctx context.Context, location string) ([]catalogue.Plant, error) {
	u := c.baseURL + "/api/plants"
	if location != "" {
		u += "?location=" + url.QueryEscape(location)
	}
	status, raw, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if e := errorFromBody(status, raw); e != nil {
		return nil, e
	}
	var out struct {
		Plants []catalogue.Plant `json:"plants"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &IdentificationError{Status: status, Message: "bad catalogue response", Detail: string(raw), err: err}
	}
	return out.Plants, nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &IdentificationError{Message: err.Error(), err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, &IdentificationError{Status: resp.StatusCode, Message: "read response: " + err.Error(), err: err}
	}
	return resp.StatusCode, raw, nil
}

// errorFromBody maps a non-2xx status, or a 2xx body shaped like
// types.ErrorResponse, to an *IdentificationError.
func errorFromBody(status int, raw []byte) *IdentificationError {
	var er types.ErrorResponse
	decoded := json.Unmarshal(raw, &er) == nil && er.Error != ""

	if status < 200 || status > 299 {
		msg := http.StatusText(status)
		if decoded {
			msg = joinDetails(er)
		}
		return &IdentificationError{Status: status, Message: msg, Detail: string(raw)}
	}
	if decoded {
		return &IdentificationError{Status: status, Message: joinDetails(er), Detail: string(raw)}
	}
	return nil
}

func joinDetails(er types.ErrorResponse) string {
	if er.Details != "" {
		return er.Error + ": " + er.Details
	}
	return er.Error
}
