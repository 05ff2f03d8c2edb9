// Package client is a Go consumer of the user directory HTTP API.
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
	"strconv"
	"strings"
	"time"
)

type Options struct {
	BaseURL string

	Timeout    time.Duration
	MaxRetries int

	HTTPClient *http.Client
}

type Client struct {
	baseURL string

	timeout    time.Duration
	maxRetries int

	httpClient *http.Client
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: maxRetries,
		httpClient: hc,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// ListUsers fetches one page of users. Search filters by firstname
// substring; an empty search returns everyone.
func (c *Client) ListUsers(ctx context.Context, page int, search string) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if strings.TrimSpace(search) != "" {
		q.Set("search", search)
	}

	var resp ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []User{}
	}
	return &resp, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodPost, "/users", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in UserInput) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), in, &resp)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, &resp)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var lastErr error
	backoff := 250 * time.Millisecond
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx2.Err() != nil {
			return ctx2.Err()
		}

		req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				return readErr
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				herr := parseHTTPError(resp.StatusCode, raw)
				if resp.StatusCode < 500 {
					// Client-side failures will not heal on retry.
					return herr
				}
				lastErr = herr
			} else {
				if out == nil {
					return nil
				}
				if err := json.Unmarshal(raw, out); err != nil {
					return err
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx2.Done():
				return ctx2.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}
	}

	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return lastErr
}
