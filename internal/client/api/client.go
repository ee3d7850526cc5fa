package api

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
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client calls the articles API. It never retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer token" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the part of every response the client inspects first.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrMissingArticles is returned when a successful listing response has no
// articles array. Callers treat it like any other read failure.
var ErrMissingArticles = errors.New("api: response has no articles")

// articleList decodes the articles key of a listing response. A nil
// pointer after decoding means the key was absent or null.
type articleList struct {
	Articles *[]Article `json:"articles"`
}

func (l articleList) list() ([]Article, error) {
	if l.Articles == nil {
		return nil, ErrMissingArticles
	}
	return *l.Articles, nil
}

// Published returns the public listing, newest first, with featured flags.
func (c *Client) Published(ctx context.Context) ([]Article, error) {
	var out articleList
	if err := c.do(ctx, http.MethodGet, url.Values{"action": {"get"}}, nil, &out); err != nil {
		return nil, err
	}
	return out.list()
}

// All returns articles of every status.
func (c *Client) All(ctx context.Context, f ListFilter) ([]Article, error) {
	q := url.Values{"action": {"get_all"}}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	if f.Language != "" {
		q.Set("language", f.Language)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var out articleList
	if err := c.do(ctx, http.MethodGet, q, nil, &out); err != nil {
		return nil, err
	}
	return out.list()
}

// Filters returns the distinct regions and languages in storage.
func (c *Client) Filters(ctx context.Context) (FilterOptions, error) {
	var out FilterOptions
	if err := c.do(ctx, http.MethodGet, url.Values{"action": {"filters"}}, nil, &out); err != nil {
		return FilterOptions{}, err
	}
	return out, nil
}

// Search matches term against title and content on the server.
func (c *Client) Search(ctx context.Context, term string) ([]Article, error) {
	var out articleList
	if err := c.do(ctx, http.MethodGet, url.Values{"action": {"search"}, "q": {term}}, nil, &out); err != nil {
		return nil, err
	}
	return out.list()
}

// Stats returns server-side article counts.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, url.Values{"action": {"stats"}}, nil, &out); err != nil {
		return Stats{}, err
	}
	return out.Stats, nil
}

type mutation struct {
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	*ArticleInput
}

// Create stores a new article and returns its id.
func (c *Client) Create(ctx context.Context, in ArticleInput) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, nil, mutation{Action: "create", ArticleInput: &in}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Update replaces the editable fields of article id.
func (c *Client) Update(ctx context.Context, id int64, in ArticleInput) error {
	return c.do(ctx, http.MethodPut, nil, mutation{Action: "update", ID: id, ArticleInput: &in}, nil)
}

// SetStatus moves article id to status.
func (c *Client) SetStatus(ctx context.Context, id int64, status string) error {
	return c.do(ctx, http.MethodPut, nil, mutation{Action: "set_status", ID: id, Status: status}, nil)
}

// Delete removes article id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, nil, mutation{Action: "delete", ID: id}, nil)
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build login request: %w", err)
	}
	req.SetBasicAuth(username, password)

	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := c.send(req, &out); err != nil {
		return "", time.Time{}, err
	}
	return out.Token, out.ExpiresAt, nil
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body, out any) error {
	u := c.baseURL + "/articles"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.send(req, out)
}

// send executes req and decodes the envelope. A non-2xx status or
// success=false becomes *Error. A body that is not JSON is a plain error.
func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", jsonErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Message returns the server's message for an *Error, or fallback for
// anything else.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
