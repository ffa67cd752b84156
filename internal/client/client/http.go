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
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"

	msgTransport   = "network error: could not reach the server"
	msgGeneric     = "request failed"
	msgHTMLError   = "the server answered with an HTML page (probably the frontend or a proxy); check server_url/api_prefix and CORS on the backend"
	msgHTMLSuccess = "received HTML instead of JSON; the API base URL probably points at the frontend, adjust server_url/api_prefix"
	msgInvalid     = "invalid response from server"
	msgNoRole      = "invalid response from server: login returned no valid role"
)

var htmlPattern = regexp.MustCompile(`(?i)<!doctype html|<html`)

var ErrInvalidBaseURL = errors.New("invalid server url")

// HTTPClient implements Client over the JSON REST API.
type HTTPClient struct {
	apiURL  string
	rootURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for serverURL (scheme and host, e.g.
// http://localhost:10000) with every API path under apiPrefix (e.g. /api).
// timeout bounds each call; zero means no client-side timeout.
func NewHTTPClient(serverURL, apiPrefix string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q needs scheme and host", ErrInvalidBaseURL, serverURL)
	}

	root := strings.TrimRight(u.String(), "/")
	api := root
	if p := strings.Trim(apiPrefix, "/ "); p != "" {
		api = root + "/" + p
	}

	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		apiURL:  api,
		rootURL: root,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "gateway"),
	}, nil
}

// do performs one call. The body is always read completely as text before
// any decoding. It reports whether the response had content; out is left
// untouched for an empty body.
func (c *HTTPClient) do(ctx context.Context, method, target string, in, out any) (bool, error) {
	reqID := uuid.NewString()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "url", target, "request_id", reqID, "err", err)
		return false, &RequestError{Kind: KindTransport, Message: msgTransport, RequestID: reqID, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &RequestError{Kind: KindTransport, Message: msgTransport, Status: resp.StatusCode, RequestID: reqID, Err: err}
	}
	text := string(raw)

	c.log.Debug(ctx, "request done",
		"method", method, "url", target, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &RequestError{
			Kind:      KindHTTP,
			Message:   errorMessage(resp.StatusCode, text),
			Status:    resp.StatusCode,
			RawBody:   text,
			RequestID: reqID,
		}
	}

	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	if out == nil {
		return true, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		msg := msgInvalid
		if htmlPattern.MatchString(text) {
			msg = msgHTMLSuccess
		}
		return true, &RequestError{
			Kind:      KindMalformed,
			Message:   msg,
			Status:    resp.StatusCode,
			RawBody:   text,
			RequestID: reqID,
			Err:       err,
		}
	}
	return true, nil
}

// errorMessage picks the best human-readable message for a failed call:
// the server's {"error"} or {"message"}, then an HTML hint, then the raw
// text, then a generic message.
func errorMessage(status int, text string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if htmlPattern.MatchString(text) {
		return msgHTMLError
	}
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	return fmt.Sprintf("%s (HTTP %d)", msgGeneric, status)
}

func (c *HTTPClient) api(path string, q url.Values) string {
	u := c.apiURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	var resp struct {
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	_, err := c.do(ctx, http.MethodPost, c.api("/login", nil), creds, &resp)
	if err != nil {
		return models.Identity{}, err
	}

	role, perr := models.ParseRole(resp.Role)
	if perr != nil {
		return models.Identity{}, &RequestError{Kind: KindMalformed, Message: msgNoRole, Status: http.StatusOK, Err: perr}
	}

	email := resp.Email
	if email == "" {
		email = creds.Email
	}
	return models.Identity{Role: role, Email: email}, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if _, err := c.do(ctx, http.MethodGet, c.api("/settings", nil), nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// SaveSettings returns the profile as normalized by the server, or p itself
// when the server sends no body.
func (c *HTTPClient) SaveSettings(ctx context.Context, p models.Profile) (models.Profile, error) {
	var saved models.Profile
	ok, err := c.do(ctx, http.MethodPost, c.api("/settings", nil), p, &saved)
	if err != nil {
		return models.Profile{}, err
	}
	if !ok {
		return p, nil
	}
	return saved, nil
}

func (c *HTTPClient) GetOrders(ctx context.Context, f models.Filter) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, c.api("/orders", f.Values()), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, o models.NewOrder) (*models.Order, error) {
	return decodeOne[models.Order](ctx, c, http.MethodPost, c.api("/orders", nil), o)
}

func (c *HTTPClient) UpdateOrder(ctx context.Context, id models.ID, p models.Patch) (*models.Order, error) {
	return decodeOne[models.Order](ctx, c, http.MethodPut, c.api("/orders/"+url.PathEscape(string(id)), nil), p)
}

func (c *HTTPClient) GetTickets(ctx context.Context, f models.Filter) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if _, err := c.do(ctx, http.MethodGet, c.api("/ti/tickets", f.Values()), nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *HTTPClient) CreateTicket(ctx context.Context, t models.NewTicket) (*models.Ticket, error) {
	return decodeOne[models.Ticket](ctx, c, http.MethodPost, c.api("/ti/tickets", nil), t)
}

func (c *HTTPClient) UpdateTicket(ctx context.Context, id models.ID, p models.Patch) (*models.Ticket, error) {
	return decodeOne[models.Ticket](ctx, c, http.MethodPut, c.api("/ti/tickets/"+url.PathEscape(string(id)), nil), p)
}

// Health probes GET /health, which lives outside the API prefix.
func (c *HTTPClient) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.rootURL+"/health", nil, nil)
	return err
}

func decodeOne[T any](ctx context.Context, c *HTTPClient, method, target string, in any) (*T, error) {
	var v T
	ok, err := c.do(ctx, method, target, in, &v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &v, nil
}
