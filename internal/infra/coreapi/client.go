// Package coreapi provides the typed REST client for the Noah core API, the
// single source of truth for every portal resource. One store file per
// resource; this file holds the shared transport.
package coreapi

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

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/resilience"
	"github.com/noahops/console-bfa-go/internal/port"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("coreapi")

// errStatusNotFound marks a 404 from the backend; stores translate it into a
// domain.ErrNotFound carrying the resource name and id.
var errStatusNotFound = errors.New("core api: not found")

// Client wraps HTTP calls to the core API. Reads go through the circuit
// breaker and retry policy; mutations are issued exactly once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     port.TokenSource
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a core API client.
func NewClient(httpClient *http.Client, baseURL string, tokens port.TokenSource, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

// do executes one authenticated request and returns the response body.
// Status outside 200-299 becomes an error carrying the body text when the
// backend sent one, or a generic message otherwise.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("coreapi: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errStatusNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("coreapi: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("core api returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	c.logger.Debug("coreapi: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}

// getResilient wraps a GET in the circuit breaker and retry policy. 404s are
// permanent and never retried.
func (c *Client) getResilient(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			b, err := c.do(ctx, http.MethodGet, path, nil)
			if err != nil {
				if errors.Is(err, errStatusNotFound) {
					return resilience.Permanent(err)
				}
				return err
			}
			body = b
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) put(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, payload)
}

func (c *Client) patch(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, payload)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// listPath builds "<base>?page=N&pageSize=M&<filters>" following the backend
// pagination contract. Zero page values are omitted so the backend defaults
// apply.
func listPath(base string, filters map[string]string, page domain.PageRequest) string {
	q := url.Values{}
	if page.Page > 0 {
		q.Set("page", strconv.Itoa(page.Page))
	}
	if page.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(page.PageSize))
	}
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	if encoded := q.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// decodePage unmarshals a paginated list response.
func decodePage[T any](body []byte, resource string) (*domain.Page[T], error) {
	var page domain.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode %s page: %w", resource, err)
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	return &page, nil
}

// decodeOne unmarshals a single-entity response.
func decodeOne[T any](body []byte, resource string) (*T, error) {
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return &item, nil
}

// wrapErr normalizes store errors: 404s become domain.ErrNotFound, a
// rejecting breaker becomes domain.ErrCircuitOpen, anything else is tagged
// as an external-service failure for the handler layer.
func wrapErr(err error, service, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errStatusNotFound) {
		return &domain.ErrNotFound{Resource: resource, ID: id}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: service}
	}
	var unauthorized *domain.ErrUnauthorized
	if errors.As(err, &unauthorized) {
		return err
	}
	return &domain.ErrExternalService{Service: service, Err: err}
}
