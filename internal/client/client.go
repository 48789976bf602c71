// Package client talks to the tryout backend's REST API.
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

	"tryout_backend/internal/config"
	"tryout_backend/internal/model"
	"tryout_backend/internal/util"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken 出题人 JWT，写操作在服务端开启鉴权时需要
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewFromConfig(cfg config.ClientConfig, opts ...Option) *Client {
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.Token != "" {
		base = append(base, WithToken(cfg.Token))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, resource, op, method, path string, query url.Values, body, out interface{}) error {
	upstream := func(status int, err error) error {
		c.log.Warn("upstream request failed",
			zap.String("resource", resource),
			zap.String("op", op),
			zap.Int("status", status),
			zap.Error(err),
		)
		return &util.UpstreamError{Resource: resource, Op: op, Status: status, Err: err}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return upstream(0, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return upstream(0, err)
	}
	req.Header.Set("Accept", util.MimeJSON)
	if body != nil {
		req.Header.Set("Content-Type", util.MimeJSON)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		return upstream(0, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return upstream(res.StatusCode, err)
	}

	if res.StatusCode/100 != 2 {
		var env envelope
		msg := res.Status
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		return upstream(res.StatusCode, errors.New(msg))
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return upstream(res.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return upstream(res.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func tryoutQuery(f model.TryoutFilter) url.Values {
	q := url.Values{}
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.IsPublic != nil {
		q.Set("isPublic", strconv.FormatBool(*f.IsPublic))
	}
	return q
}
