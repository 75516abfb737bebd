package http_client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

type HttpClient struct {
	HttpClient *http.Client
}

type RequestOption func(options *RequestOptions)

type RequestOptions struct {
	ctx    context.Context
	body   any
	header http.Header
}

func WithBody(body any) RequestOption {
	return func(c *RequestOptions) {
		c.body = body
	}
}

func WithHeader(key, value string) RequestOption {
	return func(c *RequestOptions) {
		c.header.Set(key, value)
	}
}

func WithHeaders(headers map[string]string) RequestOption {
	return func(c *RequestOptions) {
		for k, v := range headers {
			c.header.Set(k, v)
		}
	}
}

func WithContext(ctx context.Context) RequestOption {
	return func(c *RequestOptions) {
		c.ctx = ctx
	}
}

func New() *HttpClient {
	return &HttpClient{
		HttpClient: http.DefaultClient,
	}
}

// NewWithTimeout bounds the whole exchange, body read included. It is the only
// timeout on a weather request.
func NewWithTimeout(timeout time.Duration) *HttpClient {
	return &HttpClient{
		HttpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HttpClient) NewRequest(method string, url string, option ...RequestOption) (*http.Request, error) {
	options := &RequestOptions{ctx: context.Background(), header: http.Header{}}
	for _, opt := range option {
		opt(options)
	}
	var body io.Reader
	if options.body != nil {
		switch v := options.body.(type) {
		case io.Reader:
			body = v
		default:
			data, err := jsoniter.Marshal(v)
			if err != nil {
				return nil, err
			}
			body = bytes.NewBuffer(data)
		}
	}
	req, err := http.NewRequestWithContext(options.ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if options.header != nil {
		req.Header = options.header
	}
	return req, nil
}

func (c *HttpClient) Do(req *http.Request) (*http.Response, error) {
	return c.HttpClient.Do(req)
}

// Get performs one GET and reads the whole body. A non-nil error means no
// usable status was obtained.
func (c *HttpClient) Get(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	req, err := c.NewRequest(http.MethodGet, url, WithContext(ctx), WithHeaders(headers))
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
