package apix

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const requestIDHeader = "X-Request-ID"

// Config configures the API transport
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// File is an in-memory file sent or received by the transport
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client is the single HTTP entry point used by every store
type Client struct {
	rc     *resty.Client
	tokens oauth2.TokenSource
}

// NewClient creates a transport. tokens may be nil for anonymous use; when set,
// its token is attached to every request that has one.
func NewClient(cfg Config, tokens oauth2.TokenSource) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "aikyuu-client"
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	c := &Client{rc: rc, tokens: tokens}
	rc.OnBeforeRequest(c.injectAuth)
	return c
}

func (c *Client) injectAuth(_ *resty.Client, r *resty.Request) error {
	r.SetHeader(requestIDHeader, uuid.NewString())

	if c.tokens == nil {
		return nil
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return nil
	}
	r.SetAuthToken(tok.AccessToken)
	return nil
}

// Request performs method on path. body is JSON encoded when non-nil, query is
// appended to the URL and a successful JSON response is decoded into out.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	req := c.rc.R().SetContext(ctx).SetError(&serverError{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if out != nil {
		req.SetResult(out)
	}
	return c.execute(req, method, path)
}

func (c *Client) execute(req *resty.Request, method, path string) error {
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		logx.Debugf("%s %s failed after %v: %v", method, path, time.Since(start), err)
		return responseError(method, path, resp, err, req.Header.Get(requestIDHeader))
	}

	logx.Debugf("%s %s -> %d (%v)", method, path, resp.StatusCode(), resp.Time())

	if resp.IsError() {
		body, _ := resp.Error().(*serverError)
		return newHTTPError(method, path, resp.StatusCode(), body, req.Header.Get(requestIDHeader))
	}
	return nil
}

// responseError classifies an error returned by resty. Without a response it
// is a transport failure; with one, the body could not be decoded.
func responseError(method, path string, resp *resty.Response, err error, requestID string) *errx.Error {
	if resp == nil || resp.StatusCode() == 0 || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newTransportError(method, path, err)
	}
	if resp.IsError() {
		return newHTTPError(method, path, resp.StatusCode(), nil, requestID)
	}
	return newDecodeError(method, path, resp.StatusCode(), err, requestID)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, query, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, nil, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPut, path, body, nil, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, path, body, nil, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Request(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Upload sends a single file as multipart/form-data under the "file" field
func (c *Client) Upload(ctx context.Context, path string, file File, fields map[string]string, out any) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req := c.rc.R().
		SetContext(ctx).
		SetError(&serverError{}).
		SetMultipartField("file", file.Name, contentType, bytes.NewReader(file.Data))
	if len(fields) > 0 {
		req.SetMultipartFormData(fields)
	}
	if out != nil {
		req.SetResult(out)
	}
	return c.execute(req, http.MethodPost, path)
}

// Download fetches a binary resource
func (c *Client) Download(ctx context.Context, path string) (*File, error) {
	req := c.rc.R().SetContext(ctx).SetError(&serverError{})

	resp, err := req.Get(path)
	if err != nil {
		return nil, responseError(http.MethodGet, path, resp, err, req.Header.Get(requestIDHeader))
	}
	if resp.IsError() {
		body, _ := resp.Error().(*serverError)
		return nil, newHTTPError(http.MethodGet, path, resp.StatusCode(), body, req.Header.Get(requestIDHeader))
	}

	file := &File{
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil {
		file.Name = params["filename"]
	}
	return file, nil
}
