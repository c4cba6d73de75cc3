// Package client is the HTTP client of the berdoz REST API. It implements
// favm.Backend for every module.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 64 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, msg)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.StatusCode == http.StatusNotFound
}

// HTTP holds the connection settings shared by the module clients.
type HTTP struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*HTTP)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *HTTP) { h.logger = l }
}

// NewHTTP returns a client for the API at baseURL (e.g. http://localhost:8081).
func NewHTTP(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{MaxIdleConnsPerHost: 10},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(slog.String("component", "api_client"))
	return h
}

// do sends a request and decodes a 2xx JSON body into out when out is not nil.
func (h *HTTP) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	reqURL := h.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	h.logger.DebugContext(ctx, "API request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, reqURL, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (h *HTTP) doJSON(ctx context.Context, method, path string, in, out any) error {
	if in == nil {
		return h.do(ctx, method, path, http.NoBody, "", out)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return h.do(ctx, method, path, bytes.NewReader(b), "application/json", out)
}

func statusError(method, reqURL string, resp *http.Response) error {
	se := &StatusError{Method: method, URL: reqURL, StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if json.Unmarshal(raw, &body) == nil {
		se.Message = body.Error
		if se.Message == "" {
			se.Message = body.Message
		}
		se.Fields = body.Errors
	} else {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}

// Upload sends a file to the attachment endpoint and returns the stored
// attachment.
func (h *HTTP) Upload(ctx context.Context, folder, filename string, r io.Reader) (core.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return core.Attachment{}, fmt.Errorf("upload: %w", err)
		}
	}
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		ct = "application/octet-stream"
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	hdr.Set("Content-Type", ct)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return core.Attachment{}, fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return core.Attachment{}, fmt.Errorf("upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return core.Attachment{}, fmt.Errorf("upload: %w", err)
	}

	var att core.Attachment
	if err := h.do(ctx, http.MethodPost, "/api/upload", &buf, mw.FormDataContentType(), &att); err != nil {
		return core.Attachment{}, err
	}
	return att, nil
}

// Search runs the cross-module search and returns raw records per module.
func (h *HTTP) Search(ctx context.Context, query string) (map[string][]json.RawMessage, error) {
	var out map[string][]json.RawMessage
	path := "/api/search?" + url.Values{"q": {query}}.Encode()
	if err := h.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Client is the REST client of one module endpoint.
type Client[T core.Record[T]] struct {
	h        *HTTP
	endpoint string
}

var _ favm.Backend[core.Teacher] = (*Client[core.Teacher])(nil)

// For binds h to a module endpoint such as /api/payroll.
func For[T core.Record[T]](h *HTTP, endpoint string) *Client[T] {
	return &Client[T]{h: h, endpoint: strings.TrimRight(endpoint, "/")}
}

func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.h.doJSON(ctx, http.MethodGet, c.endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts rec without its id and timestamps; the server assigns them.
func (c *Client[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	body, err := withoutMeta(rec)
	if err != nil {
		return zero, err
	}
	var out T
	if err := c.h.doJSON(ctx, http.MethodPost, c.endpoint, body, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// serverOwned are the keys a create request never carries.
var serverOwned = []string{"id", "created_at", "updated_at"}

func withoutMeta(rec any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	for _, k := range serverOwned {
		delete(fields, k)
	}
	return fields, nil
}

func (c *Client[T]) Update(ctx context.Context, rec T) (T, error) {
	var out T
	if err := c.h.doJSON(ctx, http.MethodPut, c.itemPath(rec.GetID()), rec, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client[T]) Delete(ctx context.Context, id string) error {
	return c.h.doJSON(ctx, http.MethodDelete, c.itemPath(id), nil, nil)
}

// View asks the server to render the filtered view.
func (c *Client[T]) View(ctx context.Context, state favm.ViewState) (favm.View[T], error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("q", state.Query)
	set("year", state.Table.Year)
	set("month", state.Table.Month)
	set("summaryYear", state.Summary.Year)
	set("summaryMonth", state.Summary.Month)

	path := c.endpoint + "/view"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out favm.View[T]
	if err := c.h.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return favm.View[T]{}, err
	}
	return out, nil
}

func (c *Client[T]) itemPath(id string) string {
	return c.endpoint + "/" + url.PathEscape(id)
}
