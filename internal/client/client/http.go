package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeaderName is set on every outgoing request.
const RequestIDHeaderName = "X-Request-ID"

// remoteItem is the wire shape of the collection resource.
type remoteItem struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r remoteItem) toModel() models.Item {
	return models.Item{ID: r.ID, Name: r.Title, Description: r.Body}
}

// HTTPClient talks to a collection endpoint such as
// https://jsonplaceholder.typicode.com/posts.
type HTTPClient struct {
	baseURL   string
	listLimit int
	http      *http.Client
	logger    logging.Logger
}

// NewHTTPClient returns a client for the collection at baseURL. List results
// are truncated to listLimit records; zero keeps everything. A nil hc uses a
// fresh http.Client without a timeout.
func NewHTTPClient(baseURL string, listLimit int, hc *http.Client, l logging.Logger) *HTTPClient {
	if hc == nil {
		hc = &http.Client{}
	}
	if l == nil {
		l = logging.Nop()
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		listLimit: listLimit,
		http:      hc,
		logger:    l.With("module", "http_client"),
	}
}

func (c *HTTPClient) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Item, error) {
	var data []remoteItem
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL, nil, &data); err != nil {
		return nil, err
	}

	if c.listLimit > 0 && len(data) > c.listLimit {
		data = data[:c.listLimit]
	}

	items := make([]models.Item, 0, len(data))
	for _, d := range data {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (c *HTTPClient) Get(ctx context.Context, id int64) (*models.Item, error) {
	var data remoteItem
	if err := c.doJSON(ctx, http.MethodGet, c.itemURL(id), nil, &data); err != nil {
		return nil, err
	}
	item := data.toModel()
	return &item, nil
}

func (c *HTTPClient) Create(ctx context.Context, draft models.ItemDraft) (*models.Item, error) {
	body := remoteItem{}
	if draft.Name != nil {
		body.Title = *draft.Name
	}
	if draft.Description != nil {
		body.Body = *draft.Description
	}

	var data remoteItem
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL, body, &data); err != nil {
		return nil, err
	}
	item := data.toModel()
	return &item, nil
}

func (c *HTTPClient) Update(ctx context.Context, item models.Item) (*models.Item, error) {
	body := remoteItem{Title: item.Name, Body: item.Description}

	var data remoteItem
	if err := c.doJSON(ctx, http.MethodPut, c.itemURL(item.ID), body, &data); err != nil {
		return nil, err
	}
	updated := data.toModel()
	return &updated, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) (int64, error) {
	resp, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return 0, ErrDeleteRejected
	}
	return id, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, url string, in any, out any) error {
	resp, err := c.do(ctx, method, url, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: %s", ErrTransport, method, url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	return nil
}

// do sends the request; network failures are wrapped in ErrTransport unless
// the context ended, in which case the context error is returned as is.
func (c *HTTPClient) do(ctx context.Context, method, url string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeaderName, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Debug(ctx, "request failed", "method", method, "url", url, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.logger.Debug(ctx, "request done", "method", method, "url", url, "request_id", requestID, "status", resp.StatusCode)
	return resp, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
