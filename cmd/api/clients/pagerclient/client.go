package pagerclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/httpclient"
)

// Client is a thin client for the doc-pager HTTP API.
//
// baseURL example: http://localhost:3000
type Client struct {
	base *httpclient.BaseClient
}

var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx response carrying the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pager api: status %d: %s", e.StatusCode, e.Message)
}

func New(baseURL string) *Client {
	return &Client{base: httpclient.NewBaseClient(baseURL)}
}

func NewWithHTTPClient(hc *http.Client, baseURL string) *Client {
	return &Client{base: httpclient.NewBaseClientWithClient(hc, baseURL)}
}

// AddressQuery holds the filters and sort shared by both listing modes.
type AddressQuery struct {
	Limit  int
	Sort   string
	City   string
	Status string
	UserID *int
}

func (q AddressQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.UserID != nil {
		v.Set("user_id", strconv.Itoa(*q.UserID))
	}
	return v
}

// ListAddresses fetches one offset page.
func (c *Client) ListAddresses(ctx context.Context, page int, q AddressQuery) (dto.PaginationAddressDTO, error) {
	v := q.values()
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	var out dto.PaginationAddressDTO
	err := c.getJSON(ctx, "/api/v1/addresses", v, &out)
	return out, err
}

// ListAddressesAfter fetches the window after cursor; an empty cursor starts from the top.
func (c *Client) ListAddressesAfter(ctx context.Context, cursor string, q AddressQuery) (dto.CursorAddressDTO, error) {
	v := q.values()
	if cursor != "" {
		v.Set("cursor", cursor)
	}
	var out dto.CursorAddressDTO
	err := c.getJSON(ctx, "/api/v1/addresses/cursor", v, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, "/health", nil, &out)
}

func (c *Client) getJSON(ctx context.Context, relPath string, query url.Values, out any) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, query)
	if err != nil {
		return err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var body dto.ErrorResponseDTO
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &body) != nil || body.Error == "" {
			body.Error = string(raw)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
