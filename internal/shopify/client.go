package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"io"
	"net/http"
	"strings"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// APIError is returned for any non-2xx Admin API response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client is a minimal Admin REST client authenticated with a static access token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// AdminURL builds the versioned Admin API root for a shop domain.
func AdminURL(shopDomain, apiVersion string) string {
	return fmt.Sprintf("https://%s/admin/api/%s", shopDomain, apiVersion)
}

func NewClient(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    hc,
	}
}

func (c *Client) UpdateOrder(ctx context.Context, patch domain.OrderPatch) error {
	path := fmt.Sprintf("/orders/%d.json", patch.ID)
	return c.do(ctx, http.MethodPut, path, map[string]any{"order": patch})
}

func (c *Client) CreateMetafield(ctx context.Context, orderID int64, mf domain.Metafield) error {
	path := fmt.Sprintf("/orders/%d/metafields.json", orderID)
	return c.do(ctx, http.MethodPost, path, map[string]any{"metafield": mf})
}

func (c *Client) do(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}
