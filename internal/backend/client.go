// README: REST client for the authoritative backend (order list, detail, transitions).
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"buensabor/internal/board"
)

// TokenProvider supplies the bearer token attached to outgoing requests.
// It is an explicit capability handed to the client at construction, not
// a process-wide mutable getter.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed service credential.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client implements board.Gateway against the backend's REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// ListOrders fetches the full board from GET /pedido.
func (c *Client) ListOrders(ctx context.Context) ([]board.Order, error) {
	var orders []board.Order
	if err := c.getJSON(ctx, "/pedido", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderDetail fetches the extended record from GET /pedido/{id}.
func (c *Client) OrderDetail(ctx context.Context, id int) (board.OrderDetail, error) {
	var detail board.OrderDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/pedido/%d", id), &detail); err != nil {
		return board.OrderDetail{}, err
	}
	return detail, nil
}

// RequestTransition asks the backend to apply a state change via
// POST /pedido/{id}/estado?nuevoEstado=X. No response body is relied on;
// the accepted change comes back on the live feed.
func (c *Client) RequestTransition(ctx context.Context, id int, target board.Status) error {
	u := fmt.Sprintf("%s/pedido/%d/estado?nuevoEstado=%s", c.baseURL, id, url.QueryEscape(string(target)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if len(body) > 0 {
		return fmt.Errorf("backend returned %s: %s", resp.Status, body)
	}
	return fmt.Errorf("backend returned %s", resp.Status)
}
