package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a thin typed wrapper over the trading backend's REST API.
// Methods return an error only when the request itself fails (transport,
// timeout, undecodable body). A reply the backend decoded and rejected
// comes back as a response with Success=false and a Message.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient builds a client whose requests default to the given timeout.
// A caller-supplied context deadline takes precedence; TWAP runs need one
// longer than the strategy's duration, since the call blocks until done.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Init asks the backend to (re)establish its exchange session.
func (c *Client) Init(ctx context.Context) (*InitResponse, error) {
	var out InitResponse
	if err := c.postJSON(ctx, "/api/init", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBalance fetches the account balance.
func (c *Client) GetBalance(ctx context.Context) (*BalanceResponse, error) {
	var out BalanceResponse
	if err := c.getJSON(ctx, "/api/balance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceMarketOrder submits an order for immediate execution at market price.
func (c *Client) PlaceMarketOrder(ctx context.Context, req MarketOrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "/api/market-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceLimitOrder submits a resting order at a specified price.
func (c *Client) PlaceLimitOrder(ctx context.Context, req LimitOrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "/api/limit-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceStopLimitOrder submits a limit order that arms once the stop price trades.
func (c *Client) PlaceStopLimitOrder(ctx context.Context, req StopLimitOrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "/api/stop-limit-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOCOOrder submits a paired take-profit/stop-loss order.
func (c *Client) PlaceOCOOrder(ctx context.Context, req OCOOrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "/api/oco-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteTWAP runs a time-sliced execution of the total quantity.
// The call returns when the whole strategy has finished on the backend.
func (c *Client) ExecuteTWAP(ctx context.Context, req TWAPRequest) (*TWAPResponse, error) {
	var out TWAPResponse
	if err := c.postJSON(ctx, "/api/twap", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrderStatus looks up a single order by symbol and order id.
func (c *Client) GetOrderStatus(ctx context.Context, req OrderStatusRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "/api/order-status", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	ctx := req.Context()
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	// The backend answers failures with 4xx plus a JSON envelope, so the
	// body is decoded regardless of status.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	return nil
}
