package botapi

import "bytes"

// Trade sides as the backend expects them.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// OrderID tolerates both JSON strings and numbers. The upstream exchange
// reports numeric ids, but the panel only ever displays them.
type OrderID string

func (id *OrderID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if string(b) == "null" {
		*id = ""
		return nil
	}
	*id = OrderID(b)
	return nil
}

func (id OrderID) String() string { return string(id) }

// Order is the backend's view of a single order. Quantities and prices
// stay strings end to end; the backend owns numeric validation.
type Order struct {
	OrderID     OrderID `json:"orderId"`
	Status      string  `json:"status"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Type        string  `json:"type"`
	Price       string  `json:"price"`
	OrigQty     string  `json:"origQty"`
	ExecutedQty string  `json:"executedQty"`
}

// BalanceEntry is one asset row from the account balance endpoint.
type BalanceEntry struct {
	Asset            string `json:"asset"`
	Balance          string `json:"balance"`          // total balance
	AvailableBalance string `json:"availableBalance"` // not reserved by open orders
}

// TWAPResult summarizes a completed TWAP run.
type TWAPResult struct {
	SuccessfulOrders int `json:"successful_orders"`
	TotalOrders      int `json:"total_orders"`
}

// Request bodies. Field values are forwarded exactly as entered on the
// form, except symbol which the caller uppercases.

type MarketOrderRequest struct {
	Symbol   string `json:"symbol"`
	Side     string `json:"side"`
	Quantity string `json:"quantity"`
}

type LimitOrderRequest struct {
	Symbol   string `json:"symbol"`
	Side     string `json:"side"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
}

type StopLimitOrderRequest struct {
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	StopPrice string `json:"stopPrice"`
}

type OCOOrderRequest struct {
	Symbol          string `json:"symbol"`
	Side            string `json:"side"`
	Quantity        string `json:"quantity"`
	TakeProfitPrice string `json:"takeProfitPrice"`
	StopLossPrice   string `json:"stopLossPrice"`
}

type TWAPRequest struct {
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	TotalQuantity string `json:"totalQuantity"`
	Duration      string `json:"duration"` // minutes
	NumOrders     string `json:"numOrders"`
}

type OrderStatusRequest struct {
	Symbol  string `json:"symbol"`
	OrderID string `json:"orderId"`
}

// Response envelopes. Success=false carries a human-readable Message;
// the transport layer decodes the body even on non-2xx statuses because
// the backend pairs error statuses with a JSON body.

type InitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order"`
	Message string `json:"message"`
}

type BalanceResponse struct {
	Success bool           `json:"success"`
	Balance []BalanceEntry `json:"balance"`
	Message string         `json:"message"`
}

type TWAPResponse struct {
	Success bool        `json:"success"`
	Result  *TWAPResult `json:"result"`
	Message string      `json:"message"`
}
