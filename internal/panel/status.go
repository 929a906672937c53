package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tradepanel/internal/panel/activity"
	"tradepanel/pkg/botapi"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Display color classes, shared with the balance/side badges.
const (
	colorSuccess = "success"
	colorDanger  = "danger"
	colorWarning = "warning"
)

var validate = validator.New()

// StatusState is the display state of the order-status region.
type StatusState int

const (
	StatusIdle StatusState = iota
	StatusLoading
	StatusReady
	StatusError
)

// OrderDetail is the rendered detail panel for one looked-up order.
type OrderDetail struct {
	OrderID     string
	Status      string
	StatusColor string
	Symbol      string
	Side        string
	SideColor   string
	Type        string
	Price       string // "Market" when the order carries no price
	OrigQty     string
	ExecutedQty string
}

// StatusSnapshot is what the front-end renders.
type StatusSnapshot struct {
	State  StatusState
	Detail *OrderDetail
	Err    string
}

// StatusViewer owns the order-status region. Each Lookup is a fresh,
// independent request; there is no retry and no caching.
type StatusViewer struct {
	api      *botapi.Client
	activity *activity.Log
	logger   *zap.Logger

	mu     sync.Mutex
	state  StatusState
	detail *OrderDetail
	err    string
}

func NewStatusViewer(api *botapi.Client, log *activity.Log, logger *zap.Logger) *StatusViewer {
	return &StatusViewer{api: api, activity: log, logger: logger, state: StatusIdle}
}

// Lookup fetches the detail of a single order by symbol and order id.
func (v *StatusViewer) Lookup(ctx context.Context, query StatusQuery) {
	if err := validate.Struct(query); err != nil {
		v.set(StatusError, nil, "Symbol and Order ID are required")
		return
	}

	v.set(StatusLoading, nil, "")

	req := botapi.OrderStatusRequest{
		Symbol:  strings.ToUpper(query.Symbol),
		OrderID: query.OrderID,
	}
	v.logger.Info("checking order status",
		zap.String("symbol", req.Symbol),
		zap.String("orderId", req.OrderID),
	)

	resp, err := v.api.GetOrderStatus(ctx, req)
	if err != nil {
		v.logger.Warn("order status request failed", zap.Error(err))
		v.set(StatusError, nil, fmt.Sprintf("Error: %v", err))
		return
	}
	if !resp.Success {
		v.logger.Warn("order status rejected", zap.String("message", resp.Message))
		v.set(StatusError, nil, resp.Message)
		return
	}

	ord := resp.Order
	if ord == nil {
		v.set(StatusError, nil, "Order not found")
		return
	}

	detail := &OrderDetail{
		OrderID:     ord.OrderID.String(),
		Status:      ord.Status,
		StatusColor: statusColor(ord.Status),
		Symbol:      ord.Symbol,
		Side:        ord.Side,
		SideColor:   sideColor(ord.Side),
		Type:        ord.Type,
		Price:       displayPrice(ord.Price),
		OrigQty:     ord.OrigQty,
		ExecutedQty: ord.ExecutedQty,
	}
	v.set(StatusReady, detail, "")
	v.activity.Record(fmt.Sprintf("Checked order %s - Status: %s", req.OrderID, ord.Status), activity.SeverityInfo)
}

// statusColor maps an order status to its badge color: filled terminal
// states read as success, canceled terminal states as danger, anything
// still working as warning.
func statusColor(status string) string {
	switch status {
	case "FILLED":
		return colorSuccess
	case "CANCELED":
		return colorDanger
	default:
		return colorWarning
	}
}

func sideColor(side string) string {
	if side == botapi.SideBuy {
		return colorSuccess
	}
	return colorDanger
}

// displayPrice renders "Market" when the order carries no meaningful
// price, which the exchange reports as empty or "0".
func displayPrice(price string) string {
	if price == "" || price == "0" {
		return "Market"
	}
	return price
}

func (v *StatusViewer) set(state StatusState, detail *OrderDetail, errMsg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
	v.detail = detail
	v.err = errMsg
}

// Snapshot returns a copy of the current display state.
func (v *StatusViewer) Snapshot() StatusSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	var detail *OrderDetail
	if v.detail != nil {
		d := *v.detail
		detail = &d
	}
	return StatusSnapshot{State: v.state, Detail: detail, Err: v.err}
}
