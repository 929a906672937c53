package panel

import (
	"context"
	"fmt"
	"strings"

	"tradepanel/internal/panel/activity"
	"tradepanel/internal/panel/notify"
	"tradepanel/pkg/botapi"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Busy labels shown while a submission is in flight.
const (
	busyProcessing = "Processing..."
	busyExecuting  = "Executing..."
)

// Orchestrator turns each form submission into exactly one API call and
// reflects the outcome into the notification center, the activity log
// and (for kinds that move funds immediately) the balance viewer.
//
// Per-attempt lifecycle: Idle -> Pending -> {Succeeded, Failed} -> Idle.
// The triggering control always lands back in Idle, even if outcome
// classification itself blows up.
type Orchestrator struct {
	api      *botapi.Client
	notify   *notify.Center
	activity *activity.Log
	balance  *BalanceViewer
	logger   *zap.Logger
}

func NewOrchestrator(api *botapi.Client, center *notify.Center, log *activity.Log, balance *BalanceViewer, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		api:      api,
		notify:   center,
		activity: log,
		balance:  balance,
		logger:   logger,
	}
}

// SubmitMarket places a market order for the control's side.
func (o *Orchestrator) SubmitMarket(ctx context.Context, form *MarketForm, ctl *Control) {
	side := ctl.Side()
	ctl.begin(busyProcessing)
	defer ctl.finish()

	req := botapi.MarketOrderRequest{
		Symbol:   strings.ToUpper(form.Symbol),
		Side:     side,
		Quantity: form.Quantity,
	}
	attempt := uuid.NewString()
	o.logger.Info("placing market order",
		zap.String("attempt", attempt),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.String("quantity", req.Quantity),
	)

	resp, err := o.api.PlaceMarketOrder(ctx, req)
	if err != nil {
		o.logger.Warn("market order request failed", zap.String("attempt", attempt), zap.Error(err))
		o.notify.Notify(fmt.Sprintf("Error: %v", err), notify.SeverityDanger)
		o.activity.Record("Error placing market order", activity.SeverityError)
		return
	}
	if !resp.Success {
		o.logger.Warn("market order rejected", zap.String("attempt", attempt), zap.String("message", resp.Message))
		// Only the market path gets the credential hint; other order
		// kinds surface the raw backend message.
		if botapi.IsCredentialFailure(resp.Message) {
			o.notify.NotifyCredentialFailure()
		} else {
			o.notify.Notify(fmt.Sprintf("Order failed: %s", resp.Message), notify.SeverityDanger)
		}
		o.activity.Record(fmt.Sprintf("Failed: Market %s %s %s", side, req.Quantity, req.Symbol), activity.SeverityError)
		return
	}

	id := orderRef(resp.Order)
	o.logger.Info("market order placed", zap.String("attempt", attempt), zap.String("orderId", id))
	o.notify.Notify(fmt.Sprintf("Market %s order placed successfully! Order ID: %s", side, id), notify.SeveritySuccess)
	o.activity.Record(fmt.Sprintf("Market %s %s %s - Order ID: %s", side, req.Quantity, req.Symbol, id), activity.SeveritySuccess)
	form.reset()
	o.refreshBalanceAsync()
}

// SubmitLimit places a resting limit order. Funds are reserved rather
// than moved, so no balance refresh is triggered.
func (o *Orchestrator) SubmitLimit(ctx context.Context, form *LimitForm, ctl *Control) {
	side := ctl.Side()
	ctl.begin(busyProcessing)
	defer ctl.finish()

	req := botapi.LimitOrderRequest{
		Symbol:   strings.ToUpper(form.Symbol),
		Side:     side,
		Quantity: form.Quantity,
		Price:    form.Price,
	}
	attempt := uuid.NewString()
	o.logger.Info("placing limit order",
		zap.String("attempt", attempt),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.String("quantity", req.Quantity),
		zap.String("price", req.Price),
	)

	resp, err := o.api.PlaceLimitOrder(ctx, req)
	if err != nil {
		o.logger.Warn("limit order request failed", zap.String("attempt", attempt), zap.Error(err))
		o.notify.Notify(fmt.Sprintf("Error: %v", err), notify.SeverityDanger)
		o.activity.Record("Error placing limit order", activity.SeverityError)
		return
	}
	if !resp.Success {
		o.logger.Warn("limit order rejected", zap.String("attempt", attempt), zap.String("message", resp.Message))
		o.notify.Notify(fmt.Sprintf("Order failed: %s", resp.Message), notify.SeverityDanger)
		o.activity.Record(fmt.Sprintf("Failed: Limit %s %s %s", side, req.Quantity, req.Symbol), activity.SeverityError)
		return
	}

	id := orderRef(resp.Order)
	o.logger.Info("limit order placed", zap.String("attempt", attempt), zap.String("orderId", id))
	o.notify.Notify(fmt.Sprintf("Limit %s order placed successfully! Order ID: %s", side, id), notify.SeveritySuccess)
	o.activity.Record(fmt.Sprintf("Limit %s %s %s @ %s - ID: %s", side, req.Quantity, req.Symbol, req.Price, id), activity.SeveritySuccess)
	form.reset()
}

// SubmitStopLimit places a stop-limit order.
func (o *Orchestrator) SubmitStopLimit(ctx context.Context, form *StopLimitForm, ctl *Control) {
	side := ctl.Side()
	ctl.begin(busyProcessing)
	defer ctl.finish()

	req := botapi.StopLimitOrderRequest{
		Symbol:    strings.ToUpper(form.Symbol),
		Side:      side,
		Quantity:  form.Quantity,
		Price:     form.Price,
		StopPrice: form.StopPrice,
	}
	attempt := uuid.NewString()
	o.logger.Info("placing stop-limit order",
		zap.String("attempt", attempt),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.String("quantity", req.Quantity),
		zap.String("price", req.Price),
		zap.String("stopPrice", req.StopPrice),
	)

	resp, err := o.api.PlaceStopLimitOrder(ctx, req)
	if err != nil {
		o.logger.Warn("stop-limit order request failed", zap.String("attempt", attempt), zap.Error(err))
		o.notify.Notify(fmt.Sprintf("Error: %v", err), notify.SeverityDanger)
		o.activity.Record("Error placing stop-limit order", activity.SeverityError)
		return
	}
	if !resp.Success {
		o.logger.Warn("stop-limit order rejected", zap.String("attempt", attempt), zap.String("message", resp.Message))
		o.notify.Notify(fmt.Sprintf("Order failed: %s", resp.Message), notify.SeverityDanger)
		o.activity.Record("Failed: Stop-Limit order", activity.SeverityError)
		return
	}

	id := orderRef(resp.Order)
	o.logger.Info("stop-limit order placed", zap.String("attempt", attempt), zap.String("orderId", id))
	o.notify.Notify(fmt.Sprintf("Stop-Limit %s order placed successfully!", side), notify.SeveritySuccess)
	o.activity.Record(fmt.Sprintf("Stop-Limit %s %s %s - ID: %s", side, req.Quantity, req.Symbol, id), activity.SeveritySuccess)
	form.reset()
}

// SubmitOCO places a paired take-profit/stop-loss order.
func (o *Orchestrator) SubmitOCO(ctx context.Context, form *OCOForm, ctl *Control) {
	side := ctl.Side()
	ctl.begin(busyProcessing)
	defer ctl.finish()

	req := botapi.OCOOrderRequest{
		Symbol:          strings.ToUpper(form.Symbol),
		Side:            side,
		Quantity:        form.Quantity,
		TakeProfitPrice: form.TakeProfitPrice,
		StopLossPrice:   form.StopLossPrice,
	}
	attempt := uuid.NewString()
	o.logger.Info("placing oco order",
		zap.String("attempt", attempt),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.String("quantity", req.Quantity),
		zap.String("takeProfit", req.TakeProfitPrice),
		zap.String("stopLoss", req.StopLossPrice),
	)

	resp, err := o.api.PlaceOCOOrder(ctx, req)
	if err != nil {
		o.logger.Warn("oco order request failed", zap.String("attempt", attempt), zap.Error(err))
		o.notify.Notify(fmt.Sprintf("Error: %v", err), notify.SeverityDanger)
		o.activity.Record("Error placing OCO order", activity.SeverityError)
		return
	}
	if !resp.Success {
		o.logger.Warn("oco order rejected", zap.String("attempt", attempt), zap.String("message", resp.Message))
		o.notify.Notify(fmt.Sprintf("Order failed: %s", resp.Message), notify.SeverityDanger)
		o.activity.Record("Failed: OCO order", activity.SeverityError)
		return
	}

	o.logger.Info("oco order placed", zap.String("attempt", attempt))
	o.notify.Notify("OCO order placed successfully!", notify.SeveritySuccess)
	o.activity.Record(fmt.Sprintf("OCO %s %s %s (TP: %s, SL: %s)",
		side, req.Quantity, req.Symbol, req.TakeProfitPrice, req.StopLossPrice), activity.SeveritySuccess)
	form.reset()
}

// SubmitTWAP runs a TWAP execution. The call blocks until the strategy
// finishes on the backend, so callers should run it like any other
// submission: as its own unit of work with a generous context.
func (o *Orchestrator) SubmitTWAP(ctx context.Context, form *TWAPForm, ctl *Control) {
	side := ctl.Side()
	ctl.begin(busyExecuting)
	defer ctl.finish()

	req := botapi.TWAPRequest{
		Symbol:        strings.ToUpper(form.Symbol),
		Side:          side,
		TotalQuantity: form.TotalQuantity,
		Duration:      form.Duration,
		NumOrders:     form.NumOrders,
	}
	attempt := uuid.NewString()
	o.logger.Info("executing twap strategy",
		zap.String("attempt", attempt),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.String("totalQuantity", req.TotalQuantity),
		zap.String("duration", req.Duration),
		zap.String("numOrders", req.NumOrders),
	)

	resp, err := o.api.ExecuteTWAP(ctx, req)
	if err != nil {
		o.logger.Warn("twap request failed", zap.String("attempt", attempt), zap.Error(err))
		o.notify.Notify(fmt.Sprintf("Error: %v", err), notify.SeverityDanger)
		o.activity.Record("Error executing TWAP", activity.SeverityError)
		return
	}
	if !resp.Success {
		o.logger.Warn("twap rejected", zap.String("attempt", attempt), zap.String("message", resp.Message))
		o.notify.Notify(fmt.Sprintf("TWAP failed: %s", resp.Message), notify.SeverityDanger)
		o.activity.Record("Failed: TWAP strategy", activity.SeverityError)
		return
	}

	var done, total int
	if resp.Result != nil {
		done, total = resp.Result.SuccessfulOrders, resp.Result.TotalOrders
	}
	o.logger.Info("twap strategy completed",
		zap.String("attempt", attempt),
		zap.Int("successfulOrders", done),
		zap.Int("totalOrders", total),
	)
	o.notify.Notify(fmt.Sprintf("TWAP strategy completed! %d/%d orders executed", done, total), notify.SeveritySuccess)
	o.activity.Record(fmt.Sprintf("TWAP %s %s %s over %smin", side, req.TotalQuantity, req.Symbol, req.Duration), activity.SeveritySuccess)
	form.reset()
	o.refreshBalanceAsync()
}

// refreshBalanceAsync fires a balance refresh without waiting for it,
// the same fire-and-forget a trade completion triggers in the panel.
func (o *Orchestrator) refreshBalanceAsync() {
	if o.balance == nil {
		return
	}
	go o.balance.Refresh(context.Background())
}

func orderRef(ord *botapi.Order) string {
	if ord == nil {
		return ""
	}
	return ord.OrderID.String()
}
