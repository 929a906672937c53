// Package console is the interactive terminal front-end for the trading
// panel. It owns stdin/stdout only; all behavior lives in the panel
// components it drives.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tradepanel/config"
	"tradepanel/internal/panel"
	"tradepanel/internal/panel/activity"
	"tradepanel/internal/panel/notify"
	"tradepanel/internal/panel/symbols"
	"tradepanel/pkg/botapi"

	"go.uber.org/zap"
)

const divider = "--------------------------------------------------------------------------------"

// Console wires the panel components to a line-based terminal UI.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	api    *botapi.Client
	orch   *panel.Orchestrator
	center *notify.Center
	log    *activity.Log
	bal    *panel.BalanceViewer
	status *panel.StatusViewer
	sugg   *symbols.Suggestor
	logger *zap.Logger
}

func New(cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	api := botapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	center := notify.NewCenter(notify.DefaultTTL)
	log := activity.NewLog()
	bal := panel.NewBalanceViewer(api, center, log, logger, cfg.API.Timeout)

	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		api:    api,
		orch:   panel.NewOrchestrator(api, center, log, bal, logger),
		center: center,
		log:    log,
		bal:    bal,
		status: panel.NewStatusViewer(api, log, logger),
		sugg:   symbols.NewSuggestor(symbols.NewTable(), symbols.DefaultBlurDelay),
		logger: logger,
	}
}

// Run drives the menu loop until the operator exits or stdin closes.
func (c *Console) Run(ctx context.Context) error {
	c.printHeader()

	// Session bootstrap; the backend lazily re-initializes, so a
	// failure here is reported but not fatal.
	if resp, err := c.api.Init(ctx); err != nil {
		c.logger.Warn("bot init failed", zap.Error(err))
		fmt.Fprintf(c.out, "Warning: could not initialize bot: %v\n", err)
	} else if !resp.Success {
		fmt.Fprintf(c.out, "Warning: %s\n", resp.Message)
	} else {
		fmt.Fprintln(c.out, "Bot initialized successfully!")
	}
	c.log.Record("Bot ready for trading", activity.SeverityInfo)

	for {
		c.printMenu()
		choice, err := c.prompt("\nEnter your choice (0-8)")
		if err != nil {
			return nil // stdin closed
		}

		switch choice {
		case "1":
			c.marketOrder(ctx)
		case "2":
			c.limitOrder(ctx)
		case "3":
			c.stopLimitOrder(ctx)
		case "4":
			c.ocoOrder(ctx)
		case "5":
			c.twapStrategy(ctx)
		case "6":
			c.viewBalance(ctx)
		case "7":
			c.checkOrderStatus(ctx)
		case "8":
			c.printActivity()
		case "0":
			fmt.Fprintln(c.out, "\nGoodbye! Happy Trading!")
			return nil
		default:
			fmt.Fprintln(c.out, "\nInvalid choice. Please select 0-8.")
		}

		c.printNotifications()
	}
}

func (c *Console) printHeader() {
	fmt.Fprintln(c.out, divider)
	fmt.Fprintln(c.out, "                          FUTURES TRADING PANEL (Testnet)")
	fmt.Fprintln(c.out, divider)
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, "\n"+divider)
	fmt.Fprintln(c.out, "SELECT ORDER TYPE:")
	fmt.Fprintln(c.out, "  [1] Market Order (Immediate execution)")
	fmt.Fprintln(c.out, "  [2] Limit Order (Execute at specific price)")
	fmt.Fprintln(c.out, "  [3] Stop-Limit Order (Trigger at stop price)")
	fmt.Fprintln(c.out, "  [4] OCO Order (One-Cancels-the-Other)")
	fmt.Fprintln(c.out, "  [5] TWAP Strategy (Time-Weighted Average Price)")
	fmt.Fprintln(c.out, "  [6] View Account Balance")
	fmt.Fprintln(c.out, "  [7] Check Order Status")
	fmt.Fprintln(c.out, "  [8] Recent Activity")
	fmt.Fprintln(c.out, "  [0] Exit")
	fmt.Fprintln(c.out, divider)
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSymbol reads a ticker, offering autocomplete suggestions from
// the reference table when the input matches partially.
func (c *Console) promptSymbol() string {
	raw, err := c.prompt("Enter symbol (e.g., BTCUSDT)")
	if err != nil {
		return ""
	}

	c.sugg.Input(raw)
	matches := c.sugg.Suggestions()
	if len(matches) == 0 || (len(matches) == 1 && strings.EqualFold(raw, matches[0].Symbol)) {
		c.sugg.Blur()
		return raw
	}

	fmt.Fprintln(c.out, "Did you mean:")
	for i, m := range matches {
		fmt.Fprintf(c.out, "  [%d] %-10s %s\n", i+1, m.Symbol, m.Name)
	}
	pick, err := c.prompt("Pick a number or press Enter to keep your input")
	if err != nil || pick == "" {
		c.sugg.Blur()
		return raw
	}
	i, err := strconv.Atoi(pick)
	if err != nil {
		return raw
	}
	if symbol, ok := c.sugg.Select(i - 1); ok {
		return symbol
	}
	return raw
}

func (c *Console) promptSide() string {
	side, _ := c.prompt("Enter side (BUY/SELL)")
	if strings.EqualFold(side, "sell") {
		return botapi.SideSell
	}
	return botapi.SideBuy
}

func (c *Console) confirm(summary string) bool {
	answer, err := c.prompt(fmt.Sprintf("\nConfirm %s? (yes/no)", summary))
	if err != nil {
		return false
	}
	if strings.EqualFold(answer, "yes") {
		return true
	}
	fmt.Fprintln(c.out, "\nOrder cancelled by user")
	return false
}

func (c *Console) marketOrder(ctx context.Context) {
	fmt.Fprintln(c.out, "\nMARKET ORDER (Immediate Execution)")
	form := panel.MarketForm{Symbol: c.promptSymbol()}
	side := c.promptSide()
	form.Quantity, _ = c.prompt("Enter quantity")

	if !c.confirm(fmt.Sprintf("MARKET %s %s %s", side, form.Quantity, form.Symbol)) {
		return
	}
	c.orch.SubmitMarket(ctx, &form, panel.NewControl(side))
}

func (c *Console) limitOrder(ctx context.Context) {
	fmt.Fprintln(c.out, "\nLIMIT ORDER (Execute at Specific Price)")
	form := panel.LimitForm{Symbol: c.promptSymbol()}
	side := c.promptSide()
	form.Quantity, _ = c.prompt("Enter quantity")
	form.Price, _ = c.prompt("Enter limit price")

	if !c.confirm(fmt.Sprintf("LIMIT %s %s %s @ %s", side, form.Quantity, form.Symbol, form.Price)) {
		return
	}
	c.orch.SubmitLimit(ctx, &form, panel.NewControl(side))
}

func (c *Console) stopLimitOrder(ctx context.Context) {
	fmt.Fprintln(c.out, "\nSTOP-LIMIT ORDER (Trigger at Stop Price)")
	form := panel.StopLimitForm{Symbol: c.promptSymbol()}
	side := c.promptSide()
	form.Quantity, _ = c.prompt("Enter quantity")
	form.Price, _ = c.prompt("Enter limit price")
	form.StopPrice, _ = c.prompt("Enter stop price (trigger)")

	if !c.confirm(fmt.Sprintf("STOP-LIMIT %s %s %s @ %s (stop: %s)",
		side, form.Quantity, form.Symbol, form.Price, form.StopPrice)) {
		return
	}
	c.orch.SubmitStopLimit(ctx, &form, panel.NewControl(side))
}

func (c *Console) ocoOrder(ctx context.Context) {
	fmt.Fprintln(c.out, "\nOCO ORDER (One-Cancels-the-Other)")
	form := panel.OCOForm{Symbol: c.promptSymbol()}
	side := c.promptSide()
	form.Quantity, _ = c.prompt("Enter quantity")
	form.TakeProfitPrice, _ = c.prompt("Enter take-profit price")
	form.StopLossPrice, _ = c.prompt("Enter stop-loss price")

	if !c.confirm(fmt.Sprintf("OCO for %s %s (TP: %s, SL: %s)",
		form.Quantity, form.Symbol, form.TakeProfitPrice, form.StopLossPrice)) {
		return
	}
	c.orch.SubmitOCO(ctx, &form, panel.NewControl(side))
}

func (c *Console) twapStrategy(ctx context.Context) {
	fmt.Fprintln(c.out, "\nTWAP STRATEGY (Time-Weighted Average Price)")
	form := panel.TWAPForm{Symbol: c.promptSymbol()}
	side := c.promptSide()
	form.TotalQuantity, _ = c.prompt("Enter total quantity")
	form.Duration, _ = c.prompt("Enter duration in minutes")
	form.NumOrders, _ = c.prompt("Enter number of orders (default: 10)")
	if form.NumOrders == "" {
		form.NumOrders = "10"
	}

	if !c.confirm(fmt.Sprintf("TWAP %s %s %s over %smin (%s orders)",
		side, form.TotalQuantity, form.Symbol, form.Duration, form.NumOrders)) {
		return
	}

	// The call blocks for the whole strategy, so outlive the duration.
	deadline := 10 * time.Minute
	if minutes, err := strconv.Atoi(form.Duration); err == nil {
		deadline = time.Duration(minutes)*time.Minute + 2*time.Minute
	}
	twapCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	fmt.Fprintln(c.out, "\nExecuting TWAP strategy...")
	c.orch.SubmitTWAP(twapCtx, &form, panel.NewControl(side))
}

func (c *Console) viewBalance(ctx context.Context) {
	fmt.Fprintln(c.out, "\nACCOUNT BALANCE")
	c.bal.Refresh(ctx)
	c.printBalance()
}

func (c *Console) printBalance() {
	snap := c.bal.Snapshot()
	switch snap.State {
	case panel.BalanceEmpty:
		fmt.Fprintln(c.out, "No balance found")
	case panel.BalanceError:
		fmt.Fprintln(c.out, snap.Err)
	case panel.BalanceReady:
		fmt.Fprintf(c.out, "%-10s %-15s %-15s\n", "Asset", "Balance", "Available")
		fmt.Fprintln(c.out, divider[:40])
		for _, row := range snap.Rows {
			fmt.Fprintf(c.out, "%-10s %-15s %-15s\n", row.Asset, row.Total, row.Available)
		}
	}
}

func (c *Console) checkOrderStatus(ctx context.Context) {
	fmt.Fprintln(c.out, "\nCHECK ORDER STATUS")
	query := panel.StatusQuery{Symbol: c.promptSymbol()}
	query.OrderID, _ = c.prompt("Enter order ID")

	c.status.Lookup(ctx, query)

	snap := c.status.Snapshot()
	if snap.State != panel.StatusReady {
		fmt.Fprintln(c.out, snap.Err)
		return
	}

	d := snap.Detail
	fmt.Fprintln(c.out, "\n"+divider)
	fmt.Fprintf(c.out, "Order ID:  %s\n", d.OrderID)
	fmt.Fprintf(c.out, "Status:    %s [%s]\n", d.Status, d.StatusColor)
	fmt.Fprintf(c.out, "Symbol:    %s\n", d.Symbol)
	fmt.Fprintf(c.out, "Side:      %s [%s]\n", d.Side, d.SideColor)
	fmt.Fprintf(c.out, "Type:      %s\n", d.Type)
	fmt.Fprintf(c.out, "Price:     %s\n", d.Price)
	fmt.Fprintf(c.out, "Quantity:  %s\n", d.OrigQty)
	fmt.Fprintf(c.out, "Executed:  %s\n", d.ExecutedQty)
	fmt.Fprintln(c.out, divider)
}

func (c *Console) printActivity() {
	fmt.Fprintln(c.out, "\nRECENT ACTIVITY")
	entries := c.log.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No activity yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s  [%-7s] %s\n", e.Timestamp, e.Severity, e.Message)
	}
}

func (c *Console) printNotifications() {
	for _, n := range c.center.Active() {
		tag := "OK"
		if n.Severity == notify.SeverityDanger {
			tag = "!!"
		}
		fmt.Fprintf(c.out, "[%s] %s\n", tag, n.Message)
		c.center.Dismiss(n.ID)
	}
}
