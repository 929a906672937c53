package panel

import (
	"context"
	"sync"
	"time"

	"tradepanel/internal/panel/activity"
	"tradepanel/internal/panel/notify"
	"tradepanel/pkg/botapi"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceState is the display state of the balance region.
type BalanceState int

const (
	BalanceIdle BalanceState = iota
	BalanceLoading
	BalanceReady
	BalanceEmpty
	BalanceError
)

// BalanceRow is one rendered asset line, amounts fixed to 4 decimals.
type BalanceRow struct {
	Asset     string
	Total     string
	Available string
}

// BalanceSnapshot is what the front-end renders.
type BalanceSnapshot struct {
	State BalanceState
	Rows  []BalanceRow
	Err   string
}

// BalanceViewer owns the balance display region. Refresh replaces the
// region with a loading indicator, fetches once, and renders assets
// with a strictly positive total balance. Nothing is cached between
// refreshes.
type BalanceViewer struct {
	api      *botapi.Client
	notify   *notify.Center
	activity *activity.Log
	logger   *zap.Logger
	timeout  time.Duration

	mu    sync.Mutex
	state BalanceState
	rows  []BalanceRow
	err   string
}

func NewBalanceViewer(api *botapi.Client, center *notify.Center, log *activity.Log, logger *zap.Logger, timeout time.Duration) *BalanceViewer {
	return &BalanceViewer{
		api:      api,
		notify:   center,
		activity: log,
		logger:   logger,
		timeout:  timeout,
		state:    BalanceIdle,
	}
}

// Refresh fetches and re-renders the account balance.
func (v *BalanceViewer) Refresh(ctx context.Context) {
	v.set(BalanceLoading, nil, "")

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := v.api.GetBalance(ctx)
	if err != nil {
		v.logger.Warn("balance fetch failed", zap.Error(err))
		v.set(BalanceError, nil, "Error loading balance: "+err.Error())
		v.notify.Notify("Failed to load balance: "+err.Error(), notify.SeverityDanger)
		return
	}
	if !resp.Success {
		v.logger.Warn("balance fetch rejected", zap.String("message", resp.Message))
		v.set(BalanceError, nil, "Failed to load balance")
		v.notify.Notify(resp.Message, notify.SeverityDanger)
		return
	}

	rows := positiveRows(resp.Balance)
	if len(rows) == 0 {
		v.set(BalanceEmpty, nil, "")
		return
	}

	v.set(BalanceReady, rows, "")
	v.activity.Record("Balance refreshed", activity.SeveritySuccess)
}

// positiveRows keeps entries whose total balance parses to a strictly
// positive decimal and formats both amounts to 4 decimal places.
func positiveRows(entries []botapi.BalanceEntry) []BalanceRow {
	var rows []BalanceRow
	for _, b := range entries {
		total, err := decimal.NewFromString(b.Balance)
		if err != nil || !total.IsPositive() {
			continue
		}
		available, err := decimal.NewFromString(b.AvailableBalance)
		if err != nil {
			available = decimal.Zero
		}
		rows = append(rows, BalanceRow{
			Asset:     b.Asset,
			Total:     total.StringFixed(4),
			Available: available.StringFixed(4),
		})
	}
	return rows
}

func (v *BalanceViewer) set(state BalanceState, rows []BalanceRow, errMsg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = state
	v.rows = rows
	v.err = errMsg
}

// Snapshot returns a copy of the current display state.
func (v *BalanceViewer) Snapshot() BalanceSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	rows := make([]BalanceRow, len(v.rows))
	copy(rows, v.rows)
	return BalanceSnapshot{State: v.state, Rows: rows, Err: v.err}
}
