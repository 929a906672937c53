package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradepanel/internal/panel/activity"
	"tradepanel/internal/panel/notify"
	"tradepanel/pkg/botapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testPanel struct {
	orch    *Orchestrator
	center  *notify.Center
	log     *activity.Log
	balance *BalanceViewer
}

func newTestPanel(t *testing.T, handler http.Handler) *testPanel {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := botapi.NewClient(srv.URL, 5*time.Second)
	center := notify.NewCenter(time.Minute)
	log := activity.NewLog()
	balance := NewBalanceViewer(api, center, log, zap.NewNop(), 5*time.Second)
	return &testPanel{
		orch:    NewOrchestrator(api, center, log, balance, zap.NewNop()),
		center:  center,
		log:     log,
		balance: balance,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	json.NewEncoder(w).Encode(v)
}

func TestSubmitLimitEndToEnd(t *testing.T) {
	var gotBody map[string]string
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/limit-order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, botapi.OrderResponse{Success: true, Order: &botapi.Order{OrderID: "123"}})
	}))

	form := &LimitForm{Symbol: "ethusdt", Quantity: "1", Price: "3000"}
	ctl := NewControl(botapi.SideBuy)
	p.orch.SubmitLimit(context.Background(), form, ctl)

	// Symbol is normalized to uppercase on the wire; everything else
	// passes through as entered.
	assert.Equal(t, "ETHUSDT", gotBody["symbol"])
	assert.Equal(t, "BUY", gotBody["side"])
	assert.Equal(t, "1", gotBody["quantity"])
	assert.Equal(t, "3000", gotBody["price"])

	// Form cleared, control back to idle.
	assert.Equal(t, &LimitForm{}, form)
	assert.False(t, ctl.Pending())
	assert.Equal(t, "Buy", ctl.Label())

	entries := p.log.Entries()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Message, "Limit BUY 1 ETHUSDT")
	assert.Contains(t, entries[0].Message, "123")
	assert.Equal(t, activity.SeveritySuccess, entries[0].Severity)

	banners := p.center.Active()
	require.Len(t, banners, 1)
	assert.Equal(t, notify.SeveritySuccess, banners[0].Severity)
	assert.Contains(t, banners[0].Message, "123")
}

func TestSubmitMarketSuccessRefreshesBalance(t *testing.T) {
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/market-order":
			writeJSON(w, botapi.OrderResponse{Success: true, Order: &botapi.Order{OrderID: "77"}})
		case "/api/balance":
			writeJSON(w, botapi.BalanceResponse{
				Success: true,
				Balance: []botapi.BalanceEntry{{Asset: "USDT", Balance: "42.1", AvailableBalance: "42.1"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	form := &MarketForm{Symbol: "btcusdt", Quantity: "0.5"}
	p.orch.SubmitMarket(context.Background(), form, NewControl(botapi.SideSell))

	// The refresh is fire-and-forget, so wait for it to land.
	assert.Eventually(t, func() bool {
		return p.balance.Snapshot().State == BalanceReady
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitLimitSuccessDoesNotRefreshBalance(t *testing.T) {
	balanceHits := 0
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/balance" {
			balanceHits++
		}
		writeJSON(w, botapi.OrderResponse{Success: true, Order: &botapi.Order{OrderID: "9"}})
	}))

	p.orch.SubmitLimit(context.Background(), &LimitForm{Symbol: "btcusdt", Quantity: "1", Price: "50000"}, NewControl(botapi.SideBuy))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, balanceHits)
	assert.Equal(t, BalanceIdle, p.balance.Snapshot().State)
}

func TestMarketFailureCredentialClassification(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantAPIKey  bool
		wantGeneric bool
	}{
		{name: "api key code", message: "APIError(code=-2015): Invalid API-key, IP, or permissions", wantAPIKey: true},
		{name: "api key marker", message: "Invalid API-key format", wantAPIKey: true},
		{name: "unrelated failure", message: "Margin is insufficient", wantGeneric: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				writeJSON(w, botapi.OrderResponse{Success: false, Message: tt.message})
			}))

			p.orch.SubmitMarket(context.Background(), &MarketForm{Symbol: "btcusdt", Quantity: "1"}, NewControl(botapi.SideBuy))

			banners := p.center.Active()
			require.Len(t, banners, 1)
			assert.Equal(t, notify.SeverityDanger, banners[0].Severity)
			if tt.wantAPIKey {
				assert.Contains(t, banners[0].Message, "API Key Error")
			}
			if tt.wantGeneric {
				assert.Contains(t, banners[0].Message, "Order failed: "+tt.message)
				assert.NotContains(t, banners[0].Message, "API Key Error")
			}

			entries := p.log.Entries()
			require.NotEmpty(t, entries)
			assert.Contains(t, entries[0].Message, "Failed: Market BUY 1 BTCUSDT")
			assert.Equal(t, activity.SeverityError, entries[0].Severity)
		})
	}
}

func TestLimitFailureNeverGetsCredentialBanner(t *testing.T) {
	// Only the market path classifies credential failures; a limit
	// rejection with the same marker stays generic.
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, botapi.OrderResponse{Success: false, Message: "APIError(code=-2015): Invalid API-key"})
	}))

	p.orch.SubmitLimit(context.Background(), &LimitForm{Symbol: "btcusdt", Quantity: "1", Price: "1"}, NewControl(botapi.SideSell))

	banners := p.center.Active()
	require.Len(t, banners, 1)
	assert.NotContains(t, banners[0].Message, "API Key Error")
	assert.Contains(t, banners[0].Message, "Order failed:")
}

func TestSubmitTWAPSuccess(t *testing.T) {
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/twap":
			writeJSON(w, botapi.TWAPResponse{
				Success: true,
				Result:  &botapi.TWAPResult{SuccessfulOrders: 8, TotalOrders: 10},
			})
		case "/api/balance":
			writeJSON(w, botapi.BalanceResponse{Success: true})
		}
	}))

	form := &TWAPForm{Symbol: "solusdt", TotalQuantity: "100", Duration: "30", NumOrders: "10"}
	ctl := NewControl(botapi.SideBuy)
	p.orch.SubmitTWAP(context.Background(), form, ctl)

	banners := p.center.Active()
	require.Len(t, banners, 1)
	assert.Contains(t, banners[0].Message, "8/10")

	entries := p.log.Entries()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Message, "TWAP BUY 100 SOLUSDT over 30min")
	assert.Equal(t, &TWAPForm{}, form)
	assert.False(t, ctl.Pending())
}

func TestSubmitStopLimitAndOCOWording(t *testing.T) {
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, botapi.OrderResponse{Success: true, Order: &botapi.Order{OrderID: "55"}})
	}))

	p.orch.SubmitStopLimit(context.Background(),
		&StopLimitForm{Symbol: "adausdt", Quantity: "10", Price: "1.2", StopPrice: "1.1"},
		NewControl(botapi.SideSell))
	entries := p.log.Entries()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Message, "Stop-Limit SELL 10 ADAUSDT - ID: 55")

	p.orch.SubmitOCO(context.Background(),
		&OCOForm{Symbol: "adausdt", Quantity: "10", TakeProfitPrice: "1.5", StopLossPrice: "0.9"},
		NewControl(botapi.SideBuy))
	entries = p.log.Entries()
	assert.Contains(t, entries[0].Message, "OCO BUY 10 ADAUSDT (TP: 1.5, SL: 0.9)")
}

func TestTransportFailureRestoresControl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every request now fails at the transport level

	api := botapi.NewClient(srv.URL, time.Second)
	center := notify.NewCenter(time.Minute)
	log := activity.NewLog()
	orch := NewOrchestrator(api, center, log, nil, zap.NewNop())

	ctl := NewControl(botapi.SideBuy)
	orch.SubmitMarket(context.Background(), &MarketForm{Symbol: "btcusdt", Quantity: "1"}, ctl)

	assert.False(t, ctl.Pending())
	assert.Equal(t, "Buy", ctl.Label())

	banners := center.Active()
	require.Len(t, banners, 1)
	assert.Equal(t, notify.SeverityDanger, banners[0].Severity)
	assert.True(t, strings.HasPrefix(banners[0].Message, "Error:"))

	entries := log.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Error placing market order", entries[0].Message)
}

func TestEveryKindEndsIdleOnFailure(t *testing.T) {
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, botapi.OrderResponse{Success: false, Message: "rejected"})
	}))

	ctx := context.Background()
	submits := []struct {
		name   string
		submit func(ctl *Control)
	}{
		{"market", func(ctl *Control) { p.orch.SubmitMarket(ctx, &MarketForm{Symbol: "a", Quantity: "1"}, ctl) }},
		{"limit", func(ctl *Control) { p.orch.SubmitLimit(ctx, &LimitForm{Symbol: "a", Quantity: "1", Price: "1"}, ctl) }},
		{"stop-limit", func(ctl *Control) {
			p.orch.SubmitStopLimit(ctx, &StopLimitForm{Symbol: "a", Quantity: "1", Price: "1", StopPrice: "1"}, ctl)
		}},
		{"oco", func(ctl *Control) {
			p.orch.SubmitOCO(ctx, &OCOForm{Symbol: "a", Quantity: "1", TakeProfitPrice: "2", StopLossPrice: "0.5"}, ctl)
		}},
		{"twap", func(ctl *Control) {
			p.orch.SubmitTWAP(ctx, &TWAPForm{Symbol: "a", TotalQuantity: "1", Duration: "5", NumOrders: "2"}, ctl)
		}},
	}

	for _, s := range submits {
		t.Run(s.name, func(t *testing.T) {
			ctl := NewControl(botapi.SideSell)
			s.submit(ctl)
			assert.False(t, ctl.Pending())
			assert.Equal(t, "Sell", ctl.Label())
		})
	}
}

func TestControlBusyLabelWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := newTestPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/balance" {
			writeJSON(w, botapi.BalanceResponse{Success: true})
			return
		}
		close(started)
		<-release
		writeJSON(w, botapi.OrderResponse{Success: true, Order: &botapi.Order{OrderID: "1"}})
	}))

	ctl := NewControl(botapi.SideBuy)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.orch.SubmitMarket(context.Background(), &MarketForm{Symbol: "btcusdt", Quantity: "1"}, ctl)
	}()

	<-started
	assert.True(t, ctl.Pending())
	assert.Equal(t, "Processing...", ctl.Label())

	close(release)
	<-done
	assert.False(t, ctl.Pending())
	assert.Equal(t, "Buy", ctl.Label())
}
