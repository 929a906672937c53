package symbols

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name     string
		query    string
		contains string
		count    int
	}{
		{name: "ticker prefix", query: "BTC", contains: "BTCUSDT", count: 1},
		{name: "lowercase ticker prefix", query: "btc", contains: "BTCUSDT", count: 1},
		{name: "name match", query: "bitcoin", contains: "BTCUSDT", count: 1},
		{name: "partial name", query: "ethereum", contains: "ETHUSDT", count: 2}, // Ethereum + Ethereum Classic
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := table.Match(tt.query)
			require.Len(t, matches, tt.count)
			symbols := make([]string, 0, len(matches))
			for _, m := range matches {
				symbols = append(symbols, m.Symbol)
			}
			assert.Contains(t, symbols, tt.contains)
		})
	}
}

func TestMatchEmptyQueryYieldsNothing(t *testing.T) {
	assert.Empty(t, NewTable().Match(""))
}

func TestMatchUnknownQueryYieldsNothing(t *testing.T) {
	assert.Empty(t, NewTable().Match("ZZZZZZ"))
}

func TestMatchIsCapped(t *testing.T) {
	// Every entry's ticker ends in USDT, so this matches all 20.
	matches := NewTable().Match("USDT")
	assert.Len(t, matches, maxSuggestions)
}

func TestMatchPreservesSourceOrder(t *testing.T) {
	matches := NewTable().Match("USDT")
	require.True(t, len(matches) >= 2)
	assert.Equal(t, "BTCUSDT", matches[0].Symbol)
	assert.Equal(t, "ETHUSDT", matches[1].Symbol)
}

func TestSuggestorInputSelect(t *testing.T) {
	s := NewSuggestor(NewTable(), time.Millisecond)

	s.Input("sol")
	require.True(t, s.Visible())
	require.Len(t, s.Suggestions(), 1)

	symbol, ok := s.Select(0)
	require.True(t, ok)
	assert.Equal(t, "SOLUSDT", symbol)
	assert.False(t, s.Visible())
}

func TestSuggestorHidesOnEmptyInput(t *testing.T) {
	s := NewSuggestor(NewTable(), time.Millisecond)
	s.Input("ada")
	require.True(t, s.Visible())

	s.Input("")
	assert.False(t, s.Visible())
	assert.Empty(t, s.Suggestions())
}

func TestSuggestorBlurHidesAfterDelay(t *testing.T) {
	s := NewSuggestor(NewTable(), 20*time.Millisecond)
	s.Input("doge")
	require.True(t, s.Visible())

	s.Blur()
	// Still up within the grace window, so a click can register.
	assert.True(t, s.Visible())

	assert.Eventually(t, func() bool { return !s.Visible() }, time.Second, 5*time.Millisecond)
}

func TestSuggestorFocusReevaluatesNonEmptyField(t *testing.T) {
	s := NewSuggestor(NewTable(), 5*time.Millisecond)
	s.Input("xrp")
	s.Blur()
	require.Eventually(t, func() bool { return !s.Visible() }, time.Second, time.Millisecond)

	s.Focus()
	assert.True(t, s.Visible())
	require.Len(t, s.Suggestions(), 1)
	assert.Equal(t, "XRPUSDT", s.Suggestions()[0].Symbol)
}

func TestSuggestorSelectOutOfRange(t *testing.T) {
	s := NewSuggestor(NewTable(), time.Millisecond)
	s.Input("ltc")
	_, ok := s.Select(5)
	assert.False(t, ok)
}
