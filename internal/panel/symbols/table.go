package symbols

import "strings"

// Entry is one row of the static symbol reference set.
type Entry struct {
	Symbol string `json:"symbol"` // uppercase ticker, e.g., "BTCUSDT"
	Name   string `json:"name"`   // display name, e.g., "Bitcoin"
	Type   string `json:"type"`   // category label
}

// popular is the tradable-pair reference data shipped with the panel.
// Static reference data, never mutated after process start.
var popular = []Entry{
	{Symbol: "BTCUSDT", Name: "Bitcoin", Type: "Crypto"},
	{Symbol: "ETHUSDT", Name: "Ethereum", Type: "Crypto"},
	{Symbol: "BNBUSDT", Name: "Binance Coin", Type: "Crypto"},
	{Symbol: "SOLUSDT", Name: "Solana", Type: "Crypto"},
	{Symbol: "XRPUSDT", Name: "Ripple", Type: "Crypto"},
	{Symbol: "ADAUSDT", Name: "Cardano", Type: "Crypto"},
	{Symbol: "DOGEUSDT", Name: "Dogecoin", Type: "Crypto"},
	{Symbol: "MATICUSDT", Name: "Polygon", Type: "Crypto"},
	{Symbol: "DOTUSDT", Name: "Polkadot", Type: "Crypto"},
	{Symbol: "AVAXUSDT", Name: "Avalanche", Type: "Crypto"},
	{Symbol: "SHIBUSDT", Name: "Shiba Inu", Type: "Crypto"},
	{Symbol: "LTCUSDT", Name: "Litecoin", Type: "Crypto"},
	{Symbol: "LINKUSDT", Name: "Chainlink", Type: "Crypto"},
	{Symbol: "TRXUSDT", Name: "TRON", Type: "Crypto"},
	{Symbol: "ATOMUSDT", Name: "Cosmos", Type: "Crypto"},
	{Symbol: "UNIUSDT", Name: "Uniswap", Type: "Crypto"},
	{Symbol: "XLMUSDT", Name: "Stellar", Type: "Crypto"},
	{Symbol: "ETCUSDT", Name: "Ethereum Classic", Type: "Crypto"},
	{Symbol: "ALGOUSDT", Name: "Algorand", Type: "Crypto"},
	{Symbol: "FILUSDT", Name: "Filecoin", Type: "Crypto"},
}

// maxSuggestions caps how many matches a query may produce.
const maxSuggestions = 8

// Table holds the immutable symbol reference set.
type Table struct {
	entries []Entry
}

// NewTable returns a table over the built-in reference set.
func NewTable() *Table {
	return &Table{entries: popular}
}

// All returns the full reference set in source order.
func (t *Table) All() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Match returns up to maxSuggestions entries whose symbol or name
// contains the query, case-insensitively, preserving source order.
// An empty query matches nothing.
func (t *Table) Match(query string) []Entry {
	if query == "" {
		return nil
	}
	q := strings.ToUpper(query)

	var out []Entry
	for _, e := range t.entries {
		if strings.Contains(e.Symbol, q) || strings.Contains(strings.ToUpper(e.Name), q) {
			out = append(out, e)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
