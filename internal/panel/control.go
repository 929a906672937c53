package panel

import (
	"sync"

	"tradepanel/pkg/botapi"
)

// Control is a submit control bound to one side of one form. It holds
// the binary idle/pending state; pending disables the control and swaps
// its label for a busy indicator. Every submission attempt captures its
// own Control, so concurrent attempts from different controls cannot
// corrupt each other.
type Control struct {
	mu      sync.Mutex
	side    string
	pending bool
	label   string
}

func NewControl(side string) *Control {
	return &Control{side: side, label: sideLabel(side)}
}

func sideLabel(side string) string {
	if side == botapi.SideBuy {
		return "Buy"
	}
	return "Sell"
}

func (c *Control) begin(busyLabel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = true
	c.label = busyLabel
}

// finish restores the idle, side-labeled state. Runs unconditionally
// when a submission settles, regardless of outcome.
func (c *Control) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	c.label = sideLabel(c.side)
}

// Side returns the trade side this control triggers.
func (c *Control) Side() string {
	return c.side
}

// Pending reports whether a submission through this control is in flight.
func (c *Control) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Label returns the control's current display label.
func (c *Control) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}
