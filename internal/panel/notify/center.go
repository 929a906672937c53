package notify

import (
	"sync"
	"time"
)

// Severity styles a banner.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// DefaultTTL is how long a banner stays up without manual dismissal.
const DefaultTTL = 8 * time.Second

// credentialFailureMessage is the remediation banner shown when an order
// fails because the testnet API keys look expired or invalid.
const credentialFailureMessage = "API Key Error! " +
	"Your testnet API keys may have expired or are invalid. " +
	"Solution: visit https://testnet.binancefuture.com/ to generate new keys, " +
	"then update your .env file and restart the app. " +
	"See API_KEY_SETUP.txt for detailed instructions."

// Notification is one transient banner.
type Notification struct {
	ID       int
	Message  string
	Severity Severity
}

// Center owns the notification area: banners auto-expire after the TTL
// or go away on explicit dismissal, whichever comes first. Banners are
// independent; each carries its own one-shot expiry timer.
type Center struct {
	mu     sync.Mutex
	seq    int
	active []Notification
	ttl    time.Duration
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Notify appends a banner and schedules its automatic removal.
// Returns the banner's id for manual dismissal.
func (c *Center) Notify(message string, severity Severity) int {
	c.mu.Lock()
	c.seq++
	id := c.seq
	c.active = append(c.active, Notification{ID: id, Message: message, Severity: severity})
	c.mu.Unlock()

	time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	return id
}

// NotifyCredentialFailure raises the long API-key remediation banner.
func (c *Center) NotifyCredentialFailure() int {
	return c.Notify(credentialFailureMessage, SeverityDanger)
}

// Dismiss removes a banner. Removing one that is already gone is a no-op,
// so manual dismissal and the expiry timer cannot conflict.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Active snapshots the banners currently shown, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}
