package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAppendsBanner(t *testing.T) {
	c := NewCenter(time.Minute)
	c.Notify("Order placed", SeveritySuccess)
	c.Notify("Order failed", SeverityDanger)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Order placed", active[0].Message)
	assert.Equal(t, SeverityDanger, active[1].Severity)
}

func TestBannerAutoExpires(t *testing.T) {
	const ttl = 60 * time.Millisecond
	c := NewCenter(ttl)
	c.Notify("transient", SeveritySuccess)

	// Present just before the TTL elapses.
	time.Sleep(ttl / 2)
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool { return len(c.Active()) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestManualDismiss(t *testing.T) {
	c := NewCenter(time.Minute)
	id := c.Notify("dismiss me", SeverityDanger)
	keep := c.Notify("keep me", SeveritySuccess)

	c.Dismiss(id)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, keep, active[0].ID)
}

func TestDismissIsIdempotent(t *testing.T) {
	c := NewCenter(time.Minute)
	id := c.Notify("gone", SeveritySuccess)
	c.Dismiss(id)
	c.Dismiss(id) // second removal is a no-op
	assert.Empty(t, c.Active())
}

func TestOverlappingBannersExpireIndependently(t *testing.T) {
	c := NewCenter(50 * time.Millisecond)
	c.Notify("first", SeveritySuccess)
	time.Sleep(25 * time.Millisecond)
	c.Notify("second", SeveritySuccess)

	// First expires while second is still up.
	require.Eventually(t, func() bool { return len(c.Active()) == 1 },
		time.Second, 2*time.Millisecond)
	assert.Equal(t, "second", c.Active()[0].Message)

	assert.Eventually(t, func() bool { return len(c.Active()) == 0 },
		time.Second, 2*time.Millisecond)
}

func TestCredentialFailureBanner(t *testing.T) {
	c := NewCenter(time.Minute)
	c.NotifyCredentialFailure()

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, SeverityDanger, active[0].Severity)
	assert.Contains(t, active[0].Message, "API Key Error")
	assert.Contains(t, active[0].Message, "testnet.binancefuture.com")
}
