// Package clock provides the wall clock used to compute transaction deadlines.
package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// region SystemClock //////////////////////////////////////////////////////////////////////////////////////////////////

// SystemClock is the local wall clock.
type SystemClock struct{}

// Now returns the local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region FixedClock ///////////////////////////////////////////////////////////////////////////////////////////////////

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (f FixedClock) Now() time.Time {
	return time.Time(f)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NTPClock /////////////////////////////////////////////////////////////////////////////////////////////////////

const maxTries = 3

// NTPClock is the local clock corrected by the offset reported by a pool of NTP servers. Nodes reject transactions
// whose deadline lies too far in the future, so a skewed local clock makes every announcement fail.
type NTPClock struct {
	pools  []string
	offset *atomic.Duration
	query  func(host string) (*ntp.Response, error)
}

// NewNTPClock creates an NTPClock that synchronizes against the given pools. It behaves like SystemClock until the
// first successful Sync.
func NewNTPClock(pools ...string) *NTPClock {
	return &NTPClock{
		pools:  pools,
		offset: atomic.NewDuration(0),
		query:  ntp.Query,
	}
}

// Now returns the synchronized time.
func (n *NTPClock) Now() time.Time {
	return time.Now().Add(n.offset.Load())
}

// Offset returns the last measured offset of the local clock.
func (n *NTPClock) Offset() time.Duration {
	return n.offset.Load()
}

// Sync queries the pools (at most maxTries times) and stores the first valid offset.
func (n *NTPClock) Sync() (err error) {
	if len(n.pools) == 0 {
		return errors.New("no NTP pool configured")
	}

	for try := 0; try < maxTries; try++ {
		host := n.pools[try%len(n.pools)]
		if err = n.fetchTimeOffset(host); err == nil {
			return nil
		}
	}

	return errors.Wrapf(err, "failed to synchronize clock after %d tries", maxTries)
}

// Run synchronizes the clock every interval until ctx is done.
func (n *NTPClock) Run(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := n.Sync(); err != nil && onError != nil {
			onError(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (n *NTPClock) fetchTimeOffset(host string) error {
	resp, err := n.query(host)
	if err != nil {
		return errors.Wrapf(err, "failed to query %s", host)
	}
	if err = resp.Validate(); err != nil {
		return errors.Wrapf(err, "invalid response from %s", host)
	}
	n.offset.Store(resp.ClockOffset)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
