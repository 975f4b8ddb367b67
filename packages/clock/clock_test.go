package clock

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedClock(t *testing.T) {
	instant := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, instant, FixedClock(instant).Now())
}

func TestNTPClock_Sync(t *testing.T) {
	clk := NewNTPClock("a", "b")
	var queried []string
	clk.query = func(host string) (*ntp.Response, error) {
		queried = append(queried, host)
		if host == "a" {
			return nil, errors.New("unreachable")
		}

		return &ntp.Response{ClockOffset: time.Hour, Stratum: 2, RootDelay: time.Millisecond, RootDispersion: time.Millisecond}, nil
	}

	require.NoError(t, clk.Sync())
	assert.Equal(t, []string{"a", "b"}, queried)
	assert.Equal(t, time.Hour, clk.Offset())
	assert.WithinDuration(t, time.Now().Add(time.Hour), clk.Now(), time.Minute)
}

func TestNTPClock_SyncFails(t *testing.T) {
	clk := NewNTPClock("a")
	calls := 0
	clk.query = func(string) (*ntp.Response, error) {
		calls++
		return nil, errors.New("unreachable")
	}

	assert.Error(t, clk.Sync())
	assert.Equal(t, maxTries, calls)
	assert.Zero(t, clk.Offset())

	assert.Error(t, NewNTPClock().Sync())
}

func TestNTPClock_Run(t *testing.T) {
	clk := NewNTPClock("a")
	clk.query = func(string) (*ntp.Response, error) {
		return &ntp.Response{ClockOffset: time.Second, Stratum: 1, RootDelay: time.Millisecond, RootDispersion: time.Millisecond}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clk.Run(ctx, time.Hour, nil)
	assert.Equal(t, time.Second, clk.Offset())
}
