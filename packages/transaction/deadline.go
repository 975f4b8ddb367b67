package transaction

import (
	"time"

	"github.com/proximax-storage/sirius-client-go/packages/clock"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// NemesisEpoch is the timestamp of the nemesis block. Deadlines are counted in milliseconds from it.
var NemesisEpoch = time.Unix(0, 1459468800000*int64(time.Millisecond)).UTC()

// DefaultDeadline is the validity window most callers use.
const DefaultDeadline = time.Hour

// region Deadline /////////////////////////////////////////////////////////////////////////////////////////////////////

// Deadline is the instant after which the network rejects a transaction.
type Deadline struct {
	time.Time
}

// NewDeadline returns the instant d after the current time of clk.
func NewDeadline(d time.Duration, clk clock.Clock) *Deadline {
	return &Deadline{clk.Now().Add(d)}
}

// NewDeadlineFromTime wraps an absolute instant.
func NewDeadlineFromTime(t time.Time) *Deadline {
	return &Deadline{t}
}

// DeadlineFromUint64 converts the network representation back into a Deadline.
func DeadlineFromUint64(value types.Uint64) *Deadline {
	return &Deadline{NemesisEpoch.Add(time.Duration(value.Uint64()) * time.Millisecond)}
}

// Uint64 returns the milliseconds since NemesisEpoch. Instants before the epoch map to 0.
func (d *Deadline) Uint64() types.Uint64 {
	if d.Before(NemesisEpoch) {
		return types.NewUint64(0)
	}

	return types.NewUint64(uint64(d.Sub(NemesisEpoch) / time.Millisecond))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
