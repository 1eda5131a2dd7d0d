package models

import (
	"fmt"
	"math"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
)

const (
	NanosInMilli   = 1000000
	MillisInSecond = 1000

	maxMomentMillis = math.MaxInt64 / NanosInMilli
)

// CompactMoment is a timestamp carried as Compact<u64> milliseconds since the
// Unix epoch, the argument of Timestamp.set.
type CompactMoment struct {
	time.Time
}

// NewCompactMoment truncates t to millisecond precision.
func NewCompactMoment(t time.Time) CompactMoment {
	return CompactMoment{t.Truncate(time.Millisecond)}
}

// Millis returns the moment as milliseconds since the epoch.
func (m CompactMoment) Millis() uint64 {
	return uint64(m.UnixNano() / NanosInMilli)
}

func (m *CompactMoment) Decode(decoder scale.Decoder) error {
	compactT, err := decodeCompact(decoder)
	if err != nil {
		return decodeErr("moment", err)
	}

	// Error in case of overflow
	if !compactT.IsUint64() || compactT.Uint64() > maxMomentMillis {
		return fmt.Errorf("cannot decode compact moment %s: overflows int64 nanoseconds", compactT.String())
	}
	u := compactT.Uint64()

	secs := u / MillisInSecond
	nanos := (u % MillisInSecond) * NanosInMilli

	*m = CompactMoment{time.Unix(int64(secs), int64(nanos))}

	return nil
}

func (m CompactMoment) Encode(encoder scale.Encoder) error {
	if m.UnixNano() < 0 {
		return fmt.Errorf("cannot encode moment before the epoch: %s", m.Time)
	}
	return encodeCompact(encoder, m.Millis())
}
