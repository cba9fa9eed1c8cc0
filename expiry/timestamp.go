package expiry

import (
	"time"
)

// serialCycle is the size of the 32-bit timestamp space used for RRSIG
// inception and expiration times (RFC 4034 section 3.1.5).
const serialCycle = int64(1) << 32

// AbsoluteTime converts a 32-bit signature timestamp into an absolute
// time. The wire value is the number of seconds since the Unix epoch
// truncated to 32 bits; of all possible interpretations the one closest
// to now is chosen. Values are never interpreted before the epoch.
func AbsoluteTime(wire uint32, now time.Time) time.Time {
	t := int64(wire)

	cycles := (now.Unix() - t + serialCycle/2) / serialCycle
	if cycles < 0 {
		cycles = 0
	}

	return time.Unix(t+cycles*serialCycle, 0).UTC()
}
