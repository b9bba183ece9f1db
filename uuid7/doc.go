// Package uuid7 generates time-ordered unique identifiers (UUID version 7).
//
// An identifier is a 128-bit value rendered in the canonical 36-character
// hyphenated lowercase-hex form:
//
//	xxxxxxxx-xxxx-7xxx-yxxx-xxxxxxxxxxxx
//
// The first 48 bits carry the creation time as big-endian Unix
// milliseconds, the version nibble is fixed at 7, the variant bits are
// fixed at 10, and the remaining 74 bits are cryptographically random.
// Generation needs only a clock and a random source; there is no
// process-wide counter, so any number of goroutines can generate
// identifiers without synchronization.
//
// Two identifiers from different milliseconds sort correctly by creation
// time when compared through CompareByTimestamp. Raw string comparison is
// NOT guaranteed monotonic: within one millisecond the ordering is decided
// by the random tail, so callers that need chronological order must compare
// decoded timestamps, not strings.
//
// Both the clock and the random source are injectable (WithClock, WithRand)
// so tests can pin them and assert exact output; the defaults are time.Now
// and crypto/rand.Reader.
package uuid7
