package uuid7

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Version is the fixed version nibble of generated identifiers.
const Version = 7

// ErrInvalidIdentifier indicates input that is not a canonical 36-character
// hyphenated lowercase-hex identifier. Use errors.Is to test for it.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Generator produces identifiers from an injected clock and random source.
// Generators hold no mutable state and are safe for concurrent use.
type Generator struct {
	rand io.Reader
	now  func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source for the identifier tail. Defaults to
// crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// WithClock sets the wall-clock function used for the timestamp bits.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator returns a Generator backed by crypto/rand and time.Now.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rand: rand.Reader,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a fresh identifier: 48 timestamp bits, the version and
// variant markers, and a random tail, rendered in canonical form. It fails
// only if the random source does.
func (g *Generator) New() (string, error) {
	var u uuid.UUID
	if _, err := io.ReadFull(g.rand, u[:]); err != nil {
		return "", fmt.Errorf("read random tail: %w", err)
	}

	ms := uint64(g.now().UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	u[6] = (u[6] & 0x0F) | (Version << 4) // version nibble
	u[8] = (u[8] & 0x3F) | 0x80           // variant 10

	return u.String(), nil
}

// New returns a fresh identifier from a default generator.
func New() (string, error) {
	return defaultGenerator.New()
}

var defaultGenerator = NewGenerator()

// ExtractTimestamp decodes the leading 48 bits of id back into its creation
// time, in UTC with millisecond precision.
func ExtractTimestamp(id string) (time.Time, error) {
	u, err := parse(id)
	if err != nil {
		return time.Time{}, err
	}
	ms := uint64(u[0])<<40 | uint64(u[1])<<32 | uint64(u[2])<<24 |
		uint64(u[3])<<16 | uint64(u[4])<<8 | uint64(u[5])
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// IsWellFormed reports whether id has the canonical grouped-hex shape:
// 36 characters, hyphens at offsets 8/13/18/23, lowercase hex elsewhere.
// It does not inspect the version or variant bits.
func IsWellFormed(id string) bool {
	if len(id) != 36 {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch i {
		case 8, 13, 18, 23:
			if id[i] != '-' {
				return false
			}
		default:
			c := id[i]
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
				return false
			}
		}
	}
	return true
}

// HasVersionMarker reports whether id is well formed and carries the
// version-7 nibble.
func HasVersionMarker(id string) bool {
	return IsWellFormed(id) && id[14] == '0'+Version
}

// CompareByTimestamp orders two identifiers by their decoded creation
// times, returning -1, 0, or 1. Identifiers from the same millisecond
// compare equal here even though their strings differ; raw string order is
// only meaningful within a single millisecond.
func CompareByTimestamp(a, b string) (int, error) {
	ta, err := ExtractTimestamp(a)
	if err != nil {
		return 0, fmt.Errorf("first identifier: %w", err)
	}
	tb, err := ExtractTimestamp(b)
	if err != nil {
		return 0, fmt.Errorf("second identifier: %w", err)
	}
	switch {
	case ta.Before(tb):
		return -1, nil
	case ta.After(tb):
		return 1, nil
	}
	return 0, nil
}

// parse validates the canonical form and decodes the 128 bits.
func parse(id string) (uuid.UUID, error) {
	if !IsWellFormed(id) {
		return uuid.UUID{}, fmt.Errorf("%q: %w", id, ErrInvalidIdentifier)
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%q: %w", id, ErrInvalidIdentifier)
	}
	return u, nil
}
