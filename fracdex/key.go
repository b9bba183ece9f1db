package fracdex

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Alphabet is the 62-symbol key alphabet in byte order. Rank 0 is '0',
// rank 61 is 'z'.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// base is the size of the key alphabet.
const base = len(Alphabet)

// DefaultJitterLength is the number of random suffix symbols appended to
// generated keys unless configured otherwise.
const DefaultJitterLength = 4

// Sentinel errors returned by the generator. Use errors.Is to test for them.
var (
	// ErrUnorderableKeys indicates KeyBetween was called with bounds that
	// do not sort strictly prev < next.
	ErrUnorderableKeys = errors.New("unorderable keys")

	// ErrInvalidKey indicates a bound that is not a valid key: empty is
	// fine (no bound), but a non-empty bound must use only alphabet
	// symbols and must not end with the minimum symbol '0'.
	ErrInvalidKey = errors.New("invalid order key")
)

// Generator produces order keys. The zero value is not usable; construct
// with NewGenerator. Generators are stateless apart from configuration and
// safe for concurrent use.
type Generator struct {
	jitter int
	rand   io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithJitterLength sets the number of random symbols appended to each
// generated key. Zero disables jitter entirely, making output a pure
// function of its bounds.
func WithJitterLength(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.jitter = n
		}
	}
}

// WithoutJitter disables the random suffix. Equivalent to
// WithJitterLength(0).
func WithoutJitter() Option {
	return WithJitterLength(0)
}

// WithRand sets the random source used for jitter. Defaults to
// crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// NewGenerator returns a Generator with jitter enabled at
// DefaultJitterLength, drawing randomness from crypto/rand.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		jitter: DefaultJitterLength,
		rand:   rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// KeyBetween returns a key that sorts strictly between prev and next under
// byte comparison. An empty string means "no bound" on that side: both
// empty yields the alphabet midpoint, only next yields a key before next,
// only prev yields a key after prev.
//
// The bounds must satisfy prev < next when both are given
// (ErrUnorderableKeys otherwise), and each non-empty bound must be a valid
// key per the package grammar (ErrInvalidKey otherwise).
func (g *Generator) KeyBetween(prev, next string) (string, error) {
	if err := validateKey(prev); err != nil {
		return "", fmt.Errorf("prev %q: %w", prev, err)
	}
	if err := validateKey(next); err != nil {
		return "", fmt.Errorf("next %q: %w", next, err)
	}
	if prev != "" && next != "" && prev >= next {
		return "", fmt.Errorf("prev %q >= next %q: %w", prev, next, ErrUnorderableKeys)
	}

	key := bisect(prev, next)
	return g.appendJitter(key)
}

// KeyBetween is the package-level form of Generator.KeyBetween using a
// default generator (4-symbol jitter, crypto/rand).
func KeyBetween(prev, next string) (string, error) {
	return defaultGenerator.KeyBetween(prev, next)
}

var defaultGenerator = NewGenerator()

// validateKey checks the key grammar. Empty means "no bound" and is valid.
func validateKey(key string) error {
	if key == "" {
		return nil
	}
	for i := 0; i < len(key); i++ {
		if rank(key[i]) < 0 {
			return fmt.Errorf("symbol %q at index %d outside key alphabet: %w", key[i], i, ErrInvalidKey)
		}
	}
	if key[len(key)-1] == Alphabet[0] {
		return fmt.Errorf("trailing minimum symbol %q: %w", Alphabet[0], ErrInvalidKey)
	}
	return nil
}

// rank returns the alphabet rank of c, or -1 if c is not an alphabet
// symbol.
func rank(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 36
	}
	return -1
}

// paddedRank treats key as right-padded with the minimum symbol: positions
// past its end rank 0.
func paddedRank(key string, i int) int {
	if i >= len(key) {
		return 0
	}
	return rank(key[i])
}

// bisect computes the structural key strictly between two validated bounds.
// Empty strings mean "no bound". This is the string-midpoint construction:
// copy the shared prefix, then either emit the midpoint of the first
// differing ranks or, when the ranks are adjacent, keep the lower bound's
// symbol and split the space above its remaining suffix.
//
// The adjacent-rank branch always extends from the lower bound's side, so
// the result is never a prefix of next. That keeps any appended suffix
// (jitter) below the upper bound.
func bisect(prev, next string) string {
	var out strings.Builder
	a, b := prev, next
	bounded := b != ""

	for {
		if bounded {
			// Copy the shared prefix, treating a as padded with '0'.
			n := 0
			for n < len(b) && paddedRank(a, n) == rank(b[n]) {
				n++
			}
			if n > 0 {
				out.WriteString(b[:n])
				if n < len(a) {
					a = a[n:]
				} else {
					a = ""
				}
				b = b[n:]
				if b == "" {
					// Unreachable for validated bounds (a < b with no
					// trailing '0'), kept as a hard stop.
					bounded = false
				}
				continue
			}
		}

		lo := 0
		if a != "" {
			lo = rank(a[0])
		}
		hi := base
		if bounded {
			hi = rank(b[0])
		}

		if hi-lo > 1 {
			// Room at this position: emit the midpoint rank.
			out.WriteByte(Alphabet[(lo+hi+1)/2])
			return out.String()
		}

		// Adjacent ranks. Keep the lower symbol and recurse into the
		// unbounded space above a's remaining suffix.
		out.WriteByte(Alphabet[lo])
		if a != "" {
			a = a[1:]
		}
		b = ""
		bounded = false
	}
}

// appendJitter appends the configured number of random alphabet symbols.
// The final symbol is drawn from the non-minimum ranks so a jittered key
// never ends in '0' and remains a valid future bound.
func (g *Generator) appendJitter(key string) (string, error) {
	if g.jitter <= 0 {
		return key, nil
	}
	suffix := make([]byte, g.jitter)
	for i := range suffix {
		if i == len(suffix)-1 {
			r, err := g.randRank(base - 1)
			if err != nil {
				return "", fmt.Errorf("jitter: %w", err)
			}
			suffix[i] = Alphabet[r+1]
			continue
		}
		r, err := g.randRank(base)
		if err != nil {
			return "", fmt.Errorf("jitter: %w", err)
		}
		suffix[i] = Alphabet[r]
	}
	return key + string(suffix), nil
}

// randRank returns a uniform value in [0, n) using rejection sampling over
// single bytes from the configured source.
func (g *Generator) randRank(n int) (int, error) {
	var buf [1]byte
	limit := 256 - 256%n
	for {
		if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
			return 0, err
		}
		if int(buf[0]) < limit {
			return int(buf[0]) % n, nil
		}
	}
}
