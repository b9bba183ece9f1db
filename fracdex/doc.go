// Package fracdex generates fractional-index order keys for sibling ordering.
//
// A fractional-index key is a string over a fixed 62-symbol alphabet
// (digits, uppercase letters, lowercase letters, in ASCII order) that sorts
// under plain byte comparison. The defining property is refinement: between
// any two distinct keys there is always another key, so a new item can be
// inserted at any position in an ordered list without renumbering its
// neighbors. The keyspace is unbounded through string growth rather than
// numeric precision.
//
// # Key Grammar
//
// Valid keys are non-empty strings over the alphabet
//
//	0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz
//
// that do not end with the minimum symbol '0'. A key ending in '0' would
// admit no key strictly below it at the same prefix, which breaks the
// refinement property; such keys are never generated and are rejected as
// input.
//
// # Jitter
//
// Two writers computing a key between the same pair of bounds would
// otherwise produce the same key. Generated keys therefore carry a short
// random suffix ("jitter", 4 symbols by default) so that concurrent
// insertions at the same position almost always yield distinct keys. Jitter
// narrows the collision window but does not close it: the storage layer
// still needs a uniqueness constraint on (parent, key), and callers must
// treat a violation as a signal to re-read bounds and retry.
//
// The random source is injected through WithRand, so tests can supply a
// deterministic reader and assert exact output.
//
// # Usage
//
//	gen := fracdex.NewGenerator()
//
//	// First key in an empty list.
//	first, err := gen.KeyBetween("", "")
//
//	// Insert after first.
//	second, err := gen.KeyBetween(first, "")
//
//	// Insert between the two.
//	middle, err := gen.KeyBetween(first, second)
//
// An empty string stands for "no bound" on that side. Keys are scoped per
// sibling group; the generator holds no state and is safe for concurrent
// use.
//
// # Collation
//
// Consumers must compare and index keys with byte-exact (binary, C-locale)
// collation. Locale-aware collation reorders the alphabet and silently
// breaks the betweenness guarantee.
package fracdex
