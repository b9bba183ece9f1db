package fracdex

import "fmt"

// NKeysBetween returns n keys evenly spaced across the full alphabet range,
// in ascending order, each carrying independent jitter. It is intended for
// bulk import of an ordered sibling group, where generating keys pairwise
// with KeyBetween would produce a badly skewed distribution.
//
// The keys share a fixed structural width chosen so that neighboring keys
// keep enough numeric distance to stay strictly ordered after the
// trailing-'0' adjustment.
func (g *Generator) NKeysBetween(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("key count must be positive, got %d: %w", n, ErrInvalidKey)
	}

	// Smallest width whose keyspace leaves a gap of at least 4 between
	// neighboring values.
	width := 1
	span := base
	for span < 4*(n+1) {
		width++
		span *= base
	}
	step := span / (n + 1)

	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := i * step
		if v%base == 0 {
			// Avoid a trailing minimum symbol. The gap of >= 4 keeps the
			// bumped value below its successor.
			v++
		}
		key, err := g.appendJitter(encodeFixed(v, width))
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// NKeysBetween is the package-level form of Generator.NKeysBetween using
// the default generator.
func NKeysBetween(n int) ([]string, error) {
	return defaultGenerator.NKeysBetween(n)
}

// encodeFixed renders v as a fixed-width base-62 string.
func encodeFixed(v, width int) string {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = Alphabet[v%base]
		v /= base
	}
	return string(out)
}

// ValidateOrder reports whether keys is strictly increasing under byte
// comparison. An empty or single-element slice is trivially ordered.
func ValidateOrder(keys []string) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return false
		}
	}
	return true
}
