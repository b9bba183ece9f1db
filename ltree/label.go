package ltree

import (
	"errors"
	"fmt"
	"strings"
)

// LabelLength is the exact length of a Label: a canonical identifier's 32
// hex characters with the four hyphens removed.
const LabelLength = 32

// Sentinel errors for codec inputs. Use errors.Is to test for them.
var (
	// ErrInvalidIdentifier indicates input that is not a canonical
	// 36-character hyphenated lowercase-hex identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidLabel indicates input that is not exactly 32 lowercase
	// hex characters.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrInvalidPath indicates input that fails the path grammar.
	ErrInvalidPath = errors.New("invalid path")
)

// hyphen offsets in a canonical identifier string.
var identifierHyphens = [4]int{8, 13, 18, 23}

// ToLabel converts a canonical identifier to its Label by stripping the
// four hyphens. The identifier must be in canonical form: 36 characters,
// hyphens at offsets 8/13/18/23, lowercase hex elsewhere.
func ToLabel(id string) (string, error) {
	if err := checkIdentifier(id); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(LabelLength)
	for i := 0; i < len(id); i++ {
		if id[i] != '-' {
			b.WriteByte(id[i])
		}
	}
	return b.String(), nil
}

// FromLabel converts a Label back to the canonical identifier by
// re-inserting hyphens at offsets 8/12/16/20 of the hex string.
func FromLabel(label string) (string, error) {
	if len(label) != LabelLength {
		return "", fmt.Errorf("length %d, want %d: %w", len(label), LabelLength, ErrInvalidLabel)
	}
	for i := 0; i < len(label); i++ {
		if !isLowerHex(label[i]) {
			return "", fmt.Errorf("non-hex character %q at index %d: %w", label[i], i, ErrInvalidLabel)
		}
	}
	return label[0:8] + "-" + label[8:12] + "-" + label[12:16] + "-" + label[16:20] + "-" + label[20:32], nil
}

// checkIdentifier validates the canonical identifier shape.
func checkIdentifier(id string) error {
	if len(id) != 36 {
		return fmt.Errorf("length %d, want 36: %w", len(id), ErrInvalidIdentifier)
	}
	hyphen := 0
	for i := 0; i < len(id); i++ {
		if hyphen < len(identifierHyphens) && i == identifierHyphens[hyphen] {
			if id[i] != '-' {
				return fmt.Errorf("missing hyphen at offset %d: %w", i, ErrInvalidIdentifier)
			}
			hyphen++
			continue
		}
		if !isLowerHex(id[i]) {
			return fmt.Errorf("non-hex character %q at offset %d: %w", id[i], i, ErrInvalidIdentifier)
		}
	}
	return nil
}

// isLowerHex reports whether c is a lowercase hexadecimal digit. Canonical
// identifiers are lowercase; uppercase input is rejected rather than
// normalized so that Labels always satisfy the lowercase Label grammar.
func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
