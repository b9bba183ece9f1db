package uuid7

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constReader yields the same byte forever.
type constReader byte

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

const testMillis = int64(0x0198f6d2a4c1)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestNewDeterministicLayout(t *testing.T) {
	tests := []struct {
		name string
		fill byte
		want string
	}{
		{
			name: "zero tail",
			fill: 0x00,
			want: "0198f6d2-a4c1-7000-8000-000000000000",
		},
		{
			name: "max tail keeps markers",
			fill: 0xff,
			want: "0198f6d2-a4c1-7fff-bfff-ffffffffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(
				WithRand(constReader(tt.fill)),
				WithClock(fixedClock(testMillis)),
			)
			got, err := gen.New()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsWellFormed(got))
			assert.True(t, HasVersionMarker(got))
		})
	}
}

func TestNewUniqueAndWellFormed(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := gen.New()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate identifier %q", id)
		seen[id] = true

		assert.True(t, IsWellFormed(id), "id %q", id)
		assert.True(t, HasVersionMarker(id), "id %q", id)
		assert.Contains(t, "89ab", string(id[19]), "variant character of %q", id)
	}
}

func TestExtractTimestamp(t *testing.T) {
	gen := NewGenerator(WithClock(fixedClock(testMillis)))

	id, err := gen.New()
	require.NoError(t, err)

	ts, err := ExtractTimestamp(id)
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(testMillis).UTC(), ts)
}

func TestExtractTimestampMalformed(t *testing.T) {
	malformed := []string{
		"",
		"0198f6d2a4c17000800000000000000000ab",
		"0198f6d2-a4c1-7000-8000-00000000000",
		"0198F6D2-A4C1-7000-8000-000000000000",
		"0198f6d2-a4c1-7000-8000-00000000000g",
		"not an identifier at all, wrong shape",
	}
	for _, id := range malformed {
		_, err := ExtractTimestamp(id)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ExtractTimestamp(%q) error = %v, want %v", id, err, ErrInvalidIdentifier)
		}
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "canonical v7", id: "0198f6d2-a4c1-7c59-b2e3-1f08d94a7e10", want: true},
		{name: "canonical v1 shape", id: "123e4567-e89b-12d3-a456-426614174000", want: true},
		{name: "all zeros", id: "00000000-0000-0000-0000-000000000000", want: true},
		{name: "uppercase rejected", id: "0198F6D2-A4C1-7C59-B2E3-1F08D94A7E10", want: false},
		{name: "too short", id: "0198f6d2-a4c1-7c59-b2e3", want: false},
		{name: "hyphens misplaced", id: "0198f6d2a-4c1-7c59-b2e3-1f08d94a7e10", want: false},
		{name: "braces form rejected", id: "{0198f6d2-a4c1-7c59-b2e3-1f08d94a7e}", want: false},
		{name: "label form rejected", id: "0198f6d2a4c17c59b2e31f08d94a7e10", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWellFormed(tt.id); got != tt.want {
				t.Errorf("IsWellFormed(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestHasVersionMarker(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "version 7", id: "0198f6d2-a4c1-7c59-b2e3-1f08d94a7e10", want: true},
		{name: "version 1", id: "123e4567-e89b-12d3-a456-426614174000", want: false},
		{name: "version 4", id: "9f36c41a-e1f0-4b4e-8a3c-d0f25b6a1c44", want: false},
		{name: "malformed", id: "garbage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasVersionMarker(tt.id); got != tt.want {
				t.Errorf("HasVersionMarker(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestCompareByTimestamp(t *testing.T) {
	earlier := NewGenerator(WithClock(fixedClock(testMillis)))
	later := NewGenerator(WithClock(fixedClock(testMillis + 1)))

	a, err := earlier.New()
	require.NoError(t, err)
	b, err := later.New()
	require.NoError(t, err)

	got, err := CompareByTimestamp(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = CompareByTimestamp(b, a)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = CompareByTimestamp(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCompareByTimestampIgnoresRandomTail(t *testing.T) {
	// Same millisecond, opposite extremes of the random tail: the strings
	// disagree but the timestamps are equal.
	low := NewGenerator(WithRand(constReader(0x00)), WithClock(fixedClock(testMillis)))
	high := NewGenerator(WithRand(constReader(0xff)), WithClock(fixedClock(testMillis)))

	a, err := low.New()
	require.NoError(t, err)
	b, err := high.New()
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	assert.True(t, strings.Compare(a, b) != 0)

	got, err := CompareByTimestamp(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, got, "same-millisecond identifiers compare equal by timestamp")
}

func TestCompareByTimestampMalformed(t *testing.T) {
	good := "0198f6d2-a4c1-7c59-b2e3-1f08d94a7e10"

	_, err := CompareByTimestamp("bad", good)
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = CompareByTimestamp(good, "bad")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func BenchmarkNew(b *testing.B) {
	gen := NewGenerator()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := gen.New(); err != nil {
			b.Fatal(err)
		}
	}
}
