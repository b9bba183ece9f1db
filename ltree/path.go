package ltree

import (
	"fmt"
	"strings"
)

// DefaultRoot is the fixed leading segment of every path unless the codec
// is configured otherwise.
const DefaultRoot = "root"

// MaxSegmentLength is the longest segment the path grammar accepts,
// matching the ltree column type's limit.
const MaxSegmentLength = 256

// Codec builds and parses materialized paths under a fixed root segment.
// Codecs are immutable after construction and safe for concurrent use.
type Codec struct {
	root string
}

// Option configures a Codec.
type Option func(*Codec)

// WithRoot overrides the root segment. The segment must satisfy the path
// grammar; NewCodec fails otherwise.
func WithRoot(root string) Option {
	return func(c *Codec) {
		c.root = root
	}
}

// NewCodec returns a Codec rooted at DefaultRoot unless overridden.
func NewCodec(opts ...Option) (*Codec, error) {
	c := &Codec{root: DefaultRoot}
	for _, opt := range opts {
		opt(c)
	}
	if !validSegment(c.root) {
		return nil, fmt.Errorf("root segment %q: %w", c.root, ErrInvalidPath)
	}
	return c, nil
}

// Root returns the codec's root segment.
func (c *Codec) Root() string {
	return c.root
}

// BuildPath maps each identifier through ToLabel and joins the labels under
// the root segment. An empty chain yields the bare root.
func (c *Codec) BuildPath(ids []string) (string, error) {
	var b strings.Builder
	b.Grow(len(c.root) + len(ids)*(LabelLength+1))
	b.WriteString(c.root)
	for _, id := range ids {
		label, err := ToLabel(id)
		if err != nil {
			return "", err
		}
		b.WriteByte('.')
		b.WriteString(label)
	}
	return b.String(), nil
}

// ParsePath is the inverse of BuildPath: it splits the path, drops a
// leading root segment if present, and maps each remaining segment through
// FromLabel.
func (c *Codec) ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	segments := strings.Split(path, ".")
	if segments[0] == c.root {
		segments = segments[1:]
	}
	ids := make([]string, 0, len(segments))
	for _, seg := range segments {
		id, err := FromLabel(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", seg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AppendChild returns the path of a child of basePath with the given
// identifier.
func (c *Codec) AppendChild(basePath, id string) (string, error) {
	if !IsValidPath(basePath) {
		return "", fmt.Errorf("base path %q: %w", basePath, ErrInvalidPath)
	}
	label, err := ToLabel(id)
	if err != nil {
		return "", err
	}
	return basePath + "." + label, nil
}

// ParentPath returns the path with its last segment removed, or the root
// segment alone if the path has no separator.
func (c *Codec) ParentPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return c.root
}

// IsValidPath reports whether every dot-delimited segment of path is
// non-empty, at most MaxSegmentLength characters, and drawn from
// [A-Za-z0-9_]. The root segment is not special-cased; a bare root is a
// valid single-segment path.
func IsValidPath(path string) bool {
	if path == "" {
		return false
	}
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if !validSegment(path[start:i]) {
				return false
			}
			start = i + 1
			continue
		}
	}
	return true
}

// Depth returns the number of segments below the root: the bare root has
// depth 0, each appended label adds one.
func Depth(path string) int {
	return strings.Count(path, ".")
}

// IsAncestorOf reports whether descendant lies strictly below ancestor.
// The match is on whole segments: "root.abcd" is not an ancestor of
// "root.abc.def" even though it is a string prefix, and a path is never
// its own ancestor.
func IsAncestorOf(ancestor, descendant string) bool {
	return len(descendant) > len(ancestor)+1 &&
		descendant[len(ancestor)] == '.' &&
		descendant[:len(ancestor)] == ancestor
}

// validSegment checks a single path segment against the grammar.
func validSegment(seg string) bool {
	if len(seg) == 0 || len(seg) > MaxSegmentLength {
		return false
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}
