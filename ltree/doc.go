// Package ltree encodes node identifier chains as materialized tree paths.
//
// The target storage column is a path-indexable type (PostgreSQL ltree)
// whose segment grammar forbids hyphens and caps segment length. Canonical
// identifiers are 36-character hyphenated UUID strings and would be illegal
// segments, so the codec defines a Label: the identifier with its hyphens
// stripped, exactly 32 lowercase hex characters. The transform is lossless,
// not a hash; FromLabel(ToLabel(id)) == id for every canonical identifier.
//
// A Path is the fixed root segment (default "root") followed by the Labels
// of the node's ancestor chain, joined with '.':
//
//	root.9f36c41ae1f07b4e8a3cd0f25b6a1c44.0198f6d2a4c17c59b2e31f08d94a7e10
//
// Ancestry reduces to string prefix matching on segment boundaries, which
// is what makes subtree queries indexable: P is an ancestor of Q exactly
// when Q begins with P + ".".
//
// The codec recomputes paths on demand from identifier chains handed to it;
// it does not track tree shape. When a node moves, the caller re-runs the
// codec for the node and its descendants and persists the results.
package ltree
