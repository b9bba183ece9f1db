// Package treekit computes tree positions for ordered, nested documents:
// pages, sub-pages, and content blocks that clients insert, move, and
// reorder without renumbering their siblings.
//
// # Core Concepts
//
// A node's position in the tree is three values, all strings, all produced
// here and all persisted by an external storage layer:
//
//   - Identifier: a time-ordered unique ID (UUIDv7), the node's primary key
//   - Path: a materialized, dot-delimited encoding of the ancestor chain,
//     indexable for subtree queries by prefix
//   - Order Key: a fractional-index string that sorts the node among its
//     siblings under plain byte comparison
//
// Each value has its own package — uuid7, ltree, and fracdex — and each
// package is a library of pure, stateless functions: no storage, no
// locking, no network, safe for unsynchronized concurrent use.
//
// # Architecture
//
// The Planner in this package composes the three generators into the
// operations a tree-backed store actually performs:
//
//	planner, err := treekit.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Insert a new page at the end of the root's children.
//	pos, err := planner.PlanInsert(ctx, planner.Root(), lastSiblingKey, "")
//
//	// Move it under another page, between two existing siblings.
//	moved, err := planner.PlanMove(ctx, pos.ID, otherPath, prevKey, nextKey)
//
//	// Rewrite its descendants' paths in the same transaction.
//	paths, err := planner.Rebase(ctx, pos.Path, moved.Path, descendantPaths)
//
// The planner never writes anywhere. The storage layer owns the accept or
// reject decision through a uniqueness constraint on (parent, order key);
// on a violation the caller re-reads the current sibling bounds and plans
// again. Order-key jitter makes such collisions rare, not impossible.
//
// # Concurrency
//
// Every operation is synchronous, allocation-light, and free of shared
// mutable state. Randomness and the clock are injected capabilities
// (WithRand, WithClock), so tests can pin them; production code uses
// crypto/rand and time.Now.
//
// # Observability
//
// Logging goes through log/slog (WithLogger). OpenTelemetry is optional:
// WithTracer adds spans around move and rebase planning, WithMeterProvider
// records a key-length histogram and position counters. Key length growth
// is the signal that writers keep splitting the same gap and a sibling
// group is due for rebalancing.
package treekit
