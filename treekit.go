package treekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/treekit/treekit/fracdex"
	"github.com/treekit/treekit/ltree"
	"github.com/treekit/treekit/uuid7"
)

// Position is everything the storage layer needs to place a node in the
// tree: its identifier, its materialized path, and its order key among its
// siblings. The planner only computes these values; accepting or rejecting
// them (via uniqueness constraints) is the storage layer's job.
type Position struct {
	// ID is the node's canonical identifier.
	ID string

	// Path is the node's materialized path, root segment included.
	Path string

	// OrderKey sorts the node among the children of its parent.
	OrderKey string
}

// Planner composes the identifier generator, path codec, and order-key
// generator into the operations a tree-backed store performs: insert a
// node, move a node, rewrite a moved subtree's paths, and seed keys for a
// bulk import.
//
// A Planner is stateless apart from configuration: it does not track tree
// shape, performs no I/O, and is safe for concurrent use. Callers must
// treat a storage uniqueness violation on (parent, order key) as a signal
// to re-read sibling bounds and plan again.
type Planner struct {
	ids     *uuid7.Generator
	keys    *fracdex.Generator
	paths   *ltree.Codec
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *otelMetrics
}

// New returns a Planner with the given options applied over defaults:
// root segment "root", 4-symbol key jitter, crypto/rand randomness,
// time.Now clock, slog.Default logging, no tracing, no metrics.
func New(opts ...Option) (*Planner, error) {
	cfg := plannerConfig{
		root:         ltree.DefaultRoot,
		jitterLength: fracdex.DefaultJitterLength,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return build(cfg)
}

// NewFromConfig returns a Planner configured from cfg, with any options
// applied on top.
func NewFromConfig(cfg Config, opts ...Option) (*Planner, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, newConfigurationError("NewFromConfig", err)
	}
	pc := plannerConfig{
		root:         cfg.Root,
		jitterLength: cfg.JitterLength,
	}
	if cfg.DisableJitter {
		pc.jitterLength = 0
	}
	for _, opt := range opts {
		opt(&pc)
	}
	return build(pc)
}

func build(cfg plannerConfig) (*Planner, error) {
	codec, err := ltree.NewCodec(ltree.WithRoot(cfg.root))
	if err != nil {
		return nil, newConfigurationError("New", err)
	}

	keyOpts := []fracdex.Option{fracdex.WithJitterLength(cfg.jitterLength)}
	var idOpts []uuid7.Option
	if cfg.rand != nil {
		keyOpts = append(keyOpts, fracdex.WithRand(cfg.rand))
		idOpts = append(idOpts, uuid7.WithRand(cfg.rand))
	}
	if cfg.clock != nil {
		idOpts = append(idOpts, uuid7.WithClock(cfg.clock))
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Planner{
		ids:    uuid7.NewGenerator(idOpts...),
		keys:   fracdex.NewGenerator(keyOpts...),
		paths:  codec,
		logger: logger,
		tracer: cfg.tracer,
	}

	if cfg.meter != nil {
		metrics, err := newOtelMetrics(cfg.meter.Meter(instrumentationName))
		if err != nil {
			return nil, newConfigurationError("New", err)
		}
		p.metrics = metrics
	}

	return p, nil
}

// Root returns the root segment used for generated paths.
func (p *Planner) Root() string {
	return p.paths.Root()
}

// PlanInsert computes the position of a brand-new node under parentPath,
// ordered between the sibling keys prevKey and nextKey (empty string for
// "no bound" on that side). A fresh identifier is generated; nothing is
// persisted.
func (p *Planner) PlanInsert(ctx context.Context, parentPath, prevKey, nextKey string) (Position, error) {
	const op = "Planner.PlanInsert"

	id, err := p.ids.New()
	if err != nil {
		return Position{}, newInternalError(op, err)
	}
	return p.plan(ctx, op, id, parentPath, prevKey, nextKey)
}

// PlanMove computes the new position of an existing node: same identifier,
// a path under newParentPath, and a fresh order key between prevKey and
// nextKey. Descendant paths are not touched here; pass them to Rebase.
func (p *Planner) PlanMove(ctx context.Context, id, newParentPath, prevKey, nextKey string) (Position, error) {
	const op = "Planner.PlanMove"

	if !uuid7.IsWellFormed(id) {
		return Position{}, newValidationError(op, fmt.Errorf("%q: %w", id, uuid7.ErrInvalidIdentifier))
	}
	if p.tracer != nil {
		var span trace.Span
		ctx, span = p.tracer.Start(ctx, "treekit.plan_move",
			trace.WithAttributes(attribute.String("treekit.node_id", id)))
		defer span.End()
	}
	return p.plan(ctx, op, id, newParentPath, prevKey, nextKey)
}

// plan is the shared tail of PlanInsert and PlanMove.
func (p *Planner) plan(ctx context.Context, op, id, parentPath, prevKey, nextKey string) (Position, error) {
	path, err := p.paths.AppendChild(parentPath, id)
	if err != nil {
		return Position{}, newValidationError(op, err)
	}
	key, err := p.keys.KeyBetween(prevKey, nextKey)
	if err != nil {
		return Position{}, keyError(op, err)
	}

	pos := Position{ID: id, Path: path, OrderKey: key}
	p.recordPosition(ctx, pos)
	p.logger.DebugContext(ctx, "planned position",
		"op", op,
		"path", pos.Path,
		"order_key", pos.OrderKey)
	return pos, nil
}

// PlanInitial computes n evenly spaced sibling positions under parentPath
// for bulk import, each with a fresh identifier.
func (p *Planner) PlanInitial(ctx context.Context, parentPath string, n int) ([]Position, error) {
	const op = "Planner.PlanInitial"

	if !ltree.IsValidPath(parentPath) {
		return nil, newValidationError(op, fmt.Errorf("parent path %q: %w", parentPath, ltree.ErrInvalidPath))
	}
	keys, err := p.keys.NKeysBetween(n)
	if err != nil {
		return nil, keyError(op, err)
	}

	positions := make([]Position, 0, n)
	for _, key := range keys {
		id, err := p.ids.New()
		if err != nil {
			return nil, newInternalError(op, err)
		}
		path, err := p.paths.AppendChild(parentPath, id)
		if err != nil {
			return nil, newValidationError(op, err)
		}
		pos := Position{ID: id, Path: path, OrderKey: key}
		p.recordPosition(ctx, pos)
		positions = append(positions, pos)
	}

	p.logger.DebugContext(ctx, "planned initial positions",
		"op", op,
		"parent", parentPath,
		"count", len(positions))
	return positions, nil
}

// Rebase rewrites descendant paths after an ancestor moved: every path in
// descendants that equals oldPath or lies below it has that prefix replaced
// with newPath. Paths outside the moved subtree are a validation error, so
// a caller that queried the subtree by prefix cannot silently corrupt an
// unrelated branch. The result is a new slice in input order.
func (p *Planner) Rebase(ctx context.Context, oldPath, newPath string, descendants []string) ([]string, error) {
	const op = "Planner.Rebase"

	if !ltree.IsValidPath(oldPath) {
		return nil, newValidationError(op, fmt.Errorf("old path %q: %w", oldPath, ltree.ErrInvalidPath))
	}
	if !ltree.IsValidPath(newPath) {
		return nil, newValidationError(op, fmt.Errorf("new path %q: %w", newPath, ltree.ErrInvalidPath))
	}

	if p.tracer != nil {
		var span trace.Span
		ctx, span = p.tracer.Start(ctx, "treekit.rebase",
			trace.WithAttributes(
				attribute.String("treekit.old_path", oldPath),
				attribute.String("treekit.new_path", newPath),
				attribute.Int("treekit.descendants", len(descendants)),
			))
		defer span.End()
	}

	rebased := make([]string, 0, len(descendants))
	for _, d := range descendants {
		switch {
		case d == oldPath:
			rebased = append(rebased, newPath)
		case ltree.IsAncestorOf(oldPath, d):
			rebased = append(rebased, newPath+d[len(oldPath):])
		default:
			return nil, newValidationError(op,
				fmt.Errorf("path %q is not under %q: %w", d, oldPath, ltree.ErrInvalidPath))
		}
	}

	p.recordRebase(ctx, len(rebased))
	p.logger.DebugContext(ctx, "rebased subtree",
		"op", op,
		"old", oldPath,
		"new", newPath,
		"paths", len(rebased))
	return rebased, nil
}

// keyError maps a fracdex error to the planner's kind taxonomy: bad bounds
// are the caller's fault, a failing random source is ours.
func keyError(op string, err error) *Error {
	if errors.Is(err, fracdex.ErrUnorderableKeys) || errors.Is(err, fracdex.ErrInvalidKey) {
		return newValidationError(op, err)
	}
	return newInternalError(op, err)
}
