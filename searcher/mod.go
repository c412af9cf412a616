package searcher

import (
	"errors"
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

// Infinity bounds every score; no evaluation gets near it.
const Infinity = meta.INFINITY

var ErrUnknownStrategy = errors.New("unknown search strategy")

type Kind string

const (
	Minimax   Kind = "minimax"
	AlphaBeta Kind = "alphabeta"
)

func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case Minimax, AlphaBeta:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

// Strategy scores a position searched to depth plies with player to move.
// Both variants return the same value for the same arguments; alpha-beta only
// visits fewer nodes.
type Strategy interface {
	Search(b *game.Board, depth int, player game.Cell, maximizing bool) int
}

// tree holds what both strategies share: how leaves are scored, how a player
// without moves is handled, and the optional cache and metrics.
type tree struct {
	evaluate    game.Evaluate
	perspective game.Cell
	passTurn    bool
	cache       *transpositions
	metrics     metrics.Collector
}

func newStrategy(kind Kind, t tree) Strategy {
	switch kind {
	case Minimax:
		return &minimaxTree{tree: t}
	case AlphaBeta:
		return &alphaBetaTree{tree: t}
	default:
		panic(fmt.Sprintf("unexpected strategy %q", kind))
	}
}

func (t *tree) leaf(b *game.Board) int {
	t.metrics.AddLeaf()
	return t.evaluate(b)
}

func (t *tree) key(b *game.Board, depth int, player game.Cell, maximizing bool) cacheKey {
	return cacheKey{
		hash:        b.Hash(player),
		depth:       depth,
		maximizing:  maximizing,
		perspective: t.perspective,
	}
}

// lookup returns a cached exact value for the node, if any.
func (t *tree) lookup(b *game.Board, depth int, player game.Cell, maximizing bool) (cacheKey, int, bool) {
	if t.cache == nil {
		return cacheKey{}, 0, false
	}
	k := t.key(b, depth, player, maximizing)
	v, ok := t.cache.lookup(k)
	if ok {
		t.metrics.AddCacheHit()
	}
	return k, v, ok
}

func (t *tree) store(k cacheKey, value int) {
	if t.cache != nil {
		t.cache.store(k, value)
	}
}
