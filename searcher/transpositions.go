package searcher

import (
	"othello/game"

	"github.com/rs/zerolog/log"
)

type cacheKey struct {
	hash        game.StateHash // board and side to move
	depth       int
	maximizing  bool
	perspective game.Cell
}

// transpositions caches exact node values. Bounds are never stored, so a hit
// can never change what a search returns.
type transpositions struct {
	table map[cacheKey]int
	limit int
}

func newTranspositions(limit int) *transpositions {
	return &transpositions{
		table: make(map[cacheKey]int),
		limit: limit,
	}
}

func (t *transpositions) lookup(k cacheKey) (int, bool) {
	v, ok := t.table[k]
	return v, ok
}

func (t *transpositions) store(k cacheKey, value int) {
	if len(t.table) >= t.limit {
		log.Debug().Int("entries", len(t.table)).Msg("transposition table full, clearing")
		clear(t.table)
	}
	t.table[k] = value
}

func (t *transpositions) size() int {
	return len(t.table)
}
