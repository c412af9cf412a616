package engine

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

const MaxMoves = meta.MAX_MOVES

type Agent interface {
	// FindMove returns the move to play for player and the metrics (if collected) of the search behind it
	FindMove(b *game.Board, player game.Cell) (game.Move, metrics.SearchMetric, error)
}

type Update struct {
	Step    int
	Player  game.Cell
	Move    game.Move
	Flipped int
	Hash    game.StateHash
}

// Observer is called after every placement with the board as it stands.
type Observer func(u Update, b *game.Board)
