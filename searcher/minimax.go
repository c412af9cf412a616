package searcher

import "othello/game"

type minimaxTree struct {
	tree
}

func (m *minimaxTree) Search(b *game.Board, depth int, player game.Cell, maximizing bool) int {
	m.metrics.AddNode()
	if depth == 0 {
		return m.leaf(b)
	}
	k, v, ok := m.lookup(b, depth, player, maximizing)
	if ok {
		return v
	}

	opponent := game.Opponent(player)
	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		if m.passTurn && b.HasMoves(opponent) {
			v = m.Search(b, depth-1, opponent, !maximizing)
		} else {
			v = m.leaf(b)
		}
		m.store(k, v)
		return v
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, move := range moves {
		child := *b
		child.Apply(move.Row, move.Col, player)

		value := m.Search(&child, depth-1, opponent, !maximizing)
		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	m.store(k, best)
	return best
}
