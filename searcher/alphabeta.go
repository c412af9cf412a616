package searcher

import "othello/game"

/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
*/

type alphaBetaTree struct {
	tree
}

func (a *alphaBetaTree) Search(b *game.Board, depth int, player game.Cell, maximizing bool) int {
	return a.alphaBeta(b, depth, player, -Infinity, Infinity, maximizing)
}

// alphaBeta fails soft: a result at or below alpha is an upper bound, at or
// above beta a lower bound, and exact in between. Only exact results are
// cached.
func (a *alphaBetaTree) alphaBeta(b *game.Board, depth int, player game.Cell, alpha, beta int, maximizing bool) int {
	a.metrics.AddNode()
	if depth == 0 {
		return a.leaf(b)
	}
	k, v, ok := a.lookup(b, depth, player, maximizing)
	if ok {
		return v
	}
	alpha0, beta0 := alpha, beta

	opponent := game.Opponent(player)
	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		if a.passTurn && b.HasMoves(opponent) {
			v = a.alphaBeta(b, depth-1, opponent, alpha, beta, !maximizing)
		} else {
			v = a.leaf(b)
		}
		if alpha0 < v && v < beta0 {
			a.store(k, v)
		}
		return v
	}

	var best int
	if maximizing {
		best = -Infinity
		for i, move := range moves {
			child := *b
			child.Apply(move.Row, move.Col, player)

			best = max(best, a.alphaBeta(&child, depth-1, opponent, alpha, beta, false))
			alpha = max(alpha, best)
			if alpha >= beta {
				if i < len(moves)-1 {
					a.metrics.AddCutoff()
				}
				break
			}
		}
	} else {
		best = Infinity
		for i, move := range moves {
			child := *b
			child.Apply(move.Row, move.Col, player)

			best = min(best, a.alphaBeta(&child, depth-1, opponent, alpha, beta, true))
			beta = min(beta, best)
			if alpha >= beta {
				if i < len(moves)-1 {
					a.metrics.AddCutoff()
				}
				break
			}
		}
	}

	if alpha0 < best && best < beta0 {
		a.store(k, best)
	}
	return best
}
