package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

type Searcher struct {
	kind     Kind
	depth    int
	evaluate game.Evaluate
	relative bool
	passTurn bool
	cache    *transpositions
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithRelativeEvaluation scores positions from the searching player's point
// of view instead of always favouring PlayerA.
func WithRelativeEvaluation() Option {
	return func(s *Searcher) {
		s.relative = true
	}
}

// WithPassTurn lets a player without moves pass to the opponent inside the
// search. Without it such a position is scored as a leaf.
func WithPassTurn() Option {
	return func(s *Searcher) {
		s.passTurn = true
	}
}

func WithTranspositions(limit int) Option {
	return func(s *Searcher) {
		if limit > 0 {
			s.cache = newTranspositions(limit)
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(kind Kind, options ...Option) *Searcher {
	if _, err := ParseKind(string(kind)); err != nil {
		panic(err)
	}
	s := &Searcher{ // Default values
		kind:     kind,
		depth:    meta.MINIMAX_DEPTH,
		evaluate: game.EvaluateDiscs,
		metrics:  metrics.NewDummyCollector(),
	}
	if kind == AlphaBeta {
		s.depth = meta.ALPHA_BETA_DEPTH
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Kind() Kind {
	return s.kind
}

func (s *Searcher) Depth() int {
	return s.depth
}

func (s *Searcher) strategy(perspective game.Cell) Strategy {
	evaluate := s.evaluate
	if perspective != game.Empty {
		evaluate = game.Relative(evaluate, perspective)
	}
	return newStrategy(s.kind, tree{
		evaluate:    evaluate,
		perspective: perspective,
		passTurn:    s.passTurn,
		cache:       s.cache,
		metrics:     s.metrics,
	})
}

// Search scores b searched to depth plies with player to move.
func (s *Searcher) Search(b *game.Board, depth int, player game.Cell, maximizing bool) int {
	return s.strategy(game.Empty).Search(b, depth, player, maximizing)
}

// FindBestMove scores every legal move of player by searching the opponent's
// minimizing reply one ply down, and returns the first move with the highest
// score. The root always maximizes; with relative evaluation that means
// maximizing player's own advantage. Returns game.NoMove without searching
// when player has no legal move.
func (s *Searcher) FindBestMove(b *game.Board, player game.Cell) (game.Move, int, metrics.SearchMetric) {
	s.metrics.Start(string(s.kind), s.depth)

	perspective := game.Empty
	if s.relative {
		perspective = player
	}
	strategy := s.strategy(perspective)

	bestMove := game.NoMove
	bestValue := -Infinity
	opponent := game.Opponent(player)
	for _, move := range b.LegalMoves(player) {
		child := *b
		child.Apply(move.Row, move.Col, player)

		value := strategy.Search(&child, s.depth-1, opponent, false)
		if value > bestValue {
			bestValue = value
			bestMove = move
		}
	}

	metric := s.metrics.Complete()
	metric.Score = bestValue
	if s.cache != nil {
		log.Debug().Int("entries", s.cache.size()).Msg("transposition table")
	}
	return bestMove, bestValue, metric
}
