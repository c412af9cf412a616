package engine

import (
	"errors"
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"time"

	"golang.org/x/exp/rand"
)

const Random = "random"

var ErrUnknownEvaluation = errors.New("unknown evaluation")

// NewAgent builds the agent described by config. The seed only matters for
// random agents.
func NewAgent(config metrics.AgentConfig, seed uint64) (Agent, error) {
	if config.Strategy == Random {
		return NewRandomAgent(seed), nil
	}
	kind, err := searcher.ParseKind(config.Strategy)
	if err != nil {
		return nil, err
	}
	evaluate, ok := game.EvaluationFn(config.Evaluation)
	if !ok {
		return nil, fmt.Errorf("%q: %w", config.Evaluation, ErrUnknownEvaluation)
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(),
	}
	if config.PassTurn {
		options = append(options, searcher.WithPassTurn())
	}
	if config.Relative {
		options = append(options, searcher.WithRelativeEvaluation())
	}
	if config.Transpositions > 0 {
		options = append(options, searcher.WithTranspositions(config.Transpositions))
	}
	return NewSearchAgent(searcher.New(kind, options...)), nil
}

type SearchAgent struct {
	Searcher *searcher.Searcher
}

func NewSearchAgent(s *searcher.Searcher) *SearchAgent {
	if s == nil {
		panic("searcher must not be nil")
	}
	return &SearchAgent{Searcher: s}
}

// FindMove never fails: the engine only asks when player has a legal move.
func (a *SearchAgent) FindMove(b *game.Board, player game.Cell) (game.Move, metrics.SearchMetric, error) {
	move, _, metric := a.Searcher.FindBestMove(b, player)
	return move, metric, nil
}

// RandomAgent plays a uniformly random legal move. Used as a baseline.
type RandomAgent struct {
	r *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{r: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(b *game.Board, player game.Cell) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{Strategy: Random}, nil
	}
	move := moves[a.r.Intn(len(moves))]
	return move, metrics.SearchMetric{Strategy: Random, Duration: time.Since(start)}, nil
}
