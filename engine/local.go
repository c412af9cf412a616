package engine

import (
	"context"
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

type Engine struct {
	Board   game.Board
	Current game.Cell
	Agents  []Agent // indexed by player ID - 1

	history  []Update
	observer Observer
	maxMoves int
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func WithMaxMoves(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

// WithPosition starts the game from b with player to move instead of the
// standard opening.
func WithPosition(b game.Board, player game.Cell) Option {
	return func(e *Engine) {
		if player == game.PlayerA || player == game.PlayerB {
			e.Board = b
			e.Current = player
		}
	}
}

// LocalEngine sets up a game between agents[0] playing PlayerA and agents[1]
// playing PlayerB.
func LocalEngine(agents []Agent, options ...Option) *Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	for _, a := range agents {
		if a == nil {
			panic("agent must not be nil")
		}
	}

	e := &Engine{ // Default values
		Board:    game.NewBoard(),
		Current:  game.PlayerA,
		Agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) History() []Update {
	return e.history
}

// Run plays until neither player can move or the move limit is reached. A
// player without legal moves passes. Cancelling ctx stops the game between
// moves.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.Current),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", e.Current)

	for len(e.history) < e.maxMoves {
		if err := ctx.Err(); err != nil {
			return gameMetric, moveMetrics, err
		}

		player := e.Current
		opponent := game.Opponent(player)
		if !e.Board.HasMoves(player) {
			if !e.Board.HasMoves(opponent) {
				break
			}
			log.Info().Msgf("player %s has no legal moves and passes", player)
			gameMetric.Passes++
			e.Current = opponent
			continue
		}

		move, searchMetric, err := e.Agents[player-1].FindMove(&e.Board, player)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s: %w", player, err)
		}
		if !e.Board.IsLegal(move.Row, move.Col, player) {
			fallback := e.Board.LegalMoves(player)[0]
			log.Warn().Msgf("player %s returned invalid move %v, forcing %v", player, move, fallback)
			move = fallback
		}

		flipped := e.Board.Apply(move.Row, move.Col, player)
		u := Update{
			Step:    len(e.history) + 1,
			Player:  player,
			Move:    move,
			Flipped: flipped,
			Hash:    e.Board.Hash(opponent),
		}
		e.history = append(e.history, u)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         u.Step,
			Player:       int(player),
			Row:          move.Row,
			Col:          move.Col,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: player %s plays %v flipping %d", u.Step, player, move, flipped)

		if e.observer != nil {
			e.observer(u, &e.Board)
		}
		e.Current = opponent
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(e.history)
	gameMetric.DiscsA = e.Board.Count(game.PlayerA)
	gameMetric.DiscsB = e.Board.Count(game.PlayerB)
	gameMetric.Winner = int(game.Winner(&e.Board))

	log.Info().Msgf("game over after %d moves: %s %d, %s %d, winner %s",
		gameMetric.TotalMoves, game.PlayerA, gameMetric.DiscsA, game.PlayerB, gameMetric.DiscsB, game.Winner(&e.Board))
	return gameMetric, moveMetrics, nil
}
