package experiments

import (
	"context"
	"fmt"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const NumGames = 10 // Per match up

type Experiment struct {
	Name      string                  `json:"name"`
	Configs   []metrics.AgentConfig   `json:"configs"`
	MatchUps  [][]metrics.AgentConfig `json:"match_ups"`
	Games     int                     `json:"games"`      // Per match up
	Alternate bool                    `json:"alternate"`  // Swap colours every other game
	Seed      uint64                  `json:"seed"`       // Base seed of random agents
	OutputDir string                  `json:"output_dir"` // Empty skips writing records
}

// Summary aggregates the games of one match up. Wins are counted per agent
// regardless of the colour it played.
type Summary struct {
	Agent1   int
	Agent2   int
	Games    int
	Wins1    int
	Wins2    int
	Draws    int // Equal disc counts, scored as a PlayerB win in the game record
	AvgNodes float64
	AvgMoves float64
}

type Result struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []Summary
	Dir       string
}

func PruningExperiment(depth int) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Strategy: "minimax", Depth: depth},
		{ID: 2, Strategy: "alphabeta", Depth: depth},
		{ID: 3, Strategy: "alphabeta", Depth: depth, Transpositions: meta.CACHE_LIMIT},
	}
	// Same config for both players so both sides search identical trees
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) []metrics.AgentConfig {
		return []metrics.AgentConfig{c, c}
	})
	return Experiment{Name: "pruning", Configs: configs, MatchUps: matchUps, Games: 1}
}

func StrengthExperiment(depth int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Strategy: engine.Random}
	configs := []metrics.AgentConfig{
		{ID: 1, Strategy: "alphabeta", Depth: depth},
		{ID: 2, Strategy: "alphabeta", Depth: depth, Evaluation: "positional"},
		{ID: 3, Strategy: "alphabeta", Depth: depth, PassTurn: true, Relative: true},
	}
	// Each matchup pairs a search agent against the random baseline
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) []metrics.AgentConfig {
		return []metrics.AgentConfig{baseline, c}
	})
	return Experiment{
		Name:      "strength",
		Configs:   append(configs, baseline),
		MatchUps:  matchUps,
		Games:     NumGames,
		Alternate: true,
	}
}

// Preset returns a predefined experiment by name.
func Preset(name string, depth int) (Experiment, bool) {
	switch name {
	case "pruning":
		return PruningExperiment(depth), true
	case "strength":
		return StrengthExperiment(depth), true
	default:
		return Experiment{}, false
	}
}

type job struct {
	id      int
	matchUp int
	agent1  metrics.AgentConfig // Plays PlayerA
	agent2  metrics.AgentConfig
	swapped bool
}

// Run plays every match up concurrently and, when OutputDir is set, stores
// the configs, game and move records under OutputDir/Name/<timestamp>.
func Run(ctx context.Context, exp Experiment) (Result, error) {
	if exp.Games <= 0 {
		exp.Games = NumGames
	}
	for _, matchUp := range exp.MatchUps {
		if len(matchUp) != 2 {
			return Result{}, fmt.Errorf("match up needs two agents, got %d", len(matchUp))
		}
		for _, config := range matchUp {
			if _, err := engine.NewAgent(config, 0); err != nil {
				return Result{}, fmt.Errorf("agent %d: %w", config.ID, err)
			}
		}
	}

	jobs := []job{}
	for mi, matchUp := range exp.MatchUps {
		for i := 0; i < exp.Games; i++ {
			j := job{id: len(jobs) + 1, matchUp: mi, agent1: matchUp[0], agent2: matchUp[1]}
			if exp.Alternate && i%2 == 1 {
				j.agent1, j.agent2 = j.agent2, j.agent1
				j.swapped = true
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(jobs))

	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(meta.GO_ROUTINES)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			gameMetric, moveMetrics, err := runGame(ctx, j, exp.Seed)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			gameRecords[i] = metrics.GameRecord{
				ID:         j.id,
				Agent1:     j.agent1.ID,
				Agent2:     j.agent2.ID,
				GameMetric: gameMetric,
			}
			moveRecords[i] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: j.id, MoveMetric: mm}
			})
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s",
				j.matchUp+1, len(exp.MatchUps), j.id, game.Cell(gameMetric.Winner))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	result := Result{
		Games:     gameRecords,
		Moves:     lo.Flatten(moveRecords),
		Summaries: summarize(exp, jobs, gameRecords, moveRecords),
	}
	if exp.OutputDir == "" {
		return result, nil
	}

	dir, err := store(exp, result)
	if err != nil {
		return Result{}, err
	}
	result.Dir = dir
	return result, nil
}

func runGame(ctx context.Context, j job, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := engine.NewAgent(j.agent1, seed+uint64(2*j.id))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	agent2, err := engine.NewAgent(j.agent2, seed+uint64(2*j.id+1))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine([]engine.Agent{agent1, agent2})
	return e.Run(ctx)
}

func summarize(exp Experiment, jobs []job, games []metrics.GameRecord, moves [][]metrics.MoveRecord) []Summary {
	byMatchUp := lo.GroupBy(lo.Range(len(jobs)), func(i int) int {
		return jobs[i].matchUp
	})

	summaries := make([]Summary, len(exp.MatchUps))
	for mi, matchUp := range exp.MatchUps {
		indexes := byMatchUp[mi]
		s := Summary{Agent1: matchUp[0].ID, Agent2: matchUp[1].ID, Games: len(indexes)}
		for _, i := range indexes {
			record := games[i]
			if record.DiscsA == record.DiscsB {
				s.Draws++
				continue
			}
			// The first agent of the match up plays PlayerA unless swapped
			if (record.Winner == int(game.PlayerA)) != jobs[i].swapped {
				s.Wins1++
			} else {
				s.Wins2++
			}
		}
		nodes := lo.SumBy(indexes, func(i int) int {
			return lo.SumBy(moves[i], func(m metrics.MoveRecord) int { return m.Nodes })
		})
		total := lo.SumBy(indexes, func(i int) int { return games[i].TotalMoves })
		if total > 0 {
			s.AvgNodes = float64(nodes) / float64(total)
		}
		if s.Games > 0 {
			s.AvgMoves = float64(total) / float64(s.Games)
		}
		summaries[mi] = s
	}
	return summaries
}

func store(exp Experiment, result Result) (string, error) {
	writer, err := metrics.NewWriter(exp.OutputDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	// Store experiment metadata
	if err := writer.WriteSetup(exp); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
