package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"othello/aco"
	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/meta"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	log.Debug().Msgf("loaded config: %v", cfg.SanitizedSettings())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cfg.GetString(config.ConfigMode) {
	case config.ModeSelfPlay:
		err = runSelfPlay(ctx, cfg)
	case config.ModeInteractive:
		err = runInteractive(ctx, cfg)
	case config.ModeExperiment:
		err = runExperiment(ctx, cfg)
	case config.ModeACO:
		err = runACO(ctx, cfg)
	}
	if errors.Is(err, engine.ErrQuit) {
		fmt.Println("Bye!")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func printMove(u engine.Update, b *game.Board) {
	fmt.Printf("Player %s plays %d %d (%d flipped)\n%s\n", u.Player, u.Move.Row, u.Move.Col, u.Flipped, b)
}

func printResult(b *game.Board) {
	a, o := b.Count(game.PlayerA), b.Count(game.PlayerB)
	if a == o {
		fmt.Printf("Draw %d-%d, scored for %s\n", a, o, game.Winner(b))
		return
	}
	fmt.Printf("%s: %d, %s: %d. Winner: %s\n", game.PlayerA, a, game.PlayerB, o, game.Winner(b))
}

func runSelfPlay(ctx context.Context, cfg *config.Config) error {
	seed := cfg.GetUint64(config.ConfigSeed)
	agentA, err := engine.NewAgent(cfg.AgentConfig(1, cfg.Strategy()), seed)
	if err != nil {
		return err
	}
	agentB, err := engine.NewAgent(cfg.AgentConfig(2, cfg.Opponent()), seed+1)
	if err != nil {
		return err
	}

	e := engine.LocalEngine([]engine.Agent{agentA, agentB}, engine.WithObserver(printMove))
	fmt.Println(&e.Board)

	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}
	nodes := 0
	for _, m := range moveMetrics {
		nodes += m.Nodes
	}
	log.Info().Msgf("%d moves, %d passes, %d nodes searched in %v",
		gameMetric.TotalMoves, gameMetric.Passes, nodes, gameMetric.Duration)
	printResult(&e.Board)
	return nil
}

func runInteractive(ctx context.Context, cfg *config.Config) error {
	human, closer, err := engine.NewTerminalAgent()
	if err != nil {
		return err
	}
	defer closer.Close()

	ai, err := engine.NewAgent(cfg.AgentConfig(2, cfg.Strategy()), cfg.GetUint64(config.ConfigSeed))
	if err != nil {
		return err
	}

	fmt.Printf("You play %s and move first. Enter moves as \"row col\", \"quit\" to stop.\n", game.PlayerA)
	e := engine.LocalEngine([]engine.Agent{human, ai}, engine.WithObserver(printMove))
	fmt.Println(&e.Board)

	if _, _, err := e.Run(ctx); err != nil {
		return err
	}
	printResult(&e.Board)
	return nil
}

func runExperiment(ctx context.Context, cfg *config.Config) error {
	name := cfg.GetString(config.ConfigExperiment)
	depth := cfg.GetInt(config.ConfigDepth)
	if depth == 0 {
		depth = meta.ALPHA_BETA_DEPTH
	}
	exp, ok := experiments.Preset(name, depth)
	if !ok {
		return fmt.Errorf("unknown experiment %q", name)
	}
	if games := cfg.GetInt(config.ConfigGames); games > 0 {
		exp.Games = games
	}
	exp.OutputDir = cfg.GetString(config.ConfigOutputDir)
	exp.Seed = cfg.GetUint64(config.ConfigSeed)

	result, err := experiments.Run(ctx, exp)
	if err != nil {
		return err
	}
	for _, s := range result.Summaries {
		fmt.Printf("agent %d vs agent %d: %d games, %d-%d (%d draws), %.1f moves, %.0f nodes per move\n",
			s.Agent1, s.Agent2, s.Games, s.Wins1, s.Wins2, s.Draws, s.AvgMoves, s.AvgNodes)
	}
	fmt.Printf("Records stored in %s\n", result.Dir)
	return nil
}

func runACO(ctx context.Context, cfg *config.Config) error {
	colony, err := aco.NewColony(aco.DefaultProblem(),
		aco.WithIterations(cfg.GetInt(config.ConfigACOIterations)),
		aco.WithSeed(cfg.GetUint64(config.ConfigACOSeed)))
	if err != nil {
		return err
	}

	solution, err := colony.Solve(ctx)
	if err != nil {
		return err
	}
	for k, route := range solution.Routes {
		fmt.Printf("Vehicle %d path: %d %s %d\nTotal travel time: %g\n",
			k+1, aco.Depot, strings.Trim(fmt.Sprint(route), "[]"), aco.Depot, solution.Times[k])
	}
	if len(solution.Unserved) > 0 {
		fmt.Printf("Unserved customers: %v\n", solution.Unserved)
	}
	fmt.Printf("Vehicles used: %d, total time: %g\n", solution.Vehicles(), solution.Total)
	return nil
}
