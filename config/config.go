package config

import (
	"errors"
	"flag"
	"fmt"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	ConfigMode           = "mode"
	ConfigStrategy       = "strategy"
	ConfigDepth          = "depth"
	ConfigEvaluation     = "evaluation"
	ConfigPassTurn       = "pass-turn"
	ConfigRelative       = "relative"
	ConfigTranspositions = "transpositions"
	ConfigOpponent       = "opponent"
	ConfigDebug          = "debug"
	ConfigExperiment     = "experiment"
	ConfigGames          = "games"
	ConfigOutputDir      = "output-dir"
	ConfigSeed           = "seed"
	ConfigACOIterations  = "aco.iterations"
	ConfigACOSeed        = "aco.seed"
)

const (
	ModeSelfPlay    = "selfplay"
	ModeInteractive = "interactive"
	ModeExperiment  = "experiment"
	ModeACO         = "aco"
)

var modes = []string{ModeSelfPlay, ModeInteractive, ModeExperiment, ModeACO}

// Config layers defaults, an optional othello.yaml, OTHELLO_ environment
// variables and command line flags, in increasing order of precedence.
type Config struct {
	*viper.Viper
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	c.SetDefault(ConfigMode, ModeSelfPlay)
	c.SetDefault(ConfigStrategy, "")
	c.SetDefault(ConfigDepth, 0)
	c.SetDefault(ConfigEvaluation, "discs")
	c.SetDefault(ConfigPassTurn, false)
	c.SetDefault(ConfigRelative, false)
	c.SetDefault(ConfigTranspositions, 0)
	c.SetDefault(ConfigOpponent, "")
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigExperiment, "pruning")
	c.SetDefault(ConfigGames, 0)
	c.SetDefault(ConfigOutputDir, "experiments")
	c.SetDefault(ConfigSeed, 1)
	c.SetDefault(ConfigACOIterations, 2000)
	c.SetDefault(ConfigACOSeed, 1)

	c.SetEnvPrefix("othello")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	fs := flag.NewFlagSet("othello", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.String(ConfigMode, ModeSelfPlay, "selfplay, interactive, experiment or aco")
	fs.String(ConfigStrategy, "", "minimax or alphabeta (default depends on the mode)")
	fs.Int(ConfigDepth, 0, "search depth in plies (default depends on the strategy)")
	fs.String(ConfigEvaluation, "discs", "discs or positional")
	fs.Bool(ConfigPassTurn, false, "let a player without moves pass inside the search")
	fs.Bool(ConfigRelative, false, "score positions from the side to move")
	fs.Int(ConfigTranspositions, 0, "transposition table size, 0 disables it")
	fs.String(ConfigOpponent, "", "strategy of PlayerB in self play (default same as PlayerA)")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigExperiment, "pruning", "experiment to run: pruning or strength")
	fs.Int(ConfigGames, 0, "games per match up (0 keeps the experiment default)")
	fs.String(ConfigOutputDir, "experiments", "directory for experiment records")
	fs.Uint64(ConfigSeed, 1, "seed of random agents")
	fs.Int(ConfigACOIterations, 2000, "ant colony iterations")
	fs.Uint64(ConfigACOSeed, 1, "ant colony seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath != "" {
		c.SetConfigFile(*configPath)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", *configPath, err)
		}
	} else {
		c.SetConfigName("othello")
		c.SetConfigType("yaml")
		c.AddConfigPath(".")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	// Only flags given explicitly override the lower layers
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "config" {
			c.Set(f.Name, f.Value.String())
		}
	})
	return nil
}

// Strategy resolves the strategy of PlayerA: minimax for self play,
// alpha-beta when playing against a human.
func (c *Config) Strategy() string {
	if s := c.GetString(ConfigStrategy); s != "" {
		return s
	}
	if c.GetString(ConfigMode) == ModeInteractive {
		return string(searcher.AlphaBeta)
	}
	return string(searcher.Minimax)
}

func (c *Config) Opponent() string {
	if s := c.GetString(ConfigOpponent); s != "" {
		return s
	}
	return c.Strategy()
}

// AgentConfig describes an agent with the configured search settings.
func (c *Config) AgentConfig(id int, strategy string) metrics.AgentConfig {
	depth := c.GetInt(ConfigDepth)
	if depth == 0 {
		depth = meta.MINIMAX_DEPTH
		if strategy == string(searcher.AlphaBeta) {
			depth = meta.ALPHA_BETA_DEPTH
		}
	}
	return metrics.AgentConfig{
		ID:             id,
		Strategy:       strategy,
		Depth:          depth,
		Evaluation:     c.GetString(ConfigEvaluation),
		PassTurn:       c.GetBool(ConfigPassTurn),
		Relative:       c.GetBool(ConfigRelative),
		Transpositions: c.GetInt(ConfigTranspositions),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error

	mode := c.GetString(ConfigMode)
	if !lo.Contains(modes, mode) {
		errs = multierror.Append(errs, fmt.Errorf("mode %q is not one of %v", mode, modes))
	}
	if _, err := searcher.ParseKind(c.Strategy()); err != nil {
		errs = multierror.Append(errs, err)
	}
	if opponent := c.GetString(ConfigOpponent); opponent != "" && opponent != engine.Random {
		if _, err := searcher.ParseKind(opponent); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("opponent: %w", err))
		}
	}
	if depth := c.GetInt(ConfigDepth); depth < 0 || depth > meta.MAX_MOVES {
		errs = multierror.Append(errs, fmt.Errorf("depth %d out of range [0, %d]", depth, meta.MAX_MOVES))
	}
	if _, ok := game.EvaluationFn(c.GetString(ConfigEvaluation)); !ok {
		errs = multierror.Append(errs, fmt.Errorf("%q: %w", c.GetString(ConfigEvaluation), engine.ErrUnknownEvaluation))
	}
	if c.GetInt(ConfigTranspositions) < 0 {
		errs = multierror.Append(errs, errors.New("transpositions must not be negative"))
	}
	if c.GetInt(ConfigGames) < 0 {
		errs = multierror.Append(errs, errors.New("games must not be negative"))
	}
	if c.GetInt(ConfigACOIterations) < 1 {
		errs = multierror.Append(errs, errors.New("aco iterations must be positive"))
	}
	return errs
}

// SanitizedSettings lists the effective settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
