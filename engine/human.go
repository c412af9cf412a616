package engine

import (
	"errors"
	"fmt"
	"io"
	"othello/experiments/metrics"
	"othello/game"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/samber/lo"
)

var ErrQuit = errors.New("player quit")

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

type HumanAgent struct {
	in  LineReader
	out io.Writer
}

func NewHumanAgent(in LineReader, out io.Writer) *HumanAgent {
	return &HumanAgent{in: in, out: out}
}

// NewTerminalAgent reads moves from the terminal. The returned closer
// restores the terminal and must be called when the game ends.
func NewTerminalAgent() (*HumanAgent, io.Closer, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mmove (row col)>\033[0m ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, nil, err
	}
	return NewHumanAgent(l, l.Stdout()), l, nil
}

// FindMove keeps prompting until a legal move is entered. EOF, an interrupt
// or "quit" returns ErrQuit.
func (h *HumanAgent) FindMove(b *game.Board, player game.Cell) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	legal := b.LegalMoves(player)
	for {
		line, err := h.in.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return game.NoMove, metrics.SearchMetric{}, ErrQuit
		} else if err != nil {
			return game.NoMove, metrics.SearchMetric{}, err
		}

		line = strings.TrimSpace(line)
		if line == "quit" || line == "exit" {
			return game.NoMove, metrics.SearchMetric{}, ErrQuit
		}

		move, err := parseMove(line)
		if err != nil {
			fmt.Fprintf(h.out, "%v, enter a move as \"row col\"\n", err)
			continue
		}
		if !lo.Contains(legal, move) {
			fmt.Fprintf(h.out, "Invalid move %d %d, legal moves: %v\n", move.Row, move.Col, legal)
			continue
		}
		return move, metrics.SearchMetric{Strategy: "human", Duration: time.Since(start)}, nil
	}
}

func parseMove(s string) (game.Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return game.NoMove, fmt.Errorf("cannot parse %q", s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.NoMove, fmt.Errorf("cannot parse row %q", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.NoMove, fmt.Errorf("cannot parse column %q", fields[1])
	}
	return game.Move{Row: row, Col: col}, nil
}
