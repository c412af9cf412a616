package searcher

import (
	"othello/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests both strategies against each other and the root move selection:
- equivalence: minimax == alpha-beta for every (board, depth, player, flag),
  with and without pass handling, with and without the transposition cache
- leaves: depth 0 and "no moves" evaluate immediately
- pass handling: a player without moves hands the turn over
- root selection: strictly greater wins, ties go to the first move in
  row-major order, no moves -> sentinel without recursion
- pruning: alpha-beta visits no more nodes than minimax
*/

// positions plays seeded random games and samples one position every few
// plies so the tests cover openings, midgames and endings.
func positions(seed uint64, games, every int) ([]game.Board, []game.Cell) {
	r := rand.New(rand.NewSource(seed))
	var boards []game.Board
	var players []game.Cell
	for g := 0; g < games; g++ {
		b := game.NewBoard()
		p := game.PlayerA
		for ply := 0; !b.IsOver(); ply++ {
			if ply%every == 0 {
				boards = append(boards, b)
				players = append(players, p)
			}
			moves := b.LegalMoves(p)
			if len(moves) > 0 {
				m := moves[r.Intn(len(moves))]
				b.Apply(m.Row, m.Col, p)
			}
			p = game.Opponent(p)
		}
		boards = append(boards, b)
		players = append(players, p)
	}
	return boards, players
}

func mustParse(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("alphabeta")
	require.NoError(t, err)
	require.Equal(t, AlphaBeta, kind)

	_, err = ParseKind("negamax")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	require.Panics(t, func() { New("negamax") }, "Should panic with an unknown strategy")
}

func TestNewDefaults(t *testing.T) {
	require.Equal(t, 7, New(Minimax).Depth())
	require.Equal(t, 3, New(AlphaBeta).Depth())
	require.Equal(t, 5, New(AlphaBeta, WithDepth(5)).Depth())
	require.Equal(t, 3, New(AlphaBeta, WithDepth(0)).Depth(), "Non-positive depth should be ignored")
}

func TestSearchEquivalence(t *testing.T) {
	boards, players := positions(42, 6, 5)

	cases := []struct {
		name    string
		options []Option
	}{
		{name: "leaf on no moves"},
		{name: "pass turn", options: []Option{WithPassTurn()}},
		{name: "transpositions", options: []Option{WithTranspositions(1 << 16)}},
		{name: "pass turn with transpositions", options: []Option{WithPassTurn(), WithTranspositions(1 << 16)}},
		{name: "positional evaluation", options: []Option{WithEvaluationFn(game.EvaluatePositional)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mm := New(Minimax, tc.options...)
			ab := New(AlphaBeta, tc.options...)
			for i := range boards {
				b := boards[i]
				for depth := 0; depth <= 3; depth++ {
					for _, maximizing := range []bool{true, false} {
						want := mm.Search(&b, depth, players[i], maximizing)
						got := ab.Search(&b, depth, players[i], maximizing)
						require.Equal(t, want, got,
							"Alpha-beta should match minimax (position %d, depth %d, maximizing %v)", i, depth, maximizing)
					}
				}
			}
		})
	}
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := game.NewBoard()
	New(Minimax).Search(&b, 3, game.PlayerA, true)
	New(AlphaBeta).Search(&b, 3, game.PlayerA, true)

	require.Equal(t, game.NewBoard(), b)
}

func TestSearchLeaves(t *testing.T) {
	t.Run("depth zero evaluates", func(t *testing.T) {
		b := game.NewBoard()
		b.Apply(2, 4, game.PlayerA)
		require.Equal(t, 3, New(Minimax).Search(&b, 0, game.PlayerB, false))
		require.Equal(t, 3, New(AlphaBeta).Search(&b, 0, game.PlayerB, false))
	})

	t.Run("no moves evaluates even if the opponent could move", func(t *testing.T) {
		b := mustParse(t, `
			OX......
			........
			........
			........
			........
			........
			........
			........`)
		require.Empty(t, b.LegalMoves(game.PlayerA))
		require.NotEmpty(t, b.LegalMoves(game.PlayerB))

		require.Equal(t, 0, New(Minimax).Search(&b, 2, game.PlayerA, true))
		require.Equal(t, 0, New(AlphaBeta).Search(&b, 2, game.PlayerA, true))
	})

	t.Run("pass turn hands the move to the opponent", func(t *testing.T) {
		b := mustParse(t, `
			OX......
			........
			........
			........
			........
			........
			........
			........`)

		// PlayerB takes (0,2) and flips the single X
		require.Equal(t, -3, New(Minimax, WithPassTurn()).Search(&b, 2, game.PlayerA, true))
		require.Equal(t, -3, New(AlphaBeta, WithPassTurn()).Search(&b, 2, game.PlayerA, true))
	})

	t.Run("pass turn still stops when nobody can move", func(t *testing.T) {
		b := mustParse(t, `
			XXXX....
			........
			........
			........
			........
			........
			........
			........`)
		require.Equal(t, 4, New(Minimax, WithPassTurn()).Search(&b, 5, game.PlayerB, true))
	})
}

func TestFindBestMove(t *testing.T) {
	t.Run("ties go to the first move in row-major order", func(t *testing.T) {
		b := game.NewBoard()
		move, value, _ := New(Minimax, WithDepth(1)).FindBestMove(&b, game.PlayerA)

		// every opening move flips exactly one disc
		require.Equal(t, game.Move{Row: 2, Col: 4}, move)
		require.Equal(t, 3, value)
	})

	t.Run("picks the strictly better move", func(t *testing.T) {
		b := mustParse(t, `
			........
			.OX.....
			........
			........
			....XOO.
			........
			........
			........`)
		move, value, _ := New(AlphaBeta, WithDepth(1)).FindBestMove(&b, game.PlayerA)

		// (1,0) flips one disc, (4,7) flips two
		require.Equal(t, game.Move{Row: 4, Col: 7}, move)
		require.Equal(t, 4, value)
	})

	t.Run("no legal moves returns the sentinel without searching", func(t *testing.T) {
		b := mustParse(t, `
			OX......
			........
			........
			........
			........
			........
			........
			........`)
		s := New(Minimax, WithMetrics())
		move, _, metric := s.FindBestMove(&b, game.PlayerA)

		require.Equal(t, game.NoMove, move)
		require.True(t, move.IsNone())
		require.Zero(t, metric.Nodes, "Search should never recurse")
	})

	t.Run("root is the maximizer unless evaluation is relative", func(t *testing.T) {
		b := game.NewBoard()

		move, value, _ := New(Minimax, WithDepth(1)).FindBestMove(&b, game.PlayerB)
		require.Equal(t, game.Move{Row: 2, Col: 3}, move)
		require.Equal(t, -3, value)

		move, value, _ = New(Minimax, WithDepth(1), WithRelativeEvaluation()).FindBestMove(&b, game.PlayerB)
		require.Equal(t, game.Move{Row: 2, Col: 3}, move)
		require.Equal(t, 3, value)
	})

	t.Run("strategies agree on the chosen move", func(t *testing.T) {
		boards, players := positions(9, 4, 7)
		for depth := 1; depth <= 3; depth++ {
			mm := New(Minimax, WithDepth(depth))
			ab := New(AlphaBeta, WithDepth(depth))
			for i := range boards {
				wantMove, wantValue, _ := mm.FindBestMove(&boards[i], players[i])
				gotMove, gotValue, _ := ab.FindBestMove(&boards[i], players[i])
				require.Equal(t, wantMove, gotMove, "position %d depth %d", i, depth)
				require.Equal(t, wantValue, gotValue, "position %d depth %d", i, depth)
			}
		}
	})

	t.Run("chosen move is legal", func(t *testing.T) {
		boards, players := positions(5, 3, 6)
		s := New(AlphaBeta, WithDepth(2), WithPassTurn(), WithTranspositions(1<<12))
		for i := range boards {
			move, _, _ := s.FindBestMove(&boards[i], players[i])
			if move.IsNone() {
				require.Empty(t, boards[i].LegalMoves(players[i]))
				continue
			}
			require.True(t, boards[i].IsLegal(move.Row, move.Col, players[i]))
		}
	})
}

func TestPruning(t *testing.T) {
	b := game.NewBoard()
	b.Apply(2, 4, game.PlayerA)
	b.Apply(2, 3, game.PlayerB)

	mm := New(Minimax, WithDepth(4), WithMetrics())
	ab := New(AlphaBeta, WithDepth(4), WithMetrics())

	_, _, mmMetric := mm.FindBestMove(&b, game.PlayerA)
	_, _, abMetric := ab.FindBestMove(&b, game.PlayerA)

	require.Equal(t, "minimax", mmMetric.Strategy)
	require.Equal(t, 4, abMetric.Depth)
	require.Zero(t, mmMetric.Cutoffs, "Minimax never prunes")
	require.Positive(t, abMetric.Cutoffs, "Alpha-beta should prune at depth 4")
	require.Less(t, abMetric.Nodes, mmMetric.Nodes, "Pruning should visit fewer nodes")
	require.LessOrEqual(t, abMetric.Leaves, mmMetric.Leaves)
}

func TestTranspositions(t *testing.T) {
	t.Run("cache hits keep the result", func(t *testing.T) {
		b := game.NewBoard()
		plain := New(Minimax, WithDepth(4))
		cached := New(Minimax, WithDepth(4), WithTranspositions(1<<16), WithMetrics())

		wantMove, wantValue, _ := plain.FindBestMove(&b, game.PlayerA)
		gotMove, gotValue, _ := cached.FindBestMove(&b, game.PlayerA)
		require.Equal(t, wantMove, gotMove)
		require.Equal(t, wantValue, gotValue)

		// a second search answers every root reply from the table
		gotMove, gotValue, metric := cached.FindBestMove(&b, game.PlayerA)
		require.Equal(t, wantMove, gotMove)
		require.Equal(t, wantValue, gotValue)
		require.Equal(t, 4, metric.CacheHits)
		require.Equal(t, 4, metric.Nodes)
	})

	t.Run("full table is cleared", func(t *testing.T) {
		cache := newTranspositions(2)
		cache.store(cacheKey{hash: 1}, 10)
		cache.store(cacheKey{hash: 2}, 20)
		require.Equal(t, 2, cache.size())

		cache.store(cacheKey{hash: 3}, 30)
		require.Equal(t, 1, cache.size())
		_, ok := cache.lookup(cacheKey{hash: 1})
		require.False(t, ok)
		v, ok := cache.lookup(cacheKey{hash: 3})
		require.True(t, ok)
		require.Equal(t, 30, v)
	})
}
