package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateDiscs(t *testing.T) {
	t.Run("standard start is even", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, 0, EvaluateDiscs(&b))
	})

	t.Run("after a capture", func(t *testing.T) {
		b := NewBoard()
		b.Apply(2, 4, PlayerA)
		require.Equal(t, 3, EvaluateDiscs(&b))
		require.Equal(t, EvaluateDiscs(&b), EvaluateDiscs(&b), "Evaluation should not mutate the board")
	})

	t.Run("stays within disc bounds", func(t *testing.T) {
		var full Board
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				full[i][j] = PlayerB
			}
		}
		require.Equal(t, -64, EvaluateDiscs(&full))

		boards, _ := randomPositions(3, 20)
		for _, b := range boards {
			score := EvaluateDiscs(&b)
			require.GreaterOrEqual(t, score, -64)
			require.LessOrEqual(t, score, 64)
		}
	})
}

func TestEvaluatePositional(t *testing.T) {
	t.Run("corner collects edge and corner weight", func(t *testing.T) {
		var b Board
		b[0][0] = PlayerA
		require.Equal(t, 1+EdgeWeight+CornerWeight, EvaluatePositional(&b))
	})

	t.Run("edge for PlayerB", func(t *testing.T) {
		var b Board
		b[0][3] = PlayerB
		require.Equal(t, -1-EdgeWeight, EvaluatePositional(&b))
	})

	t.Run("centre only counts discs", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, EvaluateDiscs(&b), EvaluatePositional(&b))
	})
}

func TestRelative(t *testing.T) {
	b := NewBoard()
	b.Apply(2, 4, PlayerA)

	require.Equal(t, 3, Relative(EvaluateDiscs, PlayerA)(&b))
	require.Equal(t, -3, Relative(EvaluateDiscs, PlayerB)(&b))
}

func TestEvaluationFn(t *testing.T) {
	_, ok := EvaluationFn("discs")
	require.True(t, ok)
	_, ok = EvaluationFn("positional")
	require.True(t, ok)
	_, ok = EvaluationFn("mobility")
	require.False(t, ok)
}

func TestWinner(t *testing.T) {
	b := NewBoard()
	require.Equal(t, PlayerB, Winner(&b), "A drawn board goes to PlayerB")

	b.Apply(2, 4, PlayerA)
	require.Equal(t, PlayerA, Winner(&b))
}
