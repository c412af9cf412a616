package game

const (
	CornerWeight = 25
	EdgeWeight   = 5
)

// EvaluateDiscs is the disc difference: PlayerA's discs minus PlayerB's. Always
// within [-64, 64].
func EvaluateDiscs(b *Board) int {
	score := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			switch b[i][j] {
			case PlayerA:
				score++
			case PlayerB:
				score--
			}
		}
	}
	return score
}

// EvaluatePositional adds a bonus for corners and edges on top of the disc
// difference. Corners are edges too and collect both bonuses.
func EvaluatePositional(b *Board) int {
	score := EvaluateDiscs(b)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			sign := 0
			switch b[i][j] {
			case PlayerA:
				sign = 1
			case PlayerB:
				sign = -1
			default:
				continue
			}
			if isEdge(i) || isEdge(j) {
				score += sign * EdgeWeight
			}
			if isEdge(i) && isEdge(j) {
				score += sign * CornerWeight
			}
		}
	}
	return score
}

func isEdge(i int) bool {
	return i == 0 || i == Size-1
}

// Relative scores from p's point of view: unchanged for PlayerA, negated for
// PlayerB.
func Relative(evaluate Evaluate, p Cell) Evaluate {
	if p == PlayerA {
		return evaluate
	}
	return func(b *Board) int {
		return -evaluate(b)
	}
}

// EvaluationFn maps a configured evaluator name to its function.
func EvaluationFn(name string) (Evaluate, bool) {
	switch name {
	case "", "discs":
		return EvaluateDiscs, true
	case "positional":
		return EvaluatePositional, true
	default:
		return nil, false
	}
}

// Winner decides the game by disc difference. A drawn board goes to PlayerB.
func Winner(b *Board) Cell {
	if EvaluateDiscs(b) > 0 {
		return PlayerA
	}
	return PlayerB
}
