package game

// Size is the width and height of an Othello board.
const Size = 8

// Cell is the state of a single board square. The two player values double as
// player identities, so the opponent of p is always 3 - p.
type Cell int

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

// Opponent returns the other player.
func Opponent(p Cell) Cell {
	return 3 - p
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	default:
		return "."
	}
}

// Move is a 0-indexed (row, column) placement.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned when a player has no legal placement.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) IsNone() bool {
	return m == NoMove
}

type StateHash uint64

// Evaluates a board to a score where positive values favour PlayerA.
type Evaluate func(*Board) int

// directions is shared by the legality check and the applier; both walk the
// same eight rays.
var directions = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
