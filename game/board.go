package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash"
)

var ErrIllegalMove = errors.New("illegal move")

// Board is an 8x8 grid. It is a value type: assigning a Board copies it, which
// is how the searcher gives every recursion frame its own position.
type Board [Size][Size]Cell

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	b[3][3], b[4][4] = PlayerA, PlayerA
	b[3][4], b[4][3] = PlayerB, PlayerB
	return b
}

// IsLegal reports whether p may place a disc at (row, col), i.e. whether at
// least one direction holds a run of opponent discs closed by one of p's own.
func (b *Board) IsLegal(row, col int, p Cell) bool {
	if !inBounds(row, col) || b[row][col] != Empty {
		return false
	}
	opponent := Opponent(p)
	for _, dir := range directions {
		x, y := row+dir[0], col+dir[1]
		foundOpponent := false
		for inBounds(x, y) && b[x][y] != Empty {
			if b[x][y] == opponent {
				foundOpponent = true
			} else if b[x][y] == p {
				if foundOpponent {
					return true
				}
				break
			}
			x += dir[0]
			y += dir[1]
		}
	}
	return false
}

// Apply places p's disc at (row, col) and flips every opponent run closed by
// one of p's discs. Legality is not checked: on an illegal cell the disc is
// placed and nothing flips. Returns the number of flipped discs.
func (b *Board) Apply(row, col int, p Cell) int {
	b[row][col] = p
	opponent := Opponent(p)
	flipped := 0
	var run [Size][2]int
	for _, dir := range directions {
		n := 0
		x, y := row+dir[0], col+dir[1]
		for inBounds(x, y) && b[x][y] == opponent {
			run[n] = [2]int{x, y}
			n++
			x += dir[0]
			y += dir[1]
		}
		if n == 0 || !inBounds(x, y) || b[x][y] != p {
			continue
		}
		for _, cell := range run[:n] {
			b[cell[0]][cell[1]] = p
		}
		flipped += n
	}
	return flipped
}

// Play validates the move and returns the resulting board, leaving b untouched.
func (b *Board) Play(m Move, p Cell) (Board, int, error) {
	if !b.IsLegal(m.Row, m.Col, p) {
		return *b, 0, fmt.Errorf("player %s at (%d, %d): %w", p, m.Row, m.Col, ErrIllegalMove)
	}
	next := *b
	flipped := next.Apply(m.Row, m.Col, p)
	return next, flipped, nil
}

// LegalMoves lists p's legal moves in row-major order. The order decides ties
// in move selection.
func (b *Board) LegalMoves(p Cell) []Move {
	var moves []Move
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.IsLegal(i, j, p) {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

// HasMoves is LegalMoves without the allocation.
func (b *Board) HasMoves(p Cell) bool {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.IsLegal(i, j, p) {
				return true
			}
		}
	}
	return false
}

// IsOver reports whether neither player can move.
func (b *Board) IsOver() bool {
	return !b.HasMoves(PlayerA) && !b.HasMoves(PlayerB)
}

func (b *Board) Count(c Cell) int {
	n := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b[i][j] == c {
				n++
			}
		}
	}
	return n
}

// Hash identifies the position together with the side to move.
func (b *Board) Hash(toMove Cell) StateHash {
	var buf [Size*Size + 1]byte
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			buf[i*Size+j] = byte(b[i][j])
		}
	}
	buf[Size*Size] = byte(toMove)
	return StateHash(xxhash.Sum64(buf[:]))
}

// String renders the board with row and column indices, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for j := 0; j < Size; j++ {
		fmt.Fprintf(&sb, " %d", j)
	}
	sb.WriteString("\n")
	for i := 0; i < Size; i++ {
		fmt.Fprintf(&sb, "%d", i)
		for j := 0; j < Size; j++ {
			sb.WriteString(" ")
			sb.WriteString(b[i][j].String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseBoard reads a board written with 'X', 'O' and '.' characters. Blank
// lines, whitespace, the column header and leading row indices (as produced
// by String) are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	row := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, line)
		if line == "" || isDigits(line) {
			continue
		}
		if len(line) == Size+1 && unicode.IsDigit(rune(line[0])) {
			line = line[1:]
		}
		if len(line) != Size {
			return Board{}, fmt.Errorf("row %d: expected %d cells, got %q", row, Size, line)
		}
		if row >= Size {
			return Board{}, fmt.Errorf("too many rows: expected %d", Size)
		}
		for col, ch := range line {
			switch ch {
			case 'X', 'x':
				b[row][col] = PlayerA
			case 'O', 'o':
				b[row][col] = PlayerB
			case '.':
				b[row][col] = Empty
			default:
				return Board{}, fmt.Errorf("row %d col %d: unknown cell %q", row, col, ch)
			}
		}
		row++
	}
	if row != Size {
		return Board{}, fmt.Errorf("expected %d rows, got %d", Size, row)
	}
	return b, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
