// Package board implements the 6x6 Othello position: move generation,
// execution, canonicalization and the 128-bit position hash used as the
// MCTS map key.
package board

import "fmt"

// Size is the edge length of the board.
const Size = 6

// Black and White are the two colors a cell can hold; a player is
// identified by its color value. Empty is the zero value.
const (
	Empty    int8 = 0
	Black    int8 = -1
	White    int8 = 1
)

// Board is a 6x6 grid of cells in {-1, 0, +1}.
type Board [Size][Size]int8

// direction offsets probed from a candidate square: the eight compass
// directions.
var directions = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Initial returns the standard Othello opening position on a 6x6 board.
func Initial() Board {
	var b Board
	b[2][2] = Black
	b[3][3] = Black
	b[2][3] = White
	b[3][2] = White
	return b
}

// Equal reports structural equality.
func (b Board) Equal(o Board) bool {
	return b == o
}

// LegalMoves returns the set of empty squares from which player has at
// least one valid flip in some direction. The slice is deduplicated (each
// square appears at most once) but is in no particular order.
func (b Board) LegalMoves(player int8) []Move {
	var moves []Move
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if b[x][y] != Empty {
				continue
			}
			if b.hasFlipFromSquare(x, y, player) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// HasLegalMoves is an early-terminating variant of LegalMoves that only
// answers whether any legal move exists.
func (b Board) HasLegalMoves(player int8) bool {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if b[x][y] == Empty && b.hasFlipFromSquare(x, y, player) {
				return true
			}
		}
	}
	return false
}

func (b Board) hasFlipFromSquare(x, y int, player int8) bool {
	for _, dir := range directions {
		if ok, _ := b.discover(x, y, dir, player); ok {
			return true
		}
	}
	return false
}

// discover walks from (x, y) in dir, returning whether the run is a valid
// capture for player (at least one opponent stone, terminated by a self
// stone before the edge or an empty cell), and the flipped squares if so.
func (b Board) discover(x, y int, dir [2]int, player int8) (bool, []Move) {
	var flips []Move
	cx, cy := x+dir[0], y+dir[1]
	for {
		if cx < 0 || cx >= Size || cy < 0 || cy >= Size {
			return false, nil
		}
		cell := b[cx][cy]
		switch {
		case cell == Empty:
			return false, nil
		case cell == -player:
			flips = append(flips, Move{X: cx, Y: cy})
		case cell == player:
			return len(flips) > 0, flips
		}
		cx += dir[0]
		cy += dir[1]
	}
}

// ExecuteMove places player's stone at m and flips every captured run in
// every direction that validates. Panics if no direction validates — the
// caller is required to have checked legality first.
func (b *Board) ExecuteMove(m Move, player int8) {
	flippedAny := false
	for _, dir := range directions {
		if ok, flips := b.discover(m.X, m.Y, dir, player); ok {
			for _, f := range flips {
				b[f.X][f.Y] = player
			}
			flippedAny = true
		}
	}
	if !flippedAny {
		panic(fmt.Sprintf("board: impossible execute move %v for player %d", m, player))
	}
	b[m.X][m.Y] = player
}

// Canonical returns the board in player's frame: if player is Black,
// every cell is negated so that "my stones" are always +1.
func (b Board) Canonical(player int8) Board {
	if player != Black {
		return b
	}
	var out Board
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			out[x][y] = -b[x][y]
		}
	}
	return out
}

// CountDiff returns the signed stone count in player's frame.
func (b Board) CountDiff(player int8) int {
	count := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			switch b[x][y] {
			case player:
				count++
			case -player:
				count--
			}
		}
	}
	return count
}

// Move identifies a board square.
type Move struct {
	X, Y int
}

func (m Move) String() string { return fmt.Sprintf("(%d,%d)", m.X, m.Y) }
