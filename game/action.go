// Package game adapts the raw board package into the action/rules surface
// the MCTS engine consults: legal-move masks, move application, and
// terminal scoring.
package game

import "github.com/othellozero/selfplay/board"

// MoveLen is the fixed action-space size: one per board square, plus pass.
const MoveLen = board.Size*board.Size + 1

// Pass is the action index reserved for the mandatory non-move.
const Pass Action = board.Size * board.Size

// Player1 and Player2 are the two colors, matching board cell values.
const (
	Player1 = board.White
	Player2 = board.Black
)

// Other returns the opposing color.
func Other(player int8) int8 { return -player }

// Action is an index in [0, MoveLen). 0..35 denote board squares
// (id/6, id%6); Pass (36) denotes the mandatory non-move.
type Action int

// ToMove converts a non-pass action to a board square.
func (a Action) ToMove() board.Move {
	return board.Move{X: int(a) / board.Size, Y: int(a) % board.Size}
}

// FromMove converts a board square to its action index.
func FromMove(m board.Move) Action {
	return Action(m.X*board.Size + m.Y)
}

// IsPass reports whether a is the pass action.
func (a Action) IsPass() bool { return a == Pass }
