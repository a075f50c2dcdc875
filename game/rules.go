package game

import "github.com/othellozero/selfplay/board"

// ValidMoves is a fixed MoveLen-bit mask: exactly the legal actions for
// the current player on the associated canonical board are set; if no
// square is legal, only Pass is set.
type ValidMoves [MoveLen]bool

// ValidMovesFor computes the mask for player on b.
func ValidMovesFor(b board.Board, player int8) ValidMoves {
	var v ValidMoves
	legal := b.LegalMoves(player)
	if len(legal) == 0 {
		v[Pass] = true
		return v
	}
	for _, m := range legal {
		v[FromMove(m)] = true
	}
	return v
}

// ApplyAction applies action as player to b. Pass is a no-op.
func ApplyAction(b *board.Board, player int8, a Action) {
	if a.IsPass() {
		return
	}
	b.ExecuteMove(a.ToMove(), player)
}

// GameEnded returns 0 if either side still has a legal move; otherwise
// +1 if player's stone count is ahead, -1 if behind, and on an exact tie
// +1 iff player == Player1 (Player1 wins the tie-break; this is an
// intentional non-draw rule, reproduced exactly per spec).
func GameEnded(b board.Board, player int8) int8 {
	if b.HasLegalMoves(player) || b.HasLegalMoves(Other(player)) {
		return 0
	}
	diff := b.CountDiff(player)
	switch {
	case diff > 0:
		return 1
	case diff < 0:
		return -1
	case player == Player1:
		return 1
	default:
		return -1
	}
}
