package selfplay

import (
	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
)

// TrainExample is one labeled sample produced by an episode: the canonical
// board the example's player faced, the search's policy there, and the
// eventual game outcome in that player's frame.
type TrainExample struct {
	Board  board.Board
	Player int8
	Pi     game.Pi
	Result float32
	Turn   int
}
