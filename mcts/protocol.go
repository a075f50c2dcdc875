package mcts

import (
	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
)

// PredictRequest is sent by a worker when its search suspends at an
// unexpanded leaf: "predict this board for this thinking player".
type PredictRequest struct {
	Board          board.Board
	WorkerID       int
	ThinkingPlayer int8
	Turn           int
}

// PredictResponse carries the network's answer back to the suspended
// worker: the raw (unmasked) policy and the value estimate.
type PredictResponse struct {
	Policy game.Pi
	Value  float32
}
