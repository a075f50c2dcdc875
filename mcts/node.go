package mcts

import (
	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
)

// NodeInfo is the per-canonical-state record, created on expansion.
type NodeInfo struct {
	PredictedPi game.Pi         // masked-and-renormalized predictor output
	ValidMoves  game.ValidMoves // mask used to produce PredictedPi
	VisitCount  int             // simulations through s at selection time
	Turn        int             // ply at which the node was first expanded
}

// NodeActionInfo is the per-edge (s, a) record.
type NodeActionInfo struct {
	WinRate    float32 // running mean Q(s,a), in [-1, 1]
	VisitCount int      // N(s,a)
}

// edgeKey identifies an edge (s, a). A plain comparable struct, not a
// string — see "Map keying" in spec.md §9.
type edgeKey struct {
	hash   board.Hash128
	action game.Action
}
