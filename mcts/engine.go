package mcts

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
)

// Engine owns one player's search maps and the channel pair it uses to
// consult the predictor. One Engine is created per episode per player-mode
// map set — see the worker type in package selfplay.
type Engine struct {
	Config

	node     map[board.Hash128]*NodeInfo
	nodeAct  map[edgeKey]*NodeActionInfo
	terminal map[board.Hash128]int8

	requests  chan<- PredictRequest
	responses <-chan PredictResponse
	workerID  int

	rand *rand.Rand
}

// NewEngine creates an Engine that will route expansion requests tagged
// with workerID over requests/responses.
func NewEngine(cfg Config, workerID int, requests chan<- PredictRequest, responses <-chan PredictResponse) *Engine {
	return &Engine{
		Config:    cfg,
		node:      make(map[board.Hash128]*NodeInfo),
		nodeAct:   make(map[edgeKey]*NodeActionInfo),
		terminal:  make(map[board.Hash128]int8),
		requests:  requests,
		responses: responses,
		workerID:  workerID,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Search is the recursive PUCT search from spec.md §4.3. unorthodoxBoard is
// in absolute (non-canonical) coordinates; currentPlayer is who moves next
// from it. thinkingPlayer tags prediction requests so the controller can
// route batches per side. Returns the value as seen by the caller (the
// opponent of currentPlayer), i.e. always negated relative to the value at
// this level.
func (e *Engine) Search(unorthodoxBoard board.Board, currentPlayer, thinkingPlayer int8, turn int) float32 {
	canonical := unorthodoxBoard.Canonical(currentPlayer)
	s := canonical.Hash128()

	ended, ok := e.terminal[s]
	if !ok {
		ended = game.GameEnded(canonical, game.Player1)
		e.terminal[s] = ended
	}
	if ended != 0 {
		return -float32(ended)
	}

	node, ok := e.node[s]
	if !ok {
		e.requests <- PredictRequest{
			Board:          canonical,
			WorkerID:       e.workerID,
			ThinkingPlayer: thinkingPlayer,
			Turn:           turn,
		}
		resp := <-e.responses

		pi := resp.Policy
		valid := game.ValidMovesFor(canonical, game.Player1)
		pi.Mask(valid)
		if pi.Sum() > 0 {
			pi.Normalize()
		} else {
			for i := range pi {
				if valid[i] {
					pi[i] = 1
				}
			}
			pi.Normalize()
		}

		e.node[s] = &NodeInfo{PredictedPi: pi, ValidMoves: valid, VisitCount: 0, Turn: turn}
		return -resp.Value
	}

	bestA := e.selectPUCT(s, node)
	node.VisitCount++

	next := unorthodoxBoard
	game.ApplyAction(&next, currentPlayer, bestA)
	v := e.Search(next, game.Other(currentPlayer), thinkingPlayer, turn+1)

	key := edgeKey{hash: s, action: bestA}
	if na, ok := e.nodeAct[key]; ok {
		na.WinRate = (na.WinRate*float32(na.VisitCount) + v) / float32(na.VisitCount+1)
		na.VisitCount++
	} else {
		e.nodeAct[key] = &NodeActionInfo{WinRate: v, VisitCount: 1}
	}

	return -v
}

// selectPUCT picks argmax_a U(a) over valid actions, ties broken by the
// smallest action index (guaranteed by ascending iteration plus a strict
// '>' comparison).
func (e *Engine) selectPUCT(s board.Hash128, node *NodeInfo) game.Action {
	best := math32.Inf(-1)
	var bestA game.Action

	for a := game.Action(0); a < game.MoveLen; a++ {
		if !node.ValidMoves[a] {
			continue
		}
		var u float32
		if na, ok := e.nodeAct[edgeKey{hash: s, action: a}]; ok {
			u = na.WinRate + e.CPuct*node.PredictedPi[a]*
				math32.Sqrt(float32(node.VisitCount))/(1+float32(na.VisitCount))
		} else {
			u = e.CPuct * node.PredictedPi[a] * math32.Sqrt(float32(node.VisitCount)+Eps)
		}
		if u > best {
			best = u
			bestA = a
		}
	}
	return bestA
}

// GetActionProb runs NumMCTSSims root searches and extracts the action
// probability distribution per spec.md §4.3. temp == 0 selects (with
// uniform random tie-break) the max-visit action(s) as a one-hot; temp > 0
// raises visit counts to 1/temp and renormalizes.
func (e *Engine) GetActionProb(unorthodoxBoard board.Board, player int8, turn int, temp float32) game.Pi {
	canonical := unorthodoxBoard.Canonical(player)
	s := canonical.Hash128()

	for i := 0; i < e.NumMCTSSims; i++ {
		e.Search(unorthodoxBoard, player, player, turn)
		if i == 0 && e.DirichletEpsilon > 0 {
			e.mixRootNoise(s)
		}
	}

	var counts [game.MoveLen]float32
	for a := game.Action(0); a < game.MoveLen; a++ {
		if na, ok := e.nodeAct[edgeKey{hash: s, action: a}]; ok {
			counts[a] = float32(na.VisitCount)
		}
	}

	var pi game.Pi
	if temp == 0 {
		maxCount := float32(-1)
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		var bestAs []int
		for a, c := range counts {
			if c == maxCount {
				bestAs = append(bestAs, a)
			}
		}
		idx := bestAs[e.rand.Intn(len(bestAs))]
		pi[idx] = 1
		return pi
	}

	var sum float32
	for a := range counts {
		counts[a] = math32.Pow(counts[a], 1/temp)
		sum += counts[a]
	}
	for a := range counts {
		pi[a] = counts[a] / sum
	}
	return pi
}

// mixRootNoise blends Dirichlet exploration noise into the root's
// predicted prior, restricted to the valid-move support — see
// SPEC_FULL.md §4.3 and the teacher's mcts/tree.go Dirichlet setup.
func (e *Engine) mixRootNoise(s board.Hash128) {
	node, ok := e.node[s]
	if !ok {
		return
	}
	var validIdx []int
	for a := 0; a < game.MoveLen; a++ {
		if node.ValidMoves[a] {
			validIdx = append(validIdx, a)
		}
	}
	if len(validIdx) == 0 {
		return
	}
	alpha := make([]float64, len(validIdx))
	for i := range alpha {
		alpha[i] = float64(e.DirichletAlpha)
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(uint64(time.Now().UnixNano())))
	noise := dist.Rand(nil)

	eps := e.DirichletEpsilon
	for i, a := range validIdx {
		node.PredictedPi[a] = (1-eps)*node.PredictedPi[a] + eps*float32(noise[i])
	}
}
