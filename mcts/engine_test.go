package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
)

// uniformResponder answers every PredictRequest with a uniform policy and
// zero value, mimicking an untrained network.
func uniformResponder(t *testing.T, requests <-chan PredictRequest, responses chan<- PredictResponse, done <-chan struct{}) {
	t.Helper()
	for {
		select {
		case req := <-requests:
			var pi game.Pi
			for i := range pi {
				pi[i] = 1
			}
			responses <- PredictResponse{Policy: pi, Value: 0}
			_ = req
		case <-done:
			return
		}
	}
}

func newTestEngine(cfg Config) (*Engine, chan PredictRequest, chan PredictResponse, chan struct{}) {
	requests := make(chan PredictRequest)
	responses := make(chan PredictResponse)
	done := make(chan struct{})
	e := NewEngine(cfg, 0, requests, responses)
	return e, requests, responses, done
}

func TestSearchExpandsRootOnFirstVisit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumMCTSSims = 1
	e, requests, responses, done := newTestEngine(cfg)
	defer close(done)
	go uniformResponder(t, requests, responses, done)

	b := board.Initial()
	e.Search(b, game.Player1, game.Player1, 0)

	s := b.Canonical(game.Player1).Hash128()
	node, ok := e.node[s]
	require.True(t, ok)
	assert.EqualValues(t, 0, node.VisitCount)
}

func TestSearchEdgeVisitCountsIncreaseMonotonically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumMCTSSims = 20
	e, requests, responses, done := newTestEngine(cfg)
	defer close(done)
	go uniformResponder(t, requests, responses, done)

	b := board.Initial()
	s := b.Canonical(game.Player1).Hash128()

	for i := 0; i < cfg.NumMCTSSims; i++ {
		e.Search(b, game.Player1, game.Player1, 0)
	}

	total := 0
	for a := game.Action(0); a < game.MoveLen; a++ {
		if na, ok := e.nodeAct[edgeKey{hash: s, action: a}]; ok {
			assert.GreaterOrEqual(t, na.VisitCount, 1)
			total += na.VisitCount
		}
	}
	// The root's first Search call only expands it (no PUCT selection, so
	// no edge is touched); every subsequent call selects and backs up
	// exactly one root edge. N_s == sum of N[s,a], not NumMCTSSims.
	node := e.node[s]
	require.NotNil(t, node)
	assert.Equal(t, node.VisitCount, total)
	assert.Equal(t, cfg.NumMCTSSims-1, total)
}

func TestGetActionProbTempZeroIsOneHotOverValidMoves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumMCTSSims = 15
	e, requests, responses, done := newTestEngine(cfg)
	defer close(done)
	go uniformResponder(t, requests, responses, done)

	b := board.Initial()
	pi := e.GetActionProb(b, game.Player1, 0, 0)

	valid := game.ValidMovesFor(b, game.Player1)
	count := 0
	for a, p := range pi {
		if p > 0 {
			count++
			assert.True(t, valid[a], "selected action %d must be valid", a)
			assert.InDelta(t, float32(1), p, 1e-6)
		}
	}
	assert.Equal(t, 1, count)
}

func TestGetActionProbTempPositiveSumsToOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumMCTSSims = 15
	e, requests, responses, done := newTestEngine(cfg)
	defer close(done)
	go uniformResponder(t, requests, responses, done)

	b := board.Initial()
	pi := e.GetActionProb(b, game.Player1, 0, 1)

	assert.InDelta(t, float32(1), pi.Sum(), 1e-4)
	valid := game.ValidMovesFor(b, game.Player1)
	for a, p := range pi {
		if p > 0 {
			assert.True(t, valid[a])
		}
	}
}

func TestSelectPUCTBreaksTiesBySmallestActionIndex(t *testing.T) {
	cfg := DefaultConfig()
	e, _, _, done := newTestEngine(cfg)
	defer close(done)

	b := board.Initial()
	canonical := b.Canonical(game.Player1)
	s := canonical.Hash128()
	valid := game.ValidMovesFor(canonical, game.Player1)

	var pi game.Pi
	for a := range pi {
		if valid[a] {
			pi[a] = 1
		}
	}
	e.node[s] = &NodeInfo{PredictedPi: pi, ValidMoves: valid, VisitCount: 3}

	got := e.selectPUCT(s, e.node[s])

	var want game.Action = -1
	for a := game.Action(0); a < game.MoveLen; a++ {
		if valid[a] {
			want = a
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestSearchAtTerminalBoardReturnsNegatedOutcome(t *testing.T) {
	cfg := DefaultConfig()
	e, _, _, done := newTestEngine(cfg)
	defer close(done)

	var full board.Board
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			full[x][y] = game.Player1
		}
	}

	v := e.Search(full, game.Player1, game.Player1, 0)
	assert.Equal(t, float32(-1), v)
}

func TestTwoPlayerModeEnginesDoNotShareState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumMCTSSims = 5

	e1, req1, resp1, done1 := newTestEngine(cfg)
	defer close(done1)
	go uniformResponder(t, req1, resp1, done1)

	e2, req2, resp2, done2 := newTestEngine(cfg)
	defer close(done2)
	go uniformResponder(t, req2, resp2, done2)

	b := board.Initial()
	e1.GetActionProb(b, game.Player1, 0, 1)

	assert.NotEmpty(t, e1.node)
	assert.Empty(t, e2.node)
	assert.Empty(t, e2.nodeAct)
}
