package selfplay

import (
	"math/rand"
	"time"

	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/game"
	"github.com/othellozero/selfplay/mcts"
)

// worker plays one self-play episode to completion, driving either one or
// two private mcts.Engine instances depending on PlayerMode. It owns no
// state shared with other workers; its only external contact is the slot's
// board-request/prediction channel pair, wired up by Controller.New.
type worker struct {
	id      int
	cfg     Config
	engines map[int8]*mcts.Engine
	rand    *rand.Rand
}

func newWorker(id int, cfg Config, requests chan<- mcts.PredictRequest, responses <-chan mcts.PredictResponse) *worker {
	w := &worker{
		id:   id,
		cfg:  cfg,
		rand: rand.New(rand.NewSource(time.Now().UnixNano() + int64(id))),
	}

	p1Engine := mcts.NewEngine(cfg.MCTS, id, requests, responses)
	if cfg.PlayerMode == TwoPlayerMode {
		p2Engine := mcts.NewEngine(cfg.MCTS, id, requests, responses)
		w.engines = map[int8]*mcts.Engine{game.Player1: p1Engine, game.Player2: p2Engine}
	} else {
		w.engines = map[int8]*mcts.Engine{game.Player1: p1Engine, game.Player2: p1Engine}
	}
	return w
}

// recordedPly is one ply's data before the episode's final result is known.
type recordedPly struct {
	canonical board.Board
	player    int8
	pi        game.Pi
	turn      int
}

// playEpisode runs the episode driver from SPEC_FULL.md §4.3 / spec.md
// §4.3: pick temp, consult the side's engine, record the ply, sample and
// apply an action, and stop once the game ends, finalizing every recorded
// ply's result in its own player's frame.
func (w *worker) playEpisode() []TrainExample {
	b := board.Initial()
	currentPlayer := game.Player1
	turn := 0

	var plies []recordedPly
	for {
		temp := float32(1)
		if turn >= w.cfg.MCTS.TempThreshold {
			temp = 0
		}

		engine := w.engines[currentPlayer]
		pi := engine.GetActionProb(b, currentPlayer, turn, temp)

		plies = append(plies, recordedPly{
			canonical: b.Canonical(currentPlayer),
			player:    currentPlayer,
			pi:        pi,
			turn:      turn,
		})

		action := sampleAction(w.rand, pi)
		game.ApplyAction(&b, currentPlayer, action)
		currentPlayer = game.Other(currentPlayer)
		turn++

		if result := game.GameEnded(b, currentPlayer); result != 0 {
			return finalize(plies, result, currentPlayer)
		}
	}
}

// sampleAction draws weighted-random from pi. A degenerate (all-zero)
// policy is a logic bug elsewhere in the pipeline, not a condition to
// recover from.
func sampleAction(r *rand.Rand, pi game.Pi) game.Action {
	sum := pi.Sum()
	if sum <= 0 {
		panic("selfplay: sampling from a degenerate policy")
	}
	target := r.Float32() * sum
	var cum float32
	for a, p := range pi {
		cum += p
		if cum > target {
			return game.Action(a)
		}
	}
	return game.Action(len(pi) - 1)
}

// finalize stamps every recorded ply with its result in its own player's
// frame: result flips sign whenever the ply's player differs from the
// player the terminal check was evaluated against.
func finalize(plies []recordedPly, result, finalPlayer int8) []TrainExample {
	examples := make([]TrainExample, len(plies))
	for i, p := range plies {
		r := result
		if p.player != finalPlayer {
			r = -result
		}
		examples[i] = TrainExample{
			Board:  p.canonical,
			Player: p.player,
			Pi:     p.pi,
			Result: float32(r),
			Turn:   p.turn,
		}
	}
	return examples
}
