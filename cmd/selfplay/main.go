// Command selfplay drives one round of parallel self-play episodes to
// completion using a Reference (untrained) predictor, and reports how many
// episodes it played, how many of them Player 1 won, and how many training
// examples it produced. It exists to exercise the pipeline end to end; a real training
// loop supplies its own predictor.
package main

import (
	"flag"
	"log"

	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/dualnet"
	"github.com/othellozero/selfplay/game"
	"github.com/othellozero/selfplay/predictor"
	"github.com/othellozero/selfplay/selfplay"
)

var (
	batchSize   = flag.Int("batch_size", 64, "number of parallel self-play slots")
	numMCTSSims = flag.Int("num_mcts_sims", 25, "MCTS simulations per ply")
	cPuct       = flag.Float64("c_puct", 1.0, "PUCT exploration constant")
	playerMode  = flag.Int("player_mode", 1, "1 for a shared search cache, 2 for two independent caches")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	cfg := selfplay.DefaultConfig()
	cfg.BatchSize = *batchSize
	cfg.MCTS.NumMCTSSims = *numMCTSSims
	cfg.MCTS.CPuct = float32(*cPuct)
	if *playerMode == 2 {
		cfg.PlayerMode = selfplay.TwoPlayerMode
	}

	nn := dualnet.NewReference(dualnet.DefaultConf(board.Size, board.Size, game.MoveLen))
	var pred predictor.Predictor = nn

	c, err := selfplay.New(cfg)
	if err != nil {
		log.Fatalf("selfplay: %+v", err)
	}

	log.Printf("running %d self-play episodes (player_mode=%d, num_mcts_sims=%d)", cfg.BatchSize, *playerMode, cfg.MCTS.NumMCTSSims)
	for {
		state, err := c.PrepareNext(0)
		if err != nil {
			log.Fatalf("selfplay: prepare_next: %+v", err)
		}
		switch state {
		case 2:
			report(c)
			return
		case 1:
			for _, filter := range []int8{game.Player1, game.Player2} {
				ready, err := c.PrepareNext(filter)
				if err != nil {
					log.Fatalf("selfplay: prepare_next(%d): %+v", filter, err)
				}
				if ready != 1 {
					continue
				}
				boards := c.GetBoardsForPrediction(filter)
				pis, values, err := pred.Predict(boards)
				if err != nil {
					log.Fatalf("predictor: %+v", err)
				}
				if err := c.ReceivePrediction(pis, values, filter); err != nil {
					log.Fatalf("selfplay: receive_prediction(%d): %+v", filter, err)
				}
			}
		case 0:
			// some slots are waiting on the other thinking player; loop again.
		}
	}
}

func report(c *selfplay.Controller) {
	results, err := c.ResultsForCounting()
	if err != nil {
		log.Fatalf("selfplay: results_for_counting: %+v", err)
	}
	pis, err := c.PisForTraining()
	if err != nil {
		log.Fatalf("selfplay: pis_for_training: %+v", err)
	}

	data, _ := results.Data().([]float32)
	var p1Wins int
	for _, r := range data {
		if r == 1 {
			p1Wins++
		}
	}
	log.Printf("episodes=%d player1_wins=%d total_examples=%d", len(data), p1Wins, pis.Shape()[0])
}
