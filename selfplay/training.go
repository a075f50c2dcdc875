package selfplay

import (
	"gorgonia.org/tensor"

	"github.com/othellozero/selfplay/game"
)

// trainingTensors holds the four dense arrays extracted after every slot
// has finished, plus the per-episode result summary used for win/loss
// counting.
type trainingTensors struct {
	pis                *tensor.Dense
	boards             *tensor.Dense
	players            *tensor.Dense
	results            *tensor.Dense
	resultsForCounting *tensor.Dense
}

// buildTraining concatenates every slot's examples in slot order and
// caches the result; callable only once every slot has finished (state 2).
func (c *Controller) buildTraining() (*trainingTensors, error) {
	for _, s := range c.slots {
		if !s.finished {
			return nil, ErrNotReady
		}
	}
	c.extracted = true

	if c.training != nil {
		return c.training, nil
	}

	n := c.cfg.BoardSize
	var pisB, boardsB, playersB, resultsB, countingB []float32

	for _, s := range c.slots {
		if len(s.examples) == 0 {
			continue
		}
		countingB = append(countingB, s.examples[0].Result)
		for _, ex := range s.examples {
			pisB = append(pisB, ex.Pi[:]...)
			for x := 0; x < n; x++ {
				for y := 0; y < n; y++ {
					boardsB = append(boardsB, float32(ex.Board[x][y]))
				}
			}
			playersB = append(playersB, float32(ex.Player))
			resultsB = append(resultsB, ex.Result)
		}
	}

	total := len(resultsB)
	c.training = &trainingTensors{
		pis:                tensor.New(tensor.WithBacking(pisB), tensor.WithShape(total, game.MoveLen)),
		boards:             tensor.New(tensor.WithBacking(boardsB), tensor.WithShape(total, n, n)),
		players:            tensor.New(tensor.WithBacking(playersB), tensor.WithShape(total)),
		results:            tensor.New(tensor.WithBacking(resultsB), tensor.WithShape(total)),
		resultsForCounting: tensor.New(tensor.WithBacking(countingB), tensor.WithShape(len(countingB))),
	}
	return c.training, nil
}

// PisForTraining returns the (total_examples, move_len) policy tensor.
func (c *Controller) PisForTraining() (*tensor.Dense, error) {
	t, err := c.buildTraining()
	if err != nil {
		return nil, err
	}
	return t.pis, nil
}

// BoardsForTraining returns the (total_examples, N, N) canonical-board tensor.
func (c *Controller) BoardsForTraining() (*tensor.Dense, error) {
	t, err := c.buildTraining()
	if err != nil {
		return nil, err
	}
	return t.boards, nil
}

// PlayersForTraining returns the (total_examples,) player-color tensor.
func (c *Controller) PlayersForTraining() (*tensor.Dense, error) {
	t, err := c.buildTraining()
	if err != nil {
		return nil, err
	}
	return t.players, nil
}

// ResultsForTraining returns the (total_examples,) outcome tensor.
func (c *Controller) ResultsForTraining() (*tensor.Dense, error) {
	t, err := c.buildTraining()
	if err != nil {
		return nil, err
	}
	return t.results, nil
}

// ResultsForCounting returns the (num_episodes,) per-episode final result,
// for win/loss/draw statistics.
func (c *Controller) ResultsForCounting() (*tensor.Dense, error) {
	t, err := c.buildTraining()
	if err != nil {
		return nil, err
	}
	return t.resultsForCounting, nil
}
