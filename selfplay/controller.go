package selfplay

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/othellozero/selfplay/game"
	"github.com/othellozero/selfplay/mcts"
)

// slot is one of BatchSize parallel worker slots: a board-request channel
// the worker sends on, a prediction channel the controller replies on, and
// a once-only completion channel.
type slot struct {
	id int

	boardCh chan mcts.PredictRequest
	respCh  chan mcts.PredictResponse
	doneCh  chan []TrainExample

	pending  *mcts.PredictRequest
	finished bool
	examples []TrainExample
}

// Controller owns BatchSize worker slots and exposes the pull state
// machine described in SPEC_FULL.md §4.4: PrepareNext advances every idle
// slot, the caller forms and answers batches per "thinking player", and
// once every slot has finished, the four training tensors become
// available.
type Controller struct {
	cfg   Config
	slots []*slot

	extracted bool
	training  *trainingTensors
}

// New spawns BatchSize workers, each on its own goroutine, and returns a
// Controller ready to drive them via PrepareNext.
func New(cfg Config) (*Controller, error) {
	if !cfg.PlayerMode.Valid() {
		return nil, ErrInvalidPlayerMode
	}

	c := &Controller{cfg: cfg, slots: make([]*slot, cfg.BatchSize)}
	for i := range c.slots {
		s := &slot{
			id:      i,
			boardCh: make(chan mcts.PredictRequest),
			respCh:  make(chan mcts.PredictResponse),
			doneCh:  make(chan []TrainExample, 1),
		}
		c.slots[i] = s

		w := newWorker(i, cfg, s.boardCh, s.respCh)
		go func() { s.doneCh <- w.playEpisode() }()
	}
	return c, nil
}

// PrepareNext drains every slot whose buffer is empty, then reports what
// the caller should do next: 1 means a batch can be formed for filter (0
// matches any thinking player), 2 means every slot has finished and
// training data is ready, 0 means neither — some slots hold boards for the
// other side.
func (c *Controller) PrepareNext(filter int8) (int, error) {
	if c.extracted {
		return 0, ErrAlreadyExtracted
	}

	// A broken channel on one slot doesn't stop the others from draining;
	// every failure seen this pass is aggregated and surfaced together so
	// the training loop sees the full extent of the crash.
	var errs error
	for _, s := range c.slots {
		if s.pending != nil || s.finished {
			continue
		}
		select {
		case req, ok := <-s.boardCh:
			if !ok {
				errs = multierror.Append(errs, errors.Wrapf(ErrChannelClosed, "slot %d board channel", s.id))
				continue
			}
			s.pending = &req
		case exs, ok := <-s.doneCh:
			if !ok {
				errs = multierror.Append(errs, errors.Wrapf(ErrChannelClosed, "slot %d done channel", s.id))
				continue
			}
			s.finished = true
			s.examples = exs
		}
	}
	if errs != nil {
		return 0, errs
	}

	for _, s := range c.slots {
		if s.pending != nil && (filter == 0 || s.pending.ThinkingPlayer == filter) {
			return 1, nil
		}
	}

	for _, s := range c.slots {
		if !s.finished {
			return 0, nil
		}
	}
	return 2, nil
}

// GetBoardsForPrediction builds a BatchSize x BoardSize x BoardSize dense
// tensor. Slots not matching filter contribute an all-zero row; a slot's
// row index always equals its slot id.
func (c *Controller) GetBoardsForPrediction(filter int8) *tensor.Dense {
	n := c.cfg.BoardSize
	backing := make([]float32, c.cfg.BatchSize*n*n)
	for _, s := range c.slots {
		if s.pending == nil || (filter != 0 && s.pending.ThinkingPlayer != filter) {
			continue
		}
		base := s.id * n * n
		b := s.pending.Board
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				backing[base+x*n+y] = float32(b[x][y])
			}
		}
	}
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(c.cfg.BatchSize, n, n))
}

// ReceivePrediction pairs each row of pis/winRates with its slot in order.
// For slots matching filter, the prediction is forwarded to the waiting
// worker and the slot's pending request is cleared; non-matching slots are
// left untouched and reappear in a future batch for the opposite filter.
func (c *Controller) ReceivePrediction(pis, winRates *tensor.Dense, filter int8) error {
	piData, ok := pis.Data().([]float32)
	if !ok {
		return errors.New("selfplay: pis tensor must be backed by []float32")
	}
	valueData, ok := winRates.Data().([]float32)
	if !ok {
		return errors.New("selfplay: win_rates tensor must be backed by []float32")
	}

	wantPi := c.cfg.BatchSize * game.MoveLen
	if len(piData) < wantPi {
		return errors.Errorf("selfplay: pis tensor too short: got %d floats, want at least %d (batch_size=%d x move_len=%d)",
			len(piData), wantPi, c.cfg.BatchSize, game.MoveLen)
	}
	if len(valueData) < c.cfg.BatchSize {
		return errors.Errorf("selfplay: win_rates tensor too short: got %d floats, want at least %d (batch_size)",
			len(valueData), c.cfg.BatchSize)
	}

	for _, s := range c.slots {
		if s.pending == nil || (filter != 0 && s.pending.ThinkingPlayer != filter) {
			continue
		}

		var pi game.Pi
		base := s.id * game.MoveLen
		copy(pi[:], piData[base:base+game.MoveLen])

		s.respCh <- mcts.PredictResponse{Policy: pi, Value: valueData[s.id]}
		s.pending = nil
	}
	return nil
}

// Close releases the controller's slot channels. Workers are never
// cancelled mid-episode (SPEC_FULL.md §5); Close is only meaningful once
// every slot has finished.
func (c *Controller) Close() {
	for _, s := range c.slots {
		close(s.boardCh)
		close(s.respCh)
	}
}
