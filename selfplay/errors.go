package selfplay

import "github.com/pkg/errors"

// Sentinel errors for the usage-error and channel-failure kinds described
// in SPEC_FULL.md §7.
var (
	// ErrAlreadyExtracted is returned by PrepareNext once training
	// extraction has begun; the controller is done for this round.
	ErrAlreadyExtracted = errors.New("selfplay: prepare_next called after training extraction has begun")

	// ErrNotReady is returned by the training getters when PrepareNext has
	// not yet returned 2.
	ErrNotReady = errors.New("selfplay: training data requested before prepare_next returned 2")

	// ErrChannelClosed indicates a worker's channel closed unexpectedly,
	// which SPEC_FULL.md treats as fatal to that episode.
	ErrChannelClosed = errors.New("selfplay: worker channel closed unexpectedly")

	// ErrInvalidPlayerMode is returned by New for an unrecognized PlayerMode.
	ErrInvalidPlayerMode = errors.New("selfplay: invalid player mode")
)
