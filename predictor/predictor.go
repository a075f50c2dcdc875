// Package predictor defines the opaque boundary between self-play and
// whatever learns to play: a batched board-in, policy-and-value-out
// function. Nothing in this repository trains or evaluates a real network;
// dualnet.Reference is a stand-in implementation used by tests and the
// demo command.
package predictor

import "gorgonia.org/tensor"

// Predictor evaluates a batch of canonical boards. boards has shape
// (B, Height, Width); the returned policies has shape (B, ActionSpace) and
// values has shape (B). Row i of the inputs/outputs all refer to the same
// board. Implementations must not retain boards past the call.
type Predictor interface {
	Predict(boards *tensor.Dense) (policies, values *tensor.Dense, err error)
}
