// Package mcts implements the PUCT-guided Monte-Carlo tree search: per-state
// caching keyed by canonical-board hash, expansion-with-prediction that
// suspends the calling goroutine at a channel rendezvous, and the backup /
// action-probability extraction described in spec.md §4.3.
package mcts

// Eps avoids a zero sqrt term when selecting an as-yet-unvisited edge.
const Eps = 1e-8

// Config holds the MCTS tunables from spec.md §6. TempThreshold is not read
// by Engine; the self-play episode driver uses it to pick the temperature.
type Config struct {
	CPuct         float32
	NumMCTSSims   int
	TempThreshold int

	// DirichletAlpha/DirichletEpsilon add AlphaZero-style root exploration
	// noise (see SPEC_FULL.md §4.3): (1-eps)*P[a] + eps*noise[a], mixed
	// into the root prior only, after the first simulation of each
	// GetActionProb call (by which point the root is expanded). Zero
	// epsilon (the default) disables it and reproduces spec.md's
	// undiluted PUCT exactly.
	DirichletAlpha   float32
	DirichletEpsilon float32
}

// DefaultConfig matches original_source/src/mcts_args.rs's defaults.
func DefaultConfig() Config {
	return Config{
		CPuct:         1.0,
		NumMCTSSims:   25,
		TempThreshold: 15,
	}
}
