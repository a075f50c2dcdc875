// Package selfplay drives many parallel self-play episodes and exposes
// their aggregate board requests and finished training data to an external
// training loop through a pull state machine.
package selfplay

import (
	"github.com/othellozero/selfplay/board"
	"github.com/othellozero/selfplay/mcts"
)

// PlayerMode controls whether one episode's two sides share a single MCTS
// cache or keep independent ones.
type PlayerMode int

const (
	// SinglePlayerMode uses one map set for both sides.
	SinglePlayerMode PlayerMode = iota + 1
	// TwoPlayerMode gives each side its own NodeInfo/NodeActionInfo/terminal
	// maps so two different opponents can be hosted in one episode.
	TwoPlayerMode
)

// Valid reports whether m is a recognized mode.
func (m PlayerMode) Valid() bool {
	return m == SinglePlayerMode || m == TwoPlayerMode
}

// Config holds the external knobs from SPEC_FULL.md §6. The ply at which
// temperature drops from 1 to 0 lives on MCTS.TempThreshold; it governs the
// episode driver's sampling temperature, not search itself.
type Config struct {
	BatchSize  int
	BoardSize  int
	MCTS       mcts.Config
	PlayerMode PlayerMode
}

// DefaultConfig matches SPEC_FULL.md's documented defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:  64,
		BoardSize:  board.Size,
		MCTS:       mcts.DefaultConfig(),
		PlayerMode: SinglePlayerMode,
	}
}
