// Package dualnet holds the configuration shape a trained dual-headed
// (policy + value) network would use, and a Reference implementation that
// plays by the rules without ever having learned anything. A real network
// is outside this repository's scope; Reference exists so the self-play
// pipeline has something to run end to end.
package dualnet

// Config configures the dual-headed network: board geometry, feature
// planes, action space, and training batch size.
type Config struct {
	K            int  `json:"k"`             // number of filters
	SharedLayers int  `json:"shared_layers"` // number of shared residual blocks
	FC           int  `json:"fc"`            // fc layer width
	BatchSize    int  `json:"batch_size"`    // batch size
	Width        int  `json:"width"`         // board width
	Height       int  `json:"height"`        // board height
	Features     int  `json:"features"`      // input feature planes
	ActionSpace  int  `json:"action_space"`  // action space size
	FwdOnly      bool `json:"fwd_only"`      // inference-only graph
}

// DefaultConf returns a config sized for an m x n board with the given
// action space, scaling filter count with board area the way the teacher's
// dualnet.DefaultConf does.
func DefaultConf(m, n, actionSpace int) Config {
	k := round((m * n) / 3)
	return Config{
		K:            k,
		SharedLayers: m,
		FC:           2 * k,
		BatchSize:    256,
		Width:        n,
		Height:       m,
		Features:     3,
		ActionSpace:  actionSpace,
	}
}

// IsValid reports whether conf describes a usable network shape.
func (conf Config) IsValid() bool {
	return conf.K >= 1 &&
		conf.ActionSpace >= 3 &&
		conf.SharedLayers >= 0 &&
		conf.FC > 1 &&
		conf.BatchSize >= 1 &&
		conf.Features > 0
}

func round(a int) int {
	n := a - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++

	lt := n / 2
	if (a - lt) < (n - a) {
		return lt
	}
	return n
}
