package dualnet

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Reference is a Predictor that never learned anything: it returns a
// uniform policy over the full action space and a zero value for every
// board. It satisfies predictor.Predictor so the self-play pipeline can be
// exercised and tested without a trained model.
type Reference struct {
	Conf Config
}

// NewReference builds a Reference predictor for conf.
func NewReference(conf Config) *Reference {
	return &Reference{Conf: conf}
}

// Predict implements predictor.Predictor.
func (r *Reference) Predict(boards *tensor.Dense) (policies, values *tensor.Dense, err error) {
	shape := boards.Shape()
	if len(shape) != 3 {
		return nil, nil, errors.Errorf("dualnet: expected a rank-3 board batch, got shape %v", shape)
	}
	batch := shape[0]

	policyBacking := make([]float32, batch*r.Conf.ActionSpace)
	uniform := float32(1) / float32(r.Conf.ActionSpace)
	for i := range policyBacking {
		policyBacking[i] = uniform
	}
	valueBacking := make([]float32, batch)

	policies = tensor.New(tensor.WithBacking(policyBacking), tensor.WithShape(batch, r.Conf.ActionSpace))
	values = tensor.New(tensor.WithBacking(valueBacking), tensor.WithShape(batch))
	return policies, values, nil
}
