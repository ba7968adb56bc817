// Package predictor wraps the pre-trained calorie estimation model.
//
// The rest of the system treats the model as a black box: a vector of
// numeric features goes in, a calorie estimate comes out. Nothing outside
// this package knows (or may depend on) what kind of model it is — today a
// linear regression, tomorrow maybe something served over the network.
package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Predictor turns a feature vector into a calorie estimate.
//
// Accept interfaces, return structs: handlers depend on this one-method
// interface, so tests substitute a fixed-output fake without touching disk.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// LinearModel is a linear regression: prediction = intercept + weights·features.
//
// The training pipeline exports its fitted coefficients to a small JSON file
// ({"weights": [...], "intercept": ...}); this server only ever reads that
// file. Re-training and re-exporting is the model team's problem, which is
// exactly where the boundary belongs.
type LinearModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

var _ Predictor = (*LinearModel)(nil)

// Load reads a model coefficients file.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("predictor: reading model file: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("predictor: parsing model file %s: %w", path, err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("predictor: model file %s has no weights", path)
	}

	return &m, nil
}

// Predict computes the dot product of features and weights plus the intercept.
// The feature vector must have exactly as many entries as the model has
// weights — a mismatch means the client built the vector wrong.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("predictor: expected %d features, got %d", len(m.Weights), len(features))
	}

	sum := m.Intercept
	for i, f := range features {
		sum += f * m.Weights[i]
	}
	return sum, nil
}
