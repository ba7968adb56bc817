package predictor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPredict(t *testing.T) {
	m := &LinearModel{
		Weights:   []float64{2, 3, 0.5},
		Intercept: 10,
	}

	got, err := m.Predict([]float64{1, 2, 4})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	// 10 + 2*1 + 3*2 + 0.5*4 = 20
	if got != 20 {
		t.Errorf("Predict() = %v, want 20", got)
	}
}

func TestPredict_FeatureCountMismatch(t *testing.T) {
	m := &LinearModel{Weights: []float64{1, 2, 3}, Intercept: 0}

	if _, err := m.Predict([]float64{1, 2}); err == nil {
		t.Error("Predict() accepted too few features")
	}
	if _, err := m.Predict([]float64{1, 2, 3, 4}); err == nil {
		t.Error("Predict() accepted too many features")
	}
	if _, err := m.Predict(nil); err == nil {
		t.Error("Predict() accepted a nil feature vector")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	content := `{"weights": [0.5, -1.25], "intercept": 3.0}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := m.Predict([]float64{2, 2})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	// 3 + 0.5*2 + (-1.25)*2 = 1.5
	if got != 1.5 {
		t.Errorf("Predict() = %v, want 1.5", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("Load() succeeded on a missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte("{not json"), 0o644)
		if _, err := Load(path); err == nil {
			t.Error("Load() succeeded on malformed JSON")
		}
	})

	t.Run("empty weights", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		os.WriteFile(path, []byte(`{"weights": [], "intercept": 1}`), 0o644)
		if _, err := Load(path); err == nil {
			t.Error("Load() accepted a model with no weights")
		}
	})
}
