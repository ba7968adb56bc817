package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/fitness-tracker/internal/predictor"
)

// PredictHandler invokes the calorie estimation model.
//
// The model is optional at startup (the server runs without it, the same way
// the rest of the app keeps working if the model file is being redeployed).
// A nil model makes this endpoint answer 503 rather than taking the whole
// server down.
type PredictHandler struct {
	model  predictor.Predictor
	logger *slog.Logger
}

// NewPredictHandler creates a PredictHandler. model may be nil.
func NewPredictHandler(model predictor.Predictor, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{model: model, logger: logger}
}

// HandlePredict estimates calories for a feature vector.
//
// HTTP: POST /predict (protected)
// BODY: {"features": [gender, age, height, weight, duration, heart_rate, body_temp]}
// RESPONSE: {"calories": 245.3}
//
// The handler does not know or care what the features mean — the vector is
// passed through to the model, and a length mismatch comes back as 400.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if h.model == nil {
		h.logger.Warn("predict requested but no model is loaded")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "model_unavailable",
			Message: "Prediction model is not available",
		})
		return
	}

	var req struct {
		Features []float64 `json:"features"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	calories, err := h.model.Predict(req.Features)
	if err != nil {
		// The only model error is a malformed feature vector — client's fault.
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"calories": calories})
}
