package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"smartwaste/internal/dto"
	"smartwaste/internal/logger"
	"smartwaste/internal/service"
	"smartwaste/internal/service/inference"
)

// DetectHandler accepts a JSON body {"image": "<base64 or data-URL JPEG>"},
// runs the detection pipeline and responds with the normalized predictions
// plus counters. Malformed input is a 400; an inference failure is a 500
// with no partial results.
func DetectHandler(pipeline *service.Pipeline, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.DetectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
			respondError(w, "Missing 'image' field in JSON body", http.StatusBadRequest)
			return
		}

		frame, err := decodeImagePayload(req.Image)
		if err != nil {
			respondError(w, fmt.Sprintf("Invalid base64 image: %v", err), http.StatusBadRequest)
			return
		}

		result, err := pipeline.ProcessFrame(frame)
		if err != nil {
			logger.Error("Detection request failed: %v", err)
			respondError(w, fmt.Sprintf("Inference failed: %v", err), http.StatusInternalServerError)
			return
		}

		respondJSON(w, result, http.StatusOK)
	}
}

// ResetDedupHandler clears the dedup tracker, starting a new monitoring
// session. Persisted tasks are unaffected.
func ResetDedupHandler(tracker *service.SiteTracker, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		tracker.Reset()
		logger.Info("Dedup tracker reset")
		respondJSON(w, map[string]string{"status": "dedup cache cleared"}, http.StatusOK)
	}
}

// HealthHandler reports service liveness and whether the model endpoint answers.
func HealthHandler(client *inference.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model := "loaded"
		if err := client.CheckHealth(); err != nil {
			model = "unreachable"
		}
		respondJSON(w, map[string]string{"status": "ok", "model": model}, http.StatusOK)
	}
}

// decodeImagePayload strips an optional data-URL prefix and decodes base64.
func decodeImagePayload(payload string) ([]byte, error) {
	raw := payload
	if idx := strings.LastIndex(raw, ","); idx >= 0 {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
