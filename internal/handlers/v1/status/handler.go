package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/payment-webhook-service/internal/logging"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CurrentTime string `json:"current_time"`
}

type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

// Handler reports process liveness. It does not touch the store or the queue.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(HealthResponse{
		Status:      "HEALTHY",
		CurrentTime: time.Now().UTC().Format(time.RFC3339),
	})
}
