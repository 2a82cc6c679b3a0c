package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/secondary4432-cyber/framelift-ai/internal/logger"
	"go.uber.org/zap"
)

// Envelope is the JSON body shape shared by the upload responses.
type Envelope struct {
	OK      bool   `json:"ok"`
	Demo    bool   `json:"demo,omitempty"`
	Message string `json:"message"`
}

// WriteJSON writes data as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// WriteOK writes a success envelope
func WriteOK(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{OK: true, Message: message})
}

// WriteDemo writes a demo-mode success envelope
func WriteDemo(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{OK: true, Demo: true, Message: message})
}

// WriteError writes a failure envelope with the given status
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{OK: false, Message: message})
}
