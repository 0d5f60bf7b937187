package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
)

// errorResponse is the JSON body for every non-2xx answer.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Status string `json:"status,omitempty"`
}

// translationResponse is the JSON body of a successful translation.
type translationResponse struct {
	TextoES    string `json:"texto_es"`
	Traduccion string `json:"traduccion"`
	Ms         int64  `json:"ms"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Base().Error("failed to encode response", zap.Error(err))
	}
}
