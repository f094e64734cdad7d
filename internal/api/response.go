package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

// writeError maps protocol errors to their status code, anything else is an
// internal error whose details stay in the logs
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var protocolErr *types.Error
	if !errors.As(err, &protocolErr) {
		protocolErr = types.NewInternalServiceError(err)
	}

	resp := errorResponse{
		ErrorCode: string(protocolErr.ErrorCode),
		Message:   protocolErr.Error(),
	}
	if protocolErr.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		resp.Message = "internal service error"
	}
	writeJSON(w, r, protocolErr.StatusCode, resp)
}
