package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidCapacity      = "invalid_capacity"
	codeIdempotencyRequired  = "idempotency_key_required"
	codeInvalidIdempotency   = "invalid_idempotency_key"
	codeSlotNotFound         = "slot_not_found"
	codeHoldNotFound         = "hold_not_found"
	codeCapacityExhausted    = "capacity_exhausted"
	codeHoldAlreadyConfirmed = "hold_already_confirmed"
	codeHoldCancelled        = "hold_cancelled"
	codeHoldExpired          = "hold_expired"
	codeHoldAlreadyCancelled = "hold_already_cancelled"
	codeRateLimited          = "rate_limited"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
